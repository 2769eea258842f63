package api

import (
	"github.com/settleapp/settle/internal/ledger"
	"github.com/settleapp/settle/internal/models"
)

// JSON views of the domain models. Kept separate so wire shape changes never
// touch the models, and so the password hash cannot leak.

type userView struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	Notifications bool   `json:"notifications"`
	CreatedAt     int64  `json:"created_at"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Avatar:        u.Avatar,
		Notifications: u.Notifications,
		CreatedAt:     u.CreatedAt,
	}
}

type groupView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	CreatedBy   string   `json:"created_by"`
	CreatedAt   int64    `json:"created_at"`
}

func toGroupView(g *models.Group) groupView {
	return groupView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     g.Members,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

func toGroupViews(groups []*models.Group) []groupView {
	views := make([]groupView, len(groups))
	for i, g := range groups {
		views[i] = toGroupView(g)
	}
	return views
}

type splitView struct {
	Member string  `json:"member"`
	Paid   float64 `json:"paid"`
	Owes   float64 `json:"owes"`
}

type expenseView struct {
	ID        string      `json:"id"`
	GroupID   string      `json:"group_id"`
	Title     string      `json:"title"`
	Amount    float64     `json:"amount"`
	Category  string      `json:"category"`
	Date      int64       `json:"date"`
	Splits    []splitView `json:"splits"`
	CreatedAt int64       `json:"created_at"`
}

func toExpenseView(e *models.Expense) expenseView {
	splits := make([]splitView, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = splitView{Member: s.Member, Paid: s.Paid, Owes: s.Owes}
	}
	return expenseView{
		ID:        e.ID,
		GroupID:   e.GroupID,
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		Splits:    splits,
		CreatedAt: e.CreatedAt,
	}
}

func toExpenseViews(expenses []*models.Expense) []expenseView {
	views := make([]expenseView, len(expenses))
	for i, e := range expenses {
		views[i] = toExpenseView(e)
	}
	return views
}

type paymentView struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"group_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	CreatedAt int64   `json:"created_at"`
}

func toPaymentView(p *models.Payment) paymentView {
	return paymentView{
		ID:        p.ID,
		GroupID:   p.GroupID,
		From:      p.From,
		To:        p.To,
		Amount:    p.Amount,
		CreatedAt: p.CreatedAt,
	}
}

type balanceView struct {
	OwedToMe float64 `json:"owedToMe"`
	IOwe     float64 `json:"iOwe"`
}

func toBalanceView(b ledger.Balance) balanceView {
	return balanceView{OwedToMe: b.OwedToMe, IOwe: b.IOwe}
}

type summaryView struct {
	TotalExpenses float64 `json:"totalExpenses"`
	SettledAmount float64 `json:"settledAmount"`
}

func toSummaryView(s ledger.Summary) summaryView {
	return summaryView{TotalExpenses: s.TotalExpenses, SettledAmount: s.SettledAmount}
}

type categoryView struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
}

func toCategoryViews(totals []ledger.CategoryTotal) []categoryView {
	views := make([]categoryView, len(totals))
	for i, t := range totals {
		views[i] = categoryView{Category: t.Category, TotalAmount: t.TotalAmount}
	}
	return views
}
