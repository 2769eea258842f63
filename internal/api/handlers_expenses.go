package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/service"
)

type addExpenseRequest struct {
	Title    string      `json:"title"`
	Amount   float64     `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
	Splits   []splitView `json:"splits"`
}

func (a *API) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	var req addExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	splits := make([]models.Split, len(req.Splits))
	for i, s := range req.Splits {
		splits[i] = models.Split{Member: s.Member, Paid: s.Paid, Owes: s.Owes}
	}

	expense, err := a.expenses.AddExpense(r.Context(), Actor(r.Context()), groupID, service.AddExpenseInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     date,
		Splits:   splits,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseView(expense), "Expense added successfully")
}

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	expenses, err := a.expenses.ListExpenses(r.Context(), Actor(r.Context()), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseViews(expenses), "Expenses fetched successfully")
}

func (a *API) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	breakdown, err := a.expenses.CategoryBreakdown(r.Context(), Actor(r.Context()), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryViews(breakdown), "Group analytics fetched successfully")
}

// parseDate accepts RFC 3339 or a plain YYYY-MM-DD date.
func parseDate(value string) (int64, error) {
	if value == "" {
		return 0, apperr.Validationf("date is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Unix(), nil
	}
	return 0, apperr.Validationf("invalid date %q", value)
}
