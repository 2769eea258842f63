package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) handleOverallBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := a.dashboard.OverallBalance(r.Context(), Actor(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceView(balance), "Overall balance fetched")
}

func (a *API) handleGroupSummary(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	summary, err := a.dashboard.GroupSummary(r.Context(), Actor(r.Context()), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryView(summary), "Group summary fetched")
}

func (a *API) handleRecentExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := a.dashboard.RecentExpenses(r.Context(), Actor(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseViews(expenses), "Recent expenses fetched successfully")
}

func (a *API) handleExpenseCount(w http.ResponseWriter, r *http.Request) {
	count, err := a.dashboard.ExpenseCount(r.Context(), Actor(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"totalCount": count}, "Total expense count fetched")
}
