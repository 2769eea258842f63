package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

type settleUpRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

func (a *API) handleSettleUp(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	var req settleUpRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	payment, err := a.payments.RecordPayment(r.Context(), Actor(r.Context()), groupID, req.From, req.To, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentView(payment), "Payment recorded successfully")
}
