// Package debugapi exposes a read-only HTTP view of balances and rolls for operators.
package debugapi

import (
	"net/http"

	"gacha/service"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers every debug endpoint
func NewRouter(ledger service.LedgerService, collection service.CollectionService) http.Handler {
	h := newHandler(ledger, collection)
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/debug", func(r chi.Router) {
		r.Get("/balances/{userID}", h.getBalance)
		r.Get("/balances/{userID}/history", h.getHistory)
		r.Get("/users/{userID}/rolls", h.listRolls)
		r.Get("/rolls", h.searchRolls)
		r.Get("/rolls/{id}", h.getRoll)
	})

	return r
}
