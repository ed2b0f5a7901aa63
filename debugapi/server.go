package debugapi

import (
	"net/http"
	"time"

	"gacha/service"
)

// NewServer creates the debug HTTP server. Bind it to a loopback address.
func NewServer(addr string, ledger service.LedgerService, collection service.CollectionService) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(ledger, collection),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
