package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/najdeno/internal/claims"
	"github.com/erazemk/najdeno/internal/engine"
	"github.com/erazemk/najdeno/internal/notify"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, notifier *notify.Notifier) http.Handler {
	mux := http.NewServeMux()

	coordinator := claims.New(db, engine.New(db, notifier))

	itemsHandler := &ItemsHandler{DB: db}
	claimsHandler := &ClaimsHandler{Coordinator: coordinator}
	eventsHandler := &EventsHandler{Notifier: notifier}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/history", itemsHandler.GetHistory)

	// Claim workflow.
	mux.HandleFunc("POST /api/items/{id}/claim", claimsHandler.RequestClaim)
	mux.HandleFunc("POST /api/items/{id}/approve", claimsHandler.Approve)
	mux.HandleFunc("POST /api/items/{id}/reject", claimsHandler.Reject)
	mux.HandleFunc("POST /api/items/{id}/handover", claimsHandler.Handover)

	// Change events.
	mux.HandleFunc("GET /api/events", eventsHandler.Stream)

	return mux
}
