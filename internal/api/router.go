// Package api implements the GestorPlan REST API using chi.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/gestorplan/internal/scheduling"
)

// NewRouter creates a chi router with all API routes mounted.
// weekStart is the default first-day-of-week for calendar grids.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *scheduling.Service, weekStart time.Weekday, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, weekStart)

	r := chi.NewRouter()

	// Requests CRUD.
	r.Get("/requests", h.ListRequests)
	r.Post("/requests", h.CreateRequest)
	r.Delete("/requests", h.ClearRequests)
	r.Get("/requests/{id}", h.GetRequest)
	r.Put("/requests/{id}", h.UpdateRequest)
	r.Delete("/requests/{id}", h.DeleteRequest)

	// Month calendar.
	r.Get("/calendar/{year}/{month}", h.Calendar)

	// Backup / report downloads.
	r.Get("/export/json", h.ExportJSON)
	r.Get("/export/csv", h.ExportCSV)
	r.Get("/export/ics", h.ExportICS)

	// Restore.
	r.Post("/import", h.Import)

	// Assistant.
	r.Post("/assistant", h.Ask)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
