package api

import (
	"github.com/starford/gestorplan/internal/calendar"
	"github.com/starford/gestorplan/internal/models"
)

// RequestListResponse wraps the full collection.
type RequestListResponse struct {
	Requests []models.Request `json:"requests"`
	Total    int              `json:"total"`
}

// CalendarResponse is the month grid payload.
type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  []calendar.Day `json:"days"`
}

// ImportResponse reports the outcome of an import. Imported is false on a
// dry run (no confirm), in which case Detected tells the caller how many
// rows a confirmed import would load.
type ImportResponse struct {
	Detected int  `json:"detected"`
	Imported bool `json:"imported"`
}

// AskRequest is the assistant query body.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the assistant's answer (or the apology string).
type AskResponse struct {
	Answer string `json:"answer"`
}
