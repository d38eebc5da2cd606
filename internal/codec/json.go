// Package codec round-trips the request collection through its interchange
// formats: indented JSON (canonical backup), the quoted-CSV report dialect,
// and an iCalendar feed for calendar clients.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/models"
)

// EncodeJSON serializes the collection as an indented JSON array. This is the
// canonical backup format: a lossless round-trip of every field.
func EncodeJSON(requests []models.Request) ([]byte, error) {
	if requests == nil {
		requests = []models.Request{}
	}
	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec: encode json: %w", err)
	}
	return data, nil
}

// DecodeJSON parses a JSON backup. The top-level value must be an array;
// anything else is an import-format error. Elements are trusted to match the
// Request shape (best-effort import, no per-field validation).
func DecodeJSON(data []byte) ([]models.Request, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", apperr.ErrImportFormat, err)
	}
	var requests []models.Request
	if err := json.Unmarshal(raw, &requests); err != nil {
		return nil, fmt.Errorf("%w: top-level JSON value must be an array of requests", apperr.ErrImportFormat)
	}
	return requests, nil
}
