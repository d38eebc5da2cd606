package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/assistant"
	"github.com/starford/gestorplan/internal/models"
	"github.com/starford/gestorplan/internal/scheduling"
)

// Handler holds API route handlers.
type Handler struct {
	svc       *scheduling.Service
	weekStart time.Weekday
}

// NewHandler creates a new Handler.
func NewHandler(svc *scheduling.Service, weekStart time.Weekday) *Handler {
	return &Handler{svc: svc, weekStart: weekStart}
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrImportFormat):
		writeJSON(w, http.StatusBadRequest, errorBody("revisa el formato del archivo: debe ser un respaldo JSON o un CSV válido"))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrStore):
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("record store unavailable"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListRequests handles GET /api/requests.
func (h *Handler) ListRequests(w http.ResponseWriter, _ *http.Request) {
	requests := h.svc.List()
	writeJSON(w, http.StatusOK, RequestListResponse{Requests: requests, Total: len(requests)})
}

// GetRequest handles GET /api/requests/{id}.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "get request")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// CreateRequest handles POST /api/requests.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req models.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	record, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, err, "create request")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// UpdateRequest handles PUT /api/requests/{id}: a full-field replace
// keeping the id.
func (h *Handler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req models.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	record, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err, "update request")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// DeleteRequest handles DELETE /api/requests/{id}.
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "delete request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearRequests handles DELETE /api/requests: the full data-clear action.
// Only the session collection, local cache, and sent-log are dropped; the
// remote store keeps its records.
func (h *Handler) ClearRequests(w http.ResponseWriter, _ *http.Request) {
	h.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Calendar handles GET /api/calendar/{year}/{month}. An optional
// ?weekStart=monday query overrides the configured first day of the week.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid month"))
		return
	}

	weekStart := h.weekStart
	if q := r.URL.Query().Get("weekStart"); q != "" {
		ws, ok := ParseWeekday(q)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("invalid weekStart %q", q)))
			return
		}
		weekStart = ws
	}

	days := h.svc.Month(year, time.Month(month), weekStart)
	writeJSON(w, http.StatusOK, CalendarResponse{Year: year, Month: month, Days: days})
}

// ExportJSON handles GET /api/export/json.
func (h *Handler) ExportJSON(w http.ResponseWriter, _ *http.Request) {
	data, filename, err := h.svc.ExportJSON()
	if err != nil {
		writeError(w, err, "export json")
		return
	}
	serveDownload(w, data, filename, "application/json; charset=utf-8")
}

// ExportCSV handles GET /api/export/csv.
func (h *Handler) ExportCSV(w http.ResponseWriter, _ *http.Request) {
	data, filename := h.svc.ExportCSV()
	serveDownload(w, data, filename, "text/csv; charset=utf-8")
}

// ExportICS handles GET /api/export/ics.
func (h *Handler) ExportICS(w http.ResponseWriter, _ *http.Request) {
	data, filename := h.svc.ExportICS()
	serveDownload(w, data, filename, "text/calendar; charset=utf-8")
}

func serveDownload(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST /api/import. The payload is either a multipart form
// with a "file" part or the raw body; format detection follows the filename
// and content. Without ?confirm=true the call is a dry run reporting the
// detected row count; with it the collection is replaced wholesale.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	filename, content, err := importPayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	confirm := r.URL.Query().Get("confirm") == "true"
	detected, err := h.svc.Import(r.Context(), filename, content, confirm)
	if err != nil {
		writeError(w, err, "import")
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Detected: detected, Imported: confirm})
}

func importPayload(r *http.Request) (filename, content string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			return "", "", fmt.Errorf("multipart form must carry a %q part", "file")
		}
		defer file.Close()
		data, rerr := io.ReadAll(file)
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read uploaded file")
		}
		return header.Filename, string(data), nil
	}

	data, rerr := io.ReadAll(r.Body)
	if rerr != nil {
		return "", "", fmt.Errorf("failed to read body")
	}
	return r.URL.Query().Get("filename"), string(data), nil
}

// Ask handles POST /api/assistant. Failures are reported inline as the
// apology answer; record state is never affected.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("question is required"))
		return
	}

	answer, err := h.svc.Ask(r.Context(), req.Question)
	if err != nil {
		slog.Error("assistant query failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusOK, AskResponse{Answer: assistant.Apology})
		return
	}
	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// ParseWeekday maps a lowercase English weekday name to time.Weekday.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}
