package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/models"
)

// HTTP talks to a remote JSON record store:
//
//	POST   {base}/solicitudes        body: record without id → {"id": "..."}
//	GET    {base}/solicitudes        → JSON array of records
//	PUT    {base}/solicitudes/{id}   body: record without id
//	DELETE {base}/solicitudes/{id}
//
// Any network or non-2xx failure wraps apperr.ErrStore. There is no retry:
// failures are terminal for the triggering operation and the caller keeps
// its cached state.
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP creates an HTTP store client for the given base URL.
func NewHTTP(baseURL string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		base:   strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Create implements Provider.
func (h *HTTP) Create(ctx context.Context, r models.Request) (string, error) {
	r.ID = ""
	body, err := h.do(ctx, http.MethodPost, h.base+"/solicitudes", r)
	if err != nil {
		return "", err
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.ID == "" {
		return "", fmt.Errorf("%w: create response carried no id", apperr.ErrStore)
	}
	return resp.ID, nil
}

// ListAll implements Provider.
func (h *HTTP) ListAll(ctx context.Context) ([]models.Request, error) {
	body, err := h.do(ctx, http.MethodGet, h.base+"/solicitudes", nil)
	if err != nil {
		return nil, err
	}
	var records []models.Request
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: decode list response: %v", apperr.ErrStore, err)
	}
	return records, nil
}

// Update implements Provider.
func (h *HTTP) Update(ctx context.Context, id string, r models.Request) error {
	r.ID = ""
	_, err := h.do(ctx, http.MethodPut, h.base+"/solicitudes/"+id, r)
	return err
}

// Delete implements Provider.
func (h *HTTP) Delete(ctx context.Context, id string) error {
	_, err := h.do(ctx, http.MethodDelete, h.base+"/solicitudes/"+id, nil)
	return err
}

func (h *HTTP) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", apperr.ErrStore, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperr.ErrStore, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", apperr.ErrStore, method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", apperr.ErrStore, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w: %s %s", apperr.ErrStore, apperr.ErrNotFound, method, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s: status %d", apperr.ErrStore, method, url, resp.StatusCode)
	}
	return body, nil
}

// Verify HTTP satisfies Provider at compile time.
var _ Provider = (*HTTP)(nil)
