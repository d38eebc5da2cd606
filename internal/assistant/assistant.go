// Package assistant implements the AI query collaborator: it summarizes the
// request collection (never exposing store ids), wraps the user's question
// in the HR-analyst prompt, and asks a Gemini-style generateContent endpoint.
// Failures are terminal for the query and fail closed behind Apology.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/models"
)

// Apology is the user-facing answer when a query fails for any reason.
const Apology = "Ocurrió un error al consultar al asistente. Por favor intenta de nuevo."

// summary is the id-free view of a request shared with the model.
type summary struct {
	Nombre string `json:"nombre"`
	Area   string `json:"area"`
	Tipo   string `json:"tipo"`
	Inicio string `json:"inicio"`
	Fin    string `json:"fin"`
}

// Client calls the remote model endpoint.
type Client struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

// New creates a Client. url is the API base (e.g. the Generative Language
// endpoint), model the model name.
func New(apiKey, url, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		url:    url,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// Ask sends the question with the collection summary as context and returns
// the model's answer text.
func (c *Client) Ask(ctx context.Context, requests []models.Request, question string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: api key not configured", apperr.ErrAssistant)
	}

	summaries := make([]summary, len(requests))
	for i, r := range requests {
		summaries[i] = summary{
			Nombre: r.Name,
			Area:   string(r.Area),
			Tipo:   string(r.Type),
			Inicio: r.StartDate,
			Fin:    r.EndDate,
		}
	}
	contextData, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: encode context: %v", apperr.ErrAssistant, err)
	}

	prompt := fmt.Sprintf(`Actúa como un asistente experto en Recursos Humanos y Gestión de Proyectos.
Tienes acceso a los siguientes datos de solicitudes de vacaciones y permisos en formato JSON:
%s

Tu tarea es responder a la siguiente pregunta o instrucción del usuario basándote EXCLUSIVAMENTE en estos datos.

Usuario: %q

Si el usuario pregunta por conflictos, disponibilidad o estadísticas, utiliza tu capacidad de razonamiento para calcular solapamientos de fechas y distribuciones por área.
Responde en español de manera profesional, clara y concisa.`, contextData, question)

	return c.generate(ctx, prompt)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", apperr.ErrAssistant, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.url, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", apperr.ErrAssistant, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrAssistant, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", apperr.ErrAssistant, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", apperr.ErrAssistant, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", apperr.ErrAssistant, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", apperr.ErrAssistant)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
