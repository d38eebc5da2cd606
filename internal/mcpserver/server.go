// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes GestorPlan scheduling tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/gestorplan/internal/dateutil"
	"github.com/starford/gestorplan/internal/models"
	"github.com/starford/gestorplan/internal/scheduling"
)

// Server wraps the MCP server with GestorPlan tools.
type Server struct {
	mcp *server.MCPServer
	svc *scheduling.Service
}

// New creates a new MCP server with all scheduling tools registered.
func New(svc *scheduling.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"GestorPlan",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_requests",
		mcp.WithDescription("List every registered leave/permission request."),
	), s.listRequests)

	s.mcp.AddTool(mcp.NewTool("create_request",
		mcp.WithDescription("Register a new leave/permission request. Dates are YYYY-MM-DD; "+
			"the end date must not be before the start date. Area and type must be members of "+
			"their enumerations (see the gestorplan://interchange resource)."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Requester's full name")),
		mcp.WithString("area", mcp.Required(), mcp.Description("Department tag, e.g. GRAFICOS")),
		mcp.WithString("type", mcp.Required(), mcp.Description("Request kind, e.g. VACACIONES")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("First day covered (YYYY-MM-DD)")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("Last day covered, inclusive (YYYY-MM-DD)")),
	), s.createRequest)

	s.mcp.AddTool(mcp.NewTool("month_calendar",
		mcp.WithDescription("Build the month calendar grid: full weeks of days, each with its "+
			"holiday name (if any) and covering requests."),
		mcp.WithString("year", mcp.Required(), mcp.Description("Four-digit year")),
		mcp.WithString("month", mcp.Required(), mcp.Description("Month number 1-12")),
	), s.monthCalendar)

	s.mcp.AddTool(mcp.NewTool("check_conflicts",
		mcp.WithDescription("List the requests overlapping a date range, grouped per area, "+
			"to spot coverage conflicts."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Range start (YYYY-MM-DD)")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("Range end, inclusive (YYYY-MM-DD)")),
	), s.checkConflicts)

	// Resource: interchange formats contract.
	s.mcp.AddResource(
		mcp.NewResource("gestorplan://interchange", "Interchange Contract",
			mcp.WithResourceDescription("JSON backup and CSV report formats accepted by import/export."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readInterchangeResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listRequests(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.List(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	area, err := req.RequireString("area")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startDate, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endDate, err := req.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := s.svc.Create(ctx, models.Request{
		Name:      name,
		Area:      models.Area(area),
		Type:      models.RequestType(kind),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created request %s", created.ID)), nil
}

func (s *Server) monthCalendar(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	yearStr, err := req.RequireString("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	monthStr, err := req.RequireString("month")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid year %q", yearStr)), nil
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid month %q", monthStr)), nil
	}

	days := s.svc.Month(year, time.Month(month), time.Sunday)
	out, _ := json.MarshalIndent(days, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) checkConflicts(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startStr, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endStr, err := req.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := dateutil.ValidateRange(startStr, endStr); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	overlaps := make(map[models.Area][]models.Request)
	start, _ := dateutil.ParseDay(startStr)
	end, _ := dateutil.ParseDay(endStr)
	for _, r := range s.svc.List() {
		// Overlap iff the request covers any day of [start, end].
		if dateutil.ContainsDay(r.StartDate, r.EndDate, start) ||
			dateutil.ContainsDay(r.StartDate, r.EndDate, end) ||
			within(startStr, endStr, r.StartDate) {
			overlaps[r.Area] = append(overlaps[r.Area], r)
		}
	}

	if len(overlaps) == 0 {
		return mcp.NewToolResultText("no requests overlap the given range"), nil
	}

	var b strings.Builder
	for _, area := range models.Areas() {
		rs := overlaps[area]
		if len(rs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s (%d):\n", area, len(rs))
		for _, r := range rs {
			fmt.Fprintf(&b, "  - %s: %s, %s → %s\n", r.Name, r.Type, r.StartDate, r.EndDate)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// within reports whether day falls inside [start, end] given as ISO strings.
func within(start, end, day string) bool {
	d, err := dateutil.ParseDay(day)
	if err != nil {
		return false
	}
	return dateutil.ContainsDay(start, end, d)
}

func (s *Server) readInterchangeResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "gestorplan://interchange",
			MIMEType: "text/markdown",
			Text:     InterchangeContract,
		},
	}, nil
}
