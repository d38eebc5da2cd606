package codec

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/starford/gestorplan/internal/models"
)

// utf8BOM is prepended to CSV exports so spreadsheet tools decode special
// characters (Á, É, Ñ) correctly.
const utf8BOM = "\uFEFF"

// csvHeader is the report header row. The import side only sniffs for
// "nombre"/"area", so localized variants survive the round trip.
var csvHeader = []string{"Nombre", "Área", "Tipo de Petición", "Fecha Inicio", "Fecha Fin"}

// EncodeCSV renders the collection in the report dialect: a header row, then
// one row per request with name/area/type double-quote-wrapped (internal
// quotes doubled) and bare ISO dates.
func EncodeCSV(requests []models.Request) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(strings.Join(csvHeader, ","))
	for _, r := range requests {
		b.WriteByte('\n')
		b.WriteString(quoteField(r.Name))
		b.WriteByte(',')
		b.WriteString(quoteField(string(r.Area)))
		b.WriteByte(',')
		b.WriteString(quoteField(string(r.Type)))
		b.WriteByte(',')
		b.WriteString(r.StartDate)
		b.WriteByte(',')
		b.WriteString(r.EndDate)
	}
	return []byte(b.String())
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// DecodeCSV parses CSV content into requests. Blank lines are discarded, a
// first line containing "nombre" or "area" (lowercased) is skipped as the
// header, and each remaining line is split with the quote-aware scanner.
// Rows with fewer than 5 fields are silently skipped; accepted rows get a
// freshly generated id. Area/type strings are admitted verbatim without
// membership validation (lenient import); unknown values are logged so
// data-quality drift stays visible.
func DecodeCSV(content string) []models.Request {
	content = strings.TrimPrefix(content, utf8BOM)

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	start := 0
	first := strings.ToLower(lines[0])
	if strings.Contains(first, "nombre") || strings.Contains(first, "area") {
		start = 1
	}

	var requests []models.Request
	for _, line := range lines[start:] {
		row := parseLine(line)
		if len(row) < 5 {
			continue
		}
		r := models.Request{
			ID:        uuid.NewString(),
			Name:      row[0],
			Area:      models.Area(row[1]),
			Type:      models.RequestType(row[2]),
			StartDate: row[3],
			EndDate:   row[4],
		}
		if !r.Area.Known() {
			slog.Warn("csv import: unknown area admitted verbatim", slog.String("area", row[1]))
		}
		if !r.Type.Known() {
			slog.Warn("csv import: unknown request type admitted verbatim", slog.String("type", row[2]))
		}
		requests = append(requests, r)
	}
	return requests
}

// parseLine splits one CSV line respecting quotes: a '"' toggles quoted
// mode, a ',' separates fields only outside quotes, everything else
// accumulates. The final field is flushed at line end.
func parseLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuote = !inQuote
			cur.WriteRune(ch)
		case ch == ',' && !inQuote:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, cur.String())

	for i, f := range fields {
		f = strings.TrimPrefix(f, `"`)
		f = strings.TrimSuffix(f, `"`)
		f = strings.ReplaceAll(f, `""`, `"`)
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
