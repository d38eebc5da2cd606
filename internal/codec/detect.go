package codec

import (
	"fmt"
	"strings"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/models"
)

// Format is a detected interchange format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Detect classifies import content. This is a heuristic, not validation:
// content whose trimmed body starts with '[' or '{', or whose source file
// name ends in .json, is treated as JSON; everything else as CSV.
func Detect(filename, content string) Format {
	trimmed := strings.TrimSpace(strings.TrimPrefix(content, utf8BOM))
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") ||
		strings.HasSuffix(strings.ToLower(filename), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// Import detects the format of content and decodes it. Zero decoded rows is
// a failure: the caller must not touch the existing collection. On success
// the caller still confirms before the result replaces the collection.
func Import(filename, content string) ([]models.Request, error) {
	var (
		requests []models.Request
		err      error
	)
	switch Detect(filename, content) {
	case FormatJSON:
		requests, err = DecodeJSON([]byte(strings.TrimPrefix(content, utf8BOM)))
		if err != nil {
			return nil, err
		}
	case FormatCSV:
		requests = DecodeCSV(content)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: no valid rows found in %q", apperr.ErrImportFormat, filename)
	}
	return requests, nil
}
