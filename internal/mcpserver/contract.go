package mcpserver

// InterchangeContract documents the file formats the import/export surface
// accepts, for LLM consumers that generate backups or reports.
const InterchangeContract = `# GestorPlan Interchange Contract

GestorPlan round-trips the request collection through two formats.

## JSON backup (canonical, lossless)

A single JSON array of request objects:

` + "```" + `json
[
  {
    "id": "abc123",
    "name": "Juan Pérez",
    "area": "GRAFICOS",
    "type": "VACACIONES",
    "startDate": "2024-12-20",
    "endDate": "2024-12-31"
  }
]
` + "```" + `

Rules:
1. The top-level value MUST be an array; anything else is rejected.
2. Dates are date-only ISO strings (YYYY-MM-DD). endDate >= startDate;
   equal dates denote a single-day request.
3. "area" is one of the twelve department tags (COPYS, DIRECTORES,
   AUDIOVISUAL, GRAFICOS, DIGITAL WEB, CUENTAS, COMERCIAL, GERENCIA,
   TALENTO HUMANO, ADMINISTRATIVA, PR, SERVICIOS GENERALES).
4. "type" is one of REPOSICIÓN, DIA DE LA FAMILIA, COMPENSATORIO,
   DIA NO REMUNERADO, VACACIONES.

## CSV report (spreadsheet-friendly)

UTF-8 with byte-order mark. Header row:

    Nombre,Área,Tipo de Petición,Fecha Inicio,Fecha Fin

One row per request. Name, area, and type are double-quote-wrapped with
internal quotes escaped by doubling ("" for "); dates are bare. On import
the header is detected by the substrings "nombre"/"area", rows with fewer
than five fields are skipped, and accepted rows get freshly generated ids.

## Import semantics

Importing REPLACES the entire collection; it never merges. A file yielding
zero valid rows leaves the existing collection untouched.
`
