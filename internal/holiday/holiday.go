// Package holiday resolves fixed (year-independent) holidays by month-day key.
package holiday

import "time"

// fixedHolidays maps MM-DD keys to holiday names. Extend here when a new
// fixed date is adopted.
var fixedHolidays = map[string]string{
	"01-01": "Año Nuevo",
	"05-01": "Día del Trabajo",
	"07-20": "Día de la Independencia",
	"08-07": "Batalla de Boyacá",
	"12-08": "Inmaculada Concepción",
	"12-25": "Navidad",
	"12-31": "Fin de Año",
}

// Lookup returns the fixed holiday name for the given date's month-day, if any.
func Lookup(t time.Time) (string, bool) {
	name, ok := fixedHolidays[t.Format("01-02")]
	return name, ok
}
