package reminder

import (
	"fmt"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// spanishDate renders t as "02 enero" for reminder bodies.
func spanishDate(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), spanishMonths[t.Month()-1])
}
