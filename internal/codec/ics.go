package codec

import (
	"fmt"

	ical "github.com/arran4/golang-ical"

	"github.com/starford/gestorplan/internal/dateutil"
	"github.com/starford/gestorplan/internal/models"
)

// EncodeICS renders the collection as an iCalendar feed of all-day events,
// one VEVENT per request. DTEND is exclusive per RFC 5545, so the stored
// inclusive end date is advanced by one day. Requests with malformed dates
// are skipped rather than producing a broken feed.
func EncodeICS(requests []models.Request) []byte {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//GestorPlan//ES")

	for _, r := range requests {
		start, err := dateutil.ParseDay(r.StartDate)
		if err != nil {
			continue
		}
		end, err := dateutil.ParseDay(r.EndDate)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("%s@gestorplan", r.ID))
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetSummary(fmt.Sprintf("%s: %s", r.Type, r.Name))
		ev.SetDescription(fmt.Sprintf("Área: %s", r.Area))
	}
	return []byte(cal.Serialize())
}
