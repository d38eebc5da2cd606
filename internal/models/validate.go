package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/dateutil"
)

// Validate applies the submission-time rules: name present, area and type
// members of their enumerations, both dates parseable, end not before start.
// Imported rows bypass this deliberately (best-effort import); only the
// create/update path calls it.
func (r Request) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Area, validation.Required, validation.By(knownArea)),
		validation.Field(&r.Type, validation.Required, validation.By(knownType)),
		validation.Field(&r.StartDate, validation.Required, validation.Date(dateutil.Layout)),
		validation.Field(&r.EndDate, validation.Required, validation.Date(dateutil.Layout)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return dateutil.ValidateRange(r.StartDate, r.EndDate)
}

func knownArea(value interface{}) error {
	a, _ := value.(Area)
	if !a.Known() {
		return fmt.Errorf("unknown area %q", string(a))
	}
	return nil
}

func knownType(value interface{}) error {
	t, _ := value.(RequestType)
	if !t.Known() {
		return fmt.Errorf("unknown request type %q", string(t))
	}
	return nil
}
