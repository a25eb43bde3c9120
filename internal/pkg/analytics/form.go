package analytics

import (
	"context"
	"errors"
)

// ErrSubmitNotImplemented is returned by every DurationForm submission.
var ErrSubmitNotImplemented = errors.New("duration form submission: not implemented")

// DurationForm is the form wrapping the duration selector. Selection changes
// apply through the live selection callback; submitting the form is not a
// supported path.
type DurationForm struct {
	DurationValue string
}

// NewDurationForm builds the form for the current selection.
func NewDurationForm(selected *DurationOption) DurationForm {
	if selected == nil {
		return DurationForm{}
	}
	return DurationForm{DurationValue: selected.Key}
}

// Submit always fails with ErrSubmitNotImplemented.
func (f DurationForm) Submit(context.Context) error {
	return ErrSubmitNotImplemented
}
