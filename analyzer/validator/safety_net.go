package validator

import (
	"errors"

	"github.com/abiiranathan/go-format-lint/composite"
)

// PlaceholderArgs is the number of dummy arguments the safety net renders
// with. It matches the engine's index limit, so no valid index can run out of
// arguments and only syntax errors surface.
const PlaceholderArgs = composite.IndexLimit

// safetyNet renders template with the real engine. A format error the
// hand-written scanner did not catch becomes UnknownFailure; any other outcome
// lets validation continue.
func safetyNet(template string) *Failure {
	err := composite.Check(template, PlaceholderArgs)

	var formatErr *composite.FormatError
	if errors.As(err, &formatErr) {
		return newFailure(UnknownFailure)
	}
	return nil
}
