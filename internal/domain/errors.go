package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation indicates the project failed validation and was not estimated.
	ErrValidation = errors.New("project validation failed")

	// ErrUnknownTrade indicates a trade is absent from the tier catalog.
	ErrUnknownTrade = errors.New("unknown trade")

	// ErrUnknownTier indicates a tier is absent from the catalog for a trade.
	ErrUnknownTier = errors.New("unknown tier")

	// ErrInvalidTierName indicates an override names a tier the catalog does
	// not carry for that trade.
	ErrInvalidTierName = errors.New("invalid tier name")

	// ErrInternal indicates an inconsistency that validation should have
	// prevented. It is a defect, never a user error.
	ErrInternal = errors.New("internal estimation error")
)

// ValidationFailure carries the full report of a project that failed
// validation.
type ValidationFailure struct {
	Report ValidationReport
}

func (f *ValidationFailure) Error() string {
	if len(f.Report.Errors) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s (%d errors): %s", ErrValidation.Error(), len(f.Report.Errors), strings.Join(f.Report.Errors, "; "))
}

func (f *ValidationFailure) Unwrap() error { return ErrValidation }
