package services

import "gathero_backend/pkg/apperrors"

// ValidateCapacity checks a proposed attendee cap against the
// system-wide ceiling. A nil request passes; creation defaults absent
// caps to the ceiling via DefaultCapacity.
func ValidateCapacity(requested *int, ceiling int) error {
	if requested == nil {
		return nil
	}
	if *requested > ceiling {
		return apperrors.CapacityExceeded(ceiling)
	}
	return nil
}

// DefaultCapacity resolves the effective cap for a new event: the
// requested value when present, the ceiling otherwise.
func DefaultCapacity(requested *int, ceiling int) int {
	if requested != nil {
		return *requested
	}
	return ceiling
}
