package scoring

import (
	"errors"

	dErrors "clubswim/pkg/domain-errors"
)

// Rule violations returned by the engine and the services built on it. Compare
// with errors.Is; the transport maps them by code.
var (
	ErrNotEligible     = dErrors.New(dErrors.CodeValidation, "participant is not eligible for the competition")
	ErrInvalidDistance = dErrors.New(dErrors.CodeValidation, "distance must be a positive multiple of 25")

	ErrAlreadyRegistered       = dErrors.New(dErrors.CodeConflict, "participant is already registered for the competition")
	ErrSameCompetitionExists   = dErrors.New(dErrors.CodeConflict, "a competition with the same gender, stroke and distance exists")
	ErrResultAlreadyExists     = dErrors.New(dErrors.CodeConflict, "registration already has a result")
	ErrRegistrationHasNoResult = dErrors.New(dErrors.CodeConflict, "registration has no result")
	ErrHasDependents           = dErrors.New(dErrors.CodeConflict, "entity still has registrations")

	ErrParticipantHasRegistrations = dErrors.Wrap(ErrHasDependents, dErrors.CodeConflict, "participant still has registrations")
	ErrCompetitionHasRegistrations = dErrors.Wrap(ErrHasDependents, dErrors.CodeConflict, "competition still has registrations")

	ErrParticipantDoesNotExist  = dErrors.New(dErrors.CodeNotFound, "participant does not exist")
	ErrCompetitionDoesNotExist  = dErrors.New(dErrors.CodeNotFound, "competition does not exist")
	ErrRegistrationDoesNotExist = dErrors.New(dErrors.CodeNotFound, "registration does not exist")
	ErrGroupDoesNotExist        = dErrors.New(dErrors.CodeNotFound, "group does not exist")

	ErrPointsOverflow = dErrors.New(dErrors.CodeInvariantViolation, "fina point total exceeds the uint32 range")
)

// ErrInconsistent marks data that references something missing, or
// scoreboards that disagree with each other.
var ErrInconsistent = errors.New("inconsistent meet data")

// Inconsistent reports an internal consistency failure.
func Inconsistent(msg string) error {
	return dErrors.Wrap(ErrInconsistent, dErrors.CodeInvariantViolation, msg)
}
