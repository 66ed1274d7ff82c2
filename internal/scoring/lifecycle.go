package scoring

import "clubswim/internal/meet/models"

// ResultState is the result lifecycle of one registration.
type ResultState int

const (
	NoResult ResultState = iota
	Recorded
)

func (s ResultState) String() string {
	if s == Recorded {
		return "recorded"
	}
	return "no_result"
}

// StateOf derives the lifecycle state from a stored result.
func StateOf(result *models.RegistrationResult) ResultState {
	if result == nil {
		return NoResult
	}
	return Recorded
}

// Record moves NoResult to Recorded. A recorded result is never replaced in
// place; it has to be removed first.
func (s ResultState) Record() (ResultState, error) {
	if s == Recorded {
		return s, ErrResultAlreadyExists
	}
	return Recorded, nil
}

// Remove moves Recorded back to NoResult.
func (s ResultState) Remove() (ResultState, error) {
	if s == NoResult {
		return s, ErrRegistrationHasNoResult
	}
	return NoResult, nil
}
