package scoring

import (
	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
)

// StepKind is the action of one deletion step.
type StepKind string

const (
	StepDeleteResult       StepKind = "delete_result"
	StepDeleteRegistration StepKind = "delete_registration"
	StepDeleteOwner        StepKind = "delete_owner"
)

// DeletionStep is one idempotent delete. RegistrationID is unset for the
// owner step.
type DeletionStep struct {
	Kind           StepKind
	RegistrationID id.RegistrationID
}

// DeletionPlan lists deletes in execution order: every result, then every
// registration, then the owner. Replaying a plan is safe as long as each step
// treats an absent row as done.
type DeletionPlan struct {
	Steps []DeletionStep
}

// PlanDeletion guards the removal of a participant or competition. With
// dependents and no force it fails with ErrHasDependents; callers translate
// that into the owner-specific error.
func PlanDeletion(dependents []models.Registration, force bool) (DeletionPlan, error) {
	if len(dependents) > 0 && !force {
		return DeletionPlan{}, ErrHasDependents
	}

	steps := make([]DeletionStep, 0, 2*len(dependents)+1)
	for _, r := range dependents {
		steps = append(steps, DeletionStep{Kind: StepDeleteResult, RegistrationID: r.ID})
	}
	for _, r := range dependents {
		steps = append(steps, DeletionStep{Kind: StepDeleteRegistration, RegistrationID: r.ID})
	}
	steps = append(steps, DeletionStep{Kind: StepDeleteOwner})
	return DeletionPlan{Steps: steps}, nil
}
