package service

import (
	"context"
	"errors"
	"fmt"

	"clubswim/internal/meet/metrics"
	"clubswim/internal/scoring"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/sentinel"
)

// CascadeExecutor runs a deletion plan step by step. A step whose row is
// already gone counts as done, so a half-executed plan can simply be run again.
type CascadeExecutor struct {
	registrations RegistrationStore
	metrics       *metrics.Metrics
}

func NewCascadeExecutor(registrations RegistrationStore, m *metrics.Metrics) *CascadeExecutor {
	return &CascadeExecutor{registrations: registrations, metrics: m}
}

// Execute applies plan. deleteOwner removes the participant or competition the
// plan was made for.
func (e *CascadeExecutor) Execute(ctx context.Context, plan scoring.DeletionPlan, deleteOwner func(ctx context.Context) error) error {
	for _, step := range plan.Steps {
		var err error
		switch step.Kind {
		case scoring.StepDeleteResult:
			err = e.registrations.DeleteResult(ctx, step.RegistrationID)
		case scoring.StepDeleteRegistration:
			err = e.registrations.Delete(ctx, step.RegistrationID)
		case scoring.StepDeleteOwner:
			err = deleteOwner(ctx)
		default:
			return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unknown deletion step %q", step.Kind))
		}
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("cascade step %s failed", step.Kind))
		}
		e.metrics.IncrementCascadeStep(string(step.Kind))
	}
	return nil
}
