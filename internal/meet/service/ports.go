package service

import (
	"context"

	"clubswim/internal/meet/events"
	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// Stores return sentinel.ErrNotFound for missing rows and sentinel.ErrConflict
// for uniqueness violations. Each call is atomic on its own; TxRunner groups
// calls.

type ParticipantStore interface {
	Create(ctx context.Context, p *models.Participant) error
	FindByID(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error)
	List(ctx context.Context) ([]models.Participant, error)
	ListByGroup(ctx context.Context, groupID id.GroupID) ([]models.Participant, error)
	Delete(ctx context.Context, participantID id.ParticipantID) error
}

type CompetitionStore interface {
	Create(ctx context.Context, c *models.Competition) error
	FindByID(ctx context.Context, competitionID id.CompetitionID) (*models.Competition, error)
	List(ctx context.Context) ([]models.Competition, error)
	ListByGender(ctx context.Context, gender models.Gender) ([]models.Competition, error)
	Delete(ctx context.Context, competitionID id.CompetitionID) error
}

// RegistrationStore owns registrations and their optional results.
type RegistrationStore interface {
	Create(ctx context.Context, participantID id.ParticipantID, competitionID id.CompetitionID) (id.RegistrationID, error)
	FindByID(ctx context.Context, registrationID id.RegistrationID) (*models.Registration, error)
	ListByParticipant(ctx context.Context, participantID id.ParticipantID) ([]models.Registration, error)
	ListByCompetition(ctx context.Context, competitionID id.CompetitionID) ([]models.Registration, error)
	Delete(ctx context.Context, registrationID id.RegistrationID) error
	CreateResult(ctx context.Context, registrationID id.RegistrationID, result models.RegistrationResult) error
	FindResult(ctx context.Context, registrationID id.RegistrationID) (*models.RegistrationResult, error)
	FindResults(ctx context.Context, registrationIDs []id.RegistrationID) (map[id.RegistrationID]models.RegistrationResult, error)
	DeleteResult(ctx context.Context, registrationID id.RegistrationID) error
}

type GroupStore interface {
	Create(ctx context.Context, g *models.Group) error
	FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
}

// ScoreboardCache holds built scoreboards per generation. Invalidate starts a
// new generation.
type ScoreboardCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, generation int64, key string, dst any) (bool, error)
	Set(ctx context.Context, generation int64, key string, value any) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// TxRunner runs fn so that the store calls it makes commit or fail together.
// Stores pick the transaction up from the context fn receives.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
