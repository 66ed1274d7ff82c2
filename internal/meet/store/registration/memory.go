package registration

import (
	"context"
	"fmt"
	"sync"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
)

type pairKey struct {
	participant id.ParticipantID
	competition id.CompetitionID
}

// InMemory stores registrations and their results. A pair is registered at
// most once and a registration holds at most one result.
type InMemory struct {
	mu            sync.RWMutex
	registrations map[id.RegistrationID]models.Registration
	byPair        map[pairKey]id.RegistrationID
	results       map[id.RegistrationID]models.RegistrationResult
	order         []id.RegistrationID
}

func NewInMemory() *InMemory {
	return &InMemory{
		registrations: make(map[id.RegistrationID]models.Registration),
		byPair:        make(map[pairKey]id.RegistrationID),
		results:       make(map[id.RegistrationID]models.RegistrationResult),
	}
}

// Create registers the pair and returns the new id, or the id of the
// existing registration for the same pair.
func (s *InMemory) Create(_ context.Context, participantID id.ParticipantID, competitionID id.CompetitionID) (id.RegistrationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{participant: participantID, competition: competitionID}
	if existing, ok := s.byPair[key]; ok {
		return existing, nil
	}
	r := models.Registration{
		ID:            id.NewRegistrationID(),
		ParticipantID: participantID,
		CompetitionID: competitionID,
	}
	s.registrations[r.ID] = r
	s.byPair[key] = r.ID
	s.order = append(s.order, r.ID)
	return r.ID, nil
}

func (s *InMemory) FindByID(_ context.Context, registrationID id.RegistrationID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.registrations[registrationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

func (s *InMemory) ListByParticipant(_ context.Context, participantID id.ParticipantID) ([]models.Registration, error) {
	return s.filter(func(r models.Registration) bool { return r.ParticipantID == participantID }), nil
}

func (s *InMemory) ListByCompetition(_ context.Context, competitionID id.CompetitionID) ([]models.Registration, error) {
	return s.filter(func(r models.Registration) bool { return r.CompetitionID == competitionID }), nil
}

func (s *InMemory) filter(keep func(models.Registration) bool) []models.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Registration, 0)
	for _, rid := range s.order {
		if r := s.registrations[rid]; keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Delete removes a registration. A registration that still holds a result
// conflicts; the result has to go first.
func (s *InMemory) Delete(_ context.Context, registrationID id.RegistrationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.registrations[registrationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if _, hasResult := s.results[registrationID]; hasResult {
		return fmt.Errorf("registration %s has a result: %w", registrationID, sentinel.ErrConflict)
	}
	delete(s.registrations, registrationID)
	delete(s.byPair, pairKey{participant: r.ParticipantID, competition: r.CompetitionID})
	for i, rid := range s.order {
		if rid == registrationID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// CreateResult attaches a result. ErrNotFound for an unknown registration,
// ErrConflict when one is already recorded.
func (s *InMemory) CreateResult(_ context.Context, registrationID id.RegistrationID, result models.RegistrationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[registrationID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := s.results[registrationID]; ok {
		return fmt.Errorf("result for %s: %w", registrationID, sentinel.ErrConflict)
	}
	s.results[registrationID] = result
	return nil
}

func (s *InMemory) FindResult(_ context.Context, registrationID id.RegistrationID) (*models.RegistrationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[registrationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &result, nil
}

// FindResults returns the recorded results among registrationIDs. Ids without
// a result are absent from the map.
func (s *InMemory) FindResults(_ context.Context, registrationIDs []id.RegistrationID) (map[id.RegistrationID]models.RegistrationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.RegistrationID]models.RegistrationResult, len(registrationIDs))
	for _, rid := range registrationIDs {
		if result, ok := s.results[rid]; ok {
			out[rid] = result
		}
	}
	return out, nil
}

func (s *InMemory) DeleteResult(_ context.Context, registrationID id.RegistrationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[registrationID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.results, registrationID)
	return nil
}
