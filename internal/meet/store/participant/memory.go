package participant

import (
	"context"
	"fmt"
	"sync"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
)

// InMemory keeps participants in creation order and hands out short ids from
// a counter, the way the Postgres sequence does.
type InMemory struct {
	mu           sync.RWMutex
	participants map[id.ParticipantID]models.Participant
	order        []id.ParticipantID
	nextShortID  int
}

func NewInMemory() *InMemory {
	return &InMemory{
		participants: make(map[id.ParticipantID]models.Participant),
		nextShortID:  1,
	}
}

// Create stores p and assigns its ShortID.
func (s *InMemory) Create(_ context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[p.ID]; ok {
		return fmt.Errorf("participant %s: %w", p.ID, sentinel.ErrConflict)
	}
	p.ShortID = s.nextShortID
	s.nextShortID++
	s.participants[p.ID] = *p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[participantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemory) List(_ context.Context) ([]models.Participant, error) {
	return s.filter(func(models.Participant) bool { return true }), nil
}

func (s *InMemory) ListByGroup(_ context.Context, groupID id.GroupID) ([]models.Participant, error) {
	return s.filter(func(p models.Participant) bool { return p.GroupID == groupID }), nil
}

func (s *InMemory) filter(keep func(models.Participant) bool) []models.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Participant, 0, len(s.order))
	for _, pid := range s.order {
		if p := s.participants[pid]; keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Delete removes a participant; ErrNotFound when it is already gone.
func (s *InMemory) Delete(_ context.Context, participantID id.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[participantID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.participants, participantID)
	for i, pid := range s.order {
		if pid == participantID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
