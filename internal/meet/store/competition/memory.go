package competition

import (
	"context"
	"fmt"
	"sync"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
)

// InMemory keeps competitions in creation order and enforces the unique
// (gender, stroke, distance) tuple like the table constraint does.
type InMemory struct {
	mu           sync.RWMutex
	competitions map[id.CompetitionID]models.Competition
	order        []id.CompetitionID
}

func NewInMemory() *InMemory {
	return &InMemory{
		competitions: make(map[id.CompetitionID]models.Competition),
	}
}

func (s *InMemory) Create(_ context.Context, c *models.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[c.ID]; ok {
		return fmt.Errorf("competition %s: %w", c.ID, sentinel.ErrConflict)
	}
	for _, existing := range s.competitions {
		if existing.SameFormat(c.Gender, c.Stroke, c.Distance) {
			return fmt.Errorf("competition %s %s %d: %w", c.Gender, c.Stroke, c.Distance, sentinel.ErrConflict)
		}
	}
	s.competitions[c.ID] = *c
	s.order = append(s.order, c.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, competitionID id.CompetitionID) (*models.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitions[competitionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemory) List(_ context.Context) ([]models.Competition, error) {
	return s.filter(func(models.Competition) bool { return true }), nil
}

func (s *InMemory) ListByGender(_ context.Context, gender models.Gender) ([]models.Competition, error) {
	return s.filter(func(c models.Competition) bool { return c.Gender == gender }), nil
}

func (s *InMemory) filter(keep func(models.Competition) bool) []models.Competition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Competition, 0, len(s.order))
	for _, cid := range s.order {
		if c := s.competitions[cid]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *InMemory) Delete(_ context.Context, competitionID id.CompetitionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[competitionID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.competitions, competitionID)
	for i, cid := range s.order {
		if cid == competitionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
