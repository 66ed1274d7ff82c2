package group

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
)

type InMemory struct {
	mu     sync.RWMutex
	groups map[id.GroupID]models.Group
}

func NewInMemory() *InMemory {
	return &InMemory{groups: make(map[id.GroupID]models.Group)}
}

func (s *InMemory) Create(_ context.Context, g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[g.ID]; ok {
		return fmt.Errorf("group %s: %w", g.ID, sentinel.ErrConflict)
	}
	s.groups[g.ID] = *g
	return nil
}

func (s *InMemory) FindByID(_ context.Context, groupID id.GroupID) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &g, nil
}

// List returns every group ordered by name, then id.
func (s *InMemory) List(_ context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b models.Group) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return out, nil
}
