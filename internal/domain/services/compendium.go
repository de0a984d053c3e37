// Package services contains the domain services over the compendium.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/ports"
	"github.com/ersonp/legendlore/internal/domain/query"
)

// CompendiumService loads a compendium once and serves its records as
// collections. It is safe for concurrent use.
type CompendiumService struct {
	source ports.CompendiumSource
	errata bool

	mu     sync.Mutex
	loaded *entities.Compendium
}

// NewCompendiumService creates a new CompendiumService. When errata is
// set, known dataset errors are corrected after loading.
func NewCompendiumService(source ports.CompendiumSource, errata bool) *CompendiumService {
	return &CompendiumService{
		source: source,
		errata: errata,
	}
}

// Compendium returns the loaded compendium, loading it on first use.
// A failed load is not cached.
func (s *CompendiumService) Compendium(ctx context.Context) (*entities.Compendium, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded != nil {
		return s.loaded, nil
	}

	c, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading compendium: %w", err)
	}

	loaded := &entities.Compendium{Spells: c.Spells, Monsters: c.Monsters}
	if s.errata {
		loaded.Spells = ApplySpellErrata(loaded.Spells)
	}
	s.loaded = loaded
	return loaded, nil
}

// Spells returns every spell in document order.
func (s *CompendiumService) Spells(ctx context.Context) (*query.Spells, error) {
	c, err := s.Compendium(ctx)
	if err != nil {
		return nil, err
	}
	return query.NewSpells(c.Spells), nil
}

// Monsters returns every monster in document order.
func (s *CompendiumService) Monsters(ctx context.Context) (*query.Monsters, error) {
	c, err := s.Compendium(ctx)
	if err != nil {
		return nil, err
	}
	return query.NewMonsters(c.Monsters), nil
}
