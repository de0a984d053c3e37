// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/legendlore/internal/domain/entities"
)

// CompendiumSource is a mock implementation of ports.CompendiumSource.
type CompendiumSource struct {
	Compendium *entities.Compendium
	Err        error

	// Call tracking
	LoadCallCount int
}

// Load returns the configured compendium or error.
func (m *CompendiumSource) Load(ctx context.Context) (*entities.Compendium, error) {
	m.LoadCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Compendium == nil {
		return &entities.Compendium{}, nil
	}
	return m.Compendium, nil
}
