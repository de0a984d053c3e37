// Package ports defines interfaces for external data sources.
package ports

import (
	"context"

	"github.com/ersonp/legendlore/internal/domain/entities"
)

// CompendiumSource reads every record of a compendium dataset.
// Implementations return records in document order.
type CompendiumSource interface {
	Load(ctx context.Context) (*entities.Compendium, error)
}
