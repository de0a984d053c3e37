package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/query"
	"github.com/ersonp/legendlore/internal/domain/services"
)

// QueryHandler handles compendium queries.
type QueryHandler struct {
	compendium *services.CompendiumService
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(compendium *services.CompendiumService) *QueryHandler {
	return &QueryHandler{
		compendium: compendium,
	}
}

// QueryOptions narrows and orders a collection.
// Steps run in field order: Where, Search, SearchField, Text, Sort, Limit.
type QueryOptions struct {
	Where       []string // criterion expressions, see ParseCriterion
	Search      string   // substring of the name
	SearchField string   // "field=text", substring of any text in field
	Text        string   // substring of any text in any field
	Sort        string   // field to sort by
	Reverse     bool
	Limit       int // 0 means no limit
}

// Spells returns the spells matching opts.
func (h *QueryHandler) Spells(ctx context.Context, opts QueryOptions) (*query.Spells, error) {
	spells, err := h.compendium.Spells(ctx)
	if err != nil {
		return nil, err
	}
	return apply(spells, opts)
}

// Monsters returns the monsters matching opts.
func (h *QueryHandler) Monsters(ctx context.Context, opts QueryOptions) (*query.Monsters, error) {
	monsters, err := h.compendium.Monsters(ctx)
	if err != nil {
		return nil, err
	}
	return apply(monsters, opts)
}

func apply[R entities.Record](c *query.Collection[R], opts QueryOptions) (*query.Collection[R], error) {
	if len(opts.Where) > 0 {
		criteria, err := ParseCriteria(c.Kind(), opts.Where)
		if err != nil {
			return nil, err
		}
		filtered, err := c.Where(criteria)
		if err != nil {
			return nil, fmt.Errorf("filtering %ss: %w", c.Kind(), err)
		}
		c = filtered
	}

	if opts.Search != "" {
		c = c.Search(opts.Search)
	}

	if opts.SearchField != "" {
		name, text, ok := strings.Cut(opts.SearchField, "=")
		if !ok {
			return nil, fmt.Errorf("%w: search field %q is not field=text", ErrInvalidCriterion, opts.SearchField)
		}
		f, err := parseField(c.Kind(), strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if c, err = c.SearchField(f, text); err != nil {
			return nil, err
		}
	}

	if opts.Text != "" {
		c = c.TextMatch(opts.Text)
	}

	if opts.Sort != "" {
		sorted, err := c.Sorted(entities.Field(strings.ToLower(opts.Sort)), opts.Reverse)
		if err != nil {
			return nil, fmt.Errorf("sorting %ss: %w", c.Kind(), err)
		}
		c = sorted
	}

	return c.Limit(opts.Limit), nil
}
