package query

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/ersonp/legendlore/internal/domain/entities"
)

var (
	// ErrUnknownField is returned for criteria naming a field the kind does not have.
	ErrUnknownField = entities.ErrUnknownField
	// ErrIndexOutOfRange is returned by At for an index outside the collection.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Criteria maps fields to literals or Predicates. A literal is matched
// with Equals. A record matches when every entry matches.
type Criteria map[entities.Field]any

type criterion struct {
	field entities.Field
	pred  Predicate
}

func (c Criteria) compile(kind entities.Kind) ([]criterion, error) {
	out := make([]criterion, 0, len(c))
	for _, f := range slices.Sorted(maps.Keys(c)) {
		if !kind.HasField(f) {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, kind, f)
		}
		pred, ok := c[f].(Predicate)
		if !ok {
			pred = Equals(c[f])
		}
		if err := pred.Err(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f, err)
		}
		out = append(out, criterion{field: f, pred: pred})
	}
	return out, nil
}

// Collection is an ordered, immutable sequence of records of one kind.
// Every operation returns a new Collection and leaves the receiver untouched.
type Collection[R entities.Record] struct {
	kind  entities.Kind
	items []R
}

// Spells is a collection of spells.
type Spells = Collection[*entities.Spell]

// Monsters is a collection of monsters.
type Monsters = Collection[*entities.Monster]

// New returns a collection of kind holding a copy of items.
// All items must be records of kind.
func New[R entities.Record](kind entities.Kind, items []R) *Collection[R] {
	return &Collection[R]{kind: kind, items: slices.Clone(items)}
}

// NewSpells returns a spell collection.
func NewSpells(items []*entities.Spell) *Spells {
	return New(entities.KindSpell, items)
}

// NewMonsters returns a monster collection.
func NewMonsters(items []*entities.Monster) *Monsters {
	return New(entities.KindMonster, items)
}

func (c *Collection[R]) derive(items []R) *Collection[R] {
	return &Collection[R]{kind: c.kind, items: items}
}

// Kind returns the record kind of the collection.
func (c *Collection[R]) Kind() entities.Kind { return c.kind }

// Len returns the number of records.
func (c *Collection[R]) Len() int { return len(c.items) }

// At returns the i-th record.
func (c *Collection[R]) At(i int) (R, error) {
	if i < 0 || i >= len(c.items) {
		var zero R
		return zero, fmt.Errorf("%w: %d for length %d", ErrIndexOutOfRange, i, len(c.items))
	}
	return c.items[i], nil
}

// All iterates over the records in order.
func (c *Collection[R]) All() iter.Seq2[int, R] {
	return slices.All(c.items)
}

// Items returns a copy of the records.
func (c *Collection[R]) Items() []R {
	return slices.Clone(c.items)
}

// Where returns the records matching every criterion, in order.
// Empty criteria return all records.
func (c *Collection[R]) Where(criteria Criteria) (*Collection[R], error) {
	compiled, err := criteria.compile(c.kind)
	if err != nil {
		return nil, err
	}
	return c.Filter(func(r R) bool {
		for _, cr := range compiled {
			v, ok := r.Lookup(cr.field)
			if !cr.pred.Match(v, ok) {
				return false
			}
		}
		return true
	}), nil
}

// Filter returns the records for which keep returns true.
func (c *Collection[R]) Filter(keep func(R) bool) *Collection[R] {
	var out []R
	for _, r := range c.items {
		if keep(r) {
			out = append(out, r)
		}
	}
	return c.derive(out)
}

// Search returns the records whose name contains text, ignoring case.
func (c *Collection[R]) Search(text string) *Collection[R] {
	pred := Contains(text)
	return c.Filter(func(r R) bool {
		return pred.Match(entities.Text(r.Name()), true)
	})
}

// SearchField returns the records whose field f contains text, ignoring case.
func (c *Collection[R]) SearchField(f entities.Field, text string) (*Collection[R], error) {
	return c.Where(Criteria{f: Contains(text)})
}

// TextMatch returns the records with any text-bearing field containing
// text, ignoring case.
func (c *Collection[R]) TextMatch(text string) *Collection[R] {
	pred := Contains(text)
	fields := c.kind.Fields()
	return c.Filter(func(r R) bool {
		for _, f := range fields {
			if v, ok := r.Lookup(f); ok && pred.Match(v, true) {
				return true
			}
		}
		return false
	})
}

// Sorted returns the records stably sorted by f. Records without f come
// first, or last when reverse is set.
func (c *Collection[R]) Sorted(f entities.Field, reverse bool) (*Collection[R], error) {
	if !c.kind.HasField(f) {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, c.kind, f)
	}
	out := slices.Clone(c.items)
	slices.SortStableFunc(out, func(a, b R) int {
		c := compareField(a, b, f)
		if reverse {
			return -c
		}
		return c
	})
	return c.derive(out), nil
}

func compareField[R entities.Record](a, b R, f entities.Field) int {
	va, okA := a.Lookup(f)
	vb, okB := b.Lookup(f)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	default:
		return va.Compare(vb)
	}
}

// Union returns the records of c followed by the records of other that
// are not already in c.
func (c *Collection[R]) Union(other *Collection[R]) *Collection[R] {
	seen := c.ids()
	out := slices.Clone(c.items)
	for _, r := range other.items {
		if _, ok := seen[r.ID()]; !ok {
			seen[r.ID()] = struct{}{}
			out = append(out, r)
		}
	}
	return c.derive(out)
}

// Difference returns the records of c that are not in other.
func (c *Collection[R]) Difference(other *Collection[R]) *Collection[R] {
	drop := other.ids()
	return c.Filter(func(r R) bool {
		_, ok := drop[r.ID()]
		return !ok
	})
}

// Limit returns at most the first n records. n <= 0 means no limit.
func (c *Collection[R]) Limit(n int) *Collection[R] {
	if n <= 0 || n >= len(c.items) {
		return c.derive(slices.Clone(c.items))
	}
	return c.derive(slices.Clone(c.items[:n]))
}

func (c *Collection[R]) ids() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, len(c.items))
	for _, r := range c.items {
		ids[r.ID()] = struct{}{}
	}
	return ids
}

// String lists the records' default representations.
func (c *Collection[R]) String() string {
	parts := make([]string, len(c.items))
	for i, r := range c.items {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
