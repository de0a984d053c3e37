package entities

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// recordNamespace scopes record IDs so they never collide with other SHA-1 UUIDs.
var recordNamespace = uuid.MustParse("6f1c3b0e-55a2-4c55-9d3e-0b8f8e0f2d4a")

// Record is a read-only view over one compendium entry.
type Record interface {
	// ID identifies the underlying source element.
	ID() uuid.UUID
	Kind() Kind
	Name() string
	// Lookup returns the value of f, or false if the entry has none.
	Lookup(f Field) (Value, bool)
	// Summary returns the one-line form of the record.
	Summary() string
	// Body returns the lines rendered below the summary in point form.
	Body() []string
	String() string
}

// Origin locates the element a record was built from.
type Origin struct {
	Source string
	Index  int
}

// NewRecordID returns the deterministic ID of the record of kind k at origin.
func NewRecordID(k Kind, origin Origin) uuid.UUID {
	return uuid.NewSHA1(recordNamespace, fmt.Appendf(nil, "%s:%s:%d", k, origin.Source, origin.Index))
}

// Compendium holds every record parsed from a set of sources.
type Compendium struct {
	Spells   []*Spell
	Monsters []*Monster
}

// record is the field storage shared by Spell and Monster.
type record struct {
	id     uuid.UUID
	kind   Kind
	origin Origin
	fields map[Field]Value
}

func newRecord(k Kind, origin Origin, fields map[Field]Value) (record, error) {
	for _, f := range slices.Sorted(maps.Keys(fields)) {
		if !k.HasField(f) {
			return record{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, k, f)
		}
		if fields[f].IsZero() {
			return record{}, fmt.Errorf("empty value for %s field %q", k, f)
		}
	}
	return record{
		id:     NewRecordID(k, origin),
		kind:   k,
		origin: origin,
		fields: maps.Clone(fields),
	}, nil
}

func (r *record) ID() uuid.UUID { return r.id }

func (r *record) Kind() Kind { return r.kind }

// Origin returns where the record was read from.
func (r *record) Origin() Origin { return r.origin }

func (r *record) Name() string {
	return r.text(FieldName)
}

func (r *record) Lookup(f Field) (Value, bool) {
	v, ok := r.fields[f]
	return v, ok
}

// Fields returns the fields present on the record in enumeration order.
func (r *record) Fields() []Field {
	var present []Field
	for _, f := range r.kind.Fields() {
		if _, ok := r.fields[f]; ok {
			present = append(present, f)
		}
	}
	return present
}

func (r *record) text(f Field) string {
	if v, ok := r.fields[f]; ok {
		return v.Text()
	}
	return ""
}

func (r *record) number(f Field) (float64, bool) {
	v, ok := r.fields[f]
	if !ok || v.Kind() != NumberValue {
		return 0, false
	}
	return v.Number(), true
}

// display returns the display form of f, or placeholder if absent.
func (r *record) display(f Field, placeholder string) string {
	if v, ok := r.fields[f]; ok {
		return v.String()
	}
	return placeholder
}
