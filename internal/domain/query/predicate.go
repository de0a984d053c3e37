// Package query provides predicates and immutable record collections.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
)

// ErrInvalidPredicate is returned by Where for a predicate that cannot be evaluated.
var ErrInvalidPredicate = errors.New("invalid predicate")

// Op is the tag of a Predicate.
type Op int

// Predicate operations.
const (
	OpEquals Op = iota + 1
	OpNotEquals
	OpIn
	OpContains
	OpStartsWith
	OpMatches
	OpLess
	OpLessOrEqual
	OpGreater
	OpGreaterOrEqual
	OpHasKey
	OpAbsent
	OpAny
	OpAll
	OpNot
)

var opNames = map[Op]string{
	OpEquals:         "eq",
	OpNotEquals:      "ne",
	OpIn:             "in",
	OpContains:       "contains",
	OpStartsWith:     "startswith",
	OpMatches:        "matches",
	OpLess:           "lt",
	OpLessOrEqual:    "lte",
	OpGreater:        "gt",
	OpGreaterOrEqual: "gte",
	OpHasKey:         "key",
	OpAbsent:         "absent",
	OpAny:            "or",
	OpAll:            "and",
	OpNot:            "not",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Predicate is a reusable test over an optional field value.
// The zero Predicate is invalid.
type Predicate struct {
	op       Op
	values   []entities.Value
	pattern  *regexp.Regexp
	operands []Predicate
	err      error
}

// Equals matches a value equal to the literal.
func Equals(literal any) Predicate {
	return leaf(OpEquals, literal)
}

// NotEquals matches a present value different from the literal.
func NotEquals(literal any) Predicate {
	return leaf(OpNotEquals, literal)
}

// In matches when the field holds one of values. Text fields match when
// they contain any value, list fields when an element equals any value,
// and map fields when a key equals any value.
func In(values ...any) Predicate {
	return leaf(OpIn, values...)
}

// Contains matches text, list elements or map keys containing substr,
// ignoring case.
func Contains(substr string) Predicate {
	return leaf(OpContains, substr)
}

// StartsWith matches text or list elements starting with prefix, ignoring case.
func StartsWith(prefix string) Predicate {
	return leaf(OpStartsWith, prefix)
}

// Matches matches text or list elements against a regular expression.
func Matches(pattern string) Predicate {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Predicate{op: OpMatches, err: fmt.Errorf("%w: %w", ErrInvalidPredicate, err)}
	}
	return Predicate{op: OpMatches, pattern: re}
}

// Less matches values ordered before the literal.
func Less(literal any) Predicate { return leaf(OpLess, literal) }

// LessOrEqual matches values ordered before or equal to the literal.
func LessOrEqual(literal any) Predicate { return leaf(OpLessOrEqual, literal) }

// Greater matches values ordered after the literal.
func Greater(literal any) Predicate { return leaf(OpGreater, literal) }

// GreaterOrEqual matches values ordered after or equal to the literal.
func GreaterOrEqual(literal any) Predicate { return leaf(OpGreaterOrEqual, literal) }

// HasKey matches map values with the key, or lists containing it.
func HasKey(key string) Predicate {
	return leaf(OpHasKey, key)
}

// Absent matches only when the field is missing.
func Absent() Predicate {
	return Predicate{op: OpAbsent}
}

// Any matches when at least one of preds matches.
func Any(preds ...Predicate) Predicate {
	return combine(OpAny, preds)
}

// All matches when every one of preds matches.
func All(preds ...Predicate) Predicate {
	return combine(OpAll, preds)
}

// Not inverts p. Not of a predicate on a missing field matches.
func Not(p Predicate) Predicate {
	return combine(OpNot, []Predicate{p})
}

func leaf(op Op, literals ...any) Predicate {
	p := Predicate{op: op, values: make([]entities.Value, 0, len(literals))}
	for _, lit := range literals {
		v, err := Literal(lit)
		if err != nil {
			return Predicate{op: op, err: err}
		}
		p.values = append(p.values, v)
	}
	return p
}

func combine(op Op, preds []Predicate) Predicate {
	for _, p := range preds {
		if err := p.Err(); err != nil {
			return Predicate{op: op, err: err}
		}
	}
	return Predicate{op: op, operands: preds}
}

// Op returns the tag of p.
func (p Predicate) Op() Op { return p.op }

// Err reports why p cannot be evaluated, or nil.
func (p Predicate) Err() error {
	if p.err != nil {
		return p.err
	}
	if p.op == 0 {
		return fmt.Errorf("%w: zero predicate", ErrInvalidPredicate)
	}
	return nil
}

// Match evaluates p against a field value; present is false when the
// record has no value for the field.
func (p Predicate) Match(v entities.Value, present bool) bool {
	switch p.op {
	case OpAny:
		for _, sub := range p.operands {
			if sub.Match(v, present) {
				return true
			}
		}
		return false
	case OpAll:
		for _, sub := range p.operands {
			if !sub.Match(v, present) {
				return false
			}
		}
		return true
	case OpNot:
		return len(p.operands) == 1 && !p.operands[0].Match(v, present)
	case OpAbsent:
		return !present
	}

	if !present || p.err != nil {
		return false
	}

	switch p.op {
	case OpEquals:
		return equal(v, p.values[0])
	case OpNotEquals:
		return !equal(v, p.values[0])
	case OpIn:
		return matchIn(v, p.values)
	case OpContains:
		needle := fold(p.values[0].Text())
		return anyString(v, func(s string) bool { return strings.Contains(fold(s), needle) })
	case OpStartsWith:
		prefix := fold(p.values[0].Text())
		return anyString(v, func(s string) bool { return strings.HasPrefix(fold(s), prefix) })
	case OpMatches:
		return anyString(v, p.pattern.MatchString)
	case OpLess:
		c, ok := compare(v, p.values[0])
		return ok && c < 0
	case OpLessOrEqual:
		c, ok := compare(v, p.values[0])
		return ok && c <= 0
	case OpGreater:
		c, ok := compare(v, p.values[0])
		return ok && c > 0
	case OpGreaterOrEqual:
		c, ok := compare(v, p.values[0])
		return ok && c >= 0
	case OpHasKey:
		key := p.values[0].Text()
		switch v.Kind() {
		case entities.MapValue:
			_, ok := v.Get(key)
			return ok
		case entities.ListValue:
			return slices.Contains(v.List(), key)
		}
		return false
	default:
		return false
	}
}

func (p Predicate) String() string {
	var args []string
	for _, v := range p.values {
		args = append(args, fmt.Sprintf("%q", v.String()))
	}
	if p.pattern != nil {
		args = append(args, fmt.Sprintf("%q", p.pattern.String()))
	}
	for _, sub := range p.operands {
		args = append(args, sub.String())
	}
	return p.op.String() + "(" + strings.Join(args, ", ") + ")"
}

func anyString(v entities.Value, fn func(string) bool) bool {
	for _, s := range v.Strings() {
		if fn(s) {
			return true
		}
	}
	return false
}

func matchIn(v entities.Value, values []entities.Value) bool {
	switch v.Kind() {
	case entities.TextValue, entities.OrdinalValue:
		text := normalize(v.Text())
		for _, want := range values {
			if strings.Contains(text, normalize(want.Text())) {
				return true
			}
		}
		return false
	case entities.ListValue, entities.MapValue:
		for _, s := range v.Strings() {
			for _, want := range values {
				if normalize(s) == normalize(want.Text()) {
					return true
				}
			}
		}
		return false
	default:
		for _, want := range values {
			if equal(v, want) {
				return true
			}
		}
		return false
	}
}
