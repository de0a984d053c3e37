package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/query"
)

// ErrInvalidCriterion is returned for a criterion expression that cannot be parsed.
var ErrInvalidCriterion = errors.New("invalid criterion")

// operators are tried in order, so two-character forms come first.
var operators = []struct {
	token string
	build func(value string) query.Predicate
}{
	{"!=", func(v string) query.Predicate { return query.NotEquals(v) }},
	{"<=", func(v string) query.Predicate { return query.LessOrEqual(v) }},
	{">=", func(v string) query.Predicate { return query.GreaterOrEqual(v) }},
	{"=~", func(v string) query.Predicate { return query.Matches(v) }},
	{"^=", func(v string) query.Predicate { return query.StartsWith(v) }},
	{"~=", func(v string) query.Predicate { return query.Contains(v) }},
	{"=", func(v string) query.Predicate { return query.Equals(v) }},
	{"<", func(v string) query.Predicate { return query.Less(v) }},
	{">", func(v string) query.Predicate { return query.Greater(v) }},
	{"~", func(v string) query.Predicate { return query.In(splitAlternatives(v)...) }},
	{"?", func(v string) query.Predicate { return query.HasKey(v) }},
}

// ParseCriterion parses one expression such as "level<=3",
// "classes~Bard|Wizard", "speed?fly" or "!ritual". "!field" matches a
// missing field, or a false one when the field is a flag.
func ParseCriterion(kind entities.Kind, expr string) (entities.Field, query.Predicate, error) {
	expr = strings.TrimSpace(expr)

	if name, ok := strings.CutPrefix(expr, "!"); ok && isFieldName(name) {
		f, err := parseField(kind, name)
		if err != nil {
			return "", query.Predicate{}, err
		}
		if f.IsFlag() {
			return f, query.Any(query.Absent(), query.Equals(false)), nil
		}
		return f, query.Absent(), nil
	}

	end := 0
	for end < len(expr) && isFieldByte(expr[end]) {
		end++
	}
	if end == 0 {
		return "", query.Predicate{}, fmt.Errorf("%w: %q has no field name", ErrInvalidCriterion, expr)
	}

	f, err := parseField(kind, expr[:end])
	if err != nil {
		return "", query.Predicate{}, err
	}

	rest := strings.TrimSpace(expr[end:])
	for _, op := range operators {
		value, ok := strings.CutPrefix(rest, op.token)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return "", query.Predicate{}, fmt.Errorf("%w: %q has no value", ErrInvalidCriterion, expr)
		}
		return f, op.build(value), nil
	}
	return "", query.Predicate{}, fmt.Errorf("%w: %q has no operator", ErrInvalidCriterion, expr)
}

// ParseCriteria parses every expression. Expressions on the same field
// must all hold.
func ParseCriteria(kind entities.Kind, exprs []string) (query.Criteria, error) {
	grouped := make(map[entities.Field][]query.Predicate)
	for _, expr := range exprs {
		f, p, err := ParseCriterion(kind, expr)
		if err != nil {
			return nil, err
		}
		grouped[f] = append(grouped[f], p)
	}

	criteria := make(query.Criteria, len(grouped))
	for f, preds := range grouped {
		if len(preds) == 1 {
			criteria[f] = preds[0]
			continue
		}
		criteria[f] = query.All(preds...)
	}
	return criteria, nil
}

func parseField(kind entities.Kind, name string) (entities.Field, error) {
	f := entities.Field(strings.ToLower(name))
	if !kind.HasField(f) {
		return "", fmt.Errorf("%w: %s has no field %q", entities.ErrUnknownField, kind, name)
	}
	return f, nil
}

func isFieldName(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if !isFieldByte(s[i]) {
			return false
		}
	}
	return true
}

func isFieldByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func splitAlternatives(s string) []any {
	var out []any
	for _, v := range strings.Split(s, "|") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
