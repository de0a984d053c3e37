package query

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/ersonp/legendlore/internal/domain/entities"
)

// Literal converts a Go value into a field value for comparison.
// Strings, bools, integer and float types, string slices and
// entities.Value are accepted.
func Literal(lit any) (entities.Value, error) {
	switch v := lit.(type) {
	case entities.Value:
		if v.IsZero() {
			return entities.Value{}, fmt.Errorf("%w: empty literal", ErrInvalidPredicate)
		}
		return v, nil
	case string:
		return entities.Text(v), nil
	case bool:
		return entities.Bool(v), nil
	case int:
		return entities.Int(v), nil
	case int8:
		return entities.Int(int(v)), nil
	case int16:
		return entities.Int(int(v)), nil
	case int32:
		return entities.Int(int(v)), nil
	case int64:
		return entities.Number(float64(v)), nil
	case uint:
		return entities.Number(float64(v)), nil
	case uint8:
		return entities.Int(int(v)), nil
	case uint16:
		return entities.Int(int(v)), nil
	case uint32:
		return entities.Number(float64(v)), nil
	case uint64:
		return entities.Number(float64(v)), nil
	case float32:
		return entities.Number(float64(v)), nil
	case float64:
		return entities.Number(v), nil
	case []string:
		return entities.List(v...), nil
	default:
		return entities.Value{}, fmt.Errorf("%w: unsupported literal type %T", ErrInvalidPredicate, lit)
	}
}

// ParseNumber parses decimal numbers and fractions such as "1/4".
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	default:
		return false, false
	}
}

// coerce converts lit to the kind of field where a lossless reading exists.
func coerce(field, lit entities.Value) entities.Value {
	if lit.Kind() != entities.TextValue {
		if field.Kind() == entities.TextValue && lit.Kind() == entities.NumberValue {
			return entities.Text(lit.String())
		}
		return lit
	}
	switch field.Kind() {
	case entities.NumberValue:
		if f, ok := ParseNumber(lit.Text()); ok {
			return entities.Number(f)
		}
	case entities.BoolValue:
		if b, ok := parseBool(lit.Text()); ok {
			return entities.Bool(b)
		}
	case entities.OrdinalValue:
		return entities.Ordinal(field.Scale(), lit.Text())
	}
	return lit
}

func equal(field, lit entities.Value) bool {
	lit = coerce(field, lit)
	if isText(field) && isText(lit) {
		return normalize(field.Text()) == normalize(lit.Text())
	}
	return field.Equal(lit)
}

func compare(field, lit entities.Value) (int, bool) {
	lit = coerce(field, lit)
	if field.Kind() == entities.TextValue && lit.Kind() == entities.TextValue {
		return strings.Compare(normalize(field.Text()), normalize(lit.Text())), true
	}
	if field.Kind() != lit.Kind() {
		return 0, false
	}
	if field.Kind() == entities.OrdinalValue && (field.Rank() < 0 || lit.Rank() < 0) {
		return 0, false
	}
	return field.Compare(lit), true
}

func isText(v entities.Value) bool {
	return v.Kind() == entities.TextValue || v.Kind() == entities.OrdinalValue
}

func normalize(s string) string {
	return norm.NFC.String(s)
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
