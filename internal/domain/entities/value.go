package entities

import (
	"bytes"
	"cmp"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ValueKind is the type tag of a Value.
type ValueKind int

// Value kinds. The zero ValueKind marks an empty Value.
const (
	TextValue ValueKind = iota + 1
	NumberValue
	BoolValue
	ListValue
	MapValue
	OrdinalValue
)

func (k ValueKind) String() string {
	switch k {
	case TextValue:
		return "text"
	case NumberValue:
		return "number"
	case BoolValue:
		return "bool"
	case ListValue:
		return "list"
	case MapValue:
		return "map"
	case OrdinalValue:
		return "ordinal"
	default:
		return "empty"
	}
}

// Pair is one entry of a map value, e.g. a movement mode and its speed.
type Pair struct {
	Key string
	N   int
}

// Value is the typed content of a record field.
// Values are immutable; accessors return copies of slices.
type Value struct {
	kind  ValueKind
	text  string
	num   float64
	flag  bool
	list  []string
	pairs []Pair
	scale Scale
	rank  int
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: TextValue, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: NumberValue, num: f}
}

// Int returns a numeric value holding an integer.
func Int(n int) Value {
	return Value{kind: NumberValue, num: float64(n)}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: BoolValue, flag: b}
}

// List returns an ordered list of strings.
func List(items ...string) Value {
	return Value{kind: ListValue, list: slices.Clone(items)}
}

// Map returns an ordered map of keys to integers.
func Map(pairs ...Pair) Value {
	return Value{kind: MapValue, pairs: slices.Clone(pairs)}
}

// Ordinal returns a text value ranked on one of the fixed scales.
// Text that is not part of the scale gets rank -1.
func Ordinal(scale Scale, s string) Value {
	return Value{kind: OrdinalValue, text: s, scale: scale, rank: scale.Rank(s)}
}

// Kind returns the type tag of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsZero reports whether v is the empty Value.
func (v Value) IsZero() bool { return v.kind == 0 }

// Text returns the text of a text or ordinal value and the display form otherwise.
func (v Value) Text() string {
	if v.kind == TextValue || v.kind == OrdinalValue {
		return v.text
	}
	return v.String()
}

// Number returns the numeric content, or 0 for non-numeric values.
func (v Value) Number() float64 { return v.num }

// Int returns the numeric content truncated to an int.
func (v Value) Int() int { return int(v.num) }

// Bool returns the boolean content.
func (v Value) Bool() bool { return v.flag }

// List returns a copy of the list content.
func (v Value) List() []string { return slices.Clone(v.list) }

// Pairs returns a copy of the map content in stored order.
func (v Value) Pairs() []Pair { return slices.Clone(v.pairs) }

// Scale returns the ordinal scale, ScaleNone for other kinds.
func (v Value) Scale() Scale { return v.scale }

// Rank returns the position of an ordinal value on its scale.
func (v Value) Rank() int { return v.rank }

// Get returns the integer stored under key in a map value.
func (v Value) Get(key string) (int, bool) {
	for _, p := range v.pairs {
		if p.Key == key {
			return p.N, true
		}
	}
	return 0, false
}

// Keys returns the keys of a map value in stored order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.pairs))
	for _, p := range v.pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

// Strings returns the searchable text pieces of v: the text itself,
// list elements or map keys. Numbers and bools carry no text.
func (v Value) Strings() []string {
	switch v.kind {
	case TextValue, OrdinalValue:
		return []string{v.text}
	case ListValue:
		return slices.Clone(v.list)
	case MapValue:
		return v.Keys()
	default:
		return nil
	}
}

// String returns the display form of v.
func (v Value) String() string {
	switch v.kind {
	case TextValue, OrdinalValue:
		return v.text
	case NumberValue:
		return formatNumber(v.num)
	case BoolValue:
		return strconv.FormatBool(v.flag)
	case ListValue:
		return strings.Join(v.list, ", ")
	case MapValue:
		var b strings.Builder
		b.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(p.Key))
			b.WriteString(": ")
			b.WriteString(strconv.Itoa(p.N))
		}
		b.WriteByte('}')
		return b.String()
	default:
		return ""
	}
}

// Equal reports whether v and o have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case TextValue:
		return v.text == o.text
	case OrdinalValue:
		return v.scale == o.scale && v.text == o.text
	case NumberValue:
		return v.num == o.num
	case BoolValue:
		return v.flag == o.flag
	case ListValue:
		return slices.Equal(v.list, o.list)
	case MapValue:
		return slices.Equal(v.pairs, o.pairs)
	default:
		return true
	}
}

// Compare orders v against o. Values of different kinds order by kind.
// Ordinals on the same scale order by rank, unranked text last.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return cmp.Compare(v.kind, o.kind)
	}
	switch v.kind {
	case NumberValue:
		return cmp.Compare(v.num, o.num)
	case BoolValue:
		return cmp.Compare(boolRank(v.flag), boolRank(o.flag))
	case OrdinalValue:
		if v.scale == o.scale {
			if c := cmp.Compare(rankOrLast(v.rank), rankOrLast(o.rank)); c != 0 {
				return c
			}
		}
		return strings.Compare(v.text, o.text)
	case ListValue:
		return slices.Compare(v.list, o.list)
	case MapValue:
		return strings.Compare(v.String(), o.String())
	default:
		return strings.Compare(v.text, o.text)
	}
}

// MarshalJSON encodes v as its natural JSON form. Map values keep their order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case TextValue, OrdinalValue:
		return json.Marshal(v.text)
	case NumberValue:
		return []byte(formatNumber(v.num)), nil
	case BoolValue:
		return json.Marshal(v.flag)
	case ListValue:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case MapValue:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(p.N))
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// SetLiteral renders a list as a brace-enclosed set of quoted items.
func SetLiteral(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quote(item)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

func quote(s string) string {
	return "'" + s + "'"
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func rankOrLast(rank int) int {
	if rank < 0 {
		return math.MaxInt
	}
	return rank
}
