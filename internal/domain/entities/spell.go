package entities

import (
	"fmt"
	"strings"
)

// higherLevels opens the paragraph describing upcasting.
const higherLevels = "At Higher Levels:"

// Spell is a spell entry.
type Spell struct {
	record
}

// NewSpell builds a spell from its field values.
// Ritual and concentration default to false when not given.
func NewSpell(origin Origin, fields map[Field]Value) (*Spell, error) {
	if v, ok := fields[FieldName]; !ok || v.Text() == "" {
		return nil, ErrMissingName
	}
	r, err := newRecord(KindSpell, origin, fields)
	if err != nil {
		return nil, err
	}
	for _, f := range []Field{FieldRitual, FieldConcentration} {
		if _, ok := r.fields[f]; !ok {
			r.fields[f] = Bool(false)
		}
	}
	return &Spell{record: r}, nil
}

// Level returns the spell level, 0 for cantrips.
func (s *Spell) Level() int {
	n, _ := s.number(FieldLevel)
	return int(n)
}

// School returns the school of magic.
func (s *Spell) School() string { return s.text(FieldSchool) }

// IsRitual reports whether the spell can be cast as a ritual.
func (s *Spell) IsRitual() bool { return s.fields[FieldRitual].Bool() }

// Concentration reports whether the spell requires concentration.
func (s *Spell) Concentration() bool { return s.fields[FieldConcentration].Bool() }

// Classes returns the classes with access to the spell in canonical order.
func (s *Spell) Classes() []string { return s.fields[FieldClasses].List() }

// Sources returns the source books the spell is printed in.
func (s *Spell) Sources() []string { return s.fields[FieldSource].List() }

// Paragraphs returns the description split into paragraphs.
// Empty paragraphs are kept, and an "At Higher Levels" passage always
// starts a paragraph of its own.
func (s *Spell) Paragraphs() []string {
	v, ok := s.fields[FieldText]
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v.Text(), "\n") {
		if i := strings.Index(p, higherLevels); i > 0 {
			out = append(out, strings.TrimRight(p[:i], " "), p[i:])
			continue
		}
		out = append(out, p)
	}
	return out
}

// AbbrevTime returns the casting time short form.
func (s *Spell) AbbrevTime() string { return s.abbrev(FieldTime, ScaleTime) }

// AbbrevRange returns the range short form.
func (s *Spell) AbbrevRange() string { return s.abbrev(FieldRange, ScaleRange) }

// AbbrevDuration returns the duration short form, prefixed with C for
// concentration spells.
func (s *Spell) AbbrevDuration() string {
	d := s.abbrev(FieldDuration, ScaleDuration)
	if s.Concentration() {
		return "C" + d
	}
	return d
}

// AbbrevClasses returns the class abbreviations joined with '+'.
func (s *Spell) AbbrevClasses() string {
	classes := s.Classes()
	abbrs := make([]string, len(classes))
	for i, c := range classes {
		abbrs[i] = AbbreviateClass(c)
	}
	return strings.Join(abbrs, "+")
}

func (s *Spell) abbrev(f Field, scale Scale) string {
	v, ok := s.fields[f]
	if !ok {
		return Missing
	}
	return scale.Abbreviate(v.Text())
}

// Summary renders the spell as e.g. "Magic Missile A/120'/I (1:FEK+S+Wz)".
func (s *Spell) Summary() string {
	rit := ""
	if s.IsRitual() {
		rit = " (rit.)"
	}
	return fmt.Sprintf("%s%s %s/%s/%s (%s:%s)",
		s.Name(), rit,
		s.AbbrevTime(), s.AbbrevRange(), s.AbbrevDuration(),
		s.display(FieldLevel, Missing), s.AbbrevClasses())
}

// Body returns the description paragraphs.
func (s *Spell) Body() []string { return s.Paragraphs() }

func (s *Spell) String() string {
	return "Spell(" + s.Summary() + ")"
}
