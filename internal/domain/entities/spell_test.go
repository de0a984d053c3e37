package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpell(t *testing.T, fields map[Field]Value) *Spell {
	t.Helper()
	s, err := NewSpell(Origin{Source: "test.xml", Index: 0}, fields)
	require.NoError(t, err)
	return s
}

func magicMissile(t *testing.T) *Spell {
	return newTestSpell(t, map[Field]Value{
		FieldName:     Text("Magic Missile"),
		FieldLevel:    Int(1),
		FieldSchool:   Text("Evocation"),
		FieldTime:     Ordinal(ScaleTime, "1 action"),
		FieldRange:    Ordinal(ScaleRange, "120 feet"),
		FieldDuration: Ordinal(ScaleDuration, "Instantaneous"),
		FieldClasses:  List("Fighter (Eldritch Knight)", "Sorcerer", "Wizard"),
		FieldText:     Text("You create three glowing darts.\n\nAt Higher Levels: One more dart."),
	})
}

func TestSpell_Summary(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[Field]Value
		expected string
	}{
		{
			name: "concentration",
			fields: map[Field]Value{
				FieldName:          Text("Banishing Smite"),
				FieldLevel:         Int(5),
				FieldTime:          Ordinal(ScaleTime, "1 bonus action"),
				FieldRange:         Ordinal(ScaleRange, "Self"),
				FieldDuration:      Ordinal(ScaleDuration, "up to 1 minute"),
				FieldConcentration: Bool(true),
				FieldClasses:       List("Paladin", "Warlock (Hexblade)"),
			},
			expected: "Banishing Smite B/S/C<=1m (5:P+WlH)",
		},
		{
			name: "ritual",
			fields: map[Field]Value{
				FieldName:     Text("Identify"),
				FieldLevel:    Int(1),
				FieldRitual:   Bool(true),
				FieldTime:     Ordinal(ScaleTime, "1 minute"),
				FieldRange:    Ordinal(ScaleRange, "Touch"),
				FieldDuration: Ordinal(ScaleDuration, "Instantaneous"),
				FieldClasses:  List("Artificer", "Bard", "Wizard"),
			},
			expected: "Identify (rit.) 1m/T/I (1:A+B+Wz)",
		},
		{
			name: "missing fields",
			fields: map[Field]Value{
				FieldName: Text("Mystery"),
			},
			expected: "Mystery N/N/N (N:)",
		},
		{
			name: "unknown values verbatim",
			fields: map[Field]Value{
				FieldName:     Text("Oddity"),
				FieldLevel:    Int(2),
				FieldTime:     Ordinal(ScaleTime, "1 week"),
				FieldRange:    Ordinal(ScaleRange, "Self (15-foot-radius)"),
				FieldDuration: Ordinal(ScaleDuration, "Up to 1 hour"),
				FieldClasses:  List("Blood Hunter"),
			},
			expected: "Oddity 1 week/S(15'r)/<=1h (2:Blood Hunter)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSpell(t, tt.fields)
			assert.Equal(t, tt.expected, s.Summary())
			assert.Equal(t, "Spell("+tt.expected+")", s.String())
		})
	}
}

func TestSpell_Paragraphs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "blank paragraph kept",
			text:     "First.\n\nAt Higher Levels: More.",
			expected: []string{"First.", "", "At Higher Levels: More."},
		},
		{
			name:     "inline higher levels split",
			text:     "Deals damage. At Higher Levels: Deals more.",
			expected: []string{"Deals damage.", "At Higher Levels: Deals more."},
		},
		{
			name:     "single paragraph",
			text:     "Only one.",
			expected: []string{"Only one."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSpell(t, map[Field]Value{FieldName: Text("x"), FieldText: Text(tt.text)})
			assert.Equal(t, tt.expected, s.Paragraphs())
		})
	}
}

func TestSpell_NoText(t *testing.T) {
	s := newTestSpell(t, map[Field]Value{FieldName: Text("x")})
	assert.Nil(t, s.Body())
}

func TestSpell_Defaults(t *testing.T) {
	s := magicMissile(t)

	ritual, ok := s.Lookup(FieldRitual)
	require.True(t, ok)
	assert.False(t, ritual.Bool())

	_, ok = s.Lookup(FieldRoll)
	assert.False(t, ok)

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, "Evocation", s.School())
	assert.Equal(t, "FEK+S+Wz", s.AbbrevClasses())
	assert.Equal(t, KindSpell, s.Kind())
}

func TestNewSpell_Errors(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		_, err := NewSpell(Origin{}, map[Field]Value{FieldLevel: Int(1)})
		require.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("monster field", func(t *testing.T) {
		_, err := NewSpell(Origin{}, map[Field]Value{FieldName: Text("x"), FieldHP: Int(3)})
		require.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestRecordID_Deterministic(t *testing.T) {
	a := NewRecordID(KindSpell, Origin{Source: "a.xml", Index: 3})
	b := NewRecordID(KindSpell, Origin{Source: "a.xml", Index: 3})
	c := NewRecordID(KindSpell, Origin{Source: "a.xml", Index: 4})
	d := NewRecordID(KindMonster, Origin{Source: "a.xml", Index: 3})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}
