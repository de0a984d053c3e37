package compendium

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/infrastructure/parsers"
)

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		input    string
		expected []entities.Pair
		ok       bool
	}{
		{input: "30 ft.", expected: []entities.Pair{{Key: "walk", N: 30}}, ok: true},
		{input: "40 ft., fly 80 ft.", expected: []entities.Pair{{Key: "walk", N: 40}, {Key: "fly", N: 80}}, ok: true},
		{input: "0 ft., fly 30 ft. (hover)", expected: []entities.Pair{{Key: "walk", N: 0}, {Key: "fly", N: 30}}, ok: true},
		{input: "20 ft., 40 ft. swim", expected: []entities.Pair{{Key: "walk", N: 20}, {Key: "swim", N: 40}}, ok: true},
		{input: "25", expected: []entities.Pair{{Key: "walk", N: 25}}, ok: true},
		{input: "30 ft., climb 20 ft., walk 40 ft.", expected: []entities.Pair{{Key: "walk", N: 40}, {Key: "climb", N: 20}}, ok: true},
		{
			input:    "30 ft. (40 ft. in wolf form)",
			expected: []entities.Pair{{Key: "walk", N: 30}, {Key: "walk (in wolf form)", N: 40}},
			ok:       true,
		},
		{input: "50 ft,", expected: []entities.Pair{{Key: "walk", N: 50}}, ok: true},
		{input: "very fast", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseSpeed(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSpeed_IrregularNotShared(t *testing.T) {
	got, ok := parseSpeed("50 ft,")
	require.True(t, ok)
	got[0].N = 1

	again, _ := parseSpeed("50 ft,")
	assert.Equal(t, 50, again[0].N)
}

func TestParseSaves(t *testing.T) {
	got, ok := parseSaves("Dex +5, Con +11, Wis -1")
	require.True(t, ok)
	assert.Equal(t, []entities.Pair{{Key: "dex", N: 5}, {Key: "con", N: 11}, {Key: "wis", N: -1}}, got)

	_, ok = parseSaves("Dex plus five")
	assert.False(t, ok)
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		input    string
		expected []entities.Pair
		ok       bool
	}{
		{input: "Perception +5", expected: []entities.Pair{{Key: "Perception", N: 5}}, ok: true},
		{
			input:    "sleight of hand +4, stealth +6",
			expected: []entities.Pair{{Key: "Sleight of Hand", N: 4}, {Key: "Stealth", N: 6}},
			ok:       true,
		},
		{input: "Basket Weaving +2", ok: false},
		{input: "Perception", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseSkills(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSenses(t *testing.T) {
	got, ok := parseSenses("darkvision 60 ft., Blindsight 10 ft. (blind beyond this radius)")
	require.True(t, ok)
	assert.Equal(t, []entities.Pair{{Key: "darkvision", N: 60}, {Key: "blindsight", N: 10}}, got)

	_, ok = parseSenses("sees everything")
	assert.False(t, ok)
}

func TestParseValueNote(t *testing.T) {
	tests := []struct {
		input string
		n     int
		note  string
		ok    bool
	}{
		{input: "15 (natural armor)", n: 15, note: "natural armor", ok: true},
		{input: "135 (18d10+36)", n: 135, note: "18d10+36", ok: true},
		{input: "12", n: 12, ok: true},
		{input: "12 plus shield", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, note, ok := parseValueNote(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.n, n)
			assert.Equal(t, tt.note, note)
		})
	}
}

func TestParseDamage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		types   []string
		unknown []string
	}{
		{name: "simple", input: "fire, poison", types: []string{"fire", "poison"}},
		{
			name:  "nonmagical",
			input: "Fire, Poison; Bludgeoning, Piercing, and Slashing from Nonmagical Attacks",
			types: []string{"fire", "nonmagical bludgeoning", "nonmagical piercing", "nonmagical slashing", "poison"},
		},
		{name: "duplicates", input: "cold; cold", types: []string{"cold"}},
		{name: "unknown", input: "acid; damage from cantrips", types: []string{"acid"}, unknown: []string{"damage from cantrips"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types, unknown := parseDamage(tt.input)
			assert.Equal(t, tt.types, types)
			assert.Equal(t, tt.unknown, unknown)
		})
	}
}

func TestParseConditions(t *testing.T) {
	assert.Equal(t, []string{"charmed", "frightened", "poisoned"}, parseConditions("Poisoned, Charmed; frightened, charmed"))
}

func TestMonsterFields_WarnsOnUnparsedText(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	f := fieldReader{
		entry: parsers.RawEntry{Kind: "monster", Fields: map[string][]string{
			"name":  {"Odd Thing"},
			"speed": {"very fast"},
			"cr":    {"lots"},
			"str":   {"10"},
		}},
		log: log,
	}
	fields := monsterFields(f)

	assert.NotContains(t, fields, entities.FieldSpeed)
	assert.NotContains(t, fields, entities.FieldCR)
	assert.Equal(t, entities.Int(10), fields[entities.FieldStr])
	assert.Contains(t, buf.String(), "field=speed")
	assert.Contains(t, buf.String(), "field=cr")
	assert.Contains(t, buf.String(), `name="Odd Thing"`)
}

func TestMonsterFields_ArmorClass(t *testing.T) {
	f := fieldReader{
		entry: parsers.RawEntry{Kind: "monster", Fields: map[string][]string{
			"name": {"Goblin"},
			"ac":   {"15 (leather armor, shield)"},
			"hp":   {"7 (2d6)"},
		}},
		log: slog.New(slog.DiscardHandler),
	}
	fields := monsterFields(f)

	assert.Equal(t, entities.Text("15 (leather armor, shield)"), fields[entities.FieldAC])
	assert.Equal(t, entities.Int(15), fields[entities.FieldACNum])
	assert.Equal(t, entities.Text("leather armor, shield"), fields[entities.FieldArmor])
	assert.Equal(t, entities.Int(7), fields[entities.FieldHP])
	assert.Equal(t, entities.Text("2d6"), fields[entities.FieldHitDice])
}
