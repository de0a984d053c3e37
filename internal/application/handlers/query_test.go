package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/mocks"
	"github.com/ersonp/legendlore/internal/domain/query"
	"github.com/ersonp/legendlore/internal/domain/services"
)

func newSpell(t *testing.T, index int, name string, level int, ritual bool, classes ...string) *entities.Spell {
	t.Helper()
	fields := map[entities.Field]entities.Value{
		entities.FieldName:     entities.Text(name),
		entities.FieldLevel:    entities.Int(level),
		entities.FieldTime:     entities.Ordinal(entities.ScaleTime, "1 action"),
		entities.FieldDuration: entities.Ordinal(entities.ScaleDuration, "Instantaneous"),
		entities.FieldText:     entities.Text(name + " crackles with arcane power."),
	}
	if ritual {
		fields[entities.FieldRitual] = entities.Bool(true)
	}
	if len(classes) > 0 {
		fields[entities.FieldClasses] = entities.List(classes...)
	}
	s, err := entities.NewSpell(entities.Origin{Source: "test.xml", Index: index}, fields)
	require.NoError(t, err)
	return s
}

func newMonster(t *testing.T, index int, name string, cr float64, speed ...entities.Pair) *entities.Monster {
	t.Helper()
	fields := map[entities.Field]entities.Value{
		entities.FieldName: entities.Text(name),
		entities.FieldCR:   entities.Number(cr),
	}
	if len(speed) > 0 {
		fields[entities.FieldSpeed] = entities.Map(speed...)
	}
	m, err := entities.NewMonster(entities.Origin{Source: "test.xml", Index: index}, fields)
	require.NoError(t, err)
	return m
}

func newHandler(t *testing.T) *QueryHandler {
	t.Helper()
	source := &mocks.CompendiumSource{
		Compendium: &entities.Compendium{
			Spells: []*entities.Spell{
				newSpell(t, 0, "Alarm", 1, true, "Ranger", "Wizard"),
				newSpell(t, 1, "Fireball", 3, false, "Sorcerer", "Wizard"),
				newSpell(t, 2, "Healing Word", 1, false, "Bard", "Cleric", "Druid"),
				newSpell(t, 3, "Detect Magic", 1, true, "Bard", "Cleric", "Wizard"),
				newSpell(t, 4, "Wish", 9, false, "Sorcerer", "Wizard"),
			},
			Monsters: []*entities.Monster{
				newMonster(t, 5, "Goblin", 0.25, entities.Pair{Key: "walk", N: 30}),
				newMonster(t, 6, "Griffon", 2, entities.Pair{Key: "walk", N: 30}, entities.Pair{Key: "fly", N: 80}),
				newMonster(t, 7, "Gelatinous Cube", 2, entities.Pair{Key: "walk", N: 15}),
				newMonster(t, 8, "Shrieker", 0),
			},
		},
	}
	return NewQueryHandler(services.NewCompendiumService(source, false))
}

func names[R entities.Record](c *query.Collection[R]) []string {
	var out []string
	for _, r := range c.All() {
		out = append(out, r.Name())
	}
	return out
}

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		expr  string
		field entities.Field
		pred  string
	}{
		{expr: "level=3", field: entities.FieldLevel, pred: `eq("3")`},
		{expr: "level!=3", field: entities.FieldLevel, pred: `ne("3")`},
		{expr: "level<3", field: entities.FieldLevel, pred: `lt("3")`},
		{expr: "level<=3", field: entities.FieldLevel, pred: `lte("3")`},
		{expr: "level>3", field: entities.FieldLevel, pred: `gt("3")`},
		{expr: "level>=3", field: entities.FieldLevel, pred: `gte("3")`},
		{expr: "classes~Bard|Wizard", field: entities.FieldClasses, pred: `in("Bard", "Wizard")`},
		{expr: "name~=fire", field: entities.FieldName, pred: `contains("fire")`},
		{expr: "name^=Fi", field: entities.FieldName, pred: `startswith("Fi")`},
		{expr: "name=~^A", field: entities.FieldName, pred: `matches("^A")`},
		{expr: " Name = Wish ", field: entities.FieldName, pred: `eq("Wish")`},
		{expr: "!ritual", field: entities.FieldRitual, pred: `or(absent(), eq("false"))`},
		{expr: "!roll", field: entities.FieldRoll, pred: "absent()"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, p, err := ParseCriterion(entities.KindSpell, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.field, f)
			assert.Equal(t, tt.pred, p.String())
		})
	}
}

func TestParseCriterion_HasKey(t *testing.T) {
	f, p, err := ParseCriterion(entities.KindMonster, "speed?fly")
	require.NoError(t, err)
	assert.Equal(t, entities.FieldSpeed, f)
	assert.Equal(t, query.OpHasKey, p.Op())
}

func TestParseCriterion_Errors(t *testing.T) {
	tests := []struct {
		expr string
		err  error
	}{
		{expr: "=3", err: ErrInvalidCriterion},
		{expr: "level", err: ErrInvalidCriterion},
		{expr: "level=", err: ErrInvalidCriterion},
		{expr: "level:3", err: ErrInvalidCriterion},
		{expr: "speed=30", err: entities.ErrUnknownField},
		{expr: "!speed", err: entities.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, _, err := ParseCriterion(entities.KindSpell, tt.expr)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseCriteria_SameFieldCombines(t *testing.T) {
	criteria, err := ParseCriteria(entities.KindSpell, []string{"level>=1", "level<3", "classes~Bard"})
	require.NoError(t, err)
	require.Len(t, criteria, 2)

	level, ok := criteria[entities.FieldLevel].(query.Predicate)
	require.True(t, ok)
	assert.Equal(t, query.OpAll, level.Op())
}

func TestQueryHandler_Spells(t *testing.T) {
	tests := []struct {
		name     string
		opts     QueryOptions
		expected []string
	}{
		{
			name:     "everything",
			opts:     QueryOptions{},
			expected: []string{"Alarm", "Fireball", "Healing Word", "Detect Magic", "Wish"},
		},
		{
			name:     "level range",
			opts:     QueryOptions{Where: []string{"level>=2", "level<9"}},
			expected: []string{"Fireball"},
		},
		{
			name:     "class alternatives",
			opts:     QueryOptions{Where: []string{"classes~Bard|Ranger"}},
			expected: []string{"Alarm", "Healing Word", "Detect Magic"},
		},
		{
			name:     "not a ritual",
			opts:     QueryOptions{Where: []string{"!ritual", "level=1"}},
			expected: []string{"Healing Word"},
		},
		{
			name:     "no concentration",
			opts:     QueryOptions{Where: []string{"!concentration", "level>=9"}},
			expected: []string{"Wish"},
		},
		{
			name:     "search name",
			opts:     QueryOptions{Search: "MAGIC"},
			expected: []string{"Detect Magic"},
		},
		{
			name:     "search field",
			opts:     QueryOptions{SearchField: "classes=cler"},
			expected: []string{"Healing Word", "Detect Magic"},
		},
		{
			name:     "text anywhere",
			opts:     QueryOptions{Text: "arcane power", Where: []string{"level=9"}},
			expected: []string{"Wish"},
		},
		{
			name:     "sorted reverse",
			opts:     QueryOptions{Sort: "level", Reverse: true},
			expected: []string{"Wish", "Fireball", "Alarm", "Healing Word", "Detect Magic"},
		},
		{
			name:     "limit after sort",
			opts:     QueryOptions{Sort: "name", Limit: 2},
			expected: []string{"Alarm", "Detect Magic"},
		},
	}

	h := newHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spells, err := h.Spells(t.Context(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(spells))
		})
	}
}

func TestQueryHandler_Monsters(t *testing.T) {
	tests := []struct {
		name     string
		opts     QueryOptions
		expected []string
	}{
		{
			name:     "flyers",
			opts:     QueryOptions{Where: []string{"speed?fly"}},
			expected: []string{"Griffon"},
		},
		{
			name:     "fractional cr",
			opts:     QueryOptions{Where: []string{"cr<1"}},
			expected: []string{"Goblin", "Shrieker"},
		},
		{
			name:     "immobile",
			opts:     QueryOptions{Where: []string{"!speed"}},
			expected: []string{"Shrieker"},
		},
		{
			name:     "sorted by cr",
			opts:     QueryOptions{Sort: "cr"},
			expected: []string{"Shrieker", "Goblin", "Griffon", "Gelatinous Cube"},
		},
	}

	h := newHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monsters, err := h.Monsters(t.Context(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(monsters))
		})
	}
}

func TestQueryHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts QueryOptions
		err  error
	}{
		{name: "unknown field", opts: QueryOptions{Where: []string{"hp>3"}}, err: entities.ErrUnknownField},
		{name: "bad regexp", opts: QueryOptions{Where: []string{"name=~("}}, err: query.ErrInvalidPredicate},
		{name: "bad search field", opts: QueryOptions{SearchField: "classes"}, err: ErrInvalidCriterion},
		{name: "unknown sort", opts: QueryOptions{Sort: "cr"}, err: entities.ErrUnknownField},
	}

	h := newHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Spells(t.Context(), tt.opts)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestQueryHandler_LoadError(t *testing.T) {
	loadErr := errors.New("no such file")
	h := NewQueryHandler(services.NewCompendiumService(&mocks.CompendiumSource{Err: loadErr}, true))

	_, err := h.Monsters(t.Context(), QueryOptions{})
	assert.ErrorIs(t, err, loadErr)
}
