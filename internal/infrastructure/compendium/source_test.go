package compendium

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/format"
	"github.com/ersonp/legendlore/internal/domain/query"
	"github.com/ersonp/legendlore/internal/domain/services"
)

const fixture = "testdata/compendium.xml"

func loadFixture(t *testing.T, errata bool) *services.CompendiumService {
	t.Helper()
	return services.NewCompendiumService(NewFileSource([]string{fixture}, "", nil), errata)
}

func TestFileSource_NoSources(t *testing.T) {
	src := NewFileSource([]string{filepath.Join(t.TempDir(), "**", "*.xml")}, "", nil)

	_, err := src.Load(t.Context())
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestFileSource_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewFileSource([]string{fixture}, "", nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource_FilesDeduplicated(t *testing.T) {
	src := NewFileSource([]string{fixture, "testdata/*.xml"}, "", nil)

	files, err := src.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{fixture}, files)
}

func TestFileSource_Load(t *testing.T) {
	c, err := NewFileSource([]string{fixture}, "", nil).Load(t.Context())
	require.NoError(t, err)

	assert.Len(t, c.Spells, 25)
	assert.Len(t, c.Monsters, 6)

	first := c.Spells[0]
	assert.Equal(t, "Banishing Smite", first.Name())
	assert.Equal(t, entities.NewRecordID(entities.KindSpell, entities.Origin{Source: fixture, Index: 0}), first.ID())
}

func TestFileSource_LoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, os.WriteFile(path, []byte("<compendium><spell><name>Oops</spell>"), 0o644))

	_, err := NewFileSource([]string{path}, "", nil).Load(t.Context())
	assert.ErrorContains(t, err, "broken.xml")
}

func TestFileSource_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homebrew.json")
	data := `[
		{"kind": "spell", "fields": {"name": ["Frost Fingers"], "level": ["1"], "school": ["EV"],
			"time": ["1 action"], "range": ["Self (15-foot cone)"], "duration": ["Instantaneous"],
			"classes": ["Wizard"], "text": ["Freezing cold blasts from your fingertips."]}},
		{"kind": "monster", "fields": {"name": ["Frost Sprite"], "size": ["T"], "type": ["fey"],
			"cr": ["1/2"], "hp": ["9 (2d4+4)"], "speed": ["10 ft., fly 40 ft."]}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := NewFileSource([]string{path}, "", nil).Load(t.Context())
	require.NoError(t, err)
	require.Len(t, c.Spells, 1)
	require.Len(t, c.Monsters, 1)

	assert.Equal(t, "Frost Fingers", c.Spells[0].Name())
	assert.Equal(t, entities.SchoolName("EV"), c.Spells[0].School())

	cr, ok := c.Monsters[0].CR()
	require.True(t, ok)
	assert.InDelta(t, 0.5, cr, 1e-9)
	assert.Equal(t, []entities.Pair{{Key: "walk", N: 10}, {Key: "fly", N: 40}}, c.Monsters[0].Speed())
}

func TestFixture_BardLevelFour(t *testing.T) {
	spells, err := loadFixture(t, true).Spells(t.Context())
	require.NoError(t, err)

	bard, err := spells.Where(query.Criteria{
		entities.FieldClasses: query.In("Bard"),
		entities.FieldLevel:   4,
	})
	require.NoError(t, err)

	var names []string
	for _, s := range bard.All() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"Charm Monster",
		"Compulsion",
		"Confusion",
		"Dimension Door",
		"Freedom of Movement",
		"Greater Invisibility",
		"Hallucinatory Terrain",
		"Locate Creature",
		"Polymorph",
	}, names)
}

func TestFixture_Circles(t *testing.T) {
	spells, err := loadFixture(t, true).Spells(t.Context())
	require.NoError(t, err)

	circles, err := spells.Where(query.Criteria{entities.FieldName: query.In("Circle")})
	require.NoError(t, err)

	expected := `Circle of Death A/150'/I (6:S+Wl+Wz)
Circle of Power A/S(30'r)/C<=10m (5:P)
Circle of Power* A/S(30'r)/C<=10m (5:PCr)
Magic Circle 1m/10'/1h (3:C+FEK+P+RMS+Wl+Wz)
Magic Circle* 1m/10'/1h (3:CA)
Teleportation Circle 1m/10'/1r (5:B+RHW+S+Wz)
Teleportation Circle* 1m/10'/1r (5:CA)`
	assert.Equal(t, expected, format.Lines(circles))
}

func TestFixture_MagicMissilePointForm(t *testing.T) {
	spells, err := loadFixture(t, true).Spells(t.Context())
	require.NoError(t, err)

	found := spells.Search("Magic Missile")
	require.Equal(t, 1, found.Len())

	expected := "- Magic Missile A/120'/I (1:FEK+S+Wz)\n" +
		"  - You create three glowing darts of magical force. Each dart hits a creature of your choice " +
		"that you can see within range. A dart deals 1d4+1 force damage to its target. The darts all " +
		"strike simultaneously and you can direct them to hit one creature or several.\n" +
		"  - \n" +
		"  - At Higher Levels: When you cast this spell using a spell slot of 2nd level or higher, " +
		"the spell creates one more dart for each slot above 1st."

	out, err := format.Render(found, format.MethodPointForm, format.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, expected, out)

	mm, err := found.At(0)
	require.NoError(t, err)
	roll, ok := mm.Lookup(entities.FieldRoll)
	require.True(t, ok)
	assert.Equal(t, []string{"3d4+3"}, roll.List())
}

func TestFixture_Spells(t *testing.T) {
	spells, err := loadFixture(t, true).Spells(t.Context())
	require.NoError(t, err)

	tests := []struct {
		name    string
		summary string
	}{
		{name: "Identify", summary: "Identify (rit.) 1m/T/I (1:A+B+Wz)"},
		{name: "Minor Illusion", summary: "Minor Illusion A/30'/1m (0:B+D+AT+S+Wl+Wz)"},
		{name: "Banishing Smite", summary: "Banishing Smite B/S/C<=1m (5:P+WlH)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := spells.Search(tt.name)
			require.Equal(t, 1, found.Len())
			s, err := found.At(0)
			require.NoError(t, err)
			assert.Equal(t, tt.summary, s.Summary())
		})
	}
}

func TestFixture_Errata(t *testing.T) {
	tests := []struct {
		name    string
		errata  bool
		copies  int
		sources []string
	}{
		{name: "applied", errata: true, copies: 1, sources: []string{"SCAG p. 142", "TCE p. 106"}},
		{name: "raw", errata: false, copies: 2, sources: []string{"SCAG p. 142"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spells, err := loadFixture(t, tt.errata).Spells(t.Context())
			require.NoError(t, err)

			found := spells.Search("Booming Blade")
			require.Equal(t, tt.copies, found.Len())
			s, err := found.At(0)
			require.NoError(t, err)
			assert.Equal(t, tt.sources, s.Sources())
			assert.Equal(t, []string{"You brandish the weapon used in the spell's casting."}, s.Paragraphs())
		})
	}
}

func TestFixture_Monsters(t *testing.T) {
	monsters, err := loadFixture(t, true).Monsters(t.Context())
	require.NoError(t, err)

	aar := monsters.Search("AAR")
	require.Equal(t, 1, aar.Len())
	assert.Equal(t, "[Monster({'name': Aarakocra, 'type': humanoid (aarakocra)})]", aar.String())

	m, err := aar.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Aarakocra: M neutral good humanoid (aarakocra), 1/4CR 13HP/3d8 12AC (walk 20, fly 50)", m.Summary())

	trait, ok := m.Lookup(entities.FieldTrait)
	require.True(t, ok)
	assert.Equal(t, []string{"Dive Attack. If the aarakocra is flying and dives at least 30 feet straight toward " +
		"a target and then hits it with a melee weapon attack, the attack deals an extra 3 (1d6) damage to the target."}, trait.List())
}

func TestFixture_MonsterQueries(t *testing.T) {
	monsters, err := loadFixture(t, true).Monsters(t.Context())
	require.NoError(t, err)

	tests := []struct {
		name     string
		criteria query.Criteria
		expected []string
	}{
		{
			name:     "flyers",
			criteria: query.Criteria{entities.FieldSpeed: query.HasKey("fly")},
			expected: []string{"Aarakocra", "Griffon"},
		},
		{
			name:     "cr at least 10",
			criteria: query.Criteria{entities.FieldCR: query.GreaterOrEqual(10)},
			expected: []string{"Aboleth", "Tarrasque"},
		},
		{
			name:     "immune to fire",
			criteria: query.Criteria{entities.FieldImmune: query.In("fire")},
			expected: []string{"Tarrasque"},
		},
		{
			name:     "no legendary actions",
			criteria: query.Criteria{entities.FieldLegendary: query.Absent(), entities.FieldSize: "M"},
			expected: []string{"Aarakocra", "Giant Crab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := monsters.Where(tt.criteria)
			require.NoError(t, err)

			var names []string
			for _, m := range got.All() {
				names = append(names, m.Name())
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFixture_ItemsSkipped(t *testing.T) {
	c, err := NewFileSource([]string{fixture}, "", nil).Load(t.Context())
	require.NoError(t, err)

	for _, m := range c.Monsters {
		assert.NotEqual(t, "Bag of Holding", m.Name())
	}
	// The item still takes up an index in the source.
	assert.Equal(t, entities.NewRecordID(entities.KindMonster, entities.Origin{Source: fixture, Index: 28}), c.Monsters[2].ID())
}
