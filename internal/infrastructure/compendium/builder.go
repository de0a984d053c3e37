package compendium

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/infrastructure/parsers"
)

// builder types raw entries into records.
type builder struct {
	log      *slog.Logger
	spells   []*entities.Spell
	monsters []*entities.Monster
}

func newBuilder(log *slog.Logger) *builder {
	return &builder{log: log}
}

func (b *builder) compendium() *entities.Compendium {
	return &entities.Compendium{Spells: b.spells, Monsters: b.monsters}
}

// addAll builds every entry of one source. The origin index of a record
// is the ordinal of its element in the source.
func (b *builder) addAll(source string, entries []parsers.RawEntry) error {
	for i, e := range entries {
		origin := entities.Origin{Source: source, Index: i}
		if err := b.add(origin, e); err != nil {
			return fmt.Errorf("%s line %d: %w", source, e.LineNum, err)
		}
	}
	return nil
}

func (b *builder) add(origin entities.Origin, e parsers.RawEntry) error {
	kind, ok := entities.ParseKind(e.Kind)
	if !ok {
		b.log.Debug("skipping entry", "kind", e.Kind, "source", origin.Source, "line", e.LineNum)
		return nil
	}

	f := fieldReader{entry: e, log: b.log.With("kind", e.Kind, "source", origin.Source, "line", e.LineNum)}
	switch kind {
	case entities.KindSpell:
		s, err := entities.NewSpell(origin, spellFields(f))
		if err != nil {
			return err
		}
		b.spells = append(b.spells, s)
	case entities.KindMonster:
		m, err := entities.NewMonster(origin, monsterFields(f))
		if err != nil {
			return err
		}
		b.monsters = append(b.monsters, m)
	}
	return nil
}

// fieldReader reads typed values out of a raw entry, logging text it
// cannot interpret.
type fieldReader struct {
	entry parsers.RawEntry
	log   *slog.Logger
}

func (f fieldReader) text(name string) (string, bool) {
	s, ok := f.entry.First(name)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func (f fieldReader) all(name string) []string {
	return f.entry.Fields[name]
}

func (f fieldReader) int(name string) (int, bool) {
	s, ok := f.text(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f.warn(name, s)
		return 0, false
	}
	return n, true
}

func (f fieldReader) warn(field, text string) {
	name, _ := f.entry.First("name")
	f.log.Warn("unparsed field text", "name", name, "field", field, "text", text)
}

// splitList splits on sep, trims each item and drops empty ones.
func splitList(s, sep string) []string {
	var out []string
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
