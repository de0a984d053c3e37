package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/query"
)

// ClassTable writes spells as CSV with one column per base class.
// A class cell is "*" when the whole class has the spell, "-" when no
// part of it does, or the joined abbreviations of the subclasses that do.
func ClassTable(w io.Writer, spells *query.Spells) error {
	cw := csv.NewWriter(w)

	header := []string{"name", "t", "r", "d", "l"}
	for _, base := range entities.BaseClasses {
		header = append(header, entities.AbbreviateClass(base))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range spells.All() {
		if err := cw.Write(classRow(s)); err != nil {
			return fmt.Errorf("writing %s: %w", s.Name(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func classRow(s *entities.Spell) []string {
	level := entities.Missing
	if _, ok := s.Lookup(entities.FieldLevel); ok {
		level = strconv.Itoa(s.Level())
	}
	row := []string{s.Name(), s.AbbrevTime(), s.AbbrevRange(), s.AbbrevDuration(), level}
	classes := s.Classes()
	for _, base := range entities.BaseClasses {
		row = append(row, subclassSet(classes, base))
	}
	return row
}

func subclassSet(classes []string, base string) string {
	if slices.Contains(classes, base) {
		return "*"
	}
	var abbrs []string
	for _, c := range classes {
		if entities.IsSubclassOf(c, base) {
			abbrs = append(abbrs, entities.AbbreviateClass(c))
		}
	}
	if len(abbrs) == 0 {
		return "-"
	}
	return strings.Join(abbrs, "+")
}
