package services

import "github.com/ersonp/legendlore/internal/domain/entities"

// ApplySpellErrata collapses spells listed more than once under the same
// name. The copy with the most sources survives, at the position of the
// first copy. Ties go to the later copy.
func ApplySpellErrata(spells []*entities.Spell) []*entities.Spell {
	best := make(map[string]*entities.Spell, len(spells))
	for _, s := range spells {
		if cur, ok := best[s.Name()]; !ok || len(s.Sources()) >= len(cur.Sources()) {
			best[s.Name()] = s
		}
	}

	out := make([]*entities.Spell, 0, len(best))
	seen := make(map[string]bool, len(best))
	for _, s := range spells {
		if seen[s.Name()] {
			continue
		}
		seen[s.Name()] = true
		out = append(out, best[s.Name()])
	}
	return out
}
