package compendium

import (
	"slices"
	"strings"
)

// damageTypes are damage list items used as they are.
var damageTypes = newSet(
	"bludgeoning", "piercing", "slashing",
	"poison", "acid", "fire", "cold", "radiant", "necrotic",
	"lightning", "thunder", "force", "psychic",
	"damage from spells",
	"piercing from magic weapons wielded by good creatures",
	"one of the following: acid, cold, fire, lightning or poison",
	"one of the following: acid, cold, fire, lightning, or poison",
)

var (
	nonmagicalBPS = []string{"nonmagical bludgeoning", "nonmagical piercing", "nonmagical slashing"}
	nonsilverBPS  = []string{"nonmagical nonsilver bludgeoning", "nonmagical nonsilver piercing", "nonmagical nonsilver slashing"}
	nonadamantine = []string{"nonmagical nonadamantine bludgeoning", "nonmagical nonadamantine piercing", "nonmagical nonadamantine slashing"}
)

type damageMapping struct {
	phrase string
	types  []string
}

// damageMappings expands compound phrases into individual damage types.
var damageMappings = newMappings([]damageMapping{
	{"bludgeoning, piercing, and slashing from nonmagical attacks", nonmagicalBPS},
	{"bludgeoning, piercing, and slashing damage from nonmagical weapons", nonmagicalBPS},
	{"bludgeoning, piercing, slashing from nonmagical attacks", nonmagicalBPS},
	{"bludgeoning, piercing, and slashing damage from nonmagical attacks", nonmagicalBPS},
	{"bludgeoning, piercing, and slashing from nonmagical weapons", nonmagicalBPS},
	{"bludgeoning, piercing and slashing from nonmagical attacks", nonmagicalBPS},
	{"non magical bludgeoning, piercing, and slashing (from stoneskin)", nonmagicalBPS},
	{"nonmagical bludgeoning, piercing, slashing (from stoneskin)", nonmagicalBPS},
	{"bludgeoning from nonmagical attacks", []string{"nonmagical bludgeoning"}},
	{"fire, bludgeoning, piercing, and slashing from nonmagical attacks", append([]string{"nonmagical fire"}, nonmagicalBPS...)},
	{"cold, fire, lightning, bludgeoning, piercing and slashing that is nonmagical", append([]string{"nonmagical cold", "nonmagical fire"}, nonmagicalBPS...)},

	{"bludgeoning, piercing, and slashing from nonmagical attacks that aren't silvered", nonsilverBPS},
	{"bludgeoning, piercing, and slashing from nonmagical attacks that aren’t silvered", nonsilverBPS},
	{"bludgeoning, piercing, slashing from nonmagical attacks that aren't silvered", nonsilverBPS},
	{"bludgeoning, piercing, and slashing from nonmagical/nonsilver weapons", nonsilverBPS},
	{"bludgeoning, piercing, and slashing from nonmagical attacks not made with silvered weapons", nonsilverBPS},
	{"bludgeoning, piercing, and slashing from nonmagical weapons that aren't silvered", nonsilverBPS},
	{"slashing damage from nonmagical attacks not made with silvered weapons", []string{"nonmagical nonsilver slashing"}},

	{"bludgeoning, piercing, and slashing from nonmagical attacks that aren't adamantine", nonadamantine},
	{"bludgeoning, piercing, and slashing damage from nonmagical attacks not made with adamantine weapons", nonadamantine},
	{"bludgeoning, piercing, slashing from nonmagical attacks that aren't adamantine", nonadamantine},
	{"piercing and slashing from nonmagical attacks that aren't adamantine", []string{"nonmagical nonadamantine piercing", "nonmagical nonadamantine slashing"}},

	{"bludgeoning, piercing, and slashing from magic weapons", []string{"magical bludgeoning", "magical piercing", "magical slashing"}},
	{"bludgeoning, piercing, and slashing while in dim light or darkness", []string{
		"bludgeoning while in dim light or darkness",
		"piercing while in dim light or darkness",
		"slashing while in dim light or darkness",
	}},
	{"bludgeoning, piercing, and slashing from nonmagical attacks while in dim light or darkness", []string{
		"nonmagical bludgeoning while in dim light or darkness",
		"nonmagical piercing while in dim light or darkness",
		"nonmagical slashing while in dim light or darkness",
	}},
	{"while wearing the mask of the dragon queen: acid, cold, lightning, poison", []string{"acid", "cold", "lightning", "poison"}},
})

func newSet(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func newMappings(list []damageMapping) map[string][]string {
	m := make(map[string][]string, len(list))
	for _, dm := range list {
		m[dm.phrase] = dm.types
	}
	return m
}

func knownDamage(s string) bool {
	_, mapped := damageMappings[s]
	return mapped || damageTypes[s]
}

// parseDamage splits a resistance, immunity or vulnerability list on
// semicolons, then commas, and expands compound phrases. It returns the
// sorted set of damage types and the items it could not recognize.
func parseDamage(text string) (types, unknown []string) {
	var found []string
	for _, part := range splitList(strings.ToLower(text), ";") {
		if knownDamage(part) {
			found = append(found, part)
			continue
		}
		items := splitList(part, ",")
		if !allKnown(items) {
			unknown = append(unknown, part)
			continue
		}
		found = append(found, items...)
	}

	for _, item := range found {
		if mapped, ok := damageMappings[item]; ok {
			types = append(types, mapped...)
			continue
		}
		types = append(types, item)
	}
	slices.Sort(types)
	return slices.Compact(types), unknown
}

func allKnown(items []string) bool {
	for _, item := range items {
		if !knownDamage(item) {
			return false
		}
	}
	return true
}
