package entities

import (
	"slices"
	"strings"
)

// Missing is the abbreviation used when a spell has no value for a field.
const Missing = "N"

// Scale identifies one of the fixed ordered value sets of spell fields.
type Scale int

// Ordered scales.
const (
	ScaleNone Scale = iota
	ScaleTime
	ScaleRange
	ScaleDuration
)

type abbrev struct {
	value string
	abbr  string
}

// Scale tables are listed in ascending order.
var castingTimes = []abbrev{
	{"None", "N"},
	{"1 action", "A"},
	{"part of the Attack action to fire a magic arrow", "A*"},
	{"1 bonus action", "B"},
	{"1 reaction", "R"},
	{"1 reaction, which you take when you take acid, cold, fire, lightning, or thunder damage", "R*"},
	{"1 reaction, which you take when a humanoid you can see within 60 feet of you dies", "R*"},
	{"1 minute", "1m"},
	{"10 minutes", "10m"},
	{"1 hour", "1h"},
	{"8 hours", "8h"},
	{"1 action or 8 hours", "A/8h"},
	{"12 hours", "12h"},
	{"24 hours", "24h"},
}

var castingTimeAliases = map[string]string{
	"1 action, 8 hours": "1 action or 8 hours",
}

var spellRanges = []abbrev{
	{"Self", "S"},
	{"Self (5-foot radius)", "S(5'r)"},
	{"Self (10-foot radius)", "S(10'r)"},
	{"Self (10-foot-radius sphere)", "S(10'r-sphere)"},
	{"Self (10-foot-radius hemisphere)", "S(10'r-hemisphere)"},
	{"Self (15-foot radius)", "S(15'r)"},
	{"Self (15-foot cone)", "S(15'cone)"},
	{"Self (15-foot cube)", "S(15'cube)"},
	{"Self (30-foot radius)", "S(30'r)"},
	{"Self (30-foot cone)", "S(30'cone)"},
	{"Self (30-foot line)", "S(30'line)"},
	{"Self (60-foot line)", "S(60'line)"},
	{"Self (60-foot cone)", "S(60'cone)"},
	{"Self (100-foot line)", "S(100'line)"},
	{"Self (5-mile radius)", "S(5mi.r)"},
	{"Touch", "T"},
	{"Special", "Special"},
	{"Sight", "Sight"},
	{"5 feet", "5'"},
	{"10 feet", "10'"},
	{"15 feet", "15'"},
	{"20 feet", "20'"},
	{"30 feet", "30'"},
	{"60 feet", "60'"},
	{"90 feet", "90'"},
	{"100 feet", "100'"},
	{"120 feet", "120'"},
	{"150 feet", "150'"},
	{"300 feet", "300'"},
	{"500 feet", "500'"},
	{"1000 feet", "1000'"},
	{"1 mile", "1mi"},
	{"500 miles", "500mi"},
	{"Unlimited", "Unlimited"},
}

var spellRangeAliases = map[string]string{
	"Self (10-foot sphere)":     "Self (10-foot-radius sphere)",
	"Self (15-foot-radius)":     "Self (15-foot radius)",
	"Self (10-foot hemisphere)": "Self (10-foot-radius hemisphere)",
	"Self (60 foot cone)":       "Self (60-foot cone)",
}

var spellDurations = []abbrev{
	{"Instantaneous", "I"},
	{"Instantaneous or 1 hour (see below)", "I/1h"},
	{"Special", "S"},
	{"1 turn", "1t"},
	{"up to 1 round", "<=1r"},
	{"1 round", "1r"},
	{"up to 6 rounds", "<=6r"},
	{"up to 1 minute", "<=1m"},
	{"1 minute", "1m"},
	{"up to 10 minutes", "<=10m"},
	{"10 minutes", "10m"},
	{"up to 1 hour", "<=1h"},
	{"1 hour", "1h"},
	{"up to 2 hours", "<=2h"},
	{"6 hours", "6h"},
	{"up to 8 hours", "<=8h"},
	{"8 hours", "8h"},
	{"up to 1 day", "<=1d"},
	{"1 day", "1d"},
	{"up to 24 hours", "<=24h"},
	{"24 hours", "24h"},
	{"7 days", "7d"},
	{"10 days", "10d"},
	{"30 days", "30d"},
	{"Until dispelled or triggered", "UD/T"},
	{"Until dispelled", "UD"},
}

var spellDurationAliases = map[string]string{
	"Up to 1 minute": "up to 1 minute",
	"Up to 1 hour":   "up to 1 hour",
	"Up to 8 hours":  "up to 8 hours",
	"special":        "Special",
}

// casterClasses maps class names as they appear in spell class lists
// to the abbreviations used in one-line summaries.
var casterClasses = map[string]string{
	"Artificer":                       "A",
	"Artificer (Alchemist)":           "AAl",
	"Artificer (Armorer)":             "AArm",
	"Artificer (Artillerist)":         "AArt",
	"Artificer (Battle Smith)":        "ABS",
	"Bard":                            "B",
	"Cleric":                          "C",
	"Cleric (Arcana)":                 "CA",
	"Cleric (Death)":                  "CD",
	"Cleric (Forge)":                  "CF",
	"Cleric (Grave)":                  "CG",
	"Cleric (Knowledge)":              "CK",
	"Cleric (Life)":                   "CLf",
	"Cleric (Light)":                  "CLt",
	"Cleric (Nature)":                 "CN",
	"Cleric (Order)":                  "CO",
	"Cleric (Peace)":                  "CPe",
	"Cleric (Protection)":             "CP",
	"Cleric (Tempest)":                "CTm",
	"Cleric (Trickery)":               "CTr",
	"Cleric (Twilight)":               "CTw",
	"Cleric (War)":                    "CW",
	"Druid":                           "D",
	"Druid (Arctic)":                  "DA",
	"Druid (Coast)":                   "DC",
	"Druid (Desert)":                  "DD",
	"Druid (Forest)":                  "DF",
	"Druid (Grassland)":               "DG",
	"Druid (Mountain)":                "DM",
	"Druid (Swamp)":                   "DS",
	"Druid (Underdark)":               "DU",
	"Druid (Wildfire)":                "DW",
	"Eldritch Invocations":            "EI",
	"Fighter":                         "F",
	"Fighter (Arcane Archer)":         "FAA",
	"Fighter (Battle Master)":         "FBM",
	"Fighter (Eldritch Knight)":       "FEK",
	"Martial Adept":                   "MA",
	"Monk":                            "M",
	"Monk (Way of the Four Elements)": "M4",
	"Paladin":                         "P",
	"Paladin (Ancients)":              "PA",
	"Paladin (Conquest)":              "PCn",
	"Paladin (Crown)":                 "PCr",
	"Paladin (Devotion)":              "PD",
	"Paladin (Glory)":                 "PG",
	"Paladin (Oathbreaker)":           "PO",
	"Paladin (Redemption)":            "PR",
	"Paladin (Treachery)":             "PT",
	"Paladin (Vengeance)":             "PV",
	"Paladin (Watchers)":              "PW",
	"Ranger":                          "Ra",
	"Ranger (Gloom Stalker)":          "RGS",
	"Ranger (Horizon Walker)":         "RHW",
	"Ranger (Monster Slayer)":         "RMS",
	"Ranger (No Spells)":              "R",
	"Ranger (Primeval Guardian)":      "RPG",
	"Ritual Caster":                   "Rit",
	"Rogue":                           "Ro",
	"Rogue (Arcane Trickster)":        "AT",
	"Sorcerer":                        "S",
	"Sorcerer (Aberrant Mind)":        "SAM",
	"Sorcerer (Clockwork Soul)":       "SCS",
	"Sorcerer (Divine Soul)":          "SDS",
	"Sorcerer (Shadow)":               "SSh",
	"Sorcerer (Stone Sorcery)":        "SSS",
	"Warlock":                         "Wl",
	"Warlock (Archfey)":               "WlA",
	"Warlock (Celestial)":             "WlC",
	"Warlock (Fathomless)":            "WlFa",
	"Warlock (Fiend)":                 "WlF",
	"Warlock (Genie)":                 "WlGe",
	"Warlock (Great Old One)":         "WlG",
	"Warlock (Hexblade)":              "WlH",
	"Warlock (Raven Queen)":           "WlR",
	"Warlock (Seeker)":                "WlS",
	"Warlock (Undying)":               "WlU",
	"Wizard":                          "Wz",
	"Wizard (Chronurgy)":              "WzC",
	"Wizard (Graviturgy)":             "WzG",
}

// BaseClasses are the class columns of the class table, in column order.
var BaseClasses = []string{
	"Artificer", "Bard", "Cleric", "Druid", "Fighter", "Monk",
	"Paladin", "Ranger", "Rogue", "Sorcerer", "Warlock", "Wizard",
	"Eldritch Invocations", "Martial Adept", "Ritual Caster",
}

var schools = map[string]string{
	"EV": "Evocation",
	"T":  "Transmutation",
	"C":  "Conjuration",
	"A":  "Abjuration",
	"EN": "Enchantment",
	"D":  "Divination",
	"N":  "Necromancy",
	"I":  "Illusion",
}

type scaleTable struct {
	abbr    map[string]string
	rank    map[string]int
	aliases map[string]string
}

func newScaleTable(entries []abbrev, aliases map[string]string) scaleTable {
	t := scaleTable{
		abbr:    make(map[string]string, len(entries)),
		rank:    make(map[string]int, len(entries)),
		aliases: aliases,
	}
	for i, e := range entries {
		t.abbr[e.value] = e.abbr
		t.rank[e.value] = i
	}
	return t
}

func (t scaleTable) canonical(s string) string {
	if alias, ok := t.aliases[s]; ok {
		return alias
	}
	return s
}

var scaleTables = map[Scale]scaleTable{
	ScaleTime:     newScaleTable(castingTimes, castingTimeAliases),
	ScaleRange:    newScaleTable(spellRanges, spellRangeAliases),
	ScaleDuration: newScaleTable(spellDurations, spellDurationAliases),
}

// Rank returns the position of s on the scale, or -1 if s is not on it.
func (s Scale) Rank(text string) int {
	t, ok := scaleTables[s]
	if !ok {
		return -1
	}
	if r, ok := t.rank[t.canonical(text)]; ok {
		return r
	}
	return -1
}

// Abbreviate returns the short form of text on the scale.
// Text that is not on the scale is returned unchanged.
func (s Scale) Abbreviate(text string) string {
	t, ok := scaleTables[s]
	if !ok {
		return text
	}
	if a, ok := t.abbr[t.canonical(text)]; ok {
		return a
	}
	return text
}

// AbbreviateClass returns the short form of a caster class name.
// Unknown class names are returned unchanged.
func AbbreviateClass(name string) string {
	if a, ok := casterClasses[name]; ok {
		return a
	}
	return name
}

// SortClasses returns the distinct class names in canonical order.
// The canonical order is the byte order of full class names, which puts a
// base class before its subclasses.
func SortClasses(classes []string) []string {
	sorted := slices.Clone(classes)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// IsSubclassOf reports whether class is a subclass entry of base, e.g.
// "Cleric (Arcana)" of "Cleric".
func IsSubclassOf(class, base string) bool {
	return strings.HasPrefix(class, base+" (")
}

// SchoolName expands a school code. Unknown codes are returned unchanged.
func SchoolName(code string) string {
	if name, ok := schools[code]; ok {
		return name
	}
	return code
}
