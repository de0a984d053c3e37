package compendium

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/query"
)

var (
	reValueNote = regexp.MustCompile(`^(\d+)(?: \(([^)]*)\))?$`)

	reSpeed            = regexp.MustCompile(`^(?:(walk|fly|swim|climb|burrow) )?(\d+) ?ft\.?(?: \([Hh]over\))?$`)
	reSpeedModeLast    = regexp.MustCompile(`^(\d+) ?ft\.? (walk|fly|swim|climb|burrow)$`)
	reSpeedJustANumber = regexp.MustCompile(`^(\d+)$`)

	reSense = regexp.MustCompile(`(?i)^([a-z]+) (\d+) ?ft\.?(?: \(.*\))?$`)
)

// irregularSpeeds maps speed phrasings that are not a plain list of modes.
var irregularSpeeds = map[string][]entities.Pair{
	"60 ft. (30 ft.in goblin form)": {
		{Key: "walk", N: 60}, {Key: "walk (in goblin form)", N: 30}},
	"30 ft. (20 ft. and swim 40 ft. in hybrid form)": {
		{Key: "walk", N: 30}, {Key: "walk (in hybrid form)", N: 20}, {Key: "swim (in hybrid form)", N: 40}},
	"30 ft. (60 ft. with boots of speed)": {
		{Key: "walk", N: 30}, {Key: "walk (with boots of speed)", N: 60}},
	"15 ft. (30 ft. when rolling, 60 ft. rolling downhill)": {
		{Key: "walk", N: 15}, {Key: "walk (when rolling)", N: 30}, {Key: "walk (when rolling downhill)", N: 60}},
	"30 ft. (climb 30 ft., fly 60 ft., in bat or hybrid form)": {
		{Key: "walk", N: 30}, {Key: "climb (in bat or hybrid form)", N: 30}, {Key: "fly (in bat or hybrid form)", N: 60}},
	"50 ft. (in one direction chosen at the start of its turn)": {
		{Key: "walk (in one direction chosen at the start of its turn)", N: 50}},
	"30 ft., fly 50 ft. in raven and hybrid forms": {
		{Key: "walk", N: 30}, {Key: "fly (in raven and hybrid forms)", N: 50}},
	"30 ft. (40 ft., climb 30 ft. in bear or hybrid form)": {
		{Key: "walk", N: 30}, {Key: "climb (in bear or hybrid form)", N: 30}},
	"30 ft. (40 ft. in boar form)": {
		{Key: "walk", N: 30}, {Key: "walk (in boar form)", N: 40}},
	"30 ft. (40 ft. in tiger form)": {
		{Key: "walk", N: 30}, {Key: "walk (in tiger form)", N: 40}},
	"30 ft. (40 ft. in wolf form)": {
		{Key: "walk", N: 30}, {Key: "walk (in wolf form)", N: 40}},
	"50 ft,": {
		{Key: "walk", N: 50}},
}

var skillNames = []string{
	"Athletics", "Acrobatics", "Sleight of Hand", "Stealth", "Arcana",
	"History", "Investigation", "Nature", "Religion", "Animal Handling",
	"Insight", "Medicine", "Perception", "Survival", "Deception",
	"Intimidation", "Performance", "Persuasion",
}

var abilityFields = map[string]entities.Field{
	"str": entities.FieldStr,
	"dex": entities.FieldDex,
	"con": entities.FieldCon,
	"int": entities.FieldInt,
	"wis": entities.FieldWis,
	"cha": entities.FieldCha,
}

// monsterTextFields are copied verbatim when present.
var monsterTextFields = map[string]entities.Field{
	"name":        entities.FieldName,
	"size":        entities.FieldSize,
	"type":        entities.FieldType,
	"alignment":   entities.FieldAlignment,
	"languages":   entities.FieldLanguages,
	"slots":       entities.FieldSlots,
	"description": entities.FieldDescription,
	"environment": entities.FieldEnvironment,
}

// monsterBlocks hold one "Name. text" entry per element.
var monsterBlocks = map[string]entities.Field{
	"trait":     entities.FieldTrait,
	"action":    entities.FieldAction,
	"reaction":  entities.FieldReaction,
	"legendary": entities.FieldLegendary,
}

// monsterSets are damage or condition lists with set semantics.
var monsterSets = map[string]entities.Field{
	"resist":     entities.FieldResist,
	"immune":     entities.FieldImmune,
	"vulnerable": entities.FieldVulnerable,
}

func monsterFields(f fieldReader) map[entities.Field]entities.Value {
	fields := make(map[entities.Field]entities.Value)
	set := func(field entities.Field, v entities.Value, ok bool) {
		if ok {
			fields[field] = v
		}
	}

	for name, field := range monsterTextFields {
		if s, ok := f.text(name); ok {
			fields[field] = entities.Text(s)
		}
	}
	for name, field := range abilityFields {
		if n, ok := f.int(name); ok {
			fields[field] = entities.Int(n)
		}
	}
	if n, ok := f.int("passive"); ok {
		fields[entities.FieldPassive] = entities.Int(n)
	}

	if s, ok := f.text("ac"); ok {
		fields[entities.FieldAC] = entities.Text(s)
		if n, note, ok := parseValueNote(s); ok {
			fields[entities.FieldACNum] = entities.Int(n)
			if note != "" {
				fields[entities.FieldArmor] = entities.Text(note)
			}
		} else {
			f.log.Debug("no numeric armor class", "text", s)
		}
	}
	if s, ok := f.text("hp"); ok {
		if n, dice, ok := parseValueNote(s); ok {
			fields[entities.FieldHP] = entities.Int(n)
			if dice != "" {
				fields[entities.FieldHitDice] = entities.Text(dice)
			}
		} else {
			f.warn("hp", s)
		}
	}
	if s, ok := f.text("speed"); ok {
		pairs, ok := parseSpeed(s)
		if !ok {
			f.warn("speed", s)
		}
		set(entities.FieldSpeed, entities.Map(pairs...), ok)
	}
	if s, ok := f.text("save"); ok {
		pairs, ok := parseSaves(s)
		if !ok {
			f.warn("save", s)
		}
		set(entities.FieldSaves, entities.Map(pairs...), ok)
	}
	if s, ok := f.text("skill"); ok {
		pairs, ok := parseSkills(s)
		if !ok {
			f.warn("skill", s)
		}
		set(entities.FieldSkills, entities.Map(pairs...), ok)
	}
	if s, ok := f.text("senses"); ok {
		pairs, ok := parseSenses(s)
		if !ok {
			f.warn("senses", s)
		}
		set(entities.FieldSenses, entities.Map(pairs...), ok)
	}
	if s, ok := f.text("cr"); ok {
		cr, ok := query.ParseNumber(s)
		if !ok {
			f.warn("cr", s)
		}
		set(entities.FieldCR, entities.Number(cr), ok)
	}

	for name, field := range monsterSets {
		if s, ok := f.text(name); ok {
			types, unknown := parseDamage(s)
			for _, u := range unknown {
				f.warn(name, u)
			}
			set(field, entities.List(types...), len(types) > 0)
		}
	}
	if s, ok := f.text("conditionImmune"); ok {
		conditions := parseConditions(s)
		set(entities.FieldConditionImmune, entities.List(conditions...), len(conditions) > 0)
	}
	if s, ok := f.text("spells"); ok {
		spells := splitList(s, ",")
		set(entities.FieldSpells, entities.List(spells...), len(spells) > 0)
	}
	if sources := f.all("source"); len(sources) > 0 {
		var list []string
		for _, s := range sources {
			list = append(list, splitList(s, ",")...)
		}
		set(entities.FieldSource, entities.List(list...), len(list) > 0)
	}

	for name, field := range monsterBlocks {
		var blocks []string
		for _, s := range f.all(name) {
			if s = strings.TrimSpace(s); s != "" {
				blocks = append(blocks, s)
			}
		}
		set(field, entities.List(blocks...), len(blocks) > 0)
	}

	return fields
}

// parseValueNote parses "15 (natural armor)" and "135 (18d10+36)".
func parseValueNote(s string) (int, string, bool) {
	m := reValueNote.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, m[2], true
}

// parseSpeed parses a comma separated list of movement modes such as
// "40 ft., fly 80 ft.", falling back to the table of irregular phrasings.
// A repeated mode keeps its first position and takes the later speed.
func parseSpeed(s string) ([]entities.Pair, bool) {
	var pairs []entities.Pair
	for _, vector := range strings.Split(s, ", ") {
		mode, speed, ok := parseSpeedVector(vector)
		if !ok {
			irregular, found := irregularSpeeds[s]
			return slices.Clone(irregular), found
		}
		if i := slices.IndexFunc(pairs, func(p entities.Pair) bool { return p.Key == mode }); i >= 0 {
			pairs[i].N = speed
			continue
		}
		pairs = append(pairs, entities.Pair{Key: mode, N: speed})
	}
	return pairs, true
}

func parseSpeedVector(v string) (string, int, bool) {
	if m := reSpeed.FindStringSubmatch(v); m != nil {
		mode := m[1]
		if mode == "" {
			mode = "walk"
		}
		n, _ := strconv.Atoi(m[2])
		return mode, n, true
	}
	if m := reSpeedModeLast.FindStringSubmatch(v); m != nil {
		n, _ := strconv.Atoi(m[1])
		return m[2], n, true
	}
	if m := reSpeedJustANumber.FindStringSubmatch(v); m != nil {
		n, _ := strconv.Atoi(m[1])
		return "walk", n, true
	}
	return "", 0, false
}

// parseSaves parses "Dex +5, Con +11" into lowercase ability keys.
func parseSaves(s string) ([]entities.Pair, bool) {
	var pairs []entities.Pair
	for _, item := range splitList(s, ",") {
		stat, bonus, ok := splitBonus(item)
		if !ok {
			return nil, false
		}
		pairs = append(pairs, entities.Pair{Key: strings.ToLower(stat), N: bonus})
	}
	return pairs, len(pairs) > 0
}

// parseSkills parses "perception +5, Stealth +6" with canonical skill names.
func parseSkills(s string) ([]entities.Pair, bool) {
	var pairs []entities.Pair
	for _, item := range splitList(s, ",") {
		skill, bonus, ok := splitBonus(item)
		if !ok {
			return nil, false
		}
		i := slices.IndexFunc(skillNames, func(name string) bool { return strings.EqualFold(name, skill) })
		if i < 0 {
			return nil, false
		}
		pairs = append(pairs, entities.Pair{Key: skillNames[i], N: bonus})
	}
	return pairs, len(pairs) > 0
}

// splitBonus splits "Sleight of Hand +4" at its last space.
func splitBonus(item string) (string, int, bool) {
	i := strings.LastIndexByte(item, ' ')
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(item[i+1:])
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(item[:i]), n, true
}

// parseSenses parses "darkvision 60 ft., blindsight 10 ft. (blind beyond this radius)".
func parseSenses(s string) ([]entities.Pair, bool) {
	var pairs []entities.Pair
	for _, item := range splitList(s, ",") {
		m := reSense.FindStringSubmatch(item)
		if m == nil {
			return nil, false
		}
		n, _ := strconv.Atoi(m[2])
		pairs = append(pairs, entities.Pair{Key: strings.ToLower(m[1]), N: n})
	}
	return pairs, len(pairs) > 0
}

func parseConditions(s string) []string {
	var out []string
	for _, part := range splitList(strings.ToLower(s), ";") {
		out = append(out, splitList(part, ",")...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
