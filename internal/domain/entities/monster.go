package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered for monster fields that have no value.
const Placeholder = "--"

var crFractions = map[float64]string{
	0.125: "1/8",
	0.25:  "1/4",
	0.5:   "1/2",
}

// Monster is a monster stat block.
type Monster struct {
	record
}

// NewMonster builds a monster from its field values.
func NewMonster(origin Origin, fields map[Field]Value) (*Monster, error) {
	if v, ok := fields[FieldName]; !ok || v.Text() == "" {
		return nil, ErrMissingName
	}
	r, err := newRecord(KindMonster, origin, fields)
	if err != nil {
		return nil, err
	}
	return &Monster{record: r}, nil
}

// Type returns the creature type, e.g. "humanoid (goblinoid)".
func (m *Monster) Type() string { return m.text(FieldType) }

// CR returns the challenge rating.
func (m *Monster) CR() (float64, bool) { return m.number(FieldCR) }

// HP returns the average hit points.
func (m *Monster) HP() (int, bool) {
	n, ok := m.number(FieldHP)
	return int(n), ok
}

// Speed returns the movement modes in source order.
func (m *Monster) Speed() []Pair { return m.fields[FieldSpeed].Pairs() }

// FormatCR renders a challenge rating the way summaries show it:
// 1/8, 1/4 and 1/2 as fractions, everything else with one decimal.
func FormatCR(cr float64) string {
	if f, ok := crFractions[cr]; ok {
		return f
	}
	return crDecimal(cr)
}

func crDecimal(cr float64) string {
	if cr == math.Trunc(cr) {
		return strconv.FormatFloat(cr, 'f', 1, 64)
	}
	return strconv.FormatFloat(cr, 'g', -1, 64)
}

func (m *Monster) speeds() string {
	pairs := m.Speed()
	if len(pairs) == 0 {
		return "NO MOVEMENT"
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Key + " " + strconv.Itoa(p.N)
	}
	return strings.Join(parts, ", ")
}

func (m *Monster) crText(decimal bool) string {
	cr, ok := m.CR()
	if !ok {
		return Placeholder
	}
	if decimal {
		return crDecimal(cr)
	}
	return FormatCR(cr)
}

// Summary renders the monster as e.g.
// "Giant Crab: M unaligned beast, 1/8CR 13HP/3d8 15AC (walk 30, swim 30)".
func (m *Monster) Summary() string {
	return fmt.Sprintf("%s: %s %s %s, %sCR %sHP/%s %sAC (%s)",
		m.Name(),
		m.display(FieldSize, Placeholder),
		m.display(FieldAlignment, Placeholder),
		m.display(FieldType, Placeholder),
		m.crText(false),
		m.display(FieldHP, Placeholder),
		m.display(FieldHitDice, Placeholder),
		m.display(FieldACNum, Placeholder),
		m.speeds())
}

// Details returns the full stat block, one line per entry.
// The first two lines repeat the identifying fields of the summary.
func (m *Monster) Details() []string {
	d := func(f Field) string { return m.display(f, Placeholder) }

	lines := []string{
		fmt.Sprintf("%s (%s %s)  Size: %s  CR: %s", m.Name(), d(FieldAlignment), d(FieldType), d(FieldSize), m.crText(true)),
		fmt.Sprintf("HP: %s(%s)  AC: %s(%s)  Speed: %s", d(FieldHP), d(FieldHitDice), d(FieldAC), d(FieldACNum), d(FieldSpeed)),
		fmt.Sprintf("STR:%s DEX:%s CON:%s INT:%s WIS:%s CHA:%s",
			d(FieldStr), d(FieldDex), d(FieldCon), d(FieldInt), d(FieldWis), d(FieldCha)),
	}

	optional := func(label string, f Field) {
		if v, ok := m.fields[f]; ok {
			lines = append(lines, label+": "+v.String())
		}
	}
	set := func(label string, f Field) {
		if v, ok := m.fields[f]; ok {
			lines = append(lines, label+": "+SetLiteral(v.List()))
		}
	}

	optional("skills", FieldSkills)
	optional("saves", FieldSaves)
	lines = append(lines, "passive perception: "+d(FieldPassive))
	optional("senses", FieldSenses)
	optional("spells", FieldSpells)
	optional("slots", FieldSlots)
	optional("armor", FieldArmor)
	set("immunities", FieldImmune)
	set("resistances", FieldResist)
	set("condition immunities", FieldConditionImmune)
	set("vulnerabilities", FieldVulnerable)
	if v, ok := m.fields[FieldDescription]; ok {
		lines = append(lines, v.Text())
	}
	return lines
}

// Body returns the stat block lines after the identifying ones.
func (m *Monster) Body() []string { return m.Details()[2:] }

func (m *Monster) String() string {
	return fmt.Sprintf("Monster({'name': %s, 'type': %s})", m.Name(), m.display(FieldType, Placeholder))
}
