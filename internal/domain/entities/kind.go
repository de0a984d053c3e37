// Package entities contains the core record types of a compendium.
package entities

import "slices"

// Kind identifies the sort of entry a record was built from.
type Kind string

// Record kinds found in a compendium.
const (
	KindSpell   Kind = "spell"
	KindMonster Kind = "monster"
)

// Kinds lists all supported record kinds.
var Kinds = []Kind{KindSpell, KindMonster}

// Field names a single attribute of a record.
// The set of valid fields is closed per kind, see Kind.Fields.
type Field string

// Spell fields.
const (
	FieldName          Field = "name"
	FieldLevel         Field = "level"
	FieldSchool        Field = "school"
	FieldRitual        Field = "ritual"
	FieldTime          Field = "time"
	FieldRange         Field = "range"
	FieldComponents    Field = "components"
	FieldDuration      Field = "duration"
	FieldConcentration Field = "concentration"
	FieldClasses       Field = "classes"
	FieldText          Field = "text"
	FieldRoll          Field = "roll"
	FieldSource        Field = "source"
)

// Monster fields. FieldName, FieldText and FieldSource are shared with spells.
const (
	FieldSize            Field = "size"
	FieldType            Field = "type"
	FieldAlignment       Field = "alignment"
	FieldAC              Field = "ac"
	FieldACNum           Field = "ac_num"
	FieldArmor           Field = "armor"
	FieldHP              Field = "hp"
	FieldHitDice         Field = "hitdice"
	FieldSpeed           Field = "speed"
	FieldStr             Field = "str"
	FieldDex             Field = "dex"
	FieldCon             Field = "con"
	FieldInt             Field = "int"
	FieldWis             Field = "wis"
	FieldCha             Field = "cha"
	FieldSaves           Field = "saves"
	FieldSkills          Field = "skills"
	FieldPassive         Field = "passive"
	FieldSenses          Field = "senses"
	FieldLanguages       Field = "languages"
	FieldCR              Field = "cr"
	FieldResist          Field = "resist"
	FieldImmune          Field = "immune"
	FieldVulnerable      Field = "vulnerable"
	FieldConditionImmune Field = "condition_immune"
	FieldSpells          Field = "spells"
	FieldSlots           Field = "slots"
	FieldDescription     Field = "description"
	FieldEnvironment     Field = "environment"
	FieldTrait           Field = "trait"
	FieldAction          Field = "action"
	FieldReaction        Field = "reaction"
	FieldLegendary       Field = "legendary"
)

var spellFields = []Field{
	FieldName, FieldLevel, FieldSchool, FieldRitual, FieldTime, FieldRange,
	FieldComponents, FieldDuration, FieldConcentration, FieldClasses,
	FieldText, FieldRoll, FieldSource,
}

var monsterFields = []Field{
	FieldName, FieldSize, FieldType, FieldAlignment,
	FieldAC, FieldACNum, FieldArmor, FieldHP, FieldHitDice, FieldSpeed,
	FieldStr, FieldDex, FieldCon, FieldInt, FieldWis, FieldCha,
	FieldSaves, FieldSkills, FieldPassive, FieldSenses, FieldLanguages, FieldCR,
	FieldResist, FieldImmune, FieldVulnerable, FieldConditionImmune,
	FieldSpells, FieldSlots, FieldDescription, FieldEnvironment,
	FieldTrait, FieldAction, FieldReaction, FieldLegendary, FieldSource,
}

// IsFlag reports whether the field holds a boolean. Flag fields are
// always present on the records that carry them.
func (f Field) IsFlag() bool {
	return f == FieldRitual || f == FieldConcentration
}

// Fields returns the closed set of fields a record of this kind may carry.
func (k Kind) Fields() []Field {
	switch k {
	case KindSpell:
		return slices.Clone(spellFields)
	case KindMonster:
		return slices.Clone(monsterFields)
	default:
		return nil
	}
}

// HasField reports whether f belongs to the field set of kind k.
func (k Kind) HasField(f Field) bool {
	switch k {
	case KindSpell:
		return slices.Contains(spellFields, f)
	case KindMonster:
		return slices.Contains(monsterFields, f)
	default:
		return false
	}
}

// IsValid reports whether k is a supported record kind.
func (k Kind) IsValid() bool {
	return slices.Contains(Kinds, k)
}

// ParseKind converts a kind name to a Kind. Plural forms are accepted.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "spell", "spells":
		return KindSpell, true
	case "monster", "monsters":
		return KindMonster, true
	default:
		return "", false
	}
}
