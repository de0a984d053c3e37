package compendium

import (
	"strconv"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
)

const (
	concentrationPrefix = "Concentration, "
	sourcePrefix        = "Source:"
)

func spellFields(f fieldReader) map[entities.Field]entities.Value {
	fields := make(map[entities.Field]entities.Value)

	if s, ok := f.text("name"); ok {
		fields[entities.FieldName] = entities.Text(s)
	}
	if s, ok := f.text("level"); ok {
		if n, err := strconv.Atoi(s); err == nil {
			fields[entities.FieldLevel] = entities.Int(n)
		} else {
			f.warn("level", s)
		}
	}
	if s, ok := f.text("school"); ok {
		fields[entities.FieldSchool] = entities.Text(entities.SchoolName(s))
	}
	if s, ok := f.text("ritual"); ok {
		fields[entities.FieldRitual] = entities.Bool(strings.EqualFold(s, "YES"))
	}
	if s, ok := f.text("time"); ok {
		fields[entities.FieldTime] = entities.Ordinal(entities.ScaleTime, s)
	}
	if s, ok := f.text("range"); ok {
		fields[entities.FieldRange] = entities.Ordinal(entities.ScaleRange, s)
	}
	if s, ok := f.text("components"); ok {
		fields[entities.FieldComponents] = entities.Text(s)
	}
	if s, ok := f.text("duration"); ok {
		if rest, found := strings.CutPrefix(s, concentrationPrefix); found {
			fields[entities.FieldConcentration] = entities.Bool(true)
			s = rest
		}
		fields[entities.FieldDuration] = entities.Ordinal(entities.ScaleDuration, s)
	}
	if s, ok := f.text("classes"); ok {
		if classes := splitList(s, ","); len(classes) > 0 {
			fields[entities.FieldClasses] = entities.List(entities.SortClasses(classes)...)
		}
	}

	paragraphs, sources := spellText(f.all("text"))
	for _, s := range f.all("source") {
		sources = append(sources, splitList(s, ",")...)
	}
	if len(paragraphs) > 0 {
		fields[entities.FieldText] = entities.Text(strings.Join(paragraphs, "\n"))
	}
	if len(sources) > 0 {
		fields[entities.FieldSource] = entities.List(sources...)
	}

	var rolls []string
	for _, r := range f.all("roll") {
		if r = strings.TrimSpace(r); r != "" {
			rolls = append(rolls, r)
		}
	}
	if len(rolls) > 0 {
		fields[entities.FieldRoll] = entities.List(rolls...)
	}

	return fields
}

// spellText separates trailing "Source:" paragraphs from the description.
func spellText(texts []string) (paragraphs, sources []string) {
	end := len(texts)
	for end > 0 {
		t := strings.TrimSpace(texts[end-1])
		if t == "" {
			end--
			continue
		}
		rest, ok := strings.CutPrefix(t, sourcePrefix)
		if !ok {
			break
		}
		sources = append(splitList(rest, ","), sources...)
		end--
	}
	if len(sources) == 0 {
		return texts, nil
	}
	return texts[:end], sources
}
