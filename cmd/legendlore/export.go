package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/query"
)

type exportFlags struct {
	query  queryFlags
	format string
	output string
}

type exporter struct {
	format string
	output string
	stdout io.Writer
}

// origined is implemented by records that know the source element they came from.
type origined interface {
	Origin() entities.Origin
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:       "export <spells|monsters>",
		Short:     "Export records to file",
		Long:      "Exports the records matching the query to JSON, CSV, or markdown format.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"spells", "monsters"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], flags)
		},
	}

	addQueryFlags(cmd, &flags.query)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, kindName string, flags exportFlags) error {
	if err := checkFormat(flags.format, validFormats); err != nil {
		return err
	}

	kind, ok := entities.ParseKind(kindName)
	if !ok {
		return fmt.Errorf("invalid kind %q, valid kinds: %v", kindName, entities.Kinds)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		var records []entities.Record
		switch kind {
		case entities.KindSpell:
			spells, err := d.QueryHandler.Spells(ctx, flags.query.options())
			if err != nil {
				return err
			}
			records = asRecords(spells)
		case entities.KindMonster:
			monsters, err := d.QueryHandler.Monsters(ctx, flags.query.options())
			if err != nil {
				return err
			}
			records = asRecords(monsters)
		}

		if len(records) == 0 {
			return fmt.Errorf("no %ss found to export", kind)
		}

		e := &exporter{
			format: flags.format,
			output: flags.output,
			stdout: cmd.OutOrStdout(),
		}
		return e.export(kind, records)
	})
}

func asRecords[R entities.Record](c *query.Collection[R]) []entities.Record {
	records := make([]entities.Record, 0, c.Len())
	for _, r := range c.All() {
		records = append(records, r)
	}
	return records
}

func (e *exporter) export(kind entities.Kind, records []entities.Record) (err error) {
	var w io.Writer
	var f *os.File

	if e.output != "" {
		f, err = os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = e.stdout
	}

	if err := e.formatRecords(w, kind, records); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Fprintf(e.stdout, "Exported %d %ss to %s\n", len(records), kind, e.output)
	}

	return nil
}

func (e *exporter) formatRecords(w io.Writer, kind entities.Kind, records []entities.Record) error {
	switch e.format {
	case "json":
		return formatJSON(w, kind, records)
	case "csv":
		return formatCSV(w, records)
	case "markdown":
		return formatMarkdown(w, kind, records)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

type exportRecord struct {
	ID      string                            `json:"id"`
	Kind    entities.Kind                     `json:"kind"`
	Name    string                            `json:"name"`
	Summary string                            `json:"summary"`
	Source  string                            `json:"source_file,omitempty"`
	Fields  map[entities.Field]entities.Value `json:"fields"`
}

func newExportRecord(kind entities.Kind, r entities.Record) exportRecord {
	rec := exportRecord{
		ID:      r.ID().String(),
		Kind:    kind,
		Name:    r.Name(),
		Summary: r.Summary(),
		Fields:  make(map[entities.Field]entities.Value),
	}
	if o, ok := r.(origined); ok {
		rec.Source = o.Origin().Source
	}
	for _, f := range kind.Fields() {
		if v, ok := r.Lookup(f); ok {
			rec.Fields[f] = v
		}
	}
	return rec
}

func formatJSON(w io.Writer, kind entities.Kind, records []entities.Record) error {
	exportRecords := make([]exportRecord, 0, len(records))
	for _, r := range records {
		exportRecords = append(exportRecords, newExportRecord(kind, r))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportRecords)
}

func formatCSV(w io.Writer, records []entities.Record) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "kind", "name", "summary", "source_file"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		source := ""
		if o, ok := r.(origined); ok {
			source = o.Origin().Source
		}
		row := []string{
			r.ID().String(),
			string(r.Kind()),
			r.Name(),
			r.Summary(),
			source,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, kind entities.Kind, records []entities.Record) error {
	if _, err := fmt.Fprintf(w, "# Exported %ss\n\nTotal: %d %ss\n\n", kind, len(records), kind); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Name | Summary |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|---------|\n"); err != nil {
		return err
	}

	for _, r := range records {
		if _, err := fmt.Fprintf(w, "| %s | %s |\n",
			escapeMarkdown(r.Name()),
			escapeMarkdown(r.Summary()),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
