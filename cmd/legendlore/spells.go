package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/legendlore/internal/domain/format"
)

func newSpellsCmd() *cobra.Command {
	var (
		qf queryFlags
		rf renderFlags
	)
	formats := recordFormats(FormatTable)

	cmd := &cobra.Command{
		Use:   "spells",
		Short: "Query spells",
		Long: `Lists the spells matching every criterion, in compendium order.

Examples:
  legendlore spells -w level=4 -w classes~Bard
  legendlore spells -w "name~Circle" -f pointform
  legendlore spells -w classes~Wizard -f table > wizard.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpells(cmd, qf, rf, formats)
		},
	}

	addQueryFlags(cmd, &qf)
	addRenderFlags(cmd, &rf, formats)

	return cmd
}

func runSpells(cmd *cobra.Command, qf queryFlags, rf renderFlags, formats []string) error {
	if err := checkFormat(rf.format, formats); err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		spells, err := d.QueryHandler.Spells(ctx, qf.options())
		if err != nil {
			return err
		}
		d.Log.Debug("spells selected", "count", spells.Len())

		if rf.format == FormatTable {
			return format.ClassTable(cmd.OutOrStdout(), spells)
		}
		return render(cmd.OutOrStdout(), spells, rf.format, rf.options(d))
	})
}
