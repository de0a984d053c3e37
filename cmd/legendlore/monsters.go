package main

import (
	"github.com/spf13/cobra"
)

func newMonstersCmd() *cobra.Command {
	var (
		qf queryFlags
		rf renderFlags
	)
	formats := recordFormats()

	cmd := &cobra.Command{
		Use:   "monsters",
		Short: "Query monsters",
		Long: `Lists the monsters matching every criterion, in compendium order.

Examples:
  legendlore monsters -w "cr>=10" --sort cr
  legendlore monsters -w speed?fly -w size=L -f full
  legendlore monsters -w "!legendary" -s dragon`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonsters(cmd, qf, rf, formats)
		},
	}

	addQueryFlags(cmd, &qf)
	addRenderFlags(cmd, &rf, formats)

	return cmd
}

func runMonsters(cmd *cobra.Command, qf queryFlags, rf renderFlags, formats []string) error {
	if err := checkFormat(rf.format, formats); err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		monsters, err := d.QueryHandler.Monsters(ctx, qf.options())
		if err != nil {
			return err
		}
		d.Log.Debug("monsters selected", "count", monsters.Len())

		return render(cmd.OutOrStdout(), monsters, rf.format, rf.options(d))
	})
}
