package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/legendlore/internal/domain/entities"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "fields [spells|monsters]",
		Short:     "List the queryable fields",
		Long:      "Lists the fields usable in --where, --search-field and --sort, for one kind or all of them.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"spells", "monsters"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := entities.Kinds
			if len(args) == 1 {
				kind, ok := entities.ParseKind(args[0])
				if !ok {
					return fmt.Errorf("invalid kind %q, valid kinds: %v", args[0], entities.Kinds)
				}
				kinds = []entities.Kind{kind}
			}
			return writeFields(cmd.OutOrStdout(), kinds)
		},
	}
}

func writeFields(out io.Writer, kinds []entities.Kind) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tFIELD")
	for _, kind := range kinds {
		for _, f := range kind.Fields() {
			fmt.Fprintf(w, "%s\t%s\n", kind, f)
		}
	}
	return w.Flush()
}
