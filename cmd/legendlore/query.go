package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/legendlore/internal/application/handlers"
)

// queryFlags are shared by every command that selects records.
type queryFlags struct {
	where       []string
	search      string
	searchField string
	text        string
	sort        string
	reverse     bool
	limit       int
}

func addQueryFlags(cmd *cobra.Command, flags *queryFlags) {
	cmd.Flags().StringArrayVarP(&flags.where, "where", "w", nil,
		"Criterion field<op>value, repeatable; ops: = != < <= > >= ~ (a|b) ~= ^= =~ ?, or !field")
	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "Keep records whose name contains the text")
	cmd.Flags().StringVar(&flags.searchField, "search-field", "", "Keep records whose field contains the text (field=text)")
	cmd.Flags().StringVarP(&flags.text, "text", "t", "", "Keep records with any field containing the text")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "Sort by field")
	cmd.Flags().BoolVarP(&flags.reverse, "reverse", "r", false, "Reverse the sort order")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", 0, "Maximum number of records (0: all)")
}

func (f queryFlags) options() handlers.QueryOptions {
	return handlers.QueryOptions{
		Where:       f.where,
		Search:      f.search,
		SearchField: f.searchField,
		Text:        f.text,
		Sort:        f.sort,
		Reverse:     f.reverse,
		Limit:       f.limit,
	}
}
