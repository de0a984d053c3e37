package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/format"
	"github.com/ersonp/legendlore/internal/domain/query"
)

type renderFlags struct {
	format  string
	tabstop int
}

func addRenderFlags(cmd *cobra.Command, flags *renderFlags, formats []string) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(format.MethodOneLine), fmt.Sprintf("Output format %v", formats))
	cmd.Flags().IntVar(&flags.tabstop, "tabstop", -1, "Indent of point form bullets (default: from config)")
}

func recordFormats(extra ...string) []string {
	formats := make([]string, 0, len(format.Methods)+len(extra))
	for _, m := range format.Methods {
		formats = append(formats, string(m))
	}
	return append(formats, extra...)
}

func (f renderFlags) options(d *Deps) format.Options {
	opts := d.FormatOptions()
	if f.tabstop >= 0 {
		opts.Tabstop = f.tabstop
	}
	return opts
}

// render writes c with the selected formatter method.
func render[R entities.Record](w io.Writer, c *query.Collection[R], method string, opts format.Options) error {
	m, err := format.ParseMethod(method)
	if err != nil {
		return err
	}
	if c.Len() == 0 {
		return nil
	}
	out, err := format.Render(c, m, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func checkFormat(name string, formats []string) error {
	if !slices.Contains(formats, name) {
		return fmt.Errorf("invalid format %q, valid formats: %v", name, formats)
	}
	return nil
}
