// Package format renders records and collections as text.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/domain/query"
)

// ErrUnknownMethod is returned for a render method that does not exist.
var ErrUnknownMethod = errors.New("unknown render method")

// Method selects how Render prints each record.
type Method string

// Render methods.
const (
	MethodOneLine   Method = "oneline"
	MethodPointForm Method = "pointform"
	MethodXList     Method = "xlist"
	MethodFull      Method = "full"
	MethodRepr      Method = "repr"
)

// Methods lists the render methods in display order.
var Methods = []Method{MethodOneLine, MethodPointForm, MethodXList, MethodFull, MethodRepr}

// ParseMethod returns the method named s.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Options controls point form output.
type Options struct {
	// Header is the bullet of the summary line.
	Header string
	// Body is the bullet of every indented line.
	Body string
	// Tabstop is the indentation of body lines in spaces.
	Tabstop int
}

// DefaultOptions returns dash bullets indented by two spaces.
func DefaultOptions() Options {
	return Options{Header: "-", Body: "-", Tabstop: 2}
}

// XListOptions returns the xlist bullets with the given indentation.
func XListOptions(tabstop int) Options {
	return Options{Header: "*", Body: `"`, Tabstop: tabstop}
}

// Line returns the one-line summary of r.
func Line(r entities.Record) string {
	return r.Summary()
}

// Lines returns the summaries of every record in c, one per line.
func Lines[R entities.Record](c *query.Collection[R]) string {
	lines := make([]string, 0, c.Len())
	for _, r := range c.All() {
		lines = append(lines, Line(r))
	}
	return strings.Join(lines, "\n")
}

// PointForm returns the summary as a header bullet followed by one
// indented bullet per body line. Empty body lines keep their bullet.
func PointForm(r entities.Record, opts Options) string {
	indent := strings.Repeat(" ", max(opts.Tabstop, 0))
	var b strings.Builder
	b.WriteString(opts.Header)
	b.WriteByte(' ')
	b.WriteString(r.Summary())
	for _, line := range r.Body() {
		b.WriteByte('\n')
		b.WriteString(indent)
		b.WriteString(opts.Body)
		b.WriteByte(' ')
		b.WriteString(line)
	}
	return b.String()
}

// XList returns the point form with xlist bullets.
func XList(r entities.Record, tabstop int) string {
	return PointForm(r, XListOptions(tabstop))
}

type detailer interface {
	Details() []string
}

// Full returns the complete detail block of r. Records without one
// fall back to point form.
func Full(r entities.Record, opts Options) string {
	if d, ok := r.(detailer); ok {
		return strings.Join(d.Details(), "\n")
	}
	return PointForm(r, opts)
}

// Record renders a single record with method m.
func Record(r entities.Record, m Method, opts Options) (string, error) {
	switch m {
	case MethodOneLine:
		return Line(r), nil
	case MethodPointForm:
		return PointForm(r, opts), nil
	case MethodXList:
		return XList(r, opts.Tabstop), nil
	case MethodFull:
		return Full(r, opts), nil
	case MethodRepr:
		return r.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}
}

// Render renders every record of c with method m, separated by newlines.
func Render[R entities.Record](c *query.Collection[R], m Method, opts Options) (string, error) {
	if _, err := ParseMethod(string(m)); err != nil {
		return "", err
	}
	out := make([]string, 0, c.Len())
	for _, r := range c.All() {
		s, err := Record(r, m, opts)
		if err != nil {
			return "", err
		}
		out = append(out, s)
	}
	return strings.Join(out, "\n"), nil
}
