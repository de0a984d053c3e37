// Package parsers reads raw compendium entries from dataset files.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEntry is one dataset element before it is typed into a record.
// Fields maps each child element name to its values in document order.
type RawEntry struct {
	Kind    string              `json:"kind"`
	Fields  map[string][]string `json:"fields"`
	LineNum int                 `json:"-"` // Line of the element in the source file (set by parser)
}

// First returns the first value of field, or false if there is none.
func (e RawEntry) First(field string) (string, bool) {
	values := e.Fields[field]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Parser defines the interface for reading entries from a dataset format.
type Parser interface {
	Parse(r io.Reader) ([]RawEntry, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "xml", "json". encoding only applies to XML.
func ForFormat(format, encoding string) Parser {
	switch strings.ToLower(format) {
	case "xml":
		return &XMLParser{Encoding: encoding}
	case "json":
		return &JSONParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename, encoding string) Parser {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return ForFormat(ext, encoding)
}
