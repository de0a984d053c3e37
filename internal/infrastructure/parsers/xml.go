package parsers

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// XMLParser parses entries from an FC5e compendium document. Every child
// of the root element becomes one entry. Leaf children become fields;
// nested children such as trait or action become "Name. text" values.
type XMLParser struct {
	// Encoding overrides the encoding declared by the document.
	Encoding string
}

type xmlNode struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

// Parse reads XML from the reader and returns parsed entries.
func (p *XMLParser) Parse(r io.Reader) ([]RawEntry, error) {
	decoder, err := p.newDecoder(r)
	if err != nil {
		return nil, err
	}

	entries := []RawEntry{}
	depth := 0
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth++
				continue
			}
			line, _ := decoder.InputPos()
			var node xmlNode
			if err := decoder.DecodeElement(&node, &t); err != nil {
				return nil, fmt.Errorf("parsing XML %s at line %d: %w", t.Name.Local, line, err)
			}
			entries = append(entries, node.entry(line))
		case xml.EndElement:
			depth--
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("parsing XML: unexpected end of document")
	}
	return entries, nil
}

func (p *XMLParser) newDecoder(r io.Reader) (*xml.Decoder, error) {
	if p.Encoding != "" && !isUTF8(p.Encoding) {
		dec, err := decodeFrom(p.Encoding, r)
		if err != nil {
			return nil, err
		}
		decoder := xml.NewDecoder(dec)
		// Input is already UTF-8, whatever the declaration says.
		decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
			return input, nil
		}
		return decoder, nil
	}

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = decodeFrom
	return decoder, nil
}

func decodeFrom(label string, input io.Reader) (io.Reader, error) {
	if isUTF8(label) {
		return input, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

func isUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

func (n xmlNode) entry(line int) RawEntry {
	e := RawEntry{Kind: n.XMLName.Local, Fields: map[string][]string{}, LineNum: line}
	for _, child := range n.Children {
		name := child.XMLName.Local
		if len(child.Children) == 0 {
			e.Fields[name] = append(e.Fields[name], strings.TrimSpace(child.Text))
			continue
		}
		e.Fields[name] = append(e.Fields[name], child.flatten())
	}
	return e
}

// flatten renders a nested block as its name, a period and its text lines.
func (n xmlNode) flatten() string {
	var name string
	var texts []string
	for _, c := range n.Children {
		switch c.XMLName.Local {
		case "name":
			name = strings.TrimSpace(c.Text)
		case "text":
			if s := strings.TrimSpace(c.Text); s != "" {
				texts = append(texts, s)
			}
		}
	}
	body := strings.Join(texts, " ")
	switch {
	case name == "":
		return body
	case body == "":
		return name + "."
	default:
		return name + ". " + body
	}
}
