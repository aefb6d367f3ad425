package alto

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// Parse decodes an ALTO document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = CharsetReader

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode ALTO: %w", err)
	}
	return &doc, nil
}

// ParseFile reads and decodes the ALTO file at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// CharsetReader converts non UTF-8 input declared in the XML prolog to UTF-8.
// Latin-1 is decoded directly, other labels go through the WHATWG encoding table.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1", "l1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	}
	r, err := charset.NewReaderLabel(label, input)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return r, nil
}

// FirstPage returns the first page definition of the document, or nil
func (d *Document) FirstPage() *Page {
	if len(d.Layout.Pages) == 0 {
		return nil
	}
	return &d.Layout.Pages[0]
}

// Blocks returns every text block placed directly in a print space, in document order
func (d *Document) Blocks() []TextBlock {
	var blocks []TextBlock
	for _, page := range d.Layout.Pages {
		for _, ps := range page.PrintSpaces {
			blocks = append(blocks, ps.Blocks...)
		}
	}
	return blocks
}

// LinesOf returns the lines of every text block whose ID is blockID, in document order
func (d *Document) LinesOf(blockID string) []TextLine {
	var lines []TextLine
	for _, block := range d.Blocks() {
		if block.ID == blockID {
			lines = append(lines, block.Lines...)
		}
	}
	return lines
}

// Lines returns the lines of every text block in the print spaces
func (d *Document) Lines() []TextLine {
	var lines []TextLine
	for _, block := range d.Blocks() {
		lines = append(lines, block.Lines...)
	}
	return lines
}
