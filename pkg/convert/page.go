package convert

import (
	"fmt"
	"strconv"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/alto"
)

// PageAttributes describes one surface of the output
type PageAttributes struct {
	ID      string // {document}_f{folio}
	N       string // Physical image number
	ULX     int    // Always 0
	ULY     int    // Always 0
	LRX     string // Page width
	LRY     string // Page height
	Graphic string // IIIF URL of the full page image
}

// PageAttributes reads the page definition of a layout file.
func (c *Converter) PageAttributes(page *alto.Document, doc string, folio int) (PageAttributes, error) {
	p := page.FirstPage()
	if p == nil {
		return PageAttributes{}, fmt.Errorf("%w: folio %d", ErrMissingPageElement, folio)
	}
	dims := []struct {
		name  string
		value string
	}{
		{"WIDTH", p.Width},
		{"HEIGHT", p.Height},
	}
	for _, d := range dims {
		if d.value == "" {
			return PageAttributes{}, fmt.Errorf("%w: page %s is missing", ErrMissingGeometry, d.name)
		}
		if _, err := strconv.ParseFloat(d.value, 64); err != nil {
			return PageAttributes{}, fmt.Errorf("%w: page %s is not a number: %q", ErrMissingGeometry, d.name, d.value)
		}
	}

	return PageAttributes{
		ID:      fmt.Sprintf("%s_f%d", doc, folio),
		N:       p.PhysicalImageNr,
		LRX:     p.Width,
		LRY:     p.Height,
		Graphic: c.ImageURL(doc, folio, "full"),
	}, nil
}
