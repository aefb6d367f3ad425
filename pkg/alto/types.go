package alto

import "encoding/xml"

// Namespace is the ALTO v4 namespace. Element matching is done on local names,
// so v2 and v3 files decode with the same types.
const Namespace = "http://www.loc.gov/standards/alto/ns-v4#"

// Document represents one ALTO file
type Document struct {
	XMLName xml.Name `xml:"alto"`
	Tags    Tags     `xml:"Tags"`   // Controlled vocabulary of zone labels
	Layout  Layout   `xml:"Layout"` // Page layout
}

// Tags holds the tag definitions referenced by zones
type Tags struct {
	Other []OtherTag `xml:"OtherTag"`
}

// OtherTag maps a tag ID to its label, e.g. TB1 → "MainZone:column#1"
type OtherTag struct {
	ID    string `xml:"ID,attr"`
	Label string `xml:"LABEL,attr"`
}

// Layout wraps the pages of the file
type Layout struct {
	Pages []Page `xml:"Page"`
}

// Page is the page definition of a scanned folio
type Page struct {
	ID              string       `xml:"ID,attr"`
	Width           string       `xml:"WIDTH,attr"`           // Page width in pixels
	Height          string       `xml:"HEIGHT,attr"`          // Page height in pixels
	PhysicalImageNr string       `xml:"PHYSICAL_IMG_NR,attr"` // Image index in the digitised set
	PrintSpaces     []PrintSpace `xml:"PrintSpace"`
}

// PrintSpace is the printed (or written) area of a page
type PrintSpace struct {
	Blocks []TextBlock `xml:"TextBlock"`
}

// Geometry is the bounding box of a zone. Values are kept as written in the source.
type Geometry struct {
	HPos   string `xml:"HPOS,attr"`   // Left coordinate
	VPos   string `xml:"VPOS,attr"`   // Top coordinate
	Width  string `xml:"WIDTH,attr"`  // Box width
	Height string `xml:"HEIGHT,attr"` // Box height
}

// Zone holds what blocks and lines have in common
type Zone struct {
	ID      string `xml:"ID,attr"`
	TagRefs string `xml:"TAGREFS,attr"`
	Geometry
	Shape *Shape `xml:"Shape"`
}

// Polygon returns the zone's own outline, or nil when the zone has none
func (z Zone) Polygon() *Polygon {
	if z.Shape == nil {
		return nil
	}
	return z.Shape.Polygon
}

// TextBlock is a text region of the print space
type TextBlock struct {
	Zone
	Lines []TextLine `xml:"TextLine"`
}

// TextLine is a line of text within a block
type TextLine struct {
	Zone
	Strings []String `xml:"String"`
}

// String is a text run within a line
type String struct {
	ID      string `xml:"ID,attr"`
	Content string `xml:"CONTENT,attr"`
}

// Shape wraps a zone outline
type Shape struct {
	Polygon *Polygon `xml:"Polygon"`
}

// Polygon lists outline points as whitespace separated "x y" pairs
type Polygon struct {
	Points string `xml:"POINTS,attr"`
}
