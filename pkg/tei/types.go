package tei

import "encoding/xml"

// TEI is the root element of the output document
type TEI struct {
	XMLName   xml.Name  `xml:"http://www.tei-c.org/ns/1.0 TEI"`
	ID        string    `xml:"http://www.w3.org/XML/1998/namespace id,attr"`
	Header    *Header   `xml:"teiHeader,omitempty"`
	SourceDoc SourceDoc `xml:"sourceDoc"`
}

// SourceDoc holds the transcription of the physical source
type SourceDoc struct {
	SurfaceGrp SurfaceGrp `xml:"surfaceGrp"`
}

// SurfaceGrp groups the surfaces (pages) of the document
type SurfaceGrp struct {
	Surfaces []Surface `xml:"surface"`
}

// Surface is one page, with its upper-left and lower-right corners
type Surface struct {
	ID      string  `xml:"http://www.w3.org/XML/1998/namespace id,attr"`
	N       string  `xml:"n,attr"`
	ULX     string  `xml:"ulx,attr"`
	ULY     string  `xml:"uly,attr"`
	LRX     string  `xml:"lrx,attr"`
	LRY     string  `xml:"lry,attr"`
	Graphic Graphic `xml:"graphic"`
	Zones   []Zone  `xml:"zone"`
}

// Graphic references the image of a surface
type Graphic struct {
	URL string `xml:"url,attr"`
}

// Zone is a text block or a text line
type Zone struct {
	ID      string `xml:"http://www.w3.org/XML/1998/namespace id,attr"`
	Type    string `xml:"type,attr"`
	Subtype string `xml:"subtype,attr"`
	N       string `xml:"n,attr"`
	Points  string `xml:"points,attr"`
	Source  string `xml:"source,attr"`
	Zones   []Zone `xml:"zone"`
	Line    *Line  `xml:"line,omitempty"`
}

// Line marks a zone that carries text. The text itself is not transcribed.
type Line struct{}

// Header is the teiHeader
type Header struct {
	FileDesc FileDesc `xml:"fileDesc"`
}

// FileDesc describes the electronic file and its source
type FileDesc struct {
	TitleStmt  TitleStmt   `xml:"titleStmt"`
	SourceDesc *SourceDesc `xml:"sourceDesc,omitempty"`
}

// TitleStmt names the work and who is responsible for it
type TitleStmt struct {
	Title    string    `xml:"title"`
	Author   *Author   `xml:"author,omitempty"`
	RespStmt *RespStmt `xml:"respStmt,omitempty"`
}

// Author of the work
type Author struct {
	ID       string   `xml:"http://www.w3.org/XML/1998/namespace id,attr,omitempty"`
	PersName PersName `xml:"persName"`
}

// PersName is a personal name with an optional authority pointer
type PersName struct {
	Name     string `xml:"name,omitempty"`
	Forename string `xml:"forename,omitempty"`
	Surname  string `xml:"surname,omitempty"`
	Ptr      *Ptr   `xml:"ptr,omitempty"`
}

// Ptr points to an external authority record
type Ptr struct {
	Type   string `xml:"type,attr"`
	Target string `xml:"target,attr"`
}

// RespStmt records an editorial responsibility
type RespStmt struct {
	ID       string   `xml:"http://www.w3.org/XML/1998/namespace id,attr,omitempty"`
	Resp     string   `xml:"resp"`
	PersName PersName `xml:"persName"`
}

// SourceDesc describes the printed or manuscript source
type SourceDesc struct {
	Bibl Bibl `xml:"bibl"`
}

// Bibl is a bibliographic citation of the source
type Bibl struct {
	Ptr       *Ptr         `xml:"ptr,omitempty"`
	Title     string       `xml:"title,omitempty"`
	Authors   []BiblAuthor `xml:"author"`
	Publisher string       `xml:"publisher,omitempty"`
	PubPlace  *PubPlace    `xml:"pubPlace,omitempty"`
	Date      *Date        `xml:"date,omitempty"`
	Idno      string       `xml:"idno,omitempty"`
}

// IsZero reports whether the citation holds nothing to print
func (b Bibl) IsZero() bool {
	return b.Ptr == nil && b.Title == "" && len(b.Authors) == 0 && b.Publisher == "" &&
		b.PubPlace == nil && b.Date == nil && b.Idno == ""
}

// BiblAuthor is an author as named in the catalogue
type BiblAuthor struct {
	ID   string `xml:"http://www.w3.org/XML/1998/namespace id,attr,omitempty"`
	Ref  string `xml:"ref,attr,omitempty"`
	Name string `xml:",chardata"`
}

// PubPlace with an optional country code in @key
type PubPlace struct {
	Key   string `xml:"key,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Date with a normalised value in @when
type Date struct {
	When  string `xml:"when,attr,omitempty"`
	Value string `xml:",chardata"`
}
