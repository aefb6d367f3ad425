package metadata

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
)

// SRU namespaces of the catalogue responses
const (
	SRWNamespace         = "http://www.loc.gov/zing/srw/"
	MARCXchangeNamespace = "info:lc/xmlns/marcxchange-v2"
)

// SearchResponse is an SRU searchRetrieve response carrying MARCXchange records
type SearchResponse struct {
	XMLName         xml.Name `xml:"searchRetrieveResponse"`
	Version         string   `xml:"version"`
	NumberOfRecords int      `xml:"numberOfRecords"`
	Records         []Record `xml:"records>record>recordData>record"`
}

// First returns the first record, or nil when the search found nothing
func (r *SearchResponse) First() *Record {
	if len(r.Records) == 0 {
		return nil
	}
	return &r.Records[0]
}

// Record is a UNIMARC record
type Record struct {
	ID            string         `xml:"id,attr"`
	Type          string         `xml:"type,attr"`
	Leader        string         `xml:"leader"`
	ControlFields []ControlField `xml:"controlfield"`
	DataFields    []DataField    `xml:"datafield"`
}

// ControlField is a fixed-length field such as 001 (record identifier)
type ControlField struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

// DataField is a variable field made of coded subfields
type DataField struct {
	Tag       string     `xml:"tag,attr"`
	Ind1      string     `xml:"ind1,attr"`
	Ind2      string     `xml:"ind2,attr"`
	Subfields []Subfield `xml:"subfield"`
}

// Subfield is one coded value of a data field
type Subfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// Subfields returns every value of tag$code, in record order
func (r *Record) Subfields(tag, code string) []string {
	var values []string
	for _, f := range r.DataFields {
		if f.Tag != tag {
			continue
		}
		for _, s := range f.Subfields {
			if s.Code == code {
				values = append(values, strings.TrimSpace(s.Value))
			}
		}
	}
	return values
}

// Subfield returns the first value of tag$code, e.g. Subfield("200", "a") for the title
func (r *Record) Subfield(tag, code string) string {
	if values := r.Subfields(tag, code); len(values) > 0 {
		return values[0]
	}
	return ""
}

// Subfield returns the first value of code in this field
func (f DataField) Subfield(code string) string {
	for _, s := range f.Subfields {
		if s.Code == code {
			return strings.TrimSpace(s.Value)
		}
	}
	return ""
}

// ControlField returns the value of the control field tag, e.g. 003 for the permalink
func (r *Record) ControlField(tag string) string {
	for _, f := range r.ControlFields {
		if f.Tag == tag {
			return strings.TrimSpace(f.Value)
		}
	}
	return ""
}

// CatalogueAuthor is one 700 field of a record
type CatalogueAuthor struct {
	Surname    string // 700$a
	Forename   string // 700$b
	Identifier string // 700$o, authority record of the person
}

// Name joins surname and forename the way the catalogue displays them
func (a CatalogueAuthor) Name() string {
	if a.Surname != "" && a.Forename != "" {
		return a.Surname + ", " + a.Forename
	}
	return firstOf(a.Surname, a.Forename)
}

// ID builds the xml:id of the n-th author from the first two letters of its name
func (a CatalogueAuthor) ID(n int) string {
	name := []rune(firstOf(a.Surname, a.Forename))
	if len(name) == 0 {
		return ""
	}
	return fmt.Sprintf("%s%d", string(name[:min(2, len(name))]), n)
}

// Bibliographic holds the UNIMARC fields used in the source description
type Bibliographic struct {
	Title     string // 200$a
	FormTitle string // Last 503$a
	Object    string // 200$b, manuscript or print
	Publisher string // 210$c
	Place     string // 210$a, else 620$d
	Country   string // 102$a
	Date      string // 210$d
	Authors   []CatalogueAuthor
	Link      string // 003
	Shelfmark string // 930$a
}

// Bibliographic reads the source description fields of the record
func (r *Record) Bibliographic() Bibliographic {
	bib := Bibliographic{
		Title:     r.Subfield("200", "a"),
		Object:    r.Subfield("200", "b"),
		Publisher: r.Subfield("210", "c"),
		Place:     firstOf(r.Subfield("210", "a"), r.Subfield("620", "d")),
		Country:   r.Subfield("102", "a"),
		Date:      r.Subfield("210", "d"),
		Link:      r.ControlField("003"),
		Shelfmark: r.Subfield("930", "a"),
	}
	if forms := r.Subfields("503", "a"); len(forms) > 0 {
		bib.FormTitle = forms[len(forms)-1]
	}
	for _, f := range r.DataFields {
		if f.Tag != "700" {
			continue
		}
		bib.Authors = append(bib.Authors, CatalogueAuthor{
			Surname:    f.Subfield("a"),
			Forename:   f.Subfield("b"),
			Identifier: f.Subfield("o"),
		})
	}
	return bib
}

// CatalogueResult is the outcome of a catalogue search
type CatalogueResult struct {
	Query    string          // CQL query that produced the response
	Raw      []byte          // Response body as received
	Response *SearchResponse // Parsed response
}

// SearchCatalogue looks the record up by its ARK. When that finds nothing,
// it searches the title instead and keeps the first hit.
func (c *Client) SearchCatalogue(ctx context.Context, ark, title string) (*CatalogueResult, error) {
	var result *CatalogueResult
	if ark != "" {
		var err error
		result, err = c.searchRetrieve(ctx, fmt.Sprintf(`(bib.persistentid all "%s")`, quoteCQL(ark)), 0)
		if err != nil {
			return nil, err
		}
		if result.Response.NumberOfRecords > 0 || title == "" {
			return result, nil
		}
		c.log.Info("catalogue record not found by ARK, searching title", "ark", ark, "title", title)
	}
	return c.searchRetrieve(ctx, fmt.Sprintf(`(bib.title all "%s")`, quoteCQL(title)), 1)
}

// quoteCQL escapes a term for use inside a double quoted CQL string
func quoteCQL(term string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(term)
}

// searchRetrieve runs one SRU query; maxRecords 0 keeps the server default
func (c *Client) searchRetrieve(ctx context.Context, query string, maxRecords int) (*CatalogueResult, error) {
	params := url.Values{}
	params.Set("version", "1.2")
	params.Set("operation", "searchRetrieve")
	params.Set("query", query)
	if maxRecords > 0 {
		params.Set("maximumRecords", fmt.Sprint(maxRecords))
	}
	u := c.cfg.SRUBaseURL + "?" + params.Encode()

	body, err := c.get(ctx, "catalogue", u, "application/xml")
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, &RemoteLookupError{Service: "catalogue", URL: u, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &CatalogueResult{Query: query, Raw: body, Response: &resp}, nil
}
