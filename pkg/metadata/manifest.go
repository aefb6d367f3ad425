package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Manifest labels read by the header builder
const (
	LabelTitle    = "Title"
	LabelDate     = "Date"
	LabelCreator  = "Creator"
	LabelRelation = "Relation"
)

// ErrNoCatalogueLink is returned when a manifest has no catalogue record ARK
var ErrNoCatalogueLink = errors.New("no catalogue link in manifest")

// catalogueARK finds the catalogue record in a Relation value,
// e.g. "Notice du catalogue : https://catalogue.bnf.fr/ark:/12148/cb44654524t"
var catalogueARK = regexp.MustCompile(`/(ark:/\w+/\w+)`)

// Manifest is the part of a IIIF presentation manifest read here
type Manifest struct {
	ID       string          `json:"@id"`
	Label    Value           `json:"label"`
	Metadata []MetadataEntry `json:"metadata"`
}

// MetadataEntry is one label/value pair of the manifest metadata
type MetadataEntry struct {
	Label Value `json:"label"`
	Value Value `json:"value"`
}

// Value is a manifest property given either as a plain string or as a list
// of language-tagged values ([{"@value": "…", "@language": "fre"}]).
// Multiple values are joined with "; ".
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value(s)
		return nil
	}

	var single struct {
		Value string `json:"@value"`
	}
	if data[0] == '{' {
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*v = Value(single.Value)
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("unsupported manifest value %.40s", data)
	}
	parts := make([]string, 0, len(list))
	for _, raw := range list {
		var item Value
		if err := item.UnmarshalJSON(raw); err != nil {
			return err
		}
		if item != "" {
			parts = append(parts, string(item))
		}
	}
	*v = Value(strings.Join(parts, "; "))
	return nil
}

// Get returns the value of the first entry with the given label
func (m *Manifest) Get(label string) string {
	for _, e := range m.Metadata {
		if strings.EqualFold(string(e.Label), label) {
			return string(e.Value)
		}
	}
	return ""
}

// Title of the document
func (m *Manifest) Title() string { return m.Get(LabelTitle) }

// Date of the document
func (m *Manifest) Date() string { return m.Get(LabelDate) }

// Creator of the document, as catalogued ("Name (dates). Role")
func (m *Manifest) Creator() string { return m.Get(LabelCreator) }

// Relation links the document to its catalogue record
func (m *Manifest) Relation() string { return m.Get(LabelRelation) }

// CatalogueARK returns the ARK of the catalogue record, e.g. "ark:/12148/cb44654524t"
func (m *Manifest) CatalogueARK() (string, error) {
	match := catalogueARK.FindStringSubmatch(m.Relation())
	if match == nil {
		return "", ErrNoCatalogueLink
	}
	return match[1], nil
}

// ManifestURL returns the IIIF manifest location of a document
func (c *Client) ManifestURL(doc string) string {
	return fmt.Sprintf("%s/ark:/%s/%s/manifest.json", c.cfg.IIIFBaseURL, c.cfg.NAAN, doc)
}

// FetchManifest reads the IIIF manifest of a document
func (c *Client) FetchManifest(ctx context.Context, doc string) (*Manifest, error) {
	u := c.ManifestURL(doc)
	body, err := c.get(ctx, "manifest", u, "application/json")
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, &RemoteLookupError{Service: "manifest", URL: u, Err: fmt.Errorf("decode manifest: %w", err)}
	}
	return &m, nil
}
