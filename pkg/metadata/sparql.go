package metadata

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/url"
	"text/template"
)

//go:embed templates/sparql.tmpl
var templateFS embed.FS

// None stands for a binding the endpoint did not return
const None = "none"

// sameAsFilter keeps the author concept linked to the Biblissima authority files
const sameAsFilter = "biblissima"

// LinkedData holds the data.bnf.fr bindings used in the header
type LinkedData struct {
	Title            string
	Author           string
	AuthorName       string
	PublicationPlace string
	Publisher        string
	PublicationDate  string
	AuthorISNI       string
	SameAs           string
}

// sparqlResults is the application/sparql-results+json envelope
type sparqlResults struct {
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// RenderQuery fills the embedded query with the Gallica reproduction of a document
func (c *Client) RenderQuery(doc string) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/sparql.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing SPARQL template: %w", err)
	}

	data := struct {
		Reproduction string
		SameAsFilter string
	}{
		Reproduction: fmt.Sprintf("%s/ark:/%s/%s", c.cfg.GallicaBaseURL, c.cfg.NAAN, doc),
		SameAsFilter: sameAsFilter,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering SPARQL template: %w", err)
	}
	return buf.String(), nil
}

// QuerySPARQL reads the linked data of a document. Only the first solution is
// kept; variables it leaves unbound are set to None.
func (c *Client) QuerySPARQL(ctx context.Context, doc string) (*LinkedData, error) {
	query, err := c.RenderQuery(doc)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "application/sparql-results+json")
	u := c.cfg.SPARQLEndpoint + "?" + params.Encode()

	body, err := c.get(ctx, "sparql", u, "application/sparql-results+json")
	if err != nil {
		return nil, err
	}

	var res sparqlResults
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &RemoteLookupError{Service: "sparql", URL: u, Err: fmt.Errorf("decode results: %w", err)}
	}

	binding := func(name string) string {
		if len(res.Results.Bindings) == 0 {
			return None
		}
		if b, ok := res.Results.Bindings[0][name]; ok && b.Value != "" {
			return b.Value
		}
		return None
	}

	return &LinkedData{
		Title:            binding("title"),
		Author:           binding("author"),
		AuthorName:       binding("name_author"),
		PublicationPlace: binding("publication_place"),
		Publisher:        binding("publisher_name"),
		PublicationDate:  binding("publication_date"),
		AuthorISNI:       binding("isniAuthor"),
		SameAs:           binding("sameas"),
	}, nil
}
