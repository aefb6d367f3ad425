// Package metadata looks up the bibliographic record of a digitised document
// and turns it into a TEI header.
//
// Documents are identified by their Gallica ARK name (the directory name of
// the layout files, e.g. "btv1b8449691v"). Three services are queried:
//
// - The IIIF presentation manifest, for title, date, creator and the link to
// the catalogue record
// - The BnF catalogue SRU endpoint, for the UNIMARC record (with a title
// search when the record link finds nothing)
// - The data.bnf.fr SPARQL endpoint, for publisher, place and the author's ISNI
//
// Main Functions:
//
// - Client.FetchManifest: Reads the IIIF manifest of a document
// - Client.SearchCatalogue: Reads the catalogue record of a document
// - Client.QuerySPARQL: Reads the linked data of a document
// - ResolveAuthor: Extracts the author name from a manifest creator
// - Enricher.Header: Builds the teiHeader of a document
//
// Lookups are not retried. Any transport failure, non-2xx status or
// undecodable body is returned as a *RemoteLookupError.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Default service locations
const (
	DefaultIIIFBaseURL    = "https://gallica.bnf.fr/iiif"
	DefaultGallicaBaseURL = "https://gallica.bnf.fr"
	DefaultSRUBaseURL     = "http://catalogue.bnf.fr/api/SRU"
	DefaultSPARQLEndpoint = "https://data.bnf.fr/sparql"
	DefaultNAAN           = "12148"
	DefaultTimeout        = 30 * time.Second
)

// ErrRemoteLookupFailure matches every *RemoteLookupError
var ErrRemoteLookupFailure = errors.New("remote lookup failed")

// RemoteLookupError reports a failed request to one of the metadata services
type RemoteLookupError struct {
	Service    string // "manifest", "catalogue" or "sparql"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *RemoteLookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s lookup %s: status %d: %v", e.Service, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s lookup %s: %v", e.Service, e.URL, e.Err)
}

func (e *RemoteLookupError) Unwrap() error { return e.Err }

func (e *RemoteLookupError) Is(target error) bool { return target == ErrRemoteLookupFailure }

// Config holds the service locations of a Client
type Config struct {
	IIIFBaseURL    string
	GallicaBaseURL string
	SRUBaseURL     string
	SPARQLEndpoint string
	NAAN           string
	Timeout        time.Duration
	Logger         *slog.Logger
}

// Client queries the metadata services.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient returns a Client, filling defaults into cfg.
func NewClient(cfg Config) *Client {
	cfg.IIIFBaseURL = strings.TrimRight(orDefault(cfg.IIIFBaseURL, DefaultIIIFBaseURL), "/")
	cfg.GallicaBaseURL = strings.TrimRight(orDefault(cfg.GallicaBaseURL, DefaultGallicaBaseURL), "/")
	cfg.SRUBaseURL = orDefault(cfg.SRUBaseURL, DefaultSRUBaseURL)
	cfg.SPARQLEndpoint = orDefault(cfg.SPARQLEndpoint, DefaultSPARQLEndpoint)
	cfg.NAAN = orDefault(cfg.NAAN, DefaultNAAN)
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// get fetches u and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, service, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &RemoteLookupError{Service: service, URL: u, Err: fmt.Errorf("create request: %w", err)}
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	c.log.Debug("metadata request", "service", service, "url", u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteLookupError{Service: service, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &RemoteLookupError{
			Service:    service,
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(body))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteLookupError{Service: service, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
