package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/tei"
)

// DefaultResp describes the editor's part in the TEI
const DefaultResp = "restructured by"

// Editor is the person credited in the respStmt of every header
type Editor struct {
	Forename string
	Surname  string
	ORCID    string
	Resp     string // Defaults to DefaultResp
}

// ID returns the editor's initials, used as xml:id
func (e Editor) ID() string {
	var id string
	for _, part := range []string{e.Forename, e.Surname} {
		if r := []rune(strings.TrimSpace(part)); len(r) > 0 {
			id += string(r[0])
		}
	}
	return id
}

// HeaderInput gathers everything a header is built from. Any part may be nil.
type HeaderInput struct {
	Manifest   *Manifest
	LinkedData *LinkedData
	Record     *Record
	Editor     *Editor
}

// BuildHeader assembles fileDesc/titleStmt and fileDesc/sourceDesc.
// The returned error is ErrAuthorNotResolved when the manifest creator could
// not be read; the header is complete apart from the author in that case.
func BuildHeader(in HeaderInput) (*tei.Header, error) {
	var manifest Manifest
	if in.Manifest != nil {
		manifest = *in.Manifest
	}
	linked := LinkedData{Publisher: None, PublicationPlace: None, AuthorISNI: None}
	if in.LinkedData != nil {
		linked = *in.LinkedData
	}
	var bib Bibliographic
	if in.Record != nil {
		bib = in.Record.Bibliographic()
	}

	header := &tei.Header{}
	stmt := &header.FileDesc.TitleStmt
	stmt.Title = firstOf(manifest.Title(), bib.Title)

	var authorErr error
	author, err := ResolveAuthor(manifest.Creator())
	if err != nil {
		authorErr = err
	} else {
		stmt.Author = &tei.Author{
			ID:       authorID(author),
			PersName: tei.PersName{Name: author},
		}
		if linked.AuthorISNI != None && linked.AuthorISNI != "" {
			stmt.Author.PersName.Ptr = &tei.Ptr{Type: "isni", Target: linked.AuthorISNI}
		}
	}

	if e := in.Editor; e != nil && (e.Forename != "" || e.Surname != "") {
		stmt.RespStmt = &tei.RespStmt{
			ID:   e.ID(),
			Resp: firstOf(e.Resp, DefaultResp),
			PersName: tei.PersName{
				Forename: e.Forename,
				Surname:  e.Surname,
			},
		}
		if e.ORCID != "" {
			stmt.RespStmt.PersName.Ptr = &tei.Ptr{Type: "orcid", Target: e.ORCID}
		}
	}

	bibl := tei.Bibl{
		Title:     firstOf(bib.Title, manifest.Title()),
		Publisher: firstOf(known(linked.Publisher), bib.Publisher),
		Idno:      bib.Shelfmark,
	}
	if bib.Link != "" {
		bibl.Ptr = &tei.Ptr{Type: "catalogue", Target: bib.Link}
	}
	for i, a := range bib.Authors {
		bibl.Authors = append(bibl.Authors, tei.BiblAuthor{ID: a.ID(i), Ref: a.Identifier, Name: a.Name()})
	}
	if len(bibl.Authors) == 0 && author != "" {
		bibl.Authors = []tei.BiblAuthor{{Name: author}}
	}
	if place := firstOf(known(linked.PublicationPlace), bib.Place); place != "" {
		bibl.PubPlace = &tei.PubPlace{Key: bib.Country, Value: place}
	}
	if date := firstOf(manifest.Date(), bib.Date); date != "" {
		bibl.Date = &tei.Date{When: date, Value: date}
	}
	if !bibl.IsZero() {
		header.FileDesc.SourceDesc = &tei.SourceDesc{Bibl: bibl}
	}

	return header, authorErr
}

// Enricher builds TEI headers from the metadata services
type Enricher struct {
	client *Client
	editor *Editor
	log    *slog.Logger
}

// NewEnricher returns an Enricher crediting editor (may be nil) in every header
func NewEnricher(client *Client, editor *Editor) *Enricher {
	return &Enricher{client: client, editor: editor, log: client.log}
}

// Header queries the manifest, the catalogue and the linked data of doc
// and builds its teiHeader. Remote failures abort; an unreadable author
// is logged and left out.
func (e *Enricher) Header(ctx context.Context, doc string) (*tei.Header, error) {
	log := e.log.With("doc", doc)

	manifest, err := e.client.FetchManifest(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("header %s: %w", doc, err)
	}

	ark, err := manifest.CatalogueARK()
	if err != nil {
		log.Warn("manifest has no catalogue link, searching by title", "error", err)
	}
	var record *Record
	if ark != "" || manifest.Title() != "" {
		catalogue, err := e.client.SearchCatalogue(ctx, ark, manifest.Title())
		if err != nil {
			return nil, fmt.Errorf("header %s: %w", doc, err)
		}
		record = catalogue.Response.First()
	}
	if record == nil {
		log.Warn("no catalogue record found", "ark", ark)
	}

	linked, err := e.client.QuerySPARQL(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("header %s: %w", doc, err)
	}

	header, err := BuildHeader(HeaderInput{
		Manifest:   manifest,
		LinkedData: linked,
		Record:     record,
		Editor:     e.editor,
	})
	if errors.Is(err, ErrAuthorNotResolved) {
		log.Warn("did not add author", "creator", manifest.Creator())
	} else if err != nil {
		return nil, fmt.Errorf("header %s: %w", doc, err)
	}
	return header, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// known maps None to the empty string
func known(v string) string {
	if v == None {
		return ""
	}
	return v
}
