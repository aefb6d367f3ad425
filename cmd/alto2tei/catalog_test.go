package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const catalogueManifest = `{
  "label": "Le Livre de la cité des dames",
  "metadata": [
    {"label": "Title", "value": "Le Livre de la cité des dames"},
    {"label": "Date", "value": "1401-1500"},
    {"label": "Creator", "value": "Christine de Pizan (1364?-1431?). Auteur du texte"},
    {"label": "Relation", "value": "Notice du catalogue : https://catalogue.bnf.fr/ark:/12148/cb44654524t"}
  ]
}`

const catalogueRecord = `<?xml version="1.0" encoding="UTF-8"?>
<srw:searchRetrieveResponse xmlns:srw="http://www.loc.gov/zing/srw/">
  <srw:version>1.2</srw:version>
  <srw:numberOfRecords>1</srw:numberOfRecords>
  <srw:records><srw:record><srw:recordData>
    <mxc:record xmlns:mxc="info:lc/xmlns/marcxchange-v2" type="Bibliographic" id="ark:/12148/cb44654524t">
      <mxc:controlfield tag="003">http://catalogue.bnf.fr/ark:/12148/cb44654524t</mxc:controlfield>
      <mxc:datafield tag="200" ind1="1" ind2=" "><mxc:subfield code="a">Le Livre de la cité des dames</mxc:subfield></mxc:datafield>
      <mxc:datafield tag="210" ind1=" " ind2=" "><mxc:subfield code="a">Paris</mxc:subfield><mxc:subfield code="c">Atelier</mxc:subfield></mxc:datafield>
    </mxc:record>
  </srw:recordData></srw:record></srw:records>
</srw:searchRetrieveResponse>`

const catalogueEmpty = `<?xml version="1.0" encoding="UTF-8"?>
<srw:searchRetrieveResponse xmlns:srw="http://www.loc.gov/zing/srw/">
  <srw:version>1.2</srw:version>
  <srw:numberOfRecords>0</srw:numberOfRecords>
</srw:searchRetrieveResponse>`

const linkedData = `{"head": {"vars": ["isniAuthor"]}, "results": {"bindings": [
  {"isniAuthor": {"type": "literal", "value": "0000000121478925"}}
]}}`

// bnf stands in for Gallica, the catalogue and data.bnf.fr.
// Documents without a manifest answer 500.
type bnf struct {
	manifests map[string]string
	sru       string

	mu      sync.Mutex
	queries []string
}

func (b *bnf) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/iiif/ark:/12148/"):
		doc := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/iiif/ark:/12148/"), "/manifest.json")
		manifest, ok := b.manifests[doc]
		if !ok {
			http.Error(w, "manifest unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, manifest)
	case r.URL.Path == "/SRU":
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.Query().Get("query"))
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/xml")
		io.WriteString(w, b.sru)
	case r.URL.Path == "/sparql":
		w.Header().Set("Content-Type", "application/sparql-results+json")
		io.WriteString(w, linkedData)
	default:
		http.NotFound(w, r)
	}
}

func (b *bnf) searched() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

// serveBnF points the metadata configuration at b through the environment
func serveBnF(t *testing.T, b *bnf) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	t.Setenv("ALTO2TEI_IIIF_BASE_URL", srv.URL+"/iiif")
	t.Setenv("ALTO2TEI_METADATA_GALLICA_BASE_URL", srv.URL)
	t.Setenv("ALTO2TEI_METADATA_SRU_BASE_URL", srv.URL+"/SRU")
	t.Setenv("ALTO2TEI_METADATA_SPARQL_ENDPOINT", srv.URL+"/sparql")
}

func TestCatalog_WritesResponse(t *testing.T) {
	root := isolate(t)
	b := &bnf{manifests: map[string]string{"btv1b8449691v": catalogueManifest}, sru: catalogueRecord}
	serveBnF(t, b)
	doc := writeDocument(t, root, "btv1b8449691v", map[string]string{"f1.xml": folio})
	outDir := filepath.Join(root, "out")

	if _, err := execute(t, "catalog", "--out", outDir, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "response_btv1b8449691v.xml"))
	if err != nil {
		t.Fatalf("expected catalogue response: %v", err)
	}
	if string(data) != catalogueRecord {
		t.Errorf("response differs from the served body:\n%s", data)
	}
	if q := b.searched(); len(q) != 1 || q[0] != `(bib.persistentid all "ark:/12148/cb44654524t")` {
		t.Errorf("unexpected queries %q", q)
	}
}

func TestCatalog_NoRecord(t *testing.T) {
	root := isolate(t)
	b := &bnf{manifests: map[string]string{"btv1b8449691v": catalogueManifest}, sru: catalogueEmpty}
	serveBnF(t, b)
	doc := writeDocument(t, root, "btv1b8449691v", map[string]string{"f1.xml": folio})
	outDir := filepath.Join(root, "out")

	out, err := execute(t, "catalog", "--out", outDir, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "catalogue search returned no record") {
		t.Errorf("expected a warning, got %q", out)
	}
	if q := b.searched(); len(q) != 2 || !strings.HasPrefix(q[1], "(bib.title all") {
		t.Errorf("expected a title search after the ARK search, got %q", q)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "response_btv1b8449691v.xml"))
	if err != nil {
		t.Fatalf("expected the empty response to be saved: %v", err)
	}
	if string(data) != catalogueEmpty {
		t.Errorf("response differs from the served body:\n%s", data)
	}
}

func TestCatalog_NothingToSearch(t *testing.T) {
	root := isolate(t)
	b := &bnf{manifests: map[string]string{"btv1b8449691v": `{"metadata": []}`}, sru: catalogueRecord}
	serveBnF(t, b)
	doc := writeDocument(t, root, "btv1b8449691v", map[string]string{"f1.xml": folio})
	outDir := filepath.Join(root, "out")

	out, err := execute(t, "catalog", "--out", outDir, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "skipping catalogue search") {
		t.Errorf("expected a warning, got %q", out)
	}
	if q := b.searched(); len(q) != 0 {
		t.Errorf("expected no catalogue query, got %q", q)
	}
	if _, err := os.Stat(filepath.Join(outDir, "response_btv1b8449691v.xml")); !os.IsNotExist(err) {
		t.Errorf("expected no response file, stat returned %v", err)
	}
}

func TestCatalog_FailingDirectoryIsolated(t *testing.T) {
	root := isolate(t)
	b := &bnf{manifests: map[string]string{"btv1b8449691v": catalogueManifest}, sru: catalogueRecord}
	serveBnF(t, b)
	bad := writeDocument(t, root, "btv1b0000000x", map[string]string{"f1.xml": folio})
	good := writeDocument(t, root, "btv1b8449691v", map[string]string{"f1.xml": folio})
	outDir := filepath.Join(root, "out")

	out, err := execute(t, "catalog", "--out", outDir, bad, good)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 directories failed") {
		t.Fatalf("expected one failed directory, got %v", err)
	}
	if !strings.Contains(out, "catalogue lookup failed") || !strings.Contains(out, "btv1b0000000x") {
		t.Errorf("failure should be logged with its directory: %q", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "response_btv1b8449691v.xml")); err != nil {
		t.Errorf("good directory should still be saved: %v", err)
	}
}

func TestRoot_Header(t *testing.T) {
	root := isolate(t)
	b := &bnf{manifests: map[string]string{"btv1b8449691v": catalogueManifest}, sru: catalogueRecord}
	serveBnF(t, b)
	bad := writeDocument(t, root, "btv1b0000000x", map[string]string{"f1.xml": folio})
	good := writeDocument(t, root, "btv1b8449691v", map[string]string{"f1.xml": folio})
	outDir := filepath.Join(root, "out")
	t.Setenv("ALTO2TEI_EDITOR_FORENAME", "Kelly")
	t.Setenv("ALTO2TEI_EDITOR_SURNAME", "Christensen")

	if _, err := execute(t, "--header", "--out", outDir, bad, good); err == nil {
		t.Fatal("expected the document without a manifest to fail")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "btv1b8449691v.xml"))
	if err != nil {
		t.Fatalf("expected TEI output: %v", err)
	}
	for _, want := range []string{
		"<teiHeader>",
		"<title>Le Livre de la cité des dames</title>",
		`<ptr type="isni" target="0000000121478925"></ptr>`,
		`<respStmt xml:id="KC">`,
		`<ptr type="catalogue" target="http://catalogue.bnf.fr/ark:/12148/cb44654524t"></ptr>`,
		"<publisher>Atelier</publisher>",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("TEI missing %s", want)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "btv1b0000000x.xml")); !os.IsNotExist(err) {
		t.Errorf("expected no output for the failed document, stat returned %v", err)
	}
}
