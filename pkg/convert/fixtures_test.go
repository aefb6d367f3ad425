package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDoc = "btv1b8449691v"

const defaultTags = `<OtherTag ID="BT1" LABEL="MainZone:column#1"/>
    <OtherTag ID="BT2" LABEL="MarginTextZone"/>
    <OtherTag ID="LT1" LABEL="DefaultLine"/>`

// line renders a TextLine. An empty points value leaves the line without a polygon.
func line(id, points string, text bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<TextLine ID="%s" HPOS="12" VPOS="22" WIDTH="290" HEIGHT="40" TAGREFS="LT1">`, id)
	if points != "" {
		fmt.Fprintf(&b, `<Shape><Polygon POINTS="%s"/></Shape>`, points)
	}
	if text {
		b.WriteString(`<String CONTENT="Ung"/>`)
	}
	b.WriteString(`</TextLine>`)
	return b.String()
}

// block renders a TextBlock holding the given lines
func block(id, tagref, points string, lines ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<TextBlock ID="%s" HPOS="10" VPOS="20" WIDTH="300" HEIGHT="400" TAGREFS="%s">`, id, tagref)
	if points != "" {
		fmt.Fprintf(&b, `<Shape><Polygon POINTS="%s"/></Shape>`, points)
	}
	for _, l := range lines {
		b.WriteString(l)
	}
	b.WriteString(`</TextBlock>`)
	return b.String()
}

// page renders a complete ALTO file
func page(tags string, imageNr int, blocks ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v4#">
  <Tags>
    %s
  </Tags>
  <Layout>
    <Page ID="p1" WIDTH="2000" HEIGHT="3000" PHYSICAL_IMG_NR="%d">
      <PrintSpace HPOS="0" VPOS="0" WIDTH="2000" HEIGHT="3000">
        %s
      </PrintSpace>
    </Page>
  </Layout>
</alto>`, tags, imageNr, strings.Join(blocks, "\n"))
}

// writeDocument creates a document directory named testDoc holding the given files
func writeDocument(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), testDoc)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("failed to create document dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// newTestConverter returns a Converter writing into a fresh temp dir and logging nowhere
func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	return New(Config{
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}
