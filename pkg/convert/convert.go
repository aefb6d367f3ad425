// Package convert turns a directory of ALTO layout files, one per folio of a
// scanned document, into a single TEI document describing the source.
//
// Each folio becomes a surface; each text block of its print space becomes a
// zone, and each text line of a block a nested zone. Zones keep their polygon
// outline, their classification parsed from the ALTO tag vocabulary
// (SegmOnto style "type:subtype#n"), and a IIIF URL cropping the zone out of
// the page image.
//
// Key Features:
//
// - Orders layout files numerically by folio ("f9" before "f10")
// - Loads the zone vocabulary once per document
// - Degrades unresolvable zone tags to an "unknown" type instead of failing
// - Writes the output only once the whole tree is built
//
// Main Functions:
//
// - OrderFiles: Lists the layout files of a directory in folio order
// - LoadTags: Reads the zone vocabulary of a document
// - Converter.Convert: Builds the TEI tree of a directory
// - Converter.ConvertDir: Builds and writes the TEI file of a directory
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/alto"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/tei"
)

// Defaults used when Config leaves a field empty
const (
	DefaultIIIFBaseURL = "https://gallica.bnf.fr/iiif"
	DefaultNAAN        = "12148"
	DefaultOutputDir   = "data"
)

// HeaderSource supplies the teiHeader of a document, keyed by its directory name
type HeaderSource interface {
	Header(ctx context.Context, doc string) (*tei.Header, error)
}

// Config holds the options of a Converter
type Config struct {
	OutputDir   string       // Directory receiving <document>.xml
	IIIFBaseURL string       // Base of the IIIF image service
	NAAN        string       // ARK name assigning authority of the documents
	Header      HeaderSource // Optional teiHeader provider
	Logger      *slog.Logger // Progress and warnings (nil = slog.Default())
}

// Converter builds TEI documents from directories of ALTO files
type Converter struct {
	cfg Config
	log *slog.Logger
}

// Result describes one converted directory
type Result struct {
	Document string   // Directory base name, used as document identifier
	Path     string   // Output file, empty until written
	Pages    int      // Number of surfaces
	Zones    int      // Number of block and line zones
	TEI      *tei.TEI // The converted tree
}

// New returns a Converter, filling defaults into cfg.
func New(cfg Config) *Converter {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.IIIFBaseURL == "" {
		cfg.IIIFBaseURL = DefaultIIIFBaseURL
	}
	cfg.IIIFBaseURL = strings.TrimRight(cfg.IIIFBaseURL, "/")
	if cfg.NAAN == "" {
		cfg.NAAN = DefaultNAAN
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Converter{cfg: cfg, log: log}
}

// DocumentName returns the identifier of the document stored in dir
func DocumentName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

// DocumentID returns the xml:id of the TEI root, e.g. ark_12148_btv1b8449691v
func (c *Converter) DocumentID(doc string) string {
	return fmt.Sprintf("ark_%s_%s", c.cfg.NAAN, doc)
}

// ImageURL builds a IIIF image URL for a region ("full" or "x,y,w,h") of a folio
func (c *Converter) ImageURL(doc string, folio int, region string) string {
	return fmt.Sprintf("%s/ark:/%s/%s/f%d/%s/full/0/native.jpg", c.cfg.IIIFBaseURL, c.cfg.NAAN, doc, folio, region)
}

// OutputPath returns where the TEI file of a document is written
func (c *Converter) OutputPath(doc string) string {
	return filepath.Join(c.cfg.OutputDir, doc+".xml")
}

// Convert builds the TEI tree of the document stored in dir.
// Any failure aborts the whole document; nothing is written here.
func (c *Converter) Convert(ctx context.Context, dir string) (*Result, error) {
	doc := DocumentName(dir)
	log := c.log.With("dir", dir)

	files, err := OrderFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", dir, err)
	}

	tags, err := LoadTags(dir, files)
	if errors.Is(err, ErrMissingTagDefinitions) {
		log.Warn("document defines no zone tags, zones will be typed unknown", "file", files[0].Name)
	} else if err != nil {
		return nil, fmt.Errorf("convert %s: %w", dir, err)
	}
	log.Debug("loaded tags", "tags", len(tags), "files", len(files))

	root := &tei.TEI{ID: c.DocumentID(doc)}
	if c.cfg.Header != nil {
		header, err := c.cfg.Header.Header(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("convert %s: header: %w", dir, err)
		}
		root.Header = header
	}

	result := &Result{Document: doc, TEI: root}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		surface, zones, err := c.convertFile(dir, doc, f, tags)
		if err != nil {
			return nil, fmt.Errorf("convert %s in %s: %w", f.Name, dir, err)
		}
		log.Debug("converted folio", "folio", f.Folio, "zones", zones)

		root.SourceDoc.SurfaceGrp.Surfaces = append(root.SourceDoc.SurfaceGrp.Surfaces, surface)
		result.Pages++
		result.Zones += zones
	}
	return result, nil
}

// convertFile builds the surface of one folio and counts its zones
func (c *Converter) convertFile(dir, doc string, f LayoutFile, tags TagDictionary) (tei.Surface, int, error) {
	page, err := alto.ParseFile(filepath.Join(dir, f.Name))
	if err != nil {
		return tei.Surface{}, 0, err
	}

	pageAttrs, err := c.PageAttributes(page, doc, f.Folio)
	if err != nil {
		return tei.Surface{}, 0, err
	}
	surface := newSurface(pageAttrs)

	blocks, blockIDs, err := c.ExtractZones(page, tags, doc, f.Folio, PrintSpaceBlocks())
	if err != nil {
		return tei.Surface{}, 0, err
	}

	count := len(blocks)
	for i, block := range blocks {
		zone := newZone(block)

		lines, _, err := c.ExtractZones(page, tags, doc, f.Folio, LinesOf(blockIDs[i]))
		if err != nil {
			return tei.Surface{}, 0, err
		}
		for _, line := range lines {
			zone.Zones = append(zone.Zones, newZone(line))
		}
		count += len(lines)

		surface.Zones = append(surface.Zones, zone)
	}
	return surface, count, nil
}

// ConvertDir converts dir and writes <output>/<document>.xml.
// The file is opened only after the whole tree is built, so a failing
// document leaves no output behind.
func (c *Converter) ConvertDir(ctx context.Context, dir string) (*Result, error) {
	result, err := c.Convert(ctx, dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	path := c.OutputPath(result.Document)
	if err := tei.WriteFile(path, result.TEI); err != nil {
		return nil, fmt.Errorf("convert %s: %w", dir, err)
	}
	result.Path = path

	c.log.Info("wrote TEI", "dir", dir, "path", path, "pages", result.Pages, "zones", result.Zones)
	return result, nil
}
