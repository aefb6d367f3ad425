// Package proof draws a PDF proof sheet of a converted document.
//
// Each surface becomes one page the size of the scan, scaled down when the
// scan is larger than the configured maximum. Block outlines and line outlines
// are drawn on two separate layers per page, so either can be toggled off in a
// PDF reader while checking a conversion.
//
// Main Functions:
//
// - Render: Draws the proof sheet of a TEI document
package proof

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"codeberg.org/go-pdf/fpdf"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/tei"
)

// ErrNoSurfaces is returned for a document without pages
var ErrNoSurfaces = errors.New("document has no surfaces")

// Render draws one page per surface of doc and returns the PDF
func Render(doc *tei.TEI, cfg Config) ([]byte, error) {
	if doc == nil || len(doc.SourceDoc.SurfaceGrp.Surfaces) == 0 {
		return nil, ErrNoSurfaces
	}
	cfg = cfg.withDefaults()
	log := cfg.Logger

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(doc.ID, true)
	pdf.SetCreator("alto2tei", true)
	pdf.SetAutoPageBreak(false, 0)

	for i, surface := range doc.SourceDoc.SurfaceGrp.Surfaces {
		pageNum := i + 1

		w, errW := strconv.ParseFloat(surface.LRX, 64)
		h, errH := strconv.ParseFloat(surface.LRY, 64)
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return nil, fmt.Errorf("surface %s: invalid size %sx%s", surface.ID, surface.LRX, surface.LRY)
		}
		pdfW, pdfH := pageSize(w, h, cfg.MaxPageSize)

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pdfW, Ht: pdfH})

		// Page caption
		pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(4, cfg.Font.Size+2, surface.ID)

		transform := func(x, y float64) (float64, float64) {
			return normalizeCoords(x, y, w, h, pdfW, pdfH)
		}

		blocks := drawZoneLayer(pdf, surface.Zones, cfg.BlockLayer, pageNum, transform, blockColor, cfg.Labels, cfg)
		lines := drawZoneLayer(pdf, lineZones(surface.Zones), cfg.LineLayer, pageNum, transform, lineColor, false, cfg)

		if skipped := blocks.skipped + lines.skipped; skipped > 0 {
			log.Warn("zones without outline left out of proof", "surface", surface.ID, "zones", skipped)
		}
		if blocks.encodingErrors > 0 {
			log.Warn("zone labels not representable in Latin-1", "surface", surface.ID, "labels", blocks.encodingErrors)
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to draw page %d: %w", pageNum, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
