package proof

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/convert"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/tei"
)

// layerStats counts what a layer drew
type layerStats struct {
	zones          int
	skipped        int // Zones with fewer than two points
	encodingErrors int
}

// drawZoneLayer outlines zones on a named layer of the current page.
// With labels set, the zone type is printed at the first point of each outline.
func drawZoneLayer(
	pdf *fpdf.Fpdf,
	zones []tei.Zone,
	layerName string,
	pageNum int,
	transform func(x, y float64) (float64, float64),
	color RGB,
	labels bool,
	cfg Config,
) layerStats {
	formattedLayerName := fmt.Sprintf("%s (Page %d)", layerName, pageNum)

	layer := pdf.AddLayer(formattedLayerName, true)
	pdf.BeginLayer(layer)
	pdf.SetDrawColor(color.R, color.G, color.B)
	pdf.SetTextColor(color.R, color.G, color.B)
	pdf.SetLineWidth(cfg.LineWidth)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)

	var stats layerStats
	for _, z := range zones {
		pts := parsePoints(z.Points, transform)
		if len(pts) < 2 {
			stats.skipped++
			continue
		}
		pdf.Polygon(pts, "D")
		stats.zones++

		if !labels {
			continue
		}
		label := convert.Classification{Type: z.Type, Subtype: z.Subtype, N: z.N}.String()
		latin1, err := toLatin1(label)
		if err != nil {
			stats.encodingErrors++
			latin1 = label // fallback to raw text
		}
		pdf.Text(pts[0].X, pts[0].Y-2, latin1)
	}

	pdf.EndLayer()
	return stats
}

// lineZones flattens the line zones of every block
func lineZones(blocks []tei.Zone) []tei.Zone {
	var lines []tei.Zone
	for _, b := range blocks {
		lines = append(lines, b.Zones...)
	}
	return lines
}
