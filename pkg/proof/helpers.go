package proof

import (
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// normalizeCoords rescales layout pixel coords to the PDF coords.
func normalizeCoords(x, y, layoutW, layoutH, pdfW, pdfH float64) (float64, float64) {
	nx := (x / layoutW) * pdfW
	ny := (y / layoutH) * pdfH
	return nx, ny
}

// pageSize scales a layout page so its longest side fits max
func pageSize(w, h, max float64) (float64, float64) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	scale := max / w
	if h > w {
		scale = max / h
	}
	return w * scale, h * scale
}

// parsePoints reads a "x,y x,y" outline, skipping malformed pairs
func parsePoints(points string, transform func(x, y float64) (float64, float64)) []fpdf.PointType {
	var pts []fpdf.PointType
	for _, pair := range strings.Fields(points) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			continue
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			continue
		}
		nx, ny := transform(x, y)
		pts = append(pts, fpdf.PointType{X: nx, Y: ny})
	}
	return pts
}

// toLatin1 converts text to ISO-8859-1 to avoid PDF encoding issues with core fonts
func toLatin1(s string) (string, error) {
	return charmap.ISO8859_1.NewEncoder().String(s)
}
