package alto

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is one polygon vertex, kept as written in the source
type Point struct {
	X string
	Y string
}

// String formats the point as "x,y"
func (p Point) String() string {
	return p.X + "," + p.Y
}

// Vertices splits the POINTS attribute into points.
// Both "x y x y" and "x,y x,y" spellings are accepted; a trailing odd value is dropped.
func (p Polygon) Vertices() []Point {
	values := strings.FieldsFunc(p.Points, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	points := make([]Point, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		points = append(points, Point{X: values[i], Y: values[i+1]})
	}
	return points
}

// Check reports the first geometry attribute that is absent or not a number
func (g Geometry) Check() error {
	attrs := []struct {
		name  string
		value string
	}{
		{"HPOS", g.HPos},
		{"VPOS", g.VPos},
		{"WIDTH", g.Width},
		{"HEIGHT", g.Height},
	}
	for _, a := range attrs {
		if a.value == "" {
			return fmt.Errorf("%s is missing", a.name)
		}
		if _, err := strconv.ParseFloat(a.value, 64); err != nil {
			return fmt.Errorf("%s is not a number: %q", a.name, a.value)
		}
	}
	return nil
}

// Region formats the box as an IIIF region "x,y,w,h"
func (g Geometry) Region() string {
	return g.HPos + "," + g.VPos + "," + g.Width + "," + g.Height
}
