package convert

import (
	"strconv"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/tei"
)

// newSurface maps page attributes to a TEI surface with its graphic
func newSurface(p PageAttributes) tei.Surface {
	return tei.Surface{
		ID:      p.ID,
		N:       p.N,
		ULX:     strconv.Itoa(p.ULX),
		ULY:     strconv.Itoa(p.ULY),
		LRX:     p.LRX,
		LRY:     p.LRY,
		Graphic: tei.Graphic{URL: p.Graphic},
	}
}

// newZone maps zone attributes to a TEI zone.
// Lines that carry text get an empty line marker.
func newZone(z ZoneAttributes) tei.Zone {
	zone := tei.Zone{
		ID:      z.ID,
		Type:    z.Classification.Type,
		Subtype: z.Classification.Subtype,
		N:       z.Classification.N,
		Points:  z.Points,
		Source:  z.Source,
	}
	if z.HasText {
		zone.Line = &tei.Line{}
	}
	return zone
}
