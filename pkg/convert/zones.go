package convert

import (
	"fmt"
	"strings"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/alto"
)

// Kind is the kind of zone to extract
type Kind int

const (
	KindBlock Kind = iota // TextBlock
	KindLine              // TextLine
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "TextBlock"
	case KindLine:
		return "TextLine"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Scope selects the zones of one extraction pass
type Scope struct {
	Kind    Kind
	InBlock bool   // Restrict the pass to the children of Parent
	Parent  string // Source ID of the enclosing block
}

// PrintSpaceBlocks selects the text blocks of the print space
func PrintSpaceBlocks() Scope {
	return Scope{Kind: KindBlock}
}

// LinesOf selects the text lines of the block with the given source ID
func LinesOf(blockID string) Scope {
	return Scope{Kind: KindLine, InBlock: true, Parent: blockID}
}

func (s Scope) String() string {
	if !s.InBlock {
		return "PrintSpace/" + s.Kind.String()
	}
	return fmt.Sprintf("TextBlock[@ID=%q]/%s", s.Parent, s.Kind)
}

// ZoneAttributes is everything the output needs to know about one zone
type ZoneAttributes struct {
	ID             string // Output identifier f{folio}_z{n}
	SourceID       string // ID of the zone in the layout file
	Classification Classification
	Points         string // Outline as space separated "x,y" pairs
	Source         string // IIIF URL of the zone crop
	Box            alto.Geometry
	HasText        bool // Line carries at least one String
}

// ExtractZones collects the attributes of every zone in scope, in document order.
// Zones are numbered from 1 within each call, so the lines of every block start again at z1.
// The source IDs are returned alongside so the caller can scope the next nested pass.
func (c *Converter) ExtractZones(page *alto.Document, tags TagDictionary, doc string, folio int, scope Scope) ([]ZoneAttributes, []string, error) {
	zones, hasText, err := selectZones(page, scope)
	if err != nil {
		return nil, nil, err
	}

	attrs := make([]ZoneAttributes, 0, len(zones))
	ids := make([]string, 0, len(zones))
	for i, z := range zones {
		if err := z.Check(); err != nil {
			return nil, nil, fmt.Errorf("%w: %s %s: %v", ErrMissingGeometry, scope.Kind, z.ID, err)
		}
		polygon := z.Polygon()
		if polygon == nil {
			return nil, nil, fmt.Errorf("%w: %s %s", ErrMissingPolygon, scope.Kind, z.ID)
		}

		attrs = append(attrs, ZoneAttributes{
			ID:             fmt.Sprintf("f%d_z%d", folio, i+1),
			SourceID:       z.ID,
			Classification: c.classify(tags, z),
			Points:         formatPoints(*polygon),
			Source:         c.ImageURL(doc, folio, z.Region()),
			Box:            z.Geometry,
			HasText:        hasText[i],
		})
		ids = append(ids, z.ID)
	}
	return attrs, ids, nil
}

// selectZones resolves a scope against the layout tree
func selectZones(page *alto.Document, scope Scope) ([]alto.Zone, []bool, error) {
	var zones []alto.Zone
	var hasText []bool

	switch scope.Kind {
	case KindBlock:
		if scope.InBlock {
			return nil, nil, fmt.Errorf("text blocks cannot be scoped to block %q", scope.Parent)
		}
		for i, b := range page.Blocks() {
			if b.ID == "" {
				return nil, nil, fmt.Errorf("%w: %s %d", ErrMissingZoneID, scope.Kind, i+1)
			}
			zones = append(zones, b.Zone)
			hasText = append(hasText, false)
		}
	case KindLine:
		lines := page.Lines()
		if scope.InBlock {
			lines = page.LinesOf(scope.Parent)
		}
		for _, l := range lines {
			zones = append(zones, l.Zone)
			hasText = append(hasText, len(l.Strings) > 0)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported zone kind %s", scope.Kind)
	}
	return zones, hasText, nil
}

// classify resolves the zone's tag reference, degrading to Unknown
func (c *Converter) classify(tags TagDictionary, z alto.Zone) Classification {
	label, ok := tags.Label(z.TagRefs)
	if !ok {
		c.log.Warn("zone tag not defined", "zone", z.ID, "tagrefs", z.TagRefs, "error", ErrUnknownZoneType)
		return Unknown
	}
	cl, err := ParseClassification(label)
	if err != nil {
		c.log.Warn("zone tag not recognised", "zone", z.ID, "label", label, "error", err)
		return Unknown
	}
	return cl
}

// formatPoints rewrites "x y x y" as "x,y x,y"
func formatPoints(p alto.Polygon) string {
	vertices := p.Vertices()
	pairs := make([]string, len(vertices))
	for i, v := range vertices {
		pairs[i] = v.String()
	}
	return strings.Join(pairs, " ")
}
