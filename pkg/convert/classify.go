package convert

import (
	"fmt"
	"strings"
)

// None fills the parts of a classification absent from the label
const None = "none"

// Classification is the zone type parsed from a tag label "type[:subtype][#ordinal]"
type Classification struct {
	Type    string
	Subtype string
	N       string
}

// Unknown is the classification of zones whose tag cannot be resolved
var Unknown = Classification{Type: "unknown", Subtype: None, N: None}

// String formats the classification back into label form
func (c Classification) String() string {
	s := c.Type
	if c.Subtype != None {
		s += ":" + c.Subtype
	}
	if c.N != None {
		s += "#" + c.N
	}
	return s
}

// ParseClassification splits a tag label into type, subtype and ordinal.
//
//	"MainZone:column#1" -> {MainZone column 1}
//	"MainZone"          -> {MainZone none none}
//	"MainZone#2"        -> {MainZone none 2}
func ParseClassification(label string) (Classification, error) {
	label = strings.TrimSpace(label)

	rest, n := label, ""
	if i := strings.LastIndexByte(label, '#'); i >= 0 {
		rest, n = label[:i], label[i+1:]
	}
	typ, subtype, _ := strings.Cut(rest, ":")

	if typ == "" || strings.ContainsAny(typ, " \t#") {
		return Unknown, fmt.Errorf("%w: label %q", ErrUnknownZoneType, label)
	}
	if strings.ContainsAny(subtype, " \t:") {
		return Unknown, fmt.Errorf("%w: label %q", ErrUnknownZoneType, label)
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return Unknown, fmt.Errorf("%w: ordinal %q in label %q", ErrUnknownZoneType, n, label)
		}
	}

	c := Classification{Type: typ, Subtype: subtype, N: n}
	if c.Subtype == "" {
		c.Subtype = None
	}
	if c.N == "" {
		c.N = None
	}
	return c, nil
}
