package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/alto"
)

// TagDictionary maps tag IDs to their labels, e.g. "BT1" → "MainZone:column#1"
type TagDictionary map[string]string

// Label resolves a TAGREFS value. A reference may list several IDs;
// the first one defined in the dictionary wins.
func (d TagDictionary) Label(ref string) (string, bool) {
	if label, ok := d[ref]; ok {
		return label, true
	}
	for _, id := range strings.Fields(ref) {
		if label, ok := d[id]; ok {
			return label, true
		}
	}
	return "", false
}

// LoadTags builds the tag dictionary of a document from its first layout file.
// Every file of a document is assumed to share the same vocabulary.
// When the file defines no tags, the empty dictionary is returned along with
// ErrMissingTagDefinitions so the caller can decide whether to go on.
func LoadTags(dir string, files []LayoutFile) (TagDictionary, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyDirectory, dir)
	}

	doc, err := alto.ParseFile(filepath.Join(dir, files[0].Name))
	if err != nil {
		return nil, err
	}
	return tagsFrom(doc, files[0].Name)
}

func tagsFrom(doc *alto.Document, name string) (TagDictionary, error) {
	tags := make(TagDictionary, len(doc.Tags.Other))
	for _, t := range doc.Tags.Other {
		tags[t.ID] = t.Label
	}
	if len(tags) == 0 {
		return tags, fmt.Errorf("%w in %s", ErrMissingTagDefinitions, name)
	}
	return tags, nil
}
