package convert

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// LayoutExt is the extension of layout files
const LayoutExt = ".xml"

// folioPattern splits a base name into its prefix (up to the last "f") and folio number
var folioPattern = regexp.MustCompile(`^(.*f)(\d+)$`)

// LayoutFile is one page of a document
type LayoutFile struct {
	Name  string // File name within the document directory
	Folio int    // Folio number parsed from the name
}

// OrderFiles lists the layout files of dir in folio order.
// Directory listings sort "f10" before "f9"; this orders by the number instead.
//
// File names are rebuilt from the prefix of the lexicographically-first file,
// so all files of a directory are expected to share one prefix.
func OrderFiles(dir string) ([]LayoutFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	// os.ReadDir returns entries sorted by name
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), LayoutExt) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyDirectory, dir)
	}

	folios := make([]int, 0, len(names))
	for _, name := range names {
		n, _, err := parseFolio(name)
		if err != nil {
			return nil, err
		}
		folios = append(folios, n)
	}
	sort.Ints(folios)

	_, prefix, _ := parseFolio(names[0])

	files := make([]LayoutFile, 0, len(folios))
	for _, n := range folios {
		files = append(files, LayoutFile{
			Name:  prefix + strconv.Itoa(n) + LayoutExt,
			Folio: n,
		})
	}
	return files, nil
}

// parseFolio returns the folio number and prefix of a layout file name
// e.g. "document_f10.xml" -> 10, "document_f"
func parseFolio(name string) (int, string, error) {
	base := strings.TrimSuffix(name, LayoutExt)
	m := folioPattern.FindStringSubmatch(base)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedFileName, name)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q: %v", ErrMalformedFileName, name, err)
	}
	return n, m[1], nil
}
