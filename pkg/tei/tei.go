// Package tei models the subset of the TEI (Text Encoding Initiative) P5 schema
// written by the converter, and serializes it.
//
// The source description is rendered under sourceDoc as
// TEI → sourceDoc → surfaceGrp → surface → (graphic, zone → zone → line),
// and an optional teiHeader carries bibliographic metadata.
package tei

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// Namespace is the TEI namespace declared on the root element
const Namespace = "http://www.tei-c.org/ns/1.0"

// Marshal renders the document as UTF-8 XML with a declaration and two-space indentation.
func Marshal(doc *TEI) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("TEI document is nil")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("error encoding TEI: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error encoding TEI: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteFile serializes doc and replaces path with the result.
// The data goes to a temporary file in the same directory first, so an
// interrupted write never leaves a truncated document behind.
func WriteFile(path string, doc *TEI) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
