// Package alto implements decoding of ALTO (Analyzed Layout and Text Object) files,
// the XML format produced by layout analysis and HTR tools to describe a scanned page.
//
// This package provides:
//
// - An object model covering the parts of the ALTO hierarchy used for conversion
// - Decoding from a reader or a file, including legacy single-byte encodings
// - Utilities for working with geometry and polygon outlines
//
// The package follows the layout hierarchy of an ALTO page:
// Document → Layout → Page → PrintSpace → TextBlock → TextLine → String,
// with the controlled zone vocabulary stored apart in Tags → OtherTag.
//
// Key Types:
//
// - Document: Top-level structure representing one ALTO file (one folio)
// - Page: The page definition with its pixel dimensions
// - TextBlock: A text region carrying geometry, a tag reference, and an outline
// - TextLine: A line within a text block
// - Polygon: The outline of a block or line as a list of points
//
// Main Functions:
//
// - Parse: Decodes an ALTO document from a reader
// - ParseFile: Decodes an ALTO document from disk
package alto
