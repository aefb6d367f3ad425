package convert

import "errors"

var (
	// ErrMalformedFileName is returned when a layout file name has no folio number
	ErrMalformedFileName = errors.New("malformed file name")

	// ErrEmptyDirectory is returned when a directory holds no layout files
	ErrEmptyDirectory = errors.New("no layout files")

	// ErrMissingTagDefinitions is returned with an empty dictionary when the
	// first layout file defines no zone tags
	ErrMissingTagDefinitions = errors.New("no tag definitions")

	// ErrUnknownZoneType marks a zone whose tag reference cannot be classified
	ErrUnknownZoneType = errors.New("unknown zone type")

	// ErrMissingGeometry is returned when a zone or page lacks a coordinate attribute
	ErrMissingGeometry = errors.New("missing geometry")

	// ErrMissingZoneID is returned when a text block has no ID to scope its lines by
	ErrMissingZoneID = errors.New("missing zone id")

	// ErrMissingPolygon is returned when a zone has no polygon outline
	ErrMissingPolygon = errors.New("missing polygon")

	// ErrMissingPageElement is returned when a layout file has no page definition
	ErrMissingPageElement = errors.New("missing page element")
)
