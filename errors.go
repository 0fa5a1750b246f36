package hybridbin

import "errors"

var (
	// ErrNotFound is returned when no usable black point could be estimated,
	// for example when the histogram of an image has a single peak.
	ErrNotFound = errors.New("black point not found")

	// ErrInvalidDimensions is returned for a luminance source with a zero
	// width or height.
	ErrInvalidDimensions = errors.New("luminance source has invalid dimensions")

	// ErrShortPlane is returned when a luminance source delivers fewer
	// samples than its dimensions require.
	ErrShortPlane = errors.New("luminance source returned a short plane")

	// ErrRowOutOfRange is returned when a row outside [0, height) is requested.
	ErrRowOutOfRange = errors.New("row out of range")
)
