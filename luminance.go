package hybridbin

import "github.com/ericlevine/hybridbin/bitutil"

// LuminanceSource provides access to greyscale luminance values for an image.
// Samples are 8-bit, row-major, with a row stride equal to Width.
type LuminanceSource interface {
	// Row returns a row of luminance data. If row is non-nil and large enough,
	// it should be reused.
	Row(y int, row []byte) ([]byte, error)

	// Matrix returns the entire luminance plane, Width*Height samples long.
	Matrix() ([]byte, error)

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}

// Binarizer converts luminance data to 1-bit black/white data. A set bit
// means black.
type Binarizer interface {
	// BlackRow returns a row of black/white values. If row is non-nil and
	// large enough, implementations may reuse it.
	BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error)

	// BlackMatrix returns the 2D matrix of black/white values.
	BlackMatrix() (*bitutil.BitMatrix, error)

	// CreateBinarizer returns a fresh Binarizer of the same kind bound to
	// source. No cached state is carried over.
	CreateBinarizer(source LuminanceSource) Binarizer

	// LuminanceSource returns the underlying LuminanceSource.
	LuminanceSource() LuminanceSource

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}

// CheckDimensions returns ErrInvalidDimensions if source has a zero or
// negative width or height.
func CheckDimensions(source LuminanceSource) error {
	if source.Width() < 1 || source.Height() < 1 {
		return ErrInvalidDimensions
	}
	return nil
}
