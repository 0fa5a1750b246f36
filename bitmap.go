// Package hybridbin binarizes greyscale images into black/white bit images
// for barcode locators and decoders.
package hybridbin

import "github.com/ericlevine/hybridbin/bitutil"

// BinaryBitmap represents a bitmap of binary (black/white) values. It is the
// handle decoders work with; the Binarizer behind it decides how luminance
// becomes bits.
type BinaryBitmap struct {
	binarizer Binarizer
	matrix    *bitutil.BitMatrix
}

// NewBinaryBitmap creates a new BinaryBitmap from the given Binarizer.
func NewBinaryBitmap(binarizer Binarizer) *BinaryBitmap {
	return &BinaryBitmap{binarizer: binarizer}
}

// Width returns the width of the bitmap.
func (b *BinaryBitmap) Width() int {
	return b.binarizer.Width()
}

// Height returns the height of the bitmap.
func (b *BinaryBitmap) Height() int {
	return b.binarizer.Height()
}

// Binarizer returns the binarizer backing this bitmap.
func (b *BinaryBitmap) Binarizer() Binarizer {
	return b.binarizer
}

// BlackRow returns a row of black/white values.
func (b *BinaryBitmap) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	return b.binarizer.BlackRow(y, row)
}

// BlackMatrix returns the 2D matrix of black/white values. The matrix is
// requested from the binarizer once and shared by every later call.
func (b *BinaryBitmap) BlackMatrix() (*bitutil.BitMatrix, error) {
	if b.matrix != nil {
		return b.matrix, nil
	}
	m, err := b.binarizer.BlackMatrix()
	if err != nil {
		return nil, err
	}
	b.matrix = m
	return m, nil
}

// RotateCounterClockwise returns a new BinaryBitmap over the source rotated
// 90 degrees counterclockwise, binarized by a fresh binarizer of the same
// kind. It returns false if the source does not support rotation.
func (b *BinaryBitmap) RotateCounterClockwise() (*BinaryBitmap, bool) {
	rotator, ok := b.binarizer.LuminanceSource().(interface {
		RotateCounterClockwise() *ImageLuminanceSource
	})
	if !ok {
		return nil, false
	}
	rotated := rotator.RotateCounterClockwise()
	return NewBinaryBitmap(b.binarizer.CreateBinarizer(rotated)), true
}

// String renders the black matrix with "X " for black and "  " for white.
func (b *BinaryBitmap) String() string {
	m, err := b.BlackMatrix()
	if err != nil {
		return ""
	}
	return m.String()
}
