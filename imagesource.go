package hybridbin

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericlevine/hybridbin/bitutil"
)

// ImageLuminanceSource is an in-memory LuminanceSource holding one 8-bit
// sample per pixel in row-major order.
type ImageLuminanceSource struct {
	luminances []byte
	width      int
	height     int
}

// NewImageLuminanceSource creates a LuminanceSource from a Go image.Image.
// The image is converted to greyscale luminance values upon construction
// with (306*R + 601*G + 117*B + 0x200) >> 10 on 8-bit color components.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	if gray, ok := img.(*image.Gray); ok {
		return NewGrayImageLuminanceSource(gray)
	}
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	luminances := make([]byte, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				// Fully-transparent pixels are forced to white.
				luminances[y*w+x] = 0xFF
				continue
			}
			r8 := r >> 8
			g8 := g >> 8
			b8 := b >> 8
			luminances[y*w+x] = byte((306*r8 + 601*g8 + 117*b8 + 0x200) >> 10)
		}
	}

	return &ImageLuminanceSource{
		luminances: luminances,
		width:      w,
		height:     h,
	}
}

// NewGrayImageLuminanceSource creates a LuminanceSource from a *image.Gray,
// using the pixel data directly without conversion.
func NewGrayImageLuminanceSource(img *image.Gray) *ImageLuminanceSource {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	luminances := make([]byte, w*h)

	if img.Stride == w && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		copy(luminances, img.Pix[:w*h])
	} else {
		for y := 0; y < h; y++ {
			srcOff := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(luminances[y*w:], img.Pix[srcOff:srcOff+w])
		}
	}
	return &ImageLuminanceSource{
		luminances: luminances,
		width:      w,
		height:     h,
	}
}

// NewPlaneLuminanceSource wraps an existing row-major plane of width*height
// samples. The plane is not copied; callers must not modify it afterwards.
func NewPlaneLuminanceSource(plane []byte, width, height int) (*ImageLuminanceSource, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	if len(plane) < width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrShortPlane, len(plane), width, height)
	}
	return &ImageLuminanceSource{
		luminances: plane[:width*height],
		width:      width,
		height:     height,
	}, nil
}

// Row returns a row of luminance data.
func (s *ImageLuminanceSource) Row(y int, row []byte) ([]byte, error) {
	if y < 0 || y >= s.height {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrRowOutOfRange, y, s.height)
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	offset := y * s.width
	copy(row, s.luminances[offset:offset+s.width])
	return row, nil
}

// Matrix returns the luminance plane. The returned slice is shared with the
// source and must be treated as read-only.
func (s *ImageLuminanceSource) Matrix() ([]byte, error) {
	return s.luminances, nil
}

// Width returns the width of the image.
func (s *ImageLuminanceSource) Width() int {
	return s.width
}

// Height returns the height of the image.
func (s *ImageLuminanceSource) Height() int {
	return s.height
}

// RotateCounterClockwise returns a new ImageLuminanceSource rotated 90 degrees
// counterclockwise. 1D readers use it to scan barcodes that are oriented
// vertically.
func (s *ImageLuminanceSource) RotateCounterClockwise() *ImageLuminanceSource {
	newWidth := s.height
	newHeight := s.width
	newLum := make([]byte, newWidth*newHeight)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			// (x, y) in old image -> (y, width - 1 - x) in new image
			newLum[(s.width-1-x)*newWidth+y] = s.luminances[y*s.width+x]
		}
	}
	return &ImageLuminanceSource{
		luminances: newLum,
		width:      newWidth,
		height:     newHeight,
	}
}

// BitMatrixToImage converts a BitMatrix to a grayscale image where black
// bits are 0 and white bits are 255.
func BitMatrixToImage(matrix *bitutil.BitMatrix) *image.Gray {
	w := matrix.Width()
	h := matrix.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
