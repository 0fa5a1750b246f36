package binarizer

import (
	"github.com/ericlevine/hybridbin"
	"github.com/ericlevine/hybridbin/bitutil"
)

// Hybrid implements a local thresholding algorithm. It is more effective than
// GlobalHistogram for images with shadows and gradients.
//
// The image is divided into 8x8 blocks. Each block gets a black point from
// its own statistics, and its pixels are thresholded against the average
// black point of the surrounding 5x5 blocks. Rows, and images smaller than
// 40 pixels in either direction, are delegated to a GlobalHistogram.
//
// Results are computed on first request and cached for the lifetime of the
// binarizer. A Hybrid is not safe for concurrent use; use one per goroutine,
// each with its own source.
type Hybrid struct {
	source   hybridbin.LuminanceSource
	fallback *GlobalHistogram

	matrix      *bitutil.BitMatrix
	blackPoints *BlackPointMap

	row    *bitutil.BitArray
	rowNum int
}

var _ hybridbin.Binarizer = (*Hybrid)(nil)

// NewHybrid creates a new Hybrid binarizer.
func NewHybrid(source hybridbin.LuminanceSource) *Hybrid {
	return &Hybrid{
		source:   source,
		fallback: NewGlobalHistogram(source),
	}
}

// CreateBinarizer returns a new Hybrid bound to source with empty caches.
func (h *Hybrid) CreateBinarizer(source hybridbin.LuminanceSource) hybridbin.Binarizer {
	return NewHybrid(source)
}

// LuminanceSource returns the underlying source.
func (h *Hybrid) LuminanceSource() hybridbin.LuminanceSource {
	return h.source
}

// Width returns the image width.
func (h *Hybrid) Width() int { return h.source.Width() }

// Height returns the image height.
func (h *Hybrid) Height() int { return h.source.Height() }

// BlackRow returns row y binarized by the global histogram fallback. The
// most recently requested row is cached: asking for the same y again
// returns the same BitArray. The row argument is never written to, so a
// cached row is not disturbed by callers recycling buffers; callers must
// not modify the returned array.
func (h *Hybrid) BlackRow(y int, _ *bitutil.BitArray) (*bitutil.BitArray, error) {
	if h.row != nil && h.rowNum == y {
		return h.row, nil
	}
	row, err := h.fallback.BlackRow(y, nil)
	if err != nil {
		return nil, err
	}
	h.row = row
	h.rowNum = y
	return row, nil
}

// BlackMatrix returns the binarized matrix using local thresholding. The
// matrix is computed once; later calls return the same *BitMatrix, which
// callers must not modify.
func (h *Hybrid) BlackMatrix() (*bitutil.BitMatrix, error) {
	if h.matrix != nil {
		return h.matrix, nil
	}
	if err := hybridbin.CheckDimensions(h.source); err != nil {
		return nil, err
	}
	width := h.source.Width()
	height := h.source.Height()

	if width < minimumDimension || height < minimumDimension {
		m, err := h.fallback.BlackMatrix()
		if err != nil {
			return nil, err
		}
		h.matrix = m
		return m, nil
	}

	luminances, err := readPlane(h.source)
	if err != nil {
		return nil, err
	}
	grid := newBlockGrid(width, height)
	blackPoints := calculateBlackPoints(luminances, grid)
	matrix := bitutil.NewBitMatrix(width, height)
	thresholdBlocks(luminances, grid, blackPoints, matrix)

	h.blackPoints = blackPoints
	h.matrix = matrix
	return matrix, nil
}

// BlackPoints returns the per-block black points behind the matrix,
// computing the matrix first if needed. It returns nil with a nil error
// when the image was small enough to go to the global histogram fallback.
func (h *Hybrid) BlackPoints() (*BlackPointMap, error) {
	if _, err := h.BlackMatrix(); err != nil {
		return nil, err
	}
	return h.blackPoints, nil
}

// UsedFallback reports whether BlackMatrix delegates to the global
// histogram binarizer for this source's dimensions.
func (h *Hybrid) UsedFallback() bool {
	return h.source.Width() < minimumDimension || h.source.Height() < minimumDimension
}
