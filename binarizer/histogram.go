// Package binarizer provides implementations for converting luminance data to binary.
package binarizer

import (
	"fmt"

	"github.com/ericlevine/hybridbin"
	"github.com/ericlevine/hybridbin/bitutil"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// GlobalHistogram binarizes with a single black point estimated from a
// histogram of the image. It is cheap and works well for 1D rows; Hybrid
// uses it for rows and for images too small for local thresholding.
//
// A GlobalHistogram is not safe for concurrent use.
type GlobalHistogram struct {
	source     hybridbin.LuminanceSource
	luminances []byte
	buckets    [luminanceBuckets]int
}

var _ hybridbin.Binarizer = (*GlobalHistogram)(nil)

// NewGlobalHistogram creates a new GlobalHistogram binarizer.
func NewGlobalHistogram(source hybridbin.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

// CreateBinarizer returns a new GlobalHistogram bound to source.
func (g *GlobalHistogram) CreateBinarizer(source hybridbin.LuminanceSource) hybridbin.Binarizer {
	return NewGlobalHistogram(source)
}

// LuminanceSource returns the underlying source.
func (g *GlobalHistogram) LuminanceSource() hybridbin.LuminanceSource {
	return g.source
}

// Width returns the image width.
func (g *GlobalHistogram) Width() int { return g.source.Width() }

// Height returns the image height.
func (g *GlobalHistogram) Height() int { return g.source.Height() }

// BlackRow binarizes row y against a black point estimated from that row
// alone. Pixels are sharpened against their horizontal neighbours first,
// which also leaves the first and last pixel white.
func (g *GlobalHistogram) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	if err := hybridbin.CheckDimensions(g.source); err != nil {
		return nil, err
	}
	width := g.source.Width()
	if row == nil || row.Size() < width {
		row = bitutil.NewBitArray(width)
	} else {
		row.Clear()
	}

	g.initArrays(width)
	localLuminances, err := g.source.Row(y, g.luminances)
	if err != nil {
		return nil, err
	}
	if len(localLuminances) < width {
		return nil, fmt.Errorf("%w: row %d has %d samples, want %d", hybridbin.ErrShortPlane, y, len(localLuminances), width)
	}
	for x := 0; x < width; x++ {
		g.buckets[localLuminances[x]>>luminanceShift]++
	}
	blackPoint, err := estimateBlackPoint(g.buckets[:])
	if err != nil {
		return nil, err
	}

	if width < 3 {
		for x := 0; x < width; x++ {
			if int(localLuminances[x]) < blackPoint {
				row.Set(x)
			}
		}
		return row, nil
	}
	left := int(localLuminances[0])
	center := int(localLuminances[1])
	for x := 1; x < width-1; x++ {
		right := int(localLuminances[x+1])
		if ((center*4)-left-right)/2 < blackPoint {
			row.Set(x)
		}
		left = center
		center = right
	}
	return row, nil
}

// BlackMatrix binarizes the whole image against one black point, estimated
// from the central three fifths of four evenly spaced rows.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	if err := hybridbin.CheckDimensions(g.source); err != nil {
		return nil, err
	}
	width := g.source.Width()
	height := g.source.Height()

	g.initArrays(width)
	left, right := width/5, (width*4)/5
	for y := 1; y < 5; y++ {
		localLuminances, err := g.source.Row(height*y/5, g.luminances)
		if err != nil {
			return nil, err
		}
		if len(localLuminances) < width {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", hybridbin.ErrShortPlane, height*y/5, len(localLuminances), width)
		}
		for x := left; x < right; x++ {
			g.buckets[localLuminances[x]>>luminanceShift]++
		}
	}
	blackPoint, err := estimateBlackPoint(g.buckets[:])
	if err != nil {
		return nil, err
	}

	luminances, err := readPlane(g.source)
	if err != nil {
		return nil, err
	}
	matrix := bitutil.NewBitMatrix(width, height)
	for y := 0; y < height; y++ {
		offset := y * width
		for x := 0; x < width; x++ {
			if int(luminances[offset+x]) < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

func (g *GlobalHistogram) initArrays(luminanceSize int) {
	if len(g.luminances) < luminanceSize {
		g.luminances = make([]byte, luminanceSize)
	}
	g.buckets = [luminanceBuckets]int{}
}

// readPlane fetches the full plane from source and checks its length.
// Source errors are returned unchanged.
func readPlane(source hybridbin.LuminanceSource) ([]byte, error) {
	luminances, err := source.Matrix()
	if err != nil {
		return nil, err
	}
	if want := source.Width() * source.Height(); len(luminances) < want {
		return nil, fmt.Errorf("%w: %d samples, want %d", hybridbin.ErrShortPlane, len(luminances), want)
	}
	return luminances, nil
}

// estimateBlackPoint finds the two tallest well-separated histogram peaks
// and returns the deepest valley between them, scaled back to 8 bits. It
// returns ErrNotFound if the peaks are too close to call the image two-tone.
func estimateBlackPoint(buckets []int) (int, error) {
	numBuckets := len(buckets)
	maxBucketCount := 0
	firstPeak := 0
	firstPeakSize := 0
	for x := 0; x < numBuckets; x++ {
		if buckets[x] > firstPeakSize {
			firstPeak = x
			firstPeakSize = buckets[x]
		}
		if buckets[x] > maxBucketCount {
			maxBucketCount = buckets[x]
		}
	}

	// The second peak is scored by height and squared distance from the
	// first, so a nearby shoulder of the first peak does not win.
	secondPeak := 0
	secondPeakScore := 0
	for x := 0; x < numBuckets; x++ {
		dist := x - firstPeak
		score := buckets[x] * dist * dist
		if score > secondPeakScore {
			secondPeak = x
			secondPeakScore = score
		}
	}

	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}

	if secondPeak-firstPeak <= numBuckets/16 {
		return 0, hybridbin.ErrNotFound
	}

	// Favour valleys nearer the white peak so light-grey noise stays white.
	bestValley := secondPeak - 1
	bestValleyScore := -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		fromFirst := x - firstPeak
		score := fromFirst * fromFirst * (secondPeak - x) * (maxBucketCount - buckets[x])
		if score > bestValleyScore {
			bestValley = x
			bestValleyScore = score
		}
	}

	return bestValley << luminanceShift, nil
}
