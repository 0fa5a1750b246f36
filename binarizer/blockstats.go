package binarizer

const (
	blockSizePower   = 3
	blockSize        = 1 << blockSizePower // 8x8 pixel blocks
	blockSizeMask    = blockSize - 1
	minimumDimension = blockSize * 5 // smallest side the 5x5 block window fits in
	minDynamicRange  = 24
)

// blockGrid partitions a width x height plane into blockSize x blockSize
// blocks. The last column and row of blocks are anchored at width-blockSize
// and height-blockSize so every block is full size; they overlap their
// neighbours instead of being truncated.
type blockGrid struct {
	width, height       int // pixels; also the plane's row stride is width
	subWidth, subHeight int // blocks
}

func newBlockGrid(width, height int) blockGrid {
	subWidth := width >> blockSizePower
	if width&blockSizeMask != 0 {
		subWidth++
	}
	subHeight := height >> blockSizePower
	if height&blockSizeMask != 0 {
		subHeight++
	}
	return blockGrid{width: width, height: height, subWidth: subWidth, subHeight: subHeight}
}

// anchor returns the top-left pixel of block (bx, by).
func (g blockGrid) anchor(bx, by int) (int, int) {
	return min(bx<<blockSizePower, g.width-blockSize), min(by<<blockSizePower, g.height-blockSize)
}

// BlackPointMap holds the black point of every block before smoothing.
// Points is row-major with a stride of Width blocks.
type BlackPointMap struct {
	Width      int
	Height     int
	Points     []int
	Degenerate int // blocks whose range did not exceed the dynamic range floor
}

// At returns the black point of block (bx, by).
func (m *BlackPointMap) At(bx, by int) int {
	return m.Points[by*m.Width+bx]
}

// calculateBlackPoints computes one black point per block of the plane.
// luminances is row-major with a stride of g.width.
//
// A block with enough contrast takes its mean. A near-uniform block is
// taken to be all background or all foreground: it gets min/2, which makes
// the whole block white, unless its already-computed neighbours say it sits
// in a darker region than its own minimum, in which case it takes their
// weighted average and comes out black.
func calculateBlackPoints(luminances []byte, g blockGrid) *BlackPointMap {
	stride := g.width
	m := &BlackPointMap{
		Width:  g.subWidth,
		Height: g.subHeight,
		Points: make([]int, g.subWidth*g.subHeight),
	}

	for by := 0; by < g.subHeight; by++ {
		for bx := 0; bx < g.subWidth; bx++ {
			x0, y0 := g.anchor(bx, by)
			sum, lo, hi := blockStats(luminances, y0*stride+x0, stride)

			if hi-lo > minDynamicRange {
				m.Points[by*m.Width+bx] = sum >> (blockSizePower * 2)
				continue
			}

			m.Degenerate++
			blackPoint := lo / 2
			if by > 0 && bx > 0 {
				neighbours := (m.At(bx-1, by) + 2*m.At(bx, by-1) + m.At(bx-1, by-1)) / 4
				if lo < neighbours {
					blackPoint = neighbours
				}
			}
			m.Points[by*m.Width+bx] = blackPoint
		}
	}
	return m
}

// blockStats sweeps the block starting at offset once and returns the sum,
// minimum and maximum of its samples. Once the range exceeds
// minDynamicRange the exact extremes no longer matter, so the remaining rows
// are only summed.
func blockStats(luminances []byte, offset, stride int) (sum, lo, hi int) {
	lo, hi = 0xff, 0
	for y := 0; y < blockSize; y, offset = y+1, offset+stride {
		row := luminances[offset : offset+blockSize]
		for _, v := range row {
			pixel := int(v)
			sum += pixel
			lo = min(lo, pixel)
			hi = max(hi, pixel)
		}
		if hi-lo > minDynamicRange {
			for y, offset = y+1, offset+stride; y < blockSize; y, offset = y+1, offset+stride {
				for _, v := range luminances[offset : offset+blockSize] {
					sum += int(v)
				}
			}
			break
		}
	}
	return sum, lo, hi
}
