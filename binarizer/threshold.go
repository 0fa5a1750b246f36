package binarizer

import "github.com/ericlevine/hybridbin/bitutil"

// Threshold returns the smoothed threshold used for the pixels of block
// (bx, by): the mean black point of the 5x5 block window around it. The
// window is shifted inward at the grid edges so it always holds 25 blocks,
// which requires a grid at least 5 blocks in each direction.
func (m *BlackPointMap) Threshold(bx, by int) int {
	left := clampWindow(bx, m.Width-3)
	top := clampWindow(by, m.Height-3)
	sum := 0
	for y := top - 2; y <= top+2; y++ {
		row := m.Points[y*m.Width+left-2 : y*m.Width+left+3]
		sum += row[0] + row[1] + row[2] + row[3] + row[4]
	}
	return sum / 25
}

func clampWindow(value, hi int) int {
	if value < 2 {
		return 2
	}
	if value > hi {
		return hi
	}
	return value
}

// thresholdBlocks writes every pixel of the plane into matrix, black when
// its luminance is at or below the smoothed threshold of the block that
// owns it. Pixel (x, y) is owned by block (x/8, y/8); the edge blocks'
// statistics come from their overlapping anchor, but each pixel is written
// exactly once.
func thresholdBlocks(luminances []byte, g blockGrid, blackPoints *BlackPointMap, matrix *bitutil.BitMatrix) {
	for by := 0; by < g.subHeight; by++ {
		y0 := by << blockSizePower
		y1 := min(y0+blockSize, g.height)
		for bx := 0; bx < g.subWidth; bx++ {
			x0 := bx << blockSizePower
			x1 := min(x0+blockSize, g.width)
			thresholdBlock(luminances, x0, y0, x1, y1, g.width, blackPoints.Threshold(bx, by), matrix)
		}
	}
}

// thresholdBlock sets the bits of [x0, x1) x [y0, y1) whose luminance is at
// or below threshold. luminances has a row stride of stride.
func thresholdBlock(luminances []byte, x0, y0, x1, y1, stride, threshold int, matrix *bitutil.BitMatrix) {
	for y, offset := y0, y0*stride; y < y1; y, offset = y+1, offset+stride {
		for x := x0; x < x1; x++ {
			if int(luminances[offset+x]) <= threshold {
				matrix.Set(x, y)
			}
		}
	}
}
