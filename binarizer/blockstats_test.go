package binarizer

import "testing"

func TestNewBlockGrid(t *testing.T) {
	tests := []struct {
		width, height       int
		subWidth, subHeight int
	}{
		{40, 40, 5, 5},
		{64, 64, 8, 8},
		{65, 71, 9, 9},
		{67, 53, 9, 7},
	}
	for _, tt := range tests {
		g := newBlockGrid(tt.width, tt.height)
		if g.subWidth != tt.subWidth || g.subHeight != tt.subHeight {
			t.Errorf("newBlockGrid(%d, %d) = %dx%d blocks, want %dx%d",
				tt.width, tt.height, g.subWidth, g.subHeight, tt.subWidth, tt.subHeight)
		}
	}
}

func TestBlockGridAnchor(t *testing.T) {
	g := newBlockGrid(67, 53)
	tests := []struct {
		bx, by int
		x, y   int
	}{
		{0, 0, 0, 0},
		{3, 2, 24, 16},
		{7, 5, 56, 40},
		{8, 6, 59, 45}, // clamped to width-8, height-8
	}
	for _, tt := range tests {
		if x, y := g.anchor(tt.bx, tt.by); x != tt.x || y != tt.y {
			t.Errorf("anchor(%d, %d) = (%d, %d), want (%d, %d)", tt.bx, tt.by, x, y, tt.x, tt.y)
		}
	}
}

func TestBlockStats(t *testing.T) {
	plane := make([]byte, 16*8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			plane[y*16+x] = byte(100 + x + y)
		}
	}
	// Left block: 100..114, range 14, so every row is scanned for extremes.
	sum, lo, hi := blockStats(plane, 0, 16)
	if sum != 64*107 || lo != 100 || hi != 114 {
		t.Errorf("left block = (%d, %d, %d), want (%d, 100, 114)", sum, lo, hi, 64*107)
	}

	plane[0] = 0
	// Range exceeds the floor on the first row; the sum must still cover
	// the whole block.
	sum, lo, _ = blockStats(plane, 0, 16)
	if sum != 64*107-100 || lo != 0 {
		t.Errorf("contrasting block = (%d, %d), want (%d, 0)", sum, lo, 64*107-100)
	}
}

func TestDegenerateBlockRules(t *testing.T) {
	// 2x2 blocks:
	//   (0,0) half 0 / half 200 -> mean 100
	//   (1,0) uniform 240       -> top row, min/2 = 120
	//   (0,1) uniform 40        -> left column, min/2 = 20
	//   (1,1) uniform 10        -> neighbours (20 + 2*120 + 100)/4 = 90 > 10
	plane := make([]byte, 16*16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			var v byte
			switch {
			case y < 8 && x < 8:
				if x >= 4 {
					v = 200
				}
			case y < 8:
				v = 240
			case x < 8:
				v = 40
			default:
				v = 10
			}
			plane[y*16+x] = v
		}
	}
	m := calculateBlackPoints(plane, newBlockGrid(16, 16))
	want := []int{100, 120, 20, 90}
	for i, w := range want {
		if m.Points[i] != w {
			t.Errorf("black point %d = %d, want %d", i, m.Points[i], w)
		}
	}
	if m.Degenerate != 3 {
		t.Errorf("Degenerate = %d, want 3", m.Degenerate)
	}
}

func TestDegenerateBlockKeepsHalfMinimum(t *testing.T) {
	// A uniform block brighter than its neighbourhood keeps min/2.
	plane := make([]byte, 16*16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := byte(60)
			if x >= 8 && y >= 8 {
				v = 200
			}
			plane[y*16+x] = v
		}
	}
	m := calculateBlackPoints(plane, newBlockGrid(16, 16))
	if got := m.At(1, 1); got != 100 {
		t.Errorf("black point (1,1) = %d, want 100", got)
	}
}

func TestBlackPointsInRange(t *testing.T) {
	source := randomSource(t, 123, 77, 5)
	plane, _ := source.Matrix()
	m := calculateBlackPoints(plane, newBlockGrid(123, 77))
	if len(m.Points) != m.Width*m.Height || m.Width != 16 || m.Height != 10 {
		t.Fatalf("map is %dx%d with %d points", m.Width, m.Height, len(m.Points))
	}
	for i, p := range m.Points {
		if p < 0 || p > 255 {
			t.Errorf("black point %d = %d, out of [0, 255]", i, p)
		}
	}
}

func TestThresholdWindowClampsAtEdges(t *testing.T) {
	source := randomSource(t, 64, 72, 9)
	plane, _ := source.Matrix()
	m := calculateBlackPoints(plane, newBlockGrid(64, 72))

	window := func(left, top int) int {
		sum := 0
		for y := top; y < top+5; y++ {
			for x := left; x < left+5; x++ {
				sum += m.At(x, y)
			}
		}
		return sum / 25
	}

	tests := []struct {
		bx, by    int
		left, top int
	}{
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{2, 2, 0, 0},
		{4, 3, 2, 1},
		{7, 8, 3, 4},
		{0, 8, 0, 4},
		{7, 0, 3, 0},
	}
	for _, tt := range tests {
		if got, want := m.Threshold(tt.bx, tt.by), window(tt.left, tt.top); got != want {
			t.Errorf("Threshold(%d, %d) = %d, want %d", tt.bx, tt.by, got, want)
		}
	}
}
