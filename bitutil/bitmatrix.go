package bitutil

import (
	"fmt"
	"math/bits"
	"strings"
)

// BitMatrix is a dense 2D matrix of bits. x is the column and y the row, with
// the origin at the top-left. A set bit is black.
//
// Each row occupies stride uint32 words; bit x of row y lives in word
// y*stride + x/32 at position x%32.
type BitMatrix struct {
	width  int
	height int
	stride int
	data   []uint32
}

// NewBitMatrix creates a cleared width x height BitMatrix. It panics if either
// dimension is less than one.
func NewBitMatrix(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("bitmatrix: invalid dimensions %dx%d", width, height))
	}
	stride := (width + 31) / 32
	return &BitMatrix{
		width:  width,
		height: height,
		stride: stride,
		data:   make([]uint32, stride*height),
	}
}

// ParseStringMatrix builds a BitMatrix from rows of setStr/unsetStr tokens
// separated by newlines. It panics on malformed input, so it is intended for
// fixtures and tests.
func ParseStringMatrix(repr, setStr, unsetStr string) *BitMatrix {
	var rows [][]bool
	for _, line := range strings.Split(strings.ReplaceAll(repr, "\r", "\n"), "\n") {
		if line == "" {
			continue
		}
		var row []bool
		for len(line) > 0 {
			switch {
			case strings.HasPrefix(line, setStr):
				row = append(row, true)
				line = line[len(setStr):]
			case strings.HasPrefix(line, unsetStr):
				row = append(row, false)
				line = line[len(unsetStr):]
			default:
				panic("bitmatrix: illegal character encountered")
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			panic("bitmatrix: row lengths do not match")
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		panic("bitmatrix: empty matrix")
	}
	m := NewBitMatrix(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, set := range row {
			if set {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Get returns true if the bit at (x, y) is set.
func (m *BitMatrix) Get(x, y int) bool {
	return m.data[y*m.stride+x/32]&(1<<uint(x&0x1f)) != 0
}

// Set sets the bit at (x, y).
func (m *BitMatrix) Set(x, y int) {
	m.data[y*m.stride+x/32] |= 1 << uint(x&0x1f)
}

// Unset clears the bit at (x, y).
func (m *BitMatrix) Unset(x, y int) {
	m.data[y*m.stride+x/32] &^= 1 << uint(x&0x1f)
}

// Flip flips the bit at (x, y).
func (m *BitMatrix) Flip(x, y int) {
	m.data[y*m.stride+x/32] ^= 1 << uint(x&0x1f)
}

// Clear clears all bits.
func (m *BitMatrix) Clear() {
	clear(m.data)
}

// SetRegion sets every bit of the rectangle with top-left (left, top) and the
// given size. It panics if the rectangle does not fit.
func (m *BitMatrix) SetRegion(left, top, width, height int) {
	if top < 0 || left < 0 {
		panic("bitmatrix: left and top must be nonnegative")
	}
	if height < 1 || width < 1 {
		panic("bitmatrix: height and width must be at least 1")
	}
	right := left + width
	bottom := top + height
	if bottom > m.height || right > m.width {
		panic("bitmatrix: region must fit inside the matrix")
	}
	for y := top; y < bottom; y++ {
		offset := y * m.stride
		for x := left; x < right; x++ {
			m.data[offset+x/32] |= 1 << uint(x&0x1f)
		}
	}
}

// Row returns row y as a BitArray. If row is nil or too small, a new one is
// allocated.
func (m *BitMatrix) Row(y int, row *BitArray) *BitArray {
	if row == nil || row.Size() < m.width {
		row = NewBitArray(m.width)
	} else {
		row.Clear()
	}
	copy(row.bits, m.data[y*m.stride:(y+1)*m.stride])
	return row
}

// SetRow replaces row y with the first Width bits of row.
func (m *BitMatrix) SetRow(y int, row *BitArray) {
	copy(m.data[y*m.stride:(y+1)*m.stride], row.bits)
}

// Count returns the number of set bits.
func (m *BitMatrix) Count() int {
	n := 0
	for _, w := range m.data {
		n += bits.OnesCount32(w)
	}
	return n
}

// EnclosingRectangle returns [left, top, width, height] of the smallest
// rectangle containing every set bit, or nil if no bit is set.
func (m *BitMatrix) EnclosingRectangle() []int {
	left, top := m.width, m.height
	right, bottom := -1, -1
	for y := 0; y < m.height; y++ {
		for w := 0; w < m.stride; w++ {
			word := m.data[y*m.stride+w]
			if word == 0 {
				continue
			}
			if y < top {
				top = y
			}
			bottom = y
			if lo := w*32 + bits.TrailingZeros32(word); lo < left {
				left = lo
			}
			if hi := w*32 + 31 - bits.LeadingZeros32(word); hi > right {
				right = hi
			}
		}
	}
	if right < left || bottom < top {
		return nil
	}
	return []int{left, top, right - left + 1, bottom - top + 1}
}

// Width returns the width.
func (m *BitMatrix) Width() int { return m.width }

// Height returns the height.
func (m *BitMatrix) Height() int { return m.height }

// RowSize returns the row stride in uint32 words.
func (m *BitMatrix) RowSize() int { return m.stride }

// Clone returns a deep copy of the BitMatrix.
func (m *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(m.data))
	copy(d, m.data)
	return &BitMatrix{width: m.width, height: m.height, stride: m.stride, data: d}
}

// String returns a string representation using "X " for set and "  " for unset.
func (m *BitMatrix) String() string {
	return m.StringWithChars("X ", "  ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (m *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(m.height * (m.width*len(setString) + 1))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if both matrices have the same size and bits.
func (m *BitMatrix) Equals(other *BitMatrix) bool {
	if other == nil || m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
