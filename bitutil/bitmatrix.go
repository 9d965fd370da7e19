// Package bitutil provides the packed bit grid that backs generated matrices.
package bitutil

import (
	"math/bits"
	"slices"
	"strings"
)

// BitMatrix is a packed 2D grid of bits.
// x is the column position, y is the row position. The origin is at the top-left.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrix creates a new square BitMatrix with the given dimension.
func NewBitMatrix(dimension int) *BitMatrix {
	return NewBitMatrixWithSize(dimension, dimension)
}

// NewBitMatrixWithSize creates a new BitMatrix with the given width and height.
func NewBitMatrixWithSize(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

func (bm *BitMatrix) offset(x, y int) int {
	return y*bm.rowSize + x/32
}

// Get returns true if the bit at (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	return (bm.data[bm.offset(x, y)]>>uint(x&0x1f))&1 != 0
}

// Set sets the bit at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	bm.data[bm.offset(x, y)] |= 1 << uint(x&0x1f)
}

// Unset clears the bit at (x, y).
func (bm *BitMatrix) Unset(x, y int) {
	bm.data[bm.offset(x, y)] &^= 1 << uint(x&0x1f)
}

// SetTo sets or clears the bit at (x, y).
func (bm *BitMatrix) SetTo(x, y int, value bool) {
	if value {
		bm.Set(x, y)
	} else {
		bm.Unset(x, y)
	}
}

// CountSet returns the number of set bits.
func (bm *BitMatrix) CountSet() int {
	n := 0
	for _, word := range bm.data {
		n += bits.OnesCount32(word)
	}
	return n
}

// Width returns the width.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy of the BitMatrix.
func (bm *BitMatrix) Clone() *BitMatrix {
	c := *bm
	c.data = slices.Clone(bm.data)
	return &c
}

// String returns a string representation using "X " for set and "  " for unset.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width*len(setString) + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if two BitMatrices are equal.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if other == nil || bm.width != other.width || bm.height != other.height {
		return false
	}
	return slices.Equal(bm.data, other.data)
}
