// Package encoder generates the fixed-size pattern matrix for a value.
//
// The matrix borrows the look of a version 1 QR symbol: three finder
// patterns, two timing lines and a data area filled by a column-pair sweep.
// It carries no error correction and cannot be scanned; its only contracts
// are determinism, fixed structural regions and a constant dimension.
package encoder

import "github.com/ledgerline/glyphcode/bitutil"

const (
	// Dimension is the side length of every generated matrix.
	Dimension = 21

	finderSize  = 7
	reserveSize = 8
	timingIndex = 6
)

// Position detection pattern (7x7 finder pattern)
var positionDetectionPattern = [finderSize][finderSize]bool{
	{true, true, true, true, true, true, true},
	{true, false, false, false, false, false, true},
	{true, false, true, true, true, false, true},
	{true, false, true, true, true, false, true},
	{true, false, true, true, true, false, true},
	{true, false, false, false, false, false, true},
	{true, true, true, true, true, true, true},
}

// Generate builds the matrix for value. It never fails and always returns a
// Dimension x Dimension matrix; equal inputs yield identical matrices.
func Generate(value string) *Matrix {
	bits := bitutil.NewBitMatrix(Dimension)
	embedFinderPatterns(bits)
	embedTimingPatterns(bits)
	embedDataCells(Checksum(value), bits)
	return &Matrix{bits: bits}
}

// Checksum sums the code points of value. Invalid UTF-8 bytes count as
// U+FFFD. Anagrams share a checksum and therefore a matrix.
func Checksum(value string) int {
	sum := 0
	for _, r := range value {
		sum += int(r)
	}
	return sum
}

// IsReserved reports whether (x, y) belongs to a structural region: one of
// the three 8x8 corner boxes around the finder patterns, or the timing row
// and column. Reserved cells are never written by the data sweep.
func IsReserved(x, y, dimension int) bool {
	far := dimension - reserveSize
	switch {
	case x < reserveSize && y < reserveSize:
		return true
	case x >= far && y < reserveSize:
		return true
	case x < reserveSize && y >= far:
		return true
	}
	return x == timingIndex || y == timingIndex
}

// FinderOrigins returns the top-left corners of the three finder patterns.
func FinderOrigins(dimension int) [3][2]int {
	far := dimension - finderSize
	return [3][2]int{{0, 0}, {far, 0}, {0, far}}
}

// embedFinderPatterns draws the top-left pattern and reflects each cell into
// the top-right and bottom-left corners.
func embedFinderPatterns(bits *bitutil.BitMatrix) {
	last := bits.Width() - 1
	for y := 0; y < finderSize; y++ {
		for x := 0; x < finderSize; x++ {
			dark := positionDetectionPattern[y][x]
			bits.SetTo(x, y, dark)
			bits.SetTo(last-x, y, dark)
			bits.SetTo(x, last-y, dark)
		}
	}
}

func embedTimingPatterns(bits *bitutil.BitMatrix) {
	dimension := bits.Width()
	for i := reserveSize; i <= dimension-reserveSize-1; i++ {
		dark := i%2 == 0
		bits.SetTo(i, timingIndex, dark)
		bits.SetTo(timingIndex, i, dark)
	}
}

// embedDataCells walks column pairs right to left, rows top to bottom, right
// column before left. The sequence counter advances once per data cell over
// the whole sweep.
func embedDataCells(checksum int, bits *bitutil.BitMatrix) {
	dimension := bits.Width()
	seq := 0
	for right := dimension - 1; right > 0; right -= 2 {
		if right == timingIndex {
			right-- // skip timing column
		}
		for y := 0; y < dimension; y++ {
			for col := 0; col < 2; col++ {
				x := right - col
				if IsReserved(x, y, dimension) {
					continue
				}
				bits.SetTo(x, y, ((checksum+seq)*7)%3 == 0)
				seq++
			}
		}
	}
}
