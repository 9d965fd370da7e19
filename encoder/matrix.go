package encoder

import (
	"strings"

	"github.com/ledgerline/glyphcode/bitutil"
)

// Matrix is a generated pattern. It is read-only once returned by Generate.
type Matrix struct {
	bits *bitutil.BitMatrix
}

// Dimension returns the side length of the matrix.
func (m *Matrix) Dimension() int { return m.bits.Width() }

// Get reports whether the cell at column x, row y is dark.
func (m *Matrix) Get(x, y int) bool { return m.bits.Get(x, y) }

// DarkCount returns the number of dark cells.
func (m *Matrix) DarkCount() int { return m.bits.CountSet() }

// Bits returns a copy of the underlying bit grid.
func (m *Matrix) Bits() *bitutil.BitMatrix { return m.bits.Clone() }

// Equal reports whether both matrices hold the same cells.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil {
		return false
	}
	return m.bits.Equals(other.bits)
}

// Rows returns one string per row with '1' for dark and '0' for light cells.
func (m *Matrix) Rows() []string {
	rows := make([]string, m.Dimension())
	for y := range rows {
		var sb strings.Builder
		sb.Grow(m.Dimension())
		for x := 0; x < m.Dimension(); x++ {
			if m.Get(x, y) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns a visual representation of the matrix.
func (m *Matrix) String() string {
	return m.bits.StringWithChars("##", "  ")
}
