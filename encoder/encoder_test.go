package encoder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var emptyRows = []string{
	"111111100011001111111",
	"100000100100001000001",
	"101110101000101011101",
	"101110100011001011101",
	"101110100100001011101",
	"100000101000101000001",
	"111111101010101111111",
	"000000000011000000000",
	"000110110100001001001",
	"011000000000110010010",
	"100001101011000100100",
	"000110010100001001001",
	"011000100000110010010",
	"000000001011000100100",
	"111111100100001001001",
	"100000100000110010010",
	"101110101011000100100",
	"101110100100001001001",
	"101110100000110010010",
	"100000101011000100100",
	"111111100100001001001",
}

var xjoRows = []string{
	"111111101100001111111",
	"100000100000101000001",
	"101110100011001011101",
	"101110101100001011101",
	"101110100000101011101",
	"100000100011001000001",
	"111111101010101111111",
	"000000001100000000000",
	"011000100000110010010",
	"100001001011000100100",
	"000110110100001001001",
	"011000000000110010010",
	"100001101011000100100",
	"000000000100001001001",
	"111111101000110010010",
	"100000100011000100100",
	"101110100100001001001",
	"101110101000110010010",
	"101110100011000100100",
	"100000100100001001001",
	"111111101000110010010",
}

func TestGenerateGolden(t *testing.T) {
	tests := []struct {
		value string
		rows  []string
		dark  int
	}{
		{"", emptyRows, 185},
		{"XJO-1", xjoRows, 185},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			m := Generate(tt.value)
			if diff := cmp.Diff(tt.rows, m.Rows()); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
			if got := m.DarkCount(); got != tt.dark {
				t.Errorf("DarkCount = %d, want %d", got, tt.dark)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, value := range []string{"", "a", "XJO-1", "ünïcødé ✓", strings.Repeat("pay", 1000)} {
		first := Generate(value)
		second := Generate(value)
		if !first.Equal(second) {
			t.Errorf("Generate(%q) is not deterministic", value)
		}
	}
}

func TestGenerateFixedDimension(t *testing.T) {
	for _, value := range []string{"", "x", strings.Repeat("long value ", 500)} {
		m := Generate(value)
		if m.Dimension() != Dimension {
			t.Errorf("Generate(%q) dimension = %d, want %d", value, m.Dimension(), Dimension)
		}
		if rows := m.Rows(); len(rows) != Dimension || len(rows[0]) != Dimension {
			t.Errorf("Generate(%q) rows are %dx%d", value, len(rows), len(rows[0]))
		}
	}
}

func TestStructuralInvariance(t *testing.T) {
	base := Generate("")
	for _, value := range []string{"a", "a very long arbitrary string"} {
		m := Generate(value)
		for y := 0; y < Dimension; y++ {
			for x := 0; x < Dimension; x++ {
				if IsReserved(x, y, Dimension) && m.Get(x, y) != base.Get(x, y) {
					t.Errorf("Generate(%q) reserved cell (%d,%d) = %v, want %v",
						value, x, y, m.Get(x, y), base.Get(x, y))
				}
			}
		}
	}
}

func TestFinderSymmetry(t *testing.T) {
	for _, value := range []string{"", "a", "XJO-1"} {
		m := Generate(value)
		last := Dimension - 1
		for y := 0; y < finderSize; y++ {
			for x := 0; x < finderSize; x++ {
				want := positionDetectionPattern[y][x]
				if m.Get(x, y) != want {
					t.Errorf("%q top-left (%d,%d) = %v, want %v", value, x, y, m.Get(x, y), want)
				}
				if m.Get(last-x, y) != want {
					t.Errorf("%q top-right (%d,%d) = %v, want %v", value, last-x, y, m.Get(last-x, y), want)
				}
				if m.Get(x, last-y) != want {
					t.Errorf("%q bottom-left (%d,%d) = %v, want %v", value, x, last-y, m.Get(x, last-y), want)
				}
			}
		}
	}
}

func TestFinderOriginsMatchDirectComputation(t *testing.T) {
	m := Generate("origin")
	for _, origin := range FinderOrigins(Dimension) {
		for y := 0; y < finderSize; y++ {
			for x := 0; x < finderSize; x++ {
				ring := x == 0 || x == 6 || y == 0 || y == 6
				core := x >= 2 && x <= 4 && y >= 2 && y <= 4
				if got := m.Get(origin[0]+x, origin[1]+y); got != (ring || core) {
					t.Errorf("finder at %v cell (%d,%d) = %v, want %v", origin, x, y, got, ring || core)
				}
			}
		}
	}
}

func TestTimingPatterns(t *testing.T) {
	m := Generate("timing")
	for i := 8; i <= Dimension-9; i++ {
		want := i%2 == 0
		if m.Get(i, timingIndex) != want {
			t.Errorf("timing row cell %d = %v, want %v", i, m.Get(i, timingIndex), want)
		}
		if m.Get(timingIndex, i) != want {
			t.Errorf("timing column cell %d = %v, want %v", i, m.Get(timingIndex, i), want)
		}
	}
}

func TestSeparatorsStayLight(t *testing.T) {
	m := Generate("separators")
	for i := 0; i < reserveSize; i++ {
		if m.Get(7, i) || m.Get(i, 7) {
			t.Errorf("top-left separator cell %d is dark", i)
		}
	}
}

func TestChecksumCollision(t *testing.T) {
	if Checksum("ab") != Checksum("ba") {
		t.Fatal("anagrams should share a checksum")
	}
	if !Generate("ab").Equal(Generate("ba")) {
		t.Error(`Generate("ab") and Generate("ba") should be identical`)
	}
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"a", 97},
		{"XJO-1", 335},
		{"é", 0xE9},
		{"\xff", 0xFFFD},
	}
	for _, tt := range tests {
		if got := Checksum(tt.value); got != tt.want {
			t.Errorf("Checksum(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestIsReserved(t *testing.T) {
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{7, 7, true},
		{8, 8, false},
		{13, 0, true},
		{12, 0, false},
		{0, 13, true},
		{0, 12, false},
		{13, 13, false},
		{20, 20, false},
		{6, 15, true},
		{15, 6, true},
		{9, 10, false},
	}
	for _, tt := range tests {
		if got := IsReserved(tt.x, tt.y, Dimension); got != tt.want {
			t.Errorf("IsReserved(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDataCellsFollowSweepFormula(t *testing.T) {
	const value = "sweep"
	m := Generate(value)
	sum := Checksum(value)
	seq := 0
	for right := Dimension - 1; right > 0; right -= 2 {
		if right == timingIndex {
			right--
		}
		for y := 0; y < Dimension; y++ {
			for _, x := range []int{right, right - 1} {
				if IsReserved(x, y, Dimension) {
					continue
				}
				want := (sum+seq)%3 == 0
				if m.Get(x, y) != want {
					t.Fatalf("data cell (%d,%d) seq %d = %v, want %v", x, y, seq, m.Get(x, y), want)
				}
				seq++
			}
		}
	}
	if seq != dataCellCount() {
		t.Errorf("visited %d data cells, want %d", seq, dataCellCount())
	}
}

func dataCellCount() int {
	n := 0
	for y := 0; y < Dimension; y++ {
		for x := 0; x < Dimension; x++ {
			if !IsReserved(x, y, Dimension) {
				n++
			}
		}
	}
	return n
}

func TestBitsReturnsCopy(t *testing.T) {
	m := Generate("copy")
	bits := m.Bits()
	bits.Unset(0, 0)
	if !m.Get(0, 0) {
		t.Error("mutating Bits() should not affect the matrix")
	}
}

func TestMatrixString(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(Generate("").String(), "\n"), "\n")
	if len(lines) != Dimension {
		t.Fatalf("String() has %d lines, want %d", len(lines), Dimension)
	}
	if !strings.HasPrefix(lines[0], "##############") {
		t.Errorf("first line should start with the finder border, got %q", lines[0])
	}
}
