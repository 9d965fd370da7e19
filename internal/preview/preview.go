// Package preview draws a matrix in the terminal with tcell.
//
// Each terminal cell holds two matrix rows: the upper half block takes the
// color of the top row and the cell background the color of the bottom row.
package preview

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ledgerline/glyphcode/encoder"
	"github.com/ledgerline/glyphcode/render"
)

const (
	upperHalf = '▀'
	quietZone = 1
)

// Options configures the preview.
type Options struct {
	Foreground color.RGBA
	Background color.RGBA

	// Accent colors the dark cells of the finder patterns when its alpha is
	// non-zero.
	Accent color.RGBA

	// Title is printed on the first terminal row when non-empty.
	Title string
}

// DefaultOptions returns black cells on white with no accent.
func DefaultOptions() *Options {
	ro := render.DefaultOptions()
	return &Options{Foreground: ro.Foreground, Background: ro.Background}
}

// Draw clears screen and paints grid below the title, padded by a one cell
// quiet zone. It does not call Show.
func Draw(screen tcell.Screen, grid render.Grid, opts *Options) {
	if opts == nil {
		opts = DefaultOptions()
	}
	screen.Clear()

	top := 0
	if opts.Title != "" {
		col := 0
		for _, r := range opts.Title {
			screen.SetContent(col, 0, r, nil, tcell.StyleDefault)
			col += runewidth.RuneWidth(r)
		}
		top = 1
	}

	finders := finderMask(grid.Dimension())
	side := grid.Dimension() + 2*quietZone
	for py := 0; py < side; py += 2 {
		for px := 0; px < side; px++ {
			upper := opts.cellColor(grid, finders, px, py)
			lower := opts.cellColor(grid, finders, px, py+1)
			style := tcell.StyleDefault.Foreground(tcellColor(upper)).Background(tcellColor(lower))
			screen.SetContent(px, top+py/2, upperHalf, nil, style)
		}
	}
}

// cellColor returns the color at padded coordinates (px, py).
func (o *Options) cellColor(grid render.Grid, finders [][]bool, px, py int) color.RGBA {
	x, y := px-quietZone, py-quietZone
	d := grid.Dimension()
	if x < 0 || y < 0 || x >= d || y >= d || !grid.Get(x, y) {
		return o.Background
	}
	if o.Accent.A != 0 && finders[y][x] {
		return o.Accent
	}
	return o.Foreground
}

func finderMask(dimension int) [][]bool {
	mask := make([][]bool, dimension)
	for y := range mask {
		mask[y] = make([]bool, dimension)
	}
	for _, origin := range encoder.FinderOrigins(dimension) {
		for y := origin[1]; y < origin[1]+7 && y < dimension; y++ {
			for x := origin[0]; x < origin[0]+7 && x < dimension; x++ {
				mask[y][x] = true
			}
		}
	}
	return mask
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run draws grid and handles events until the user presses Esc, q or
// Ctrl-C, or the screen is finalized. The caller owns Init and Fini.
func Run(screen tcell.Screen, grid render.Grid, opts *Options) error {
	Draw(screen, grid, opts)
	screen.Show()
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			Draw(screen, grid, opts)
			screen.Show()
		case *tcell.EventKey:
			if quits(ev) {
				return nil
			}
		}
	}
}

func quits(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
