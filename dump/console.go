package dump

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/npillmayer/qedarray"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Source is the read-only view of an array, as needed for dumping.
// *qedarray.Array[T] implements it.
type Source[T any] interface {
	Axes() int
	Extents() []int
	Get(index ...int) (T, error)
}

// Config holds parameters for console output.
type Config struct {
	LineWidth int                    // maximum line length in ‘en’s (terminal columns), 0 for unlimited
	Context   *uax11.Context         // context for measuring cell widths
	Highlight func(index []int) bool // cells to output in color, may be nil
	Color     *color.Color           // color for highlighted cells, may be nil
}

var setupGraphemes sync.Once

// Console writes the elements of src as grids of cells to w.
// Arrays with more than two axes are sliced along their leading axes,
// each 2-axis slice headed by its index prefix. Columns which do not fit into
// config.LineWidth are cut off and marked with an ellipsis.
//
// If config is nil, a heuristic will create a config from the current
// terminal's properties.
func Console[T any](w io.Writer, src Source[T], config *Config) error {
	if src == nil || src.Axes() < 1 {
		return qedarray.ErrIllegalArguments
	}
	if config == nil {
		config = ConfigFromTerminal()
	} else {
		cfg := *config
		config = &cfg
	}
	if config.Context == nil {
		config.Context = uax11.LatinContext
	}
	if config.Highlight != nil && config.Color == nil {
		config.Color = color.New(color.FgRed, color.Bold)
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	ext := src.Extents()
	axes := len(ext)
	rows, cols := 1, ext[axes-1]
	if axes > 1 {
		rows = ext[axes-2]
	}
	lead := axes - 2
	if lead < 0 {
		lead = 0
	}
	var err error
	eachPrefix(ext[:lead], func(prefix []int) bool {
		err = sliceToConsole(w, src, prefix, axes, rows, cols, config)
		return err == nil
	})
	return err
}

func sliceToConsole[T any](w io.Writer, src Source[T], prefix []int, axes, rows, cols int, config *Config) error {
	if len(prefix) > 0 {
		hdr := make([]string, len(prefix), len(prefix)+2)
		for i, x := range prefix {
			hdr[i] = fmt.Sprint(x)
		}
		hdr = append(hdr, ":", ":")
		fmt.Fprintf(w, "[%s]\n", strings.Join(hdr, ", "))
	}
	cells := make([][]string, rows)
	widths := make([]int, cols)
	for r := 0; r < rows; r++ {
		cells[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			v, err := src.Get(cellIndex(prefix, axes, r, c)...)
			if err != nil {
				return err
			}
			cells[r][c] = fmt.Sprint(v)
			widths[c] = max(widths[c], cellWidth(cells[r][c], config.Context))
		}
	}
	fit, cut := fitColumns(widths, config.LineWidth)
	tracer().P("dump", "console").Debugf("slice %v: %d×%d cells, %d columns fit", prefix, rows, cols, fit)
	for r := 0; r < rows; r++ {
		for c := 0; c < fit; c++ {
			if c > 0 {
				io.WriteString(w, " ")
			}
			pad := strings.Repeat(" ", widths[c]-cellWidth(cells[r][c], config.Context))
			io.WriteString(w, pad)
			if config.Highlight != nil && config.Highlight(cellIndex(prefix, axes, r, c)) {
				config.Color.Fprint(w, cells[r][c])
			} else {
				io.WriteString(w, cells[r][c])
			}
		}
		if cut {
			io.WriteString(w, " …")
		}
		io.WriteString(w, "\n")
	}
	return nil
}

// cellIndex assembles the full index of cell (r, c) of the slice at prefix.
// 1-axis arrays have a single row and the row index is dropped.
func cellIndex(prefix []int, axes, r, c int) []int {
	index := make([]int, len(prefix), axes)
	copy(index, prefix)
	if axes > 1 {
		index = append(index, r)
	}
	return append(index, c)
}

// cellWidth returns the display width of s in ‘en’s, i.e. terminal columns.
// uax11 measures ASCII digits, '#' and '*' as wide emoji (keycap bases),
// therefore single-byte graphemes count as narrow.
func cellWidth(s string, context *uax11.Context) int {
	gstr := grapheme.StringFromString(s)
	w := 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		if len(g) == 1 && g[0] < utf8.RuneSelf {
			w++
			continue
		}
		w += uax11.Width([]byte(g), context)
	}
	return w
}

// fitColumns returns the number of columns fitting into linewidth, and
// whether columns have been cut off.
func fitColumns(widths []int, linewidth int) (int, bool) {
	if linewidth <= 0 {
		return len(widths), false
	}
	total := 0
	for c, wd := range widths {
		if c > 0 {
			total++
		}
		total += wd
		room := linewidth
		if c < len(widths)-1 {
			room -= 2 // leave room for the ellipsis
		}
		if total > room {
			return c, true
		}
	}
	return len(widths), false
}

// eachPrefix calls f for every index tuple within extents, in row-major
// order. An empty extents tuple yields a single empty prefix.
func eachPrefix(extents []int, f func(prefix []int) bool) {
	prefix := make([]int, len(extents))
	for _, e := range extents {
		if e == 0 {
			return
		}
	}
	for {
		if !f(prefix) {
			return
		}
		k := len(prefix) - 1
		for ; k >= 0; k-- {
			prefix[k]++
			if prefix[k] < extents[k] {
				break
			}
			prefix[k] = 0
		}
		if k < 0 {
			return
		}
	}
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(1) {
		w, _, err := term.GetSize(1)
		if err != nil {
			config.LineWidth = 80
		} else if w > 10 {
			config.LineWidth = w - 2
		} else {
			config.LineWidth = 10
		}
		config.Context = uax11.ContextFromEnvironment()
	} else {
		config.LineWidth = 0
		config.Context = uax11.LatinContext
	}
	tracer().P("dump", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
