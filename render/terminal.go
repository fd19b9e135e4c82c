package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/sheikhrachel/lifegrid/model"
)

const (
	escErase         = "\033[2J\033[0;0H"
	escEraseLine     = "\033[K"
	escGraphicsReset = "\033[m"

	foregroundBase = 30
	backgroundBase = 40
)

// ErrUnknownColor is returned by ParseANSIColor for unrecognised names.
var ErrUnknownColor = errors.New("render: unknown ANSI color")

// ANSIColor is one of the eight standard terminal colors
type ANSIColor int

const (
	Black ANSIColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func (c ANSIColor) String() string {
	if c < Black || c > White {
		return "ANSIColor(" + strconv.Itoa(int(c)) + ")"
	}
	return colorNames[c]
}

// ParseANSIColor converts a color name such as "yellow" to an ANSIColor
func ParseANSIColor(name string) (ANSIColor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return ANSIColor(i), nil
		}
	}
	return Black, errors.Wrapf(ErrUnknownColor, "[ParseANSIColor] %q", name)
}

// Graphics builds an SGR escape sequence from the given attribute codes
func Graphics(codes ...int) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return "\033[" + strings.Join(parts, ";") + "m"
}

// Background returns the SGR sequence that sets c as background color
func Background(c ANSIColor) string {
	return Graphics(backgroundBase + int(c))
}

// Foreground returns the SGR sequence that sets c as foreground color
func Foreground(c ANSIColor) string {
	return Graphics(foregroundBase + int(c))
}

// TerminalRenderer paints a grid as colored blocks using ANSI escape sequences
type TerminalRenderer struct {
	Out   io.Writer
	Alive ANSIColor
	Dead  ANSIColor

	// MaxWidth and MaxHeight clip the painted area when positive.
	MaxWidth  int
	MaxHeight int
}

// NewTerminalRenderer returns a renderer writing to out, or to stdout when out is nil
func NewTerminalRenderer(out io.Writer, alive, dead ANSIColor) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{Out: out, Alive: alive, Dead: dead}
}

// Display renders the grid starting at the current cursor position.
// Absent cells are painted red. The color escape is only re-emitted when
// the painted state changes.
func (r *TerminalRenderer) Display(src model.CellReader) error {
	width, height := src.GetWidth(), src.GetHeight()
	if r.MaxWidth > 0 && r.MaxWidth < width {
		width = r.MaxWidth
	}
	if r.MaxHeight > 0 && r.MaxHeight < height {
		height = r.MaxHeight
	}

	w := bufio.NewWriter(r.Out)
	var (
		prevState  bool
		prevAbsent bool
	)
	for y := range height {
		for x := range width {
			alive, ok := src.Cell(x, y)
			switch {
			case !ok:
				if !prevAbsent {
					w.WriteString(Background(Red))
				}
				prevAbsent = true
			case (x == 0 && y == 0) || prevAbsent || alive != prevState:
				c := r.Dead
				if alive {
					c = r.Alive
				}
				w.WriteString(Background(c))
				prevState = alive
				prevAbsent = false
			}
			w.WriteByte(' ')
		}
		w.WriteString("\n\r")
	}
	w.WriteString(escGraphicsReset)

	return errors.Wrap(w.Flush(), "[Display] failed to flush")
}

// Clear erases the screen and moves the cursor to the top-left corner
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, escGraphicsReset+escErase)
	return errors.Wrap(err, "[Clear] failed to write")
}

// SetCursor moves the cursor to the 1-based line and column
func (r *TerminalRenderer) SetCursor(line, column int) error {
	_, err := fmt.Fprintf(r.Out, "\033[%d;%dH", line, column)
	return errors.Wrap(err, "[SetCursor] failed to write")
}

// Status erases the current line and prints a formatted status message on it
func (r *TerminalRenderer) Status(format string, args ...any) error {
	_, err := fmt.Fprintf(r.Out, escEraseLine+format+"\n", args...)
	return errors.Wrap(err, "[Status] failed to write")
}

// WindowSize returns the number of columns and rows of the terminal attached to stdout
func WindowSize() (columns, rows int, err error) {
	columns, rows, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, errors.Wrap(err, "[WindowSize] stdout is not a terminal")
	}
	return columns, rows, nil
}
