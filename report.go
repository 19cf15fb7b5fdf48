package mpcalc

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DumpTable writes an epsilon table produced by Shanks to w, one row per
// line, for debugging a stubborn extrapolation. Columns with odd index
// hold the actual extrapolates and are shown in green; columns with even
// index hold the dummy entries of Wynn's recurrence and are dimmed. When
// w is a terminal, rows are clipped to the terminal width.
func DumpTable(w io.Writer, table [][]*big.Float) {
	width := 0
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = tw
		}
	}
	estimate := color.New(color.FgGreen)
	dummy := color.New(color.Faint)
	for i, row := range table {
		line := fmt.Sprintf("%3d |", i)
		printed := len(line)
		for j, v := range row {
			cell := fmt.Sprintf(" %14.6g", v)
			if width > 0 && printed+len(cell)+4 > width {
				line += " ..."
				break
			}
			printed += len(cell)
			if j&1 == 1 {
				line += estimate.Sprint(cell)
			} else {
				line += dummy.Sprint(cell)
			}
		}
		fmt.Fprintln(w, line)
	}
}
