package annotate

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// render draws the current prompt state full-screen: a header naming
// the original token and its bin, the selectable option list with
// the cursor and dictionary-membership markers, and either the typed
// input line or a one-line key legend.
func (s *Session) render(st *promptState) {
	s.screen.Clear()

	header := fmt.Sprintf("needs annotation — bin %d — original %q", st.bin, st.original)
	s.drawText(0, 0, header, tcell.StyleDefault.Foreground(s.palette.HeaderFg).Bold(true))

	row := 2
	for i, opt := range st.options {
		style := tcell.StyleDefault.Foreground(s.palette.Foreground)
		marker := "  "
		if i == st.cursor && !st.typing {
			style = tcell.StyleDefault.Foreground(s.palette.SelectFg).Background(s.palette.SelectBg)
			marker = "> "
		}
		label := opt.text
		if i == 0 {
			label += " (original)"
		}
		if opt.inDict {
			label += " [in dictionary]"
		}
		s.drawText(0, row, marker+label, style)
		row++
	}

	row++
	if st.typing {
		s.drawText(0, row, "type a correction, Enter to accept, Esc to cancel:", tcell.StyleDefault.Foreground(s.palette.HintFg))
		row++
		s.drawText(0, row, "> "+st.input, tcell.StyleDefault.Foreground(s.palette.Foreground))
	} else {
		s.drawText(0, row, "↑/↓ or j/k to move, Enter to accept, i to type a correction", tcell.StyleDefault.Foreground(s.palette.HintFg))
	}

	s.screen.Show()
}

func (s *Session) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
