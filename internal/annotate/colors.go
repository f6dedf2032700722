// Package annotate implements the interactive terminal annotator: a
// full-screen tcell view that presents a needs-annotation token (o, K,
// bin) and lets a human pick a candidate, accept the original, or type
// a novel correction (spec §4.4/§9).
package annotate

import "github.com/gdamore/tcell/v2"

// Palette groups the colors used to render the annotation screen,
// mirroring the teacher's ViewColors grouping.
type Palette struct {
	Foreground     tcell.Color
	Background     tcell.Color
	SelectFg       tcell.Color
	SelectBg       tcell.Color
	HeaderFg       tcell.Color
	HintFg         tcell.Color
	MemoizedFg     tcell.Color
}

// DefaultPalette matches the teacher's default terminal scheme.
func DefaultPalette() Palette {
	return Palette{
		Foreground: tcell.ColorWhite,
		Background: tcell.ColorDefault,
		SelectFg:   tcell.ColorBlack,
		SelectBg:   tcell.ColorYellow,
		HeaderFg:   tcell.ColorAqua,
		HintFg:     tcell.ColorGreen,
		MemoizedFg: tcell.ColorGray,
	}
}
