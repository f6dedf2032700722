package annotate

import (
	"strings"

	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/gdamore/tcell/v2"
)

// option is one selectable resolution for a needs-annotation token:
// either the original string or one of its k-best candidates.
type option struct {
	text   string
	inDict bool
}

// promptState tracks navigation and optional free-text entry for one
// Resolve() call, separated from rendering so it can be unit tested
// without a live screen.
type promptState struct {
	original string
	bin      int
	options  []option
	cursor   int

	typing bool
	input  string
}

func newPromptState(original string, bin int, candidates []string, dict *dictionary.Dictionary) *promptState {
	opts := make([]option, 0, len(candidates)+1)
	seen := map[string]bool{original: true}
	opts = append(opts, option{text: original, inDict: dict != nil && dict.Contains(original)})
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		opts = append(opts, option{text: c, inDict: dict != nil && dict.Contains(c)})
	}
	return &promptState{original: original, bin: bin, options: opts}
}

func (p *promptState) up() {
	if p.typing {
		return
	}
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *promptState) down() {
	if p.typing {
		return
	}
	if p.cursor < len(p.options)-1 {
		p.cursor++
	}
}

// handleKey applies one key event, returning (selection, true) once
// the annotator has made a final decision.
func (p *promptState) handleKey(ev *tcell.EventKey) (string, bool) {
	if p.typing {
		return p.handleTypingKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyUp:
		p.up()
	case tcell.KeyDown:
		p.down()
	case tcell.KeyEnter:
		if len(p.options) > 0 {
			return p.options[p.cursor].text, true
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			p.up()
		case 'j':
			p.down()
		case 'i', '/':
			p.typing = true
			p.input = ""
		}
	}
	return "", false
}

func (p *promptState) handleTypingKey(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.typing = false
		p.input = ""
	case tcell.KeyEnter:
		text := strings.TrimSpace(p.input)
		if text == "" {
			p.typing = false
			return "", false
		}
		return text, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case tcell.KeyRune:
		p.input += string(ev.Rune())
	}
	return "", false
}
