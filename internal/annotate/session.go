package annotate

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/gdamore/tcell/v2"
)

// Session drives one interactive annotation run: a tcell screen is
// opened once and reused across every needs-annotation token routed
// to it, the way the teacher's View owns one screen across its whole
// Present() call. Resolve implements heuristics.AnnotatorFunc, so the
// method value s.Resolve can be assigned directly to Corrector.Annotate.
type Session struct {
	screen  tcell.Screen
	palette Palette
	dict    *dictionary.Dictionary

	mu       sync.Mutex
	novel    []string // words typed by the annotator this session, not already in dict
	resolved map[string]string
}

// NewSession opens a tcell screen for interactive annotation. dict is
// consulted (read-only) to mark already-known candidates; it is never
// mutated directly — novel corrections accumulate in-session and are
// exposed via NovelWords for the caller to persist (spec §5's
// "temp dictionary... flushes to persistent storage on exit").
func NewSession(dict *dictionary.Dictionary, palette Palette) (*Session, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("annotate: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("annotate: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	return &Session{
		screen:   screen,
		palette:  palette,
		dict:     dict,
		resolved: make(map[string]string),
	}, nil
}

// Close finishes the tcell screen. It does not flush the temp
// dictionary; call NovelWords first and persist them yourself.
func (s *Session) Close() {
	s.screen.Fini()
}

// NovelWords returns the corrections the annotator typed by hand that
// were not already present in the dictionary, in the order accepted.
func (s *Session) NovelWords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.novel))
	copy(out, s.novel)
	return out
}

// Resolve implements heuristics.AnnotatorFunc: it renders the
// needs-annotation token full-screen, blocks on the annotator's
// decision, and returns the selected string. Resolve is memoized by
// the Corrector by original string, so it is only invoked once per
// distinct original per session regardless of how many tokens share
// it.
func (s *Session) Resolve(original string, bin int, candidates []string) string {
	st := newPromptState(original, bin, candidates, s.dict)

	renderStart := true
	for {
		s.render(st)
		if renderStart {
			renderStart = false
		}

		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if selection, done := st.handleKey(ev); done {
				if st.typing {
					s.recordNovel(selection, candidates)
				}
				return selection
			}
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventError:
			return original
		}
	}
}

func (s *Session) recordNovel(selection string, candidates []string) {
	if s.dict != nil && s.dict.Contains(selection) {
		return
	}
	for _, c := range candidates {
		if c == selection {
			return
		}
	}
	s.mu.Lock()
	s.novel = append(s.novel, selection)
	s.mu.Unlock()
}

// FlushTempDictionary appends words to the dictionary file at path,
// one per line, the way the annotation session's "temp dictionary"
// persists on exit (spec §5).
func FlushTempDictionary(path string, words []string) error {
	if len(words) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("annotate: open temp dictionary %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return fmt.Errorf("annotate: write temp dictionary %s: %w", path, err)
		}
	}
	return w.Flush()
}
