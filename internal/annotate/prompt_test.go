package annotate

import (
	"testing"

	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestPromptState_NavigateAndAcceptOriginal(t *testing.T) {
	st := newPromptState("teh", 9, []string{"the", "ten"}, nil)
	if len(st.options) != 3 {
		t.Fatalf("options = %d, want 3", len(st.options))
	}
	if selection, done := st.handleKey(key(tcell.KeyEnter, 0)); !done || selection != "teh" {
		t.Fatalf("got (%q, %v), want (teh, true)", selection, done)
	}
}

func TestPromptState_NavigateDownAndAcceptCandidate(t *testing.T) {
	st := newPromptState("teh", 9, []string{"the", "ten"}, nil)
	st.down()
	selection, done := st.handleKey(key(tcell.KeyEnter, 0))
	if !done || selection != "the" {
		t.Fatalf("got (%q, %v), want (the, true)", selection, done)
	}
}

func TestPromptState_DeduplicatesCandidateEqualToOriginal(t *testing.T) {
	st := newPromptState("the", 1, []string{"the", "thee"}, nil)
	if len(st.options) != 2 {
		t.Fatalf("options = %d, want 2 (deduped)", len(st.options))
	}
}

func TestPromptState_TypingFlow(t *testing.T) {
	st := newPromptState("teh", 9, []string{"the"}, nil)
	st.handleKey(key(tcell.KeyRune, 'i'))
	if !st.typing {
		t.Fatal("expected typing mode after 'i'")
	}
	for _, r := range "tehh" {
		st.handleKey(key(tcell.KeyRune, r))
	}
	if st.input != "tehh" {
		t.Fatalf("input = %q, want tehh", st.input)
	}
	selection, done := st.handleKey(key(tcell.KeyEnter, 0))
	if !done || selection != "tehh" {
		t.Fatalf("got (%q, %v), want (tehh, true)", selection, done)
	}
}

func TestPromptState_EscapeCancelsTyping(t *testing.T) {
	st := newPromptState("teh", 9, []string{"the"}, nil)
	st.handleKey(key(tcell.KeyRune, 'i'))
	st.handleKey(key(tcell.KeyRune, 'x'))
	if _, done := st.handleKey(key(tcell.KeyEscape, 0)); done {
		t.Fatal("escape should not resolve")
	}
	if st.typing {
		t.Fatal("escape should leave typing mode")
	}
}

func TestPromptState_MarksDictionaryMembership(t *testing.T) {
	dict := dictionary.New(true)
	dict.Add("the")
	st := newPromptState("teh", 9, []string{"the", "ten"}, dict)
	if !st.options[1].inDict {
		t.Fatal("expected 'the' to be marked in-dictionary")
	}
	if st.options[2].inDict {
		t.Fatal("expected 'ten' to be marked not-in-dictionary")
	}
}

func TestPromptState_UpDownClampAtBounds(t *testing.T) {
	st := newPromptState("teh", 9, []string{"the"}, nil)
	st.up()
	if st.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 (clamped)", st.cursor)
	}
	st.down()
	st.down()
	if st.cursor != len(st.options)-1 {
		t.Fatalf("cursor = %d, want %d (clamped)", st.cursor, len(st.options)-1)
	}
}
