// Package corpus implements the file-format boundary named in spec
// §6 ("Bit-exact file formats"): the k-best CSV layout, the per-bin
// settings file, and gold/noisy training pairs. Full tokenization is
// explicitly out of scope (spec §1's Non-goals list "tokenization
// details beyond whitespace/punctuation"); Tokenize below is the
// minimal whitespace/punctuation splitter the CLI needs to turn a
// plain-text file into a token.List for decode/correct, standing in
// for the external tokenizer spec §3/§6 assume is already upstream.
package corpus

import (
	"strings"
	"unicode"

	"github.com/correctocr/correctocr/internal/token"
)

// Tokenize splits text into a token.List of Word/Whitespace/Punctuation
// tokens. A run of letters/digits/apostrophes/hyphens-within-a-word is
// one Word token; everything else collapses into Whitespace or
// Punctuation runs depending on the first rune's class. A trailing
// hyphen at end-of-line marks the token IsHyphenated, matching
// spec §3's "classification flags (hyphenated/discarded)".
func Tokenize(docID, text string) *token.List {
	list := token.New(docID)

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case isWordRune(r):
			start := i
			for i < len(runes) && isWordRune(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			hyphenated := false
			if strings.HasSuffix(word, "-") {
				for k := i; k < len(runes) && unicode.IsSpace(runes[k]); k++ {
					if runes[k] == '\n' {
						hyphenated = true
						break
					}
				}
			}
			t := &token.Token{Original: word, Type: token.Word, IsHyphenated: hyphenated}
			list.Append(t)
		case unicode.IsSpace(r):
			start := i
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			list.Append(&token.Token{Original: string(runes[start:i]), Type: token.Whitespace})
		default:
			start := i
			for i < len(runes) && !isWordRune(runes[i]) && !unicode.IsSpace(runes[i]) {
				i++
			}
			list.Append(&token.Token{Original: string(runes[start:i]), Type: token.Punctuation})
		}
	}

	return list
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-'
}
