package token

// List is an ordered collection of Tokens for one document. Order is
// the tokenizer's original positional order and must be preserved by
// every stage downstream (spec §5 "Ordering guarantees").
type List struct {
	DocID  string
	Tokens []*Token
}

// New returns an empty token list for the given document.
func New(docID string) *List {
	return &List{DocID: docID}
}

// Append adds t to the list, assigning it DocID and the next index.
func (l *List) Append(t *Token) {
	t.DocID = l.DocID
	t.Index = len(l.Tokens)
	l.Tokens = append(l.Tokens, t)
}

// Len returns the number of tokens in the list.
func (l *List) Len() int { return len(l.Tokens) }

// Words returns only the Word-type tokens, in order.
func (l *List) Words() []*Token {
	out := make([]*Token, 0, len(l.Tokens))
	for _, t := range l.Tokens {
		if t.Type == Word {
			out = append(out, t)
		}
	}
	return out
}

// Pair is an (original, gold) consolidation used by the heuristics
// report, mirroring the Python TokenList's `consolidated`
// iterator.
type Pair struct {
	Original string
	Gold     string
	Token    *Token
}

// Consolidated returns (original, gold, token) triples for every
// non-discarded token of any type, including tokens whose gold value
// is empty.
func (l *List) Consolidated() []Pair {
	out := make([]Pair, 0, len(l.Tokens))
	for _, t := range l.Tokens {
		if t.IsDiscarded {
			continue
		}
		out = append(out, Pair{Original: t.Original, Gold: t.Gold, Token: t})
	}
	return out
}
