// Package heuristics implements the nine-bin correction classifier and
// per-bin policy (spec §4.4), grounded on the published heuristics table
// and on the bin/report machinery of the original Python
// Heuristics/Bin classes (original_source/CorrectOCR/heuristics.py).
package heuristics

import "fmt"

// Action is a per-bin policy action.
type Action byte

const (
	ActionOriginal  Action = 'o' // select original
	ActionKBest     Action = 'k' // select top candidate
	ActionDictBest  Action = 'd' // select best in-dictionary candidate, else defer to annotator
	ActionAnnotator Action = 'a' // defer to annotator
)

func (a Action) Valid() bool {
	switch a {
	case ActionOriginal, ActionKBest, ActionDictBest, ActionAnnotator:
		return true
	default:
		return false
	}
}

// Predicates holds the four boolean predicates evaluated for a token
// (spec §4.4).
type Predicates struct {
	P1 bool // c1 == o
	P2 bool // o in D
	P3 bool // c1 in D
	P4 bool // some lower-ranked ci in D
}

// EvaluatePredicates computes P1..P4 for an original token o against its
// k-best candidate strings (ranked, c[0] is top) and dictionary
// membership test inDict.
func EvaluatePredicates(o string, candidates []string, inDict func(string) bool) Predicates {
	var p Predicates
	if len(candidates) == 0 {
		return p
	}
	c1 := candidates[0]
	p.P1 = c1 == o
	p.P2 = inDict(o)
	p.P3 = inDict(c1)
	for _, c := range candidates[1:] {
		if inDict(c) {
			p.P4 = true
			break
		}
	}
	return p
}

// Bin assigns the bin number 1..9 for a set of predicates, per the
// exact table in spec §4.4. P1 implies P2 ⇔ P3 (binner-consistency
// invariant), so rows with P1=T only branch on P2 (equivalently P3).
func Bin(p Predicates) int {
	switch {
	case p.P1 && p.P2: // P1 ⇒ P2⇔P3, so P3 is also true here
		return 1
	case p.P1 && !p.P2 && !p.P4:
		return 2
	case p.P1 && !p.P2 && p.P4:
		return 3
	case !p.P1 && !p.P2 && p.P3:
		return 4
	case !p.P1 && !p.P2 && !p.P3 && !p.P4:
		return 5
	case !p.P1 && !p.P2 && !p.P3 && p.P4:
		return 6
	case !p.P1 && p.P2 && p.P3:
		return 7
	case !p.P1 && p.P2 && !p.P3 && !p.P4:
		return 8
	case !p.P1 && p.P2 && !p.P3 && p.P4:
		return 9
	default:
		// Unreachable given the binner-consistency invariant; the table
		// in spec §4.4 is total over every boolean tuple that can occur.
		panic(fmt.Sprintf("heuristics: no bin matched predicates %+v", p))
	}
}

// PolicyMap maps bin number (1..9) to an action.
type PolicyMap map[int]Action

// DefaultPolicy mirrors the conservative defaults recommended by the
// original heuristics report: accept bin 1 outright, defer everything
// else to the annotator. Callers are expected to override this from
// configuration (spec §7's per-bin settings file).
func DefaultPolicy() PolicyMap {
	p := make(PolicyMap, 9)
	p[1] = ActionOriginal
	for b := 2; b <= 9; b++ {
		p[b] = ActionAnnotator
	}
	return p
}

// Validate reports whether every bin 1..9 has a valid action assigned.
func (p PolicyMap) Validate() error {
	for b := 1; b <= 9; b++ {
		a, ok := p[b]
		if !ok {
			return fmt.Errorf("heuristics: missing policy action for bin %d", b)
		}
		if !a.Valid() {
			return fmt.Errorf("heuristics: invalid policy action %q for bin %d", a, b)
		}
	}
	return nil
}
