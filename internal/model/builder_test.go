package model

import (
	"math"
	"testing"

	"github.com/correctocr/correctocr/internal/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Smoke(t *testing.T) {
	// Gold corpus = ["ab", "ab", "ac"] (spec §8 scenario 3), with the
	// MisreadCount given directly as {(a,a):3,(b,b):3,(b,d):1,(c,c):1}.
	misreads := align.MisreadCount{
		'a': {'a': 3},
		'b': {'b': 3, 'd': 1},
		'c': {'c': 1},
	}
	gold := []string{"ab", "ab", "ac"}

	hmm, err := Build(DefaultConfig(), misreads, gold)
	require.NoError(t, err)

	ai := hmm.Alphabet.Index('a')
	bi := hmm.Alphabet.Index('b')
	ci := hmm.Alphabet.Index('c')
	di := hmm.Alphabet.Index('d')
	require.NotEqual(t, -1, ai)
	require.NotEqual(t, -1, bi)
	require.NotEqual(t, -1, ci)
	require.NotEqual(t, -1, di)

	n := hmm.N()
	piA := math.Exp(hmm.LogPi(ai))
	assert.InDelta(t, 4.0/float64(n+3), piA, 1e-9)

	bBD := math.Exp(hmm.LogB(bi, di))
	bBB := math.Exp(hmm.LogB(bi, bi))
	assert.Greater(t, bBD, 0.0)
	assert.Greater(t, bBB, bBD)
}

func TestBuild_InvariantsHold(t *testing.T) {
	misreads := align.MisreadCount{
		'a': {'a': 10, 'e': 1},
		'b': {'b': 5, align.GapRune: 2},
		align.GapRune: {'x': 3},
	}
	gold := []string{"abba", "cab", "bead"}

	hmm, err := Build(Config{Lambda: 1e-6, Extension: []rune{'z'}}, misreads, gold)
	require.NoError(t, err)

	n := hmm.N()
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Exp(hmm.LogPi(i))
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			rowSum += math.Exp(hmm.LogA(i, j))
		}
		assert.InDelta(t, 1.0, rowSum, 1e-9)

		rowSum = 0.0
		for j := 0; j < n; j++ {
			rowSum += math.Exp(hmm.LogB(i, j))
		}
		assert.InDelta(t, 1.0, rowSum, 1e-9)
	}
}

func TestBuild_ExtensionCharacterEmitsUniformly(t *testing.T) {
	misreads := align.MisreadCount{'a': {'a': 5}}
	gold := []string{"aaa"}

	hmm, err := Build(Config{Lambda: 1e-6, Extension: []rune{'q'}}, misreads, gold)
	require.NoError(t, err)

	qi := hmm.Alphabet.Index('q')
	require.NotEqual(t, -1, qi)

	n := hmm.N()
	expected := 1.0 / float64(n)
	for j := 0; j < n; j++ {
		assert.InDelta(t, expected, math.Exp(hmm.LogB(qi, j)), 1e-9)
	}
}

func TestBuild_DimensionMismatchRejected(t *testing.T) {
	alpha := buildAlphabet(align.MisreadCount{'a': {'a': 1}}, nil, nil)
	_, err := New(alpha, []float64{1}, []float64{1, 0}, []float64{1})
	assert.Error(t, err)
}
