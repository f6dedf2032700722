package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionary_CaseSensitive(t *testing.T) {
	d := New(true)
	d.Add("Wagon")
	assert.True(t, d.Contains("Wagon"))
	assert.False(t, d.Contains("wagon"))
}

func TestDictionary_CaseInsensitive(t *testing.T) {
	d := New(false)
	d.Add("Wagon")
	assert.True(t, d.Contains("Wagon"))
	assert.True(t, d.Contains("wagon"))
	assert.True(t, d.Contains("WAGON"))
}

func TestDictionary_Merge(t *testing.T) {
	a := New(false)
	a.Add("the")
	b := New(false)
	b.Add("cat")
	a.Merge(b)
	assert.True(t, a.Contains("the"))
	assert.True(t, a.Contains("cat"))
	assert.Equal(t, 2, a.Len())
}
