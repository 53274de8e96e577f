package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSet(t *testing.T) {
	s := NewTagSet()
	assert.Equal(t, []string{}, s.Values())

	assert.True(t, s.Add("dream"))
	assert.True(t, s.Add("lucid"))
	assert.False(t, s.Add("dream"), "duplicate add is a no-op")
	assert.False(t, s.Add("  "), "blank tags are ignored")
	assert.True(t, s.Add(" nightmare "))

	assert.Equal(t, []string{"dream", "lucid", "nightmare"}, s.Values())
	assert.Equal(t, 3, s.Len())

	assert.True(t, s.Remove("lucid"))
	assert.False(t, s.Remove("lucid"))
	assert.Equal(t, []string{"dream", "nightmare"}, s.Values())

	assert.True(t, s.Add("lucid"), "re-added tags go to the end")
	assert.Equal(t, []string{"dream", "nightmare", "lucid"}, s.Values())
}

func TestTagSet_ValuesIsACopy(t *testing.T) {
	s := NewTagSet("a", "a", "b")

	values := s.Values()
	values[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, s.Values())
	assert.True(t, s.Contains("a"))
}
