package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = First([]string(nil))
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestDuplicates(t *testing.T) {
	id := func(s string) string { return s }

	assert.Empty(t, Duplicates([]string{"a", "b", "c"}, id))
	assert.Equal(t, []string{"b", "a"}, Duplicates([]string{"a", "b", "b", "a", "b"}, id))
	assert.True(t, IsEmpty([]int{}))
}
