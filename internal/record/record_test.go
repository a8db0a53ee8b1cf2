package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	r, ok := As(Record{"a": 1})
	require.True(t, ok)
	assert.Equal(t, 1, r["a"])

	r, ok = As(map[string]any{"b": 2})
	require.True(t, ok)
	assert.Equal(t, 2, r["b"])

	_, ok = As("text")
	assert.False(t, ok)
}

func TestSub(t *testing.T) {
	r := Record{
		"address": map[string]any{"city": "Berlin"},
		"empty":   nil,
		"name":    "Alice",
	}

	sub, err := r.Sub("address")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", sub["city"])

	sub, err = r.Sub("empty")
	require.NoError(t, err)
	assert.Empty(t, sub)

	sub, err = r.Sub("missing")
	require.NoError(t, err)
	assert.Empty(t, sub)

	_, err = r.Sub("name")
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	type hidden struct {
		n int
	}

	stamp := time.Date(2024, 1, 2, 3, 4, 5, 6, time.FixedZone("CET", 3600))
	orig := Record{
		"name":    "Alice",
		"tags":    []string{"a", "b"},
		"seen":    stamp,
		"secret":  hidden{n: 7},
		"address": map[string]any{"city": "Berlin", "geo": Record{"lat": 52.5}},
	}

	c := orig.Clone()
	assert.True(t, Equal(orig, c))
	assert.Equal(t, stamp, c["seen"])
	assert.Equal(t, hidden{n: 7}, c["secret"])

	c["name"] = "Bob"
	assert.Equal(t, "Alice", orig["name"])

	addr, ok := c["address"].(map[string]any)
	require.True(t, ok)
	addr["city"] = "Paris"
	assert.Equal(t, "Berlin", orig["address"].(map[string]any)["city"])

	geo, ok := addr["geo"].(Record)
	require.True(t, ok)
	geo["lat"] = 0.0
	assert.Equal(t, 52.5, orig["address"].(map[string]any)["geo"].(Record)["lat"])

	assert.Nil(t, Record(nil).Clone())
}

func TestEqual(t *testing.T) {
	type point struct {
		x, y int
	}

	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("a", "b"))
	assert.False(t, Equal(1, int64(1)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, "a"))
	assert.True(t, Equal(point{1, 2}, point{1, 2}))
	assert.True(t, Equal(Record{"a": 1}, map[string]any{"a": 1}))
	assert.False(t, Equal(Record{"a": 1}, Record{"a": 1, "b": 2}))
}

func TestZero(t *testing.T) {
	assert.Equal(t, "", Zero("string"))
	assert.Equal(t, 0, Zero("int"))
	assert.Equal(t, int64(0), Zero("int64"))
	assert.Equal(t, false, Zero("bool"))
	assert.Nil(t, Zero("Address"))
}
