package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsInputs(t *testing.T) {
	n := Params{Page: 0, Limit: 0}.Normalize()
	assert.Equal(t, 1, n.Page)
	assert.Equal(t, DefaultLimit, n.Limit)

	n = Params{Page: -3, Limit: 500}.Normalize()
	assert.Equal(t, 1, n.Page)
	assert.Equal(t, MaxLimit, n.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 3, PageCount(25, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 0, PageCount(0, 10))
}

func TestSliceWindows(t *testing.T) {
	low, high := Slice(Params{Page: 3, Limit: 10}, 25)
	assert.Equal(t, 20, low)
	assert.Equal(t, 25, high)

	// a page past the end is empty, not an error
	low, high = Slice(Params{Page: 4, Limit: 10}, 25)
	assert.Equal(t, low, high)
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(Params{Page: 2, Limit: 10}, 25)
	assert.Equal(t, Meta{Page: 2, Limit: 10, Total: 25, Pages: 3}, meta)
}
