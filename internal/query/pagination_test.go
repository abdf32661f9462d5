package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestWindow_OffsetNearEnd(t *testing.T) {
	items := Window(seq(25), NewPage(10, 20))
	assert.Len(t, items, 5)
	assert.Equal(t, 20, items[0])
	assert.Equal(t, 24, items[4])
}

func TestNewPage_ZeroLimitClampsToDefault(t *testing.T) {
	assert.Equal(t, NewPage(DefaultLimit, 0), NewPage(0, 0))
	assert.Equal(t, DefaultLimit, NewPage(-3, 0).Limit)
}

func TestNewPage_NegativeOffsetClampsToZero(t *testing.T) {
	assert.Equal(t, 0, NewPage(10, -5).Offset)
}

func TestWindow_ZeroLimitBehavesLikeDefault(t *testing.T) {
	a := Window(seq(25), Page{Limit: 0, Offset: 0})
	b := Window(seq(25), Page{Limit: DefaultLimit, Offset: 0})
	assert.Equal(t, b, a)
	assert.Len(t, a, DefaultLimit)
}

func TestWindow_OffsetPastEnd(t *testing.T) {
	assert.Empty(t, Window(seq(5), NewPage(10, 50)))
}

func TestPageNumber_TranslatesToOffset(t *testing.T) {
	p := PageNumber(3, 20)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Offset)

	// Page numbers below 1 behave like the first page.
	assert.Equal(t, 0, PageNumber(0, 20).Offset)
}
