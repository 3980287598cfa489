package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighborsOrderAndBounds(t *testing.T) {
	g := gridFromRows(t, [][]int32{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})

	assert.Equal(t, []Edge{
		{Cell{1, 2}, 0},
		{Cell{1, 0}, 0},
		{Cell{0, 1}, 0},
		{Cell{2, 1}, 0},
	}, g.Neighbors(Cell{1, 1}))

	// corner: only up and right
	assert.Equal(t, []Edge{
		{Cell{0, 1}, 0},
		{Cell{1, 0}, 0},
	}, g.Neighbors(Cell{0, 0}))
}

func TestNeighborsFilterImpassable(t *testing.T) {
	g := gridFromRows(t, [][]int32{
		{0, 5, 0},
		{3, 0, 999},
		{0, 4, 0},
	})

	assert.Equal(t, []Edge{
		{Cell{1, 0}, 4},
		{Cell{0, 1}, 3},
	}, g.Neighbors(Cell{1, 1}))
}

func TestAppendNeighborsBelow(t *testing.T) {
	g := gridFromRows(t, [][]int32{
		{0, 5, 0},
		{3, 0, 999},
		{0, 4, 0},
	})
	c := Cell{1, 1}

	assert.Equal(t, g.Neighbors(c), g.AppendNeighborsBelow(nil, c, g.Threshold()))
	assert.Equal(t, []Edge{
		{Cell{1, 2}, 5},
		{Cell{1, 0}, 4},
		{Cell{0, 1}, 3},
	}, g.AppendNeighborsBelow(nil, c, 10))
	assert.Equal(t, []Edge{{Cell{0, 1}, 3}}, g.AppendNeighborsBelow(nil, c, 4))
}

func TestNeighborsFromImpassableCell(t *testing.T) {
	g := gridFromRows(t, [][]int32{
		{9, 9},
		{999, 0},
	})

	assert.Equal(t, []Edge{{Cell{1, 0}, 0}}, g.Neighbors(Cell{0, 0}))
}

func TestAppendNeighborsReusesBuffer(t *testing.T) {
	g := gridFromRows(t, [][]int32{{0, 0}})
	buf := make([]Edge, 0, 4)
	buf = g.AppendNeighbors(buf[:0], Cell{0, 0})
	assert.Len(t, buf, 1)
	buf = g.AppendNeighbors(buf[:0], Cell{1, 0})
	assert.Equal(t, []Edge{{Cell{0, 0}, 0}}, buf)
}

func TestAdjacent(t *testing.T) {
	assert.True(t, Adjacent(Cell{1, 1}, Cell{1, 2}))
	assert.True(t, Adjacent(Cell{1, 1}, Cell{0, 1}))
	assert.False(t, Adjacent(Cell{1, 1}, Cell{2, 2}))
	assert.False(t, Adjacent(Cell{1, 1}, Cell{1, 1}))
	assert.False(t, Adjacent(Cell{1, 1}, Cell{1, 3}))
}
