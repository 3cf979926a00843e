package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/pathfind"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

func TestCanvasFromLevel(t *testing.T) {
	c := CanvasFromLevel(&levels.Level{Name: "x", Rows: []string{"L#", "#R#"}})
	assert.Equal(t, 3, c.Width)
	assert.Equal(t, 2, c.Height)
	assert.Equal(t, "L# \n#R#", c.String())

	tt, ok := c.TileAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, station.ResearchLab, tt)
	_, ok = c.TileAt(2, 0)
	assert.False(t, ok)
}

func TestPaintAndUndo(t *testing.T) {
	c := NewCanvas("x", 3, 1)
	assert.True(t, c.Paint(0, 0, '#'))
	assert.False(t, c.Paint(0, 0, '#'))
	assert.False(t, c.Paint(5, 0, '#'))

	c.BeginStroke()
	c.Paint(1, 0, '#')
	c.Paint(2, 0, '#')
	c.EndStroke()
	assert.Equal(t, "###", c.String())

	require.True(t, c.Undo())
	assert.Equal(t, "#  ", c.String())
	require.True(t, c.Undo())
	assert.Equal(t, "   ", c.String())
	assert.False(t, c.Undo())
}

func TestFill(t *testing.T) {
	c := CanvasFromLevel(&levels.Level{Rows: []string{
		"...",
		".#.",
		"...",
	}})
	assert.Equal(t, 8, c.Fill(0, 0, '~'))
	assert.Equal(t, "~~~\n~#~\n~~~", c.String())
	assert.Equal(t, 0, c.Fill(1, 1, '#'))
	assert.Equal(t, 0, c.Fill(-1, 0, '#'))

	require.True(t, c.Undo())
	assert.Equal(t, "...\n.#.\n...", c.String())
}

func TestLine(t *testing.T) {
	c := NewCanvas("x", 4, 4)
	assert.Equal(t, 4, c.Line(0, 0, 3, 3, '#'))
	for i := 0; i < 4; i++ {
		assert.Equal(t, '#', c.At(i, i))
	}
	require.True(t, c.Undo())

	assert.Equal(t, 4, c.Line(3, 1, 0, 1, 'P'))
	assert.Equal(t, "    \nPPPP\n    \n    ", c.String())
}

func TestCanvasRoutesThroughPathfinder(t *testing.T) {
	c := CanvasFromLevel(&levels.Level{Rows: []string{
		"L###R",
		"....#",
	}})
	path, ok := pathfind.New(c, pathfind.Config{}).FindPath(0, 0, 4, 0)
	require.True(t, ok)
	assert.Equal(t, station.Pt(0, 0), path.Start())
	assert.Equal(t, station.Pt(4, 0), path.Goal())
	assert.Equal(t, 5, path.Len())
}

func TestToolString(t *testing.T) {
	assert.Equal(t, "Fill", ToolFill.String())
	assert.Equal(t, "Unknown", Tool(9).String())
}
