package main

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"

	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

func TestAgentColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}, agentColor("#ff6b6b"))
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, agentColor("123456"))
	assert.Equal(t, colornames.Hotpink, agentColor("#fff"))
	assert.Equal(t, colornames.Hotpink, agentColor("#zzzzzz"))
}

func TestToScreenCentersCamera(t *testing.T) {
	cam := component.Camera{Center: cp.Vector{X: 500, Y: 300}, Width: baseWidth, Height: baseHeight}
	x, y := toScreen(cam, 500, 300)
	assert.Equal(t, float32(baseWidth/2), x)
	assert.Equal(t, float32(baseHeight/2), y)

	x, y = toScreen(cam, 0, 0)
	assert.Equal(t, float32(140), x)
	assert.Equal(t, float32(60), y)
}

func TestFormatRoute(t *testing.T) {
	route := []station.Point{station.Pt(1, 2), station.Pt(3, 4)}
	assert.Equal(t, "1,2 3,4", formatRoute(route))
	assert.Equal(t, "", formatRoute(nil))
}

func TestTileColorsCoverEveryType(t *testing.T) {
	for _, tt := range station.TileTypes {
		_, ok := tileColors[tt]
		assert.True(t, ok, tt)
	}
}
