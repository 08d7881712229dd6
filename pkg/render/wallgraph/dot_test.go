package wallgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gduarte0/program2mass/pkg/room"
)

func rooms() []room.Room {
	return []room.Room{
		{Name: "Kitchen", RequestedArea: 12, Type: room.Kitchen, Dimensions: room.Dimensions{Length: 450, Width: 250}},
		{Name: "Living Room", RequestedArea: 16, Type: room.Living, Dimensions: room.Dimensions{Length: 450, Width: 350}},
		{Name: "Bathroom", RequestedArea: 5, Type: room.Bathroom, Dimensions: room.Dimensions{Length: 250, Width: 200}},
	}
}

func TestEdges(t *testing.T) {
	edges := Edges(rooms(), nil)
	require.Len(t, edges, 2)

	assert.Equal(t, 0, edges[0].A)
	assert.Equal(t, 1, edges[0].B)
	assert.Equal(t, []int{450}, edges[0].Lengths)
	// 45 base + 40 kitchen rule + 25 living rule + 15 span
	assert.InDelta(t, 125, edges[0].Value, 1e-9)

	assert.Equal(t, 0, edges[1].A)
	assert.Equal(t, 2, edges[1].B)
	assert.Equal(t, []int{250}, edges[1].Lengths)
	// 25 base - 30 - 30 avoided + 45 wet
	assert.InDelta(t, 10, edges[1].Value, 1e-9)
}

func TestEdgesSquareCountsTwice(t *testing.T) {
	rs := []room.Room{
		{Name: "Store", Type: room.Utility, Dimensions: room.Dimensions{Length: 200, Width: 200}},
		{Name: "Bed", Type: room.Bedroom, Dimensions: room.Dimensions{Length: 200, Width: 300}},
	}
	edges := Edges(rs, nil)
	require.Len(t, edges, 1)
	assert.Equal(t, []int{200}, edges[0].Lengths)
	assert.InDelta(t, 40, edges[0].Value, 1e-9)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(rooms(), Options{})

	assert.True(t, strings.HasPrefix(dot, "graph walls {"))
	for _, r := range rooms() {
		assert.Contains(t, dot, `"`+r.Name+`"`)
	}
	assert.Contains(t, dot, `r0 -- r1 [label="450", penwidth=3.12]`)
	assert.Contains(t, dot, `r0 -- r2 [label="250", penwidth=1.00]`)
	assert.NotContains(t, dot, "r1 -- r2")
	assert.Contains(t, dot, `fillcolor="#96b4ff"`)
	assert.Contains(t, dot, `fillcolor="#ff9696"`)
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(rooms(), Options{Detailed: true})
	assert.Contains(t, dot, `450x250 cm`)
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(rooms(), Options{}))
	require.NoError(t, err)

	s := string(svg)
	assert.Contains(t, s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)
	assert.Contains(t, s, "Living Room")
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`, out)

	plain := []byte(`<svg><g/></svg>`)
	assert.Equal(t, plain, normalizeViewBox(plain))
}
