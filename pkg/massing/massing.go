// Package massing lays dimensioned rooms out as extruded boxes along a
// single axis, ready for the plan, GeoJSON and wall-graph renderers.
//
// The arrangement is deliberately naive: rooms are placed left to right in
// input order, separated by a fixed gap, all starting at y = 0. It gives
// every renderer the same coordinates without attempting a real floor plan.
//
// Coordinates are in centimetres with the origin at the lower-left corner
// of the first room.
package massing

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gduarte0/program2mass/pkg/room"
)

const (
	// DefaultSpacing is the gap between consecutive rooms along X.
	DefaultSpacing = 100
	// DefaultHeight is the floor-to-floor extrusion height.
	DefaultHeight = 300
	// LabelLayer holds every room label.
	LabelLayer = "ProgramLabels"
)

// Category fill colours.
var (
	ColorPublic  = color.RGBA{150, 180, 255, 255}
	ColorPrivate = color.RGBA{255, 150, 150, 255}
	ColorService = color.RGBA{255, 255, 150, 255}
)

// Box is one extruded room.
type Box struct {
	Index    int           `json:"index"`
	Name     string        `json:"name"`
	Type     room.Type     `json:"room_type"`
	Category room.Category `json:"category"`
	Layer    string        `json:"layer"`
	Group    string        `json:"group"`
	Label    string        `json:"label"`

	X      float64 `json:"x_cm"`
	Y      float64 `json:"y_cm"`
	Length int     `json:"length_cm"`
	Width  int     `json:"width_cm"`
	Height int     `json:"height_cm"`

	Color color.RGBA `json:"-"`
}

// Center returns the plan centre of the box.
func (b Box) Center() (x, y float64) {
	return b.X + float64(b.Length)/2, b.Y + float64(b.Width)/2
}

// Corners returns the footprint corners counter-clockwise from the origin.
func (b Box) Corners() [4][2]float64 {
	x0, y0 := b.X, b.Y
	x1, y1 := b.X+float64(b.Length), b.Y+float64(b.Width)
	return [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// Volume returns the box volume in cubic metres.
func (b Box) Volume() float64 {
	return float64(b.Length) * float64(b.Width) * float64(b.Height) / 1e6
}

// Model is an arranged program.
type Model struct {
	Boxes   []Box `json:"boxes"`
	Spacing int   `json:"spacing_cm"`
	Height  int   `json:"height_cm"`
}

// Extent returns the bounding size of the model footprint.
func (m Model) Extent() (width, depth float64) {
	for _, b := range m.Boxes {
		width = max(width, b.X+float64(b.Length))
		depth = max(depth, b.Y+float64(b.Width))
	}
	return width, depth
}

// Layers returns the distinct room layers in first-use order.
func (m Model) Layers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range m.Boxes {
		if !seen[b.Layer] {
			seen[b.Layer] = true
			out = append(out, b.Layer)
		}
	}
	return out
}

// Options control the arrangement.
type Options struct {
	// Spacing is the gap between rooms. Zero selects DefaultSpacing and a
	// negative value places rooms edge to edge.
	Spacing int
	Height  int
	Catalog *room.Catalog
}

// Arrange places rooms along X in input order. Rooms without dimensions are
// skipped.
func Arrange(rooms []room.Room, opts Options) Model {
	if opts.Spacing < 0 {
		opts.Spacing = 0
	} else if opts.Spacing == 0 {
		opts.Spacing = DefaultSpacing
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Catalog == nil {
		opts.Catalog = room.DefaultCatalog()
	}

	m := Model{Boxes: make([]Box, 0, len(rooms)), Spacing: opts.Spacing, Height: opts.Height}
	x := 0.0
	for i, r := range rooms {
		if r.Dimensions.IsZero() {
			continue
		}
		cat := opts.Catalog.Category(r.Type)
		m.Boxes = append(m.Boxes, Box{
			Index:    i + 1,
			Name:     r.Name,
			Type:     r.Type,
			Category: cat,
			Layer:    LayerName(cat),
			Group:    GroupName(i+1, r.Name),
			Label:    Label(r),
			X:        x,
			Length:   r.Dimensions.Length,
			Width:    r.Dimensions.Width,
			Height:   opts.Height,
			Color:    CategoryColor(cat),
		})
		x += float64(r.Dimensions.Length + opts.Spacing)
	}
	return m
}

// LayerName returns "Program_Public", "Program_Private" or "Program_Service".
func LayerName(c room.Category) string {
	s := string(c)
	if s == "" {
		s = string(room.Public)
	}
	return "Program_" + strings.ToUpper(s[:1]) + s[1:]
}

// GroupName returns "Room_<index>_<name>" with spaces replaced by underscores.
func GroupName(index int, name string) string {
	return fmt.Sprintf("Room_%d_%s", index, strings.ReplaceAll(name, " ", "_"))
}

// Label returns the room name and its actual area on two lines.
func Label(r room.Room) string {
	return fmt.Sprintf("%s\n%.1f", r.Name, r.ActualArea())
}

// CategoryColor returns the fill colour for a category.
func CategoryColor(c room.Category) color.RGBA {
	switch c {
	case room.Private:
		return ColorPrivate
	case room.Service:
		return ColorService
	default:
		return ColorPublic
	}
}
