// Package geojson exports massing footprints as a GeoJSON FeatureCollection.
//
// Coordinates are planar, not geographic: one unit is one centimetre
// (or one metre with [Options.Metres]), origin at the first room's corner.
// GIS tools can display them in any local projected CRS.
package geojson

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/gduarte0/program2mass/pkg/massing"
)

// Options control the export.
type Options struct {
	// Metres scales coordinates from centimetres to metres.
	Metres bool
}

// Footprint returns the closed footprint ring of a box.
func Footprint(b massing.Box, scale float64) orb.Polygon {
	c := b.Corners()
	ring := make(orb.Ring, 0, 5)
	for _, p := range c {
		ring = append(ring, orb.Point{p[0] * scale, p[1] * scale})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// Collection builds the feature collection, one polygon per box.
func Collection(m massing.Model, opts Options) *geojson.FeatureCollection {
	scale := 1.0
	if opts.Metres {
		scale = 0.01
	}

	fc := geojson.NewFeatureCollection()
	var bound orb.Bound
	for i, b := range m.Boxes {
		poly := Footprint(b, scale)
		if i == 0 {
			bound = poly.Bound()
		} else {
			bound = bound.Union(poly.Bound())
		}

		cx, cy := b.Center()
		f := geojson.NewFeature(poly)
		f.ID = b.Group
		f.Properties["index"] = b.Index
		f.Properties["name"] = b.Name
		f.Properties["room_type"] = b.Type.String()
		f.Properties["category"] = string(b.Category)
		f.Properties["layer"] = b.Layer
		f.Properties["group"] = b.Group
		f.Properties["label"] = b.Label
		f.Properties["length_cm"] = b.Length
		f.Properties["width_cm"] = b.Width
		f.Properties["height_cm"] = b.Height
		f.Properties["area_m2"] = math.Abs(planar.Area(poly)) / (scale * scale * 10000)
		f.Properties["center"] = []float64{cx * scale, cy * scale}
		fc.Append(f)
	}
	if len(m.Boxes) > 0 {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc
}

// Marshal encodes the collection as JSON.
func Marshal(m massing.Model, opts Options) ([]byte, error) {
	return Collection(m, opts).MarshalJSON()
}
