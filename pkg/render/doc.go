// Package render groups the output renderers for a massing model.
//
// # Overview
//
// The renderers take the single-axis arrangement produced by
// [massing.Arrange] (or the solved rooms directly) and turn it into
// files a designer can open:
//
//   - [plan]: top-down plan drawing as SVG or PNG
//   - [geojson]: room footprints as a GeoJSON FeatureCollection
//   - [wallgraph]: the wall-sharing graph as Graphviz DOT or SVG
//
// None of them depends on the others, and none of them reaches back into
// the optimizer.
//
//	m := massing.Arrange(result.Rooms, massing.Options{})
//	svg, err := plan.RenderSVG(m, plan.DefaultOptions())
//	fc, err := geojson.Marshal(m, geojson.Options{Metres: true})
//	dot := wallgraph.ToDOT(result.Rooms, wallgraph.Options{})
//
// [massing.Arrange]: github.com/gduarte0/program2mass/pkg/massing
// [plan]: github.com/gduarte0/program2mass/pkg/render/plan
// [geojson]: github.com/gduarte0/program2mass/pkg/render/geojson
// [wallgraph]: github.com/gduarte0/program2mass/pkg/render/wallgraph
package render
