// Package wallgraph renders the wall-sharing relationships of a solved
// program as a Graphviz graph.
//
// # Overview
//
// Every room becomes a node filled with its category colour. Two rooms are
// joined by an edge when one of their walls has the same length; the edge
// label lists the shared lengths and the pen width grows with the
// connection value computed by [score.Scorer]. The graph shows at a glance
// which rooms the optimizer managed to align.
//
// # Usage
//
//	dot := wallgraph.ToDOT(rooms, wallgraph.Options{})
//	svg, err := wallgraph.RenderSVG(dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package wallgraph
