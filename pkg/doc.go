// Package pkg provides the core libraries for program2mass room dimensioning.
//
// # Overview
//
// program2mass turns an architectural room program (room names with target
// areas) into dimensioned rectangles whose wall lengths sit on a common grid,
// then nudges those lengths so that as many rooms as possible share walls.
// The pkg directory is organized into four main areas:
//
//  1. Domain logic: [room], [dimension], [cluster], [score], [optimize], [stats]
//  2. Outputs: [io], [massing], [render]
//  3. Orchestration: [pipeline]
//  4. Infrastructure: [cache], [store], [config], [errors], [observability]
//
// # Architecture
//
// The typical data flow through program2mass:
//
//	CSV room program
//	         ↓
//	    [io] package (parse rows into requests)
//	         ↓
//	    [room] package (classify names into types)
//	         ↓
//	    [dimension] package (area → grid-aligned length × width)
//	         ↓
//	    [optimize] package (multipass, common dimensions, module search)
//	         ↓
//	    [massing] + [render] packages (plan, GeoJSON, wall graph)
//	         ↓
//	    JSON/log/SVG/PNG/GeoJSON/DOT output
//
// # Quick Start
//
// Dimension a program with the default multipass optimizer:
//
//	import (
//	    "github.com/gduarte0/program2mass/pkg/pipeline"
//	    "github.com/gduarte0/program2mass/pkg/room"
//	)
//
//	reqs := []room.Request{
//	    {Name: "Master Bedroom", Area: 16},
//	    {Name: "Kitchen", Area: 12},
//	    {Name: "Bathroom", Area: 5},
//	}
//	res, err := pipeline.Solve(reqs, pipeline.Options{})
//	for _, r := range res.Rooms {
//	    fmt.Println(r.Name, r.Dimensions)
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [room] - Room types, the keyword classifier and the catalog of preferred
// ratios, aspect bounds, categories and adjacency rules.
//
// [dimension] - The solver that tries each preferred ratio, snaps both walls
// to the unit grid and keeps the candidate closest to the requested area.
// Also solves on a fixed module and re-dimensions around a target wall.
//
// [cluster] - Groups nearly equal wall lengths and picks the standard length
// each group should converge on.
//
// [score] - Rates how much two rooms gain from sharing a wall, using the
// adjacency rules in the catalog.
//
// [optimize] - The three refinement strategies: the multipass optimizer,
// the single-pass common-dimension pass and the grid module search.
//
// [stats] - Wall frequencies, sharing ratio and area error for a solved
// program.
//
// ## Outputs
//
// [io] - CSV program reader, JSON result writer and the optimization log.
//
// [massing] - Lays rooms out as boxes along one axis for the renderers.
//
// [render] - Plan drawings ([render/plan]), GeoJSON footprints
// ([render/geojson]) and the wall-sharing graph ([render/wallgraph]).
//
// ## Orchestration
//
// [pipeline] - Options, validation and the Runner that wraps a solve with
// caching and observability hooks. Used by the CLI and the HTTP API alike.
//
// ## Infrastructure
//
// [cache] - Result cache with file, Redis and null backends plus key
// derivation.
//
// [store] - Saved runs in memory, SQLite or MongoDB.
//
// [config] - TOML and YAML configuration with XDG paths.
//
// [errors] - Coded errors that map onto exit messages and HTTP statuses.
//
// [observability] - Hook interfaces for pipeline, cache, store and HTTP
// events.
//
// # Common Workflows
//
// Search for the best grid module only:
//
//	search, err := pipeline.SearchModule(reqs, pipeline.Options{Strategy: pipeline.StrategyModule})
//	fmt.Println(search.Module, search.Viable, search.Evaluated)
//
// Cache results across runs:
//
//	fc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(fc, nil, logger)
//	res, err := runner.Execute(ctx, reqs, opts)
//
// Render every format:
//
//	opts.Formats = []string{"json", "log", "svg", "geojson", "graph"}
//	files, err := pipeline.Render(res, opts)
//
// [room]: github.com/gduarte0/program2mass/pkg/room
// [dimension]: github.com/gduarte0/program2mass/pkg/dimension
// [cluster]: github.com/gduarte0/program2mass/pkg/cluster
// [score]: github.com/gduarte0/program2mass/pkg/score
// [optimize]: github.com/gduarte0/program2mass/pkg/optimize
// [stats]: github.com/gduarte0/program2mass/pkg/stats
// [io]: github.com/gduarte0/program2mass/pkg/io
// [massing]: github.com/gduarte0/program2mass/pkg/massing
// [render]: github.com/gduarte0/program2mass/pkg/render
// [render/plan]: github.com/gduarte0/program2mass/pkg/render/plan
// [render/geojson]: github.com/gduarte0/program2mass/pkg/render/geojson
// [render/wallgraph]: github.com/gduarte0/program2mass/pkg/render/wallgraph
// [pipeline]: github.com/gduarte0/program2mass/pkg/pipeline
// [cache]: github.com/gduarte0/program2mass/pkg/cache
// [store]: github.com/gduarte0/program2mass/pkg/store
// [config]: github.com/gduarte0/program2mass/pkg/config
// [errors]: github.com/gduarte0/program2mass/pkg/errors
// [observability]: github.com/gduarte0/program2mass/pkg/observability
package pkg
