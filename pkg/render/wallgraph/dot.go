package wallgraph

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gduarte0/program2mass/pkg/massing"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/score"
)

// Options configures graph generation.
type Options struct {
	// Detailed adds dimensions and area to node labels.
	Detailed bool
	// Catalog supplies room categories. Nil uses the default catalog.
	Catalog *room.Catalog
	// Scorer rates shared walls. Nil scores with the catalog's rules.
	Scorer *score.Scorer
}

// Edge is a pair of rooms with at least one equal wall length.
type Edge struct {
	A, B    int
	Lengths []int
	Value   float64
}

// Edges returns every wall-sharing pair, i < j, in input order. A wall of
// rooms[A] contributes once per match, so squares count twice as in
// [score.Scorer.Connection].
func Edges(rooms []room.Room, sc *score.Scorer) []Edge {
	if sc == nil {
		sc = score.New(nil)
	}
	var edges []Edge
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			var e Edge
			for _, wall := range rooms[i].Dimensions.Walls() {
				if wall == 0 || !rooms[j].Dimensions.Has(wall) {
					continue
				}
				e.Value += sc.Score(wall, rooms[i].Type, rooms[j].Type)
				if !slices.Contains(e.Lengths, wall) {
					e.Lengths = append(e.Lengths, wall)
				}
			}
			if len(e.Lengths) > 0 {
				e.A, e.B = i, j
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// ToDOT converts rooms to an undirected Graphviz graph.
func ToDOT(rooms []room.Room, opts Options) string {
	cat := opts.Catalog
	if cat == nil {
		cat = room.DefaultCatalog()
	}
	sc := opts.Scorer
	if sc == nil {
		sc = score.New(cat)
	}

	var buf bytes.Buffer
	buf.WriteString("graph walls {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11, color=\"#555555\"];\n")
	buf.WriteString("\n")

	for i, r := range rooms {
		fill := hexColor(massing.CategoryColor(cat.Category(r.Type)))
		fmt.Fprintf(&buf, "  %s [label=%q, fillcolor=%q];\n", nodeID(i), fmtLabel(r, opts.Detailed), fill)
	}

	buf.WriteString("\n")
	for _, e := range Edges(rooms, sc) {
		fmt.Fprintf(&buf, "  %s -- %s [label=%q, penwidth=%.2f];\n",
			nodeID(e.A), nodeID(e.B), fmtLengths(e.Lengths), penWidth(e.Value))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "r" + strconv.Itoa(i) }

func fmtLabel(r room.Room, detailed bool) string {
	if !detailed {
		return r.Name
	}
	return fmt.Sprintf("%s\n%s cm\n%.2f m²", r.Name, r.Dimensions, r.ActualArea())
}

func fmtLengths(lengths []int) string {
	parts := make([]string, len(lengths))
	for i, l := range lengths {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ", ")
}

// penWidth maps a connection value onto 1..6.
func penWidth(v float64) float64 {
	return min(max(v/40, 1), 6)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// zero-origin viewBox so the graph scales inside HTML containers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
