package pipeline

import (
	"bytes"
	"fmt"

	perrors "github.com/gduarte0/program2mass/pkg/errors"
	pkgio "github.com/gduarte0/program2mass/pkg/io"
	"github.com/gduarte0/program2mass/pkg/render/geojson"
	"github.com/gduarte0/program2mass/pkg/render/plan"
	"github.com/gduarte0/program2mass/pkg/render/wallgraph"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatLog     = "log"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatGeoJSON = "geojson"
	FormatDOT     = "dot"
	FormatGraph   = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:    true,
	FormatLog:     true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatGeoJSON: true,
	FormatDOT:     true,
	FormatGraph:   true,
}

// Extensions maps each format to the file extension used when writing it.
var Extensions = map[string]string{
	FormatJSON:    ".json",
	FormatLog:     ".log",
	FormatSVG:     ".svg",
	FormatPNG:     ".png",
	FormatGeoJSON: ".geojson",
	FormatDOT:     ".dot",
	FormatGraph:   ".graph.svg",
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(f string) error {
	if !ValidFormats[f] {
		return perrors.New(perrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, log, svg, png, geojson, dot, graph)", f)
	}
	return nil
}

// ValidateFormats checks every format in the list. An empty list is valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Render produces every format in opts.Formats, defaulting to JSON.
// The returned map is keyed by format name.
func Render(res *Result, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{FormatJSON}
	}

	out := make(map[string][]byte, len(formats))
	for _, f := range formats {
		if _, done := out[f]; done {
			continue
		}
		data, err := renderFormat(res, opts, f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		out[f] = data
	}
	return out, nil
}

func renderFormat(res *Result, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		err := pkgio.WriteResults(&buf, res.Rooms)
		return buf.Bytes(), err
	case FormatLog:
		var buf bytes.Buffer
		err := pkgio.WriteLog(&buf, res.Summary())
		return buf.Bytes(), err
	case FormatSVG:
		return plan.RenderSVG(Arrange(res, opts), plan.DefaultOptions())
	case FormatPNG:
		return plan.RenderPNG(Arrange(res, opts), plan.DefaultOptions())
	case FormatGeoJSON:
		return geojson.Marshal(Arrange(res, opts), geojson.Options{})
	case FormatDOT:
		return []byte(wallgraph.ToDOT(res.Rooms, graphOptions(opts))), nil
	case FormatGraph:
		return wallgraph.RenderSVG(wallgraph.ToDOT(res.Rooms, graphOptions(opts)))
	}
	return nil, ValidateFormat(format)
}

func graphOptions(opts Options) wallgraph.Options {
	return wallgraph.Options{Detailed: true, Catalog: opts.Catalog}
}
