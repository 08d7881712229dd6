// Package plan draws a massing model as a top-down plan in SVG or PNG.
//
// Each box is filled with its category colour and outlined in black. When
// a system sans-serif font can be loaded the room name and actual area are
// written at the box centre; otherwise the plan is drawn without labels.
//
//	m := massing.Arrange(rooms, massing.Options{})
//	svg, err := plan.RenderSVG(m, plan.Options{})
package plan

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/gduarte0/program2mass/pkg/massing"
)

// ErrEmpty is returned when the model has no boxes to draw.
var ErrEmpty = errors.New("plan: nothing to draw")

// Options control the drawing. Lengths are in model centimetres.
type Options struct {
	// Padding surrounds the drawing.
	Padding float64
	// Grid draws dashed lines every Grid centimetres. Zero disables it.
	Grid float64
	// StrokeWidth is the outline width.
	StrokeWidth float64
	// FontSize is the label size in model units. Zero disables labels.
	FontSize float64
	// Resolution is used for PNG output.
	Resolution canvas.Resolution
}

// DefaultOptions returns 100 cm padding, a 100 cm grid and labels.
func DefaultOptions() Options {
	return Options{
		Padding:     100,
		Grid:        100,
		StrokeWidth: 4,
		FontSize:    28,
		Resolution:  canvas.DPMM(0.5),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Padding <= 0 {
		o.Padding = d.Padding
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = d.StrokeWidth
	}
	if o.FontSize == 0 {
		o.FontSize = d.FontSize
	}
	if o.Resolution == 0 {
		o.Resolution = d.Resolution
	}
	return o
}

// RenderSVG returns the plan as SVG.
func RenderSVG(m massing.Model, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, m, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSVG writes the plan as SVG to w.
func WriteSVG(w io.Writer, m massing.Model, opts Options) error {
	if len(m.Boxes) == 0 {
		return ErrEmpty
	}
	opts = opts.withDefaults()
	width, height := size(m, opts)

	r := svg.New(w, width, height, nil)
	draw(r, m, opts, width, height)
	return r.Close()
}

// RenderPNG returns the plan as PNG.
func RenderPNG(m massing.Model, opts Options) ([]byte, error) {
	if len(m.Boxes) == 0 {
		return nil, ErrEmpty
	}
	opts = opts.withDefaults()
	width, height := size(m, opts)

	rast := rasterizer.New(width, height, opts.Resolution, canvas.DefaultColorSpace)
	draw(rast, m, opts, width, height)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rast); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func size(m massing.Model, opts Options) (float64, float64) {
	w, d := m.Extent()
	return w + 2*opts.Padding, d + 2*opts.Padding
}

func draw(r canvas.Renderer, m massing.Model, opts Options, width, height float64) {
	bg := canvas.DefaultStyle
	bg.Fill = canvas.Paint{Color: canvas.White}
	bg.Stroke = canvas.Paint{Color: canvas.Transparent}
	r.RenderPath(canvas.Rectangle(width, height), bg, canvas.Identity)

	if opts.Grid > 0 {
		grid := canvas.DefaultStyle
		grid.Fill = canvas.Paint{Color: canvas.Transparent}
		grid.Stroke = canvas.Paint{Color: color.RGBA{220, 220, 220, 255}}
		grid.StrokeWidth = 1
		grid.Dashes = []float64{6, 6}
		for x := opts.Padding; x <= width-opts.Padding; x += opts.Grid {
			p := &canvas.Path{}
			p.MoveTo(x, 0)
			p.LineTo(x, height)
			r.RenderPath(p, grid, canvas.Identity)
		}
		for y := opts.Padding; y <= height-opts.Padding; y += opts.Grid {
			p := &canvas.Path{}
			p.MoveTo(0, y)
			p.LineTo(width, y)
			r.RenderPath(p, grid, canvas.Identity)
		}
	}

	face := labelFace(opts.FontSize)
	for _, b := range m.Boxes {
		style := canvas.DefaultStyle
		style.Fill = canvas.Paint{Color: b.Color}
		style.Stroke = canvas.Paint{Color: canvas.Black}
		style.StrokeWidth = opts.StrokeWidth

		rect := canvas.Rectangle(float64(b.Length), float64(b.Width)).Translate(b.X+opts.Padding, b.Y+opts.Padding)
		r.RenderPath(rect, style, canvas.Identity)

		if face == nil {
			continue
		}
		cx, cy := b.Center()
		lines := strings.Split(b.Label, "\n")
		lead := opts.FontSize * 1.2
		top := cy + opts.Padding + lead*float64(len(lines)-1)/2
		for i, line := range lines {
			text := canvas.NewTextLine(face, line, canvas.Center)
			r.RenderText(text, canvas.Identity.Translate(cx+opts.Padding, top-float64(i)*lead))
		}
	}
}

var (
	labelOnce   sync.Once
	labelFamily *canvas.FontFamily
)

// labelFace returns nil when labels are disabled or no font is available.
func labelFace(size float64) *canvas.FontFace {
	if size <= 0 {
		return nil
	}
	labelOnce.Do(func() {
		family := canvas.NewFontFamily("label")
		if err := family.LoadSystemFont("sans-serif", canvas.FontRegular); err == nil {
			labelFamily = family
		}
	})
	if labelFamily == nil {
		return nil
	}
	return labelFamily.Face(size*ptPerMM, canvas.Black, canvas.FontRegular, canvas.FontNormal)
}

// ptPerMM converts canvas millimetres (one per model centimetre) to points.
const ptPerMM = 72 / 25.4
