package optimize

import (
	"math"
	"sort"

	"github.com/gduarte0/program2mass/pkg/dimension"
	"github.com/gduarte0/program2mass/pkg/room"
)

// Defaults for [CommonDimensions].
const (
	DefaultCommonTolerance = 0.05
	DefaultCommonTopK      = 3
)

// Frequency is how many walls use one length.
type Frequency struct {
	Length int `json:"length_cm"`
	Count  int `json:"count"`
}

// Frequencies counts wall lengths across rooms, most frequent first with
// ties in first-seen order.
func Frequencies(rooms []room.Room) []Frequency {
	index := make(map[int]int)
	var out []Frequency
	for _, r := range rooms {
		for _, w := range r.Dimensions.Walls() {
			if i, ok := index[w]; ok {
				out[i].Count++
				continue
			}
			index[w] = len(out)
			out = append(out, Frequency{Length: w, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// CommonDimensions snaps rooms onto the most frequent wall lengths in a
// single pass. Frequencies are taken once before the pass, so the result
// does not depend on room order.
type CommonDimensions struct {
	Solver    *dimension.Solver
	Tolerance float64
	TopK      int
}

// NewCommonDimensions returns the optimizer with default parameters.
func NewCommonDimensions(s *dimension.Solver) *CommonDimensions {
	return &CommonDimensions{Solver: s, Tolerance: DefaultCommonTolerance, TopK: DefaultCommonTopK}
}

// Run updates rooms in place and returns the applied changes.
func (c *CommonDimensions) Run(rooms []room.Room) []Improvement {
	s := c.Solver
	if s == nil {
		s = dimension.New(nil)
	}
	unit := s.Increment()

	freqs := Frequencies(rooms)
	counts := make(map[int]int, len(freqs))
	for _, f := range freqs {
		counts[f.Length] = f.Count
	}
	top := freqs
	if c.TopK > 0 && len(top) > c.TopK {
		top = top[:c.TopK]
	}

	var imps []Improvement
	for i := range rooms {
		r := &rooms[i]
		bounds := s.Aspect(r.Type)

		var (
			best       room.Dimensions
			bestShared int
		)
		try := func(d room.Dimensions) {
			if math.Abs(d.Area()-r.RequestedArea)/r.RequestedArea > c.Tolerance {
				return
			}
			if !bounds.Contains(d.Aspect()) {
				return
			}
			if shared := counts[d.Length] + counts[d.Width]; shared > bestShared {
				best, bestShared = d, shared
			}
		}
		for _, f := range top {
			other := s.Complement(r.RequestedArea, f.Length, unit)
			try(room.Dimensions{Length: f.Length, Width: other})
			try(room.Dimensions{Length: other, Width: f.Length})
		}

		if bestShared <= 1 || best == r.Dimensions {
			continue
		}
		imps = append(imps, Improvement{
			Pass:        1,
			Room:        r.Name,
			Index:       i,
			Old:         r.Dimensions,
			New:         best,
			Value:       float64(bestShared),
			Connections: bestShared,
		})
		r.Dimensions = best
		r.Optimized = true
	}
	return imps
}
