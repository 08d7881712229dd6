// Package dimension turns a requested area into a rectangular footprint
// whose walls are whole multiples of a rounding unit.
//
// [Solver.Solve] works on a fixed increment and always returns a result,
// falling back to a square when no preferred ratio fits the type's aspect
// bounds. [Solver.SolveOnGrid] works on a caller-supplied module and has
// no fallback: it reports failure instead.
//
// Wall lengths are snapped half-to-even and then clamped up to the
// smallest multiple of the unit that is not below the minimum wall
// length, so every returned wall is both long enough and aligned.
package dimension

import (
	"math"

	"github.com/gduarte0/program2mass/pkg/room"
)

const (
	// DefaultUnit is the fixed rounding increment in centimetres.
	DefaultUnit = 50
	// DefaultMinWall is the shortest wall the solver returns, in centimetres.
	DefaultMinWall = 120
	// RatioPenalty is added per ratio priority index so earlier ratios win
	// over any plausible area difference.
	RatioPenalty = 10000
)

// Solver dimensions single rooms against a catalog.
type Solver struct {
	Catalog *room.Catalog
	Unit    int
	MinWall int
}

// New returns a solver with the default unit and minimum wall.
func New(c *room.Catalog) *Solver {
	if c == nil {
		c = room.DefaultCatalog()
	}
	return &Solver{Catalog: c, Unit: DefaultUnit, MinWall: DefaultMinWall}
}

func (s *Solver) catalog() *room.Catalog {
	if s.Catalog == nil {
		return room.DefaultCatalog()
	}
	return s.Catalog
}

func (s *Solver) unit() int {
	if s.Unit <= 0 {
		return DefaultUnit
	}
	return s.Unit
}

func (s *Solver) minWall() int {
	if s.MinWall <= 0 {
		return DefaultMinWall
	}
	return s.MinWall
}

// Increment returns the fixed rounding unit.
func (s *Solver) Increment() int { return s.unit() }

// Aspect returns the aspect bounds the solver enforces for typ.
func (s *Solver) Aspect(typ room.Type) room.Bounds { return s.catalog().Aspect(typ) }

// Floor returns the shortest wall the solver can produce on unit.
func (s *Solver) Floor(unit int) int {
	return Floor(s.minWall(), unit)
}

// Solve dimensions area (m²) for typ on the solver's fixed unit. When no
// preferred ratio satisfies the aspect bounds it returns a square.
func (s *Solver) Solve(area float64, typ room.Type) room.Dimensions {
	u := s.unit()
	if d, ok := s.best(area, typ, u); ok {
		return d
	}
	side := s.Fit(math.Sqrt(area*10000), u)
	return room.Dimensions{Length: side, Width: side}
}

// SolveOnGrid dimensions area (m²) for typ with both walls on module. It
// reports false when no ratio yields an in-bounds footprint.
func (s *Solver) SolveOnGrid(area float64, typ room.Type, module int) (room.Dimensions, bool) {
	if module <= 0 {
		return room.Dimensions{}, false
	}
	return s.best(area, typ, module)
}

func (s *Solver) best(area float64, typ room.Type, unit int) (room.Dimensions, bool) {
	c := s.catalog()
	bounds := c.Aspect(typ)
	areaCM := area * 10000

	var (
		best      room.Dimensions
		bestScore = math.Inf(1)
		found     bool
	)
	for i, r := range c.Ratios(typ) {
		ideal := math.Sqrt(areaCM * float64(r.Length) / float64(r.Width))
		d := room.Dimensions{
			Length: s.Fit(ideal, unit),
			Width:  s.Fit(areaCM/ideal, unit),
		}
		if !bounds.Contains(d.Aspect()) {
			continue
		}
		score := math.Abs(float64(d.Length*d.Width)-areaCM) + float64(i*RatioPenalty)
		if score < bestScore {
			best, bestScore, found = d, score, true
		}
	}
	return best, found
}

// Fit snaps v (cm) to unit and clamps it to the solver's floor.
func (s *Solver) Fit(v float64, unit int) int {
	return max(Snap(v, unit), s.Floor(unit))
}

// Complement returns the fitted wall that, paired with side, best
// approximates area (m²).
func (s *Solver) Complement(area float64, side, unit int) int {
	return s.Fit(area*10000/float64(side), unit)
}

// Snap rounds v to the nearest multiple of unit, half to even.
func Snap(v float64, unit int) int {
	return int(math.RoundToEven(v/float64(unit))) * unit
}

// Floor returns the smallest multiple of unit that is at least minWall and
// at least one unit.
func Floor(minWall, unit int) int {
	if unit <= 0 {
		return minWall
	}
	n := (minWall + unit - 1) / unit
	return max(n, 1) * unit
}
