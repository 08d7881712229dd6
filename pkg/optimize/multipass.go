package optimize

import (
	"math"

	"github.com/gduarte0/program2mass/pkg/cluster"
	"github.com/gduarte0/program2mass/pkg/dimension"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/score"
)

// Defaults for [MultiPass].
const (
	DefaultPasses           = 3
	DefaultToleranceStart   = 0.07
	DefaultToleranceStep    = 0.01
	DefaultTopK             = 6
	DefaultThreshold        = 60
	DefaultClusterTolerance = 50
)

// Improvement records one applied change.
type Improvement struct {
	Pass        int             `json:"pass"`
	Room        string          `json:"room"`
	Index       int             `json:"index"`
	Old         room.Dimensions `json:"old"`
	New         room.Dimensions `json:"new"`
	Value       float64         `json:"value"`
	Connections int             `json:"connections"`
}

// PassReport summarizes one pass.
type PassReport struct {
	Pass      int               `json:"pass"`
	Tolerance float64           `json:"tolerance"`
	Clusters  []cluster.Cluster `json:"clusters"`
	Targets   []int             `json:"targets_cm"`
	Changed   int               `json:"changed"`
}

// MultiPassResult is returned by [MultiPass.Run].
type MultiPassResult struct {
	Passes       []PassReport  `json:"passes"`
	Improvements []Improvement `json:"improvements"`
	// Converged is true when the loop stopped on a pass with no changes.
	Converged bool `json:"converged"`
}

// MultiPass aligns walls by repeatedly moving rooms onto cluster centers.
type MultiPass struct {
	Solver *dimension.Solver
	Scorer *score.Scorer

	Passes         int
	ToleranceStart float64
	ToleranceStep  float64
	// TopK limits how many cluster centers are tried per room.
	TopK int
	// Threshold is the connection value a candidate must exceed.
	Threshold        float64
	ClusterTolerance int

	// Progress is called after every pass.
	Progress func(PassReport)
}

// NewMultiPass returns a multi-pass optimizer with default parameters.
func NewMultiPass(s *dimension.Solver, sc *score.Scorer) *MultiPass {
	return &MultiPass{
		Solver:           s,
		Scorer:           sc,
		Passes:           DefaultPasses,
		ToleranceStart:   DefaultToleranceStart,
		ToleranceStep:    DefaultToleranceStep,
		TopK:             DefaultTopK,
		Threshold:        DefaultThreshold,
		ClusterTolerance: DefaultClusterTolerance,
	}
}

// Tolerance returns the area tolerance for pass p (1-based). It never
// drops below zero.
func (m *MultiPass) Tolerance(p int) float64 {
	return math.Max(m.ToleranceStart-float64(p-1)*m.ToleranceStep, 0)
}

// Run refines rooms in place, stopping early after a pass with no changes.
func (m *MultiPass) Run(rooms []room.Room) MultiPassResult {
	res := MultiPassResult{Passes: []PassReport{}, Improvements: []Improvement{}}
	passes := m.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}
	for p := 1; p <= passes; p++ {
		report, imps := m.Pass(rooms, p, m.Tolerance(p))
		res.Passes = append(res.Passes, report)
		res.Improvements = append(res.Improvements, imps...)
		if m.Progress != nil {
			m.Progress(report)
		}
		if report.Changed == 0 {
			res.Converged = true
			break
		}
	}
	return res
}

// Pass runs a single refinement pass over rooms at the given tolerance.
// Rooms are visited in order and updated in place.
func (m *MultiPass) Pass(rooms []room.Room, pass int, tolerance float64) (PassReport, []Improvement) {
	solver, scorer := m.solver(), m.scorer()
	unit := solver.Increment()
	floor := solver.Floor(unit)

	lengths := make([]int, 0, 2*len(rooms))
	for _, r := range rooms {
		lengths = append(lengths, r.Dimensions.Length, r.Dimensions.Width)
	}
	clusters := cluster.Analyze(lengths, m.ClusterTolerance, unit)
	targets := cluster.Centers(clusters, m.TopK)

	report := PassReport{Pass: pass, Tolerance: tolerance, Clusters: clusters, Targets: targets}
	var imps []Improvement

	for i := range rooms {
		r := &rooms[i]
		bounds := solver.Aspect(r.Type)

		var (
			best      room.Dimensions
			bestValue float64
			bestConns int
			found     bool
		)
		try := func(d room.Dimensions) {
			if math.Abs(d.Area()-r.RequestedArea)/r.RequestedArea > tolerance {
				return
			}
			if !bounds.Contains(d.Aspect()) {
				return
			}
			v, n := scorer.Connection(d, i, rooms)
			if v > bestValue {
				best, bestValue, bestConns, found = d, v, n, true
			}
		}
		for _, target := range targets {
			if target < floor {
				continue
			}
			other := solver.Complement(r.RequestedArea, target, unit)
			try(room.Dimensions{Length: target, Width: other})
			try(room.Dimensions{Length: other, Width: target})
		}

		if !found || bestValue <= m.Threshold || best == r.Dimensions {
			continue
		}
		imps = append(imps, Improvement{
			Pass:        pass,
			Room:        r.Name,
			Index:       i,
			Old:         r.Dimensions,
			New:         best,
			Value:       bestValue,
			Connections: bestConns,
		})
		r.Dimensions = best
		r.Optimized = true
		report.Changed++
	}
	return report, imps
}

func (m *MultiPass) solver() *dimension.Solver {
	if m.Solver == nil {
		return dimension.New(nil)
	}
	return m.Solver
}

func (m *MultiPass) scorer() *score.Scorer {
	if m.Scorer == nil {
		return score.New(m.solver().Catalog)
	}
	return m.Scorer
}
