package optimize

import (
	"fmt"
	"slices"
	"sort"

	"github.com/gduarte0/program2mass/pkg/dimension"
	"github.com/gduarte0/program2mass/pkg/room"
)

// Defaults for [ModuleSearch].
const (
	DefaultModule = 150
	DefaultTopN   = 5
)

// Band is an inclusive range of module sizes sampled every Step cm.
type Band struct {
	From int `json:"from" toml:"from" yaml:"from"`
	To   int `json:"to" toml:"to" yaml:"to"`
	Step int `json:"step" toml:"step" yaml:"step"`
}

// DefaultBands returns fine steps from minWall to 200 cm, 25 cm steps to
// 300 cm and 50 cm steps to 500 cm.
func DefaultBands(minWall int) []Band {
	return []Band{
		{From: minWall, To: 200, Step: 10},
		{From: 225, To: 300, Step: 25},
		{From: 350, To: 500, Step: 50},
	}
}

// Candidate is the outcome of dimensioning every room on one module.
type Candidate struct {
	Module      int     `json:"module_cm"`
	SuccessRate float64 `json:"success_rate"`
	// TotalError is the sum of |actual - requested| in m² over solved rooms.
	TotalError float64  `json:"total_area_error_m2"`
	AvgError   float64  `json:"avg_area_error_m2"`
	Failed     []string `json:"failed,omitempty"`
}

// Viable reports whether every room solved on the module.
func (c Candidate) Viable() bool { return len(c.Failed) == 0 }

// Failure names a room that could not be dimensioned.
type Failure struct {
	Room   string `json:"room"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ModuleSearchResult is returned by [ModuleSearch.Find].
type ModuleSearchResult struct {
	Module int `json:"module_cm"`
	// Fallback is true when no candidate was viable and DefaultModule was
	// used instead.
	Fallback bool `json:"fallback"`
	// Best is the selected candidate, nil on fallback.
	Best *Candidate `json:"best,omitempty"`
	// Top holds the best viable candidates by average error.
	Top       []Candidate `json:"top"`
	Evaluated int         `json:"evaluated"`
	Viable    int         `json:"viable"`
}

// ModuleSearch selects one grid module for a whole program.
type ModuleSearch struct {
	Solver        *dimension.Solver
	Bands         []Band
	DefaultModule int
	// TopN bounds ModuleSearchResult.Top.
	TopN int

	// Progress is called after each candidate is evaluated.
	Progress func(Candidate)
}

// NewModuleSearch returns a module search over the default bands.
func NewModuleSearch(s *dimension.Solver) *ModuleSearch {
	if s == nil {
		s = dimension.New(nil)
	}
	return &ModuleSearch{
		Solver:        s,
		Bands:         DefaultBands(s.MinWall),
		DefaultModule: DefaultModule,
		TopN:          DefaultTopN,
	}
}

func (m *ModuleSearch) solver() *dimension.Solver {
	if m.Solver == nil {
		return dimension.New(nil)
	}
	return m.Solver
}

// Candidates returns the module sizes in enumeration order, without
// duplicates.
func (m *ModuleSearch) Candidates() []int {
	bands := m.Bands
	if len(bands) == 0 {
		bands = DefaultBands(m.solver().MinWall)
	}
	seen := make(map[int]bool)
	var out []int
	for _, b := range bands {
		if b.Step <= 0 {
			continue
		}
		for v := b.From; v <= b.To; v += b.Step {
			if v > 0 && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Evaluate dimensions every room on module.
func (m *ModuleSearch) Evaluate(rooms []room.Room, module int) Candidate {
	s := m.solver()
	c := Candidate{Module: module}
	solved := 0
	for _, r := range rooms {
		d, ok := s.SolveOnGrid(r.RequestedArea, r.Type, module)
		if !ok {
			c.Failed = append(c.Failed, r.Name)
			continue
		}
		rr := r
		rr.Dimensions = d
		c.TotalError += rr.AreaError()
		solved++
	}
	if len(rooms) > 0 {
		c.SuccessRate = float64(solved) / float64(len(rooms))
		c.AvgError = c.TotalError / float64(len(rooms))
	}
	return c
}

// Find evaluates every candidate and selects the viable module with the
// lowest total area error. The first candidate wins ties. When no module
// solves every room the default module is returned with Fallback set.
func (m *ModuleSearch) Find(rooms []room.Room) ModuleSearchResult {
	res := ModuleSearchResult{Top: []Candidate{}}
	var viable []Candidate
	var best *Candidate
	for _, module := range m.Candidates() {
		c := m.Evaluate(rooms, module)
		res.Evaluated++
		if m.Progress != nil {
			m.Progress(c)
		}
		if !c.Viable() {
			continue
		}
		viable = append(viable, c)
		if best == nil || c.TotalError < best.TotalError {
			cc := c
			best = &cc
		}
	}
	res.Viable = len(viable)

	if best == nil {
		res.Module = m.DefaultModule
		if res.Module <= 0 {
			res.Module = DefaultModule
		}
		res.Fallback = true
		return res
	}
	res.Module = best.Module
	res.Best = best

	sort.SliceStable(viable, func(i, j int) bool { return viable[i].AvgError < viable[j].AvgError })
	n := m.TopN
	if n <= 0 {
		n = DefaultTopN
	}
	res.Top = slices.Clone(viable[:min(n, len(viable))])
	return res
}

// Apply dimensions every room on module and returns the solved rooms in
// input order. Rooms that cannot be placed on the module are reported as
// failures and left out. A solved room is marked optimized when it already
// carried dimensions and the module changed them.
func (m *ModuleSearch) Apply(rooms []room.Room, module int) ([]room.Room, []Failure) {
	s := m.solver()
	out := make([]room.Room, 0, len(rooms))
	var failures []Failure
	for i, r := range rooms {
		d, ok := s.SolveOnGrid(r.RequestedArea, r.Type, module)
		if !ok {
			failures = append(failures, Failure{
				Room:   r.Name,
				Index:  i,
				Reason: fmt.Sprintf("no %s ratio fits a %d cm module", r.Type, module),
			})
			continue
		}
		if !r.Dimensions.IsZero() && r.Dimensions != d {
			r.Optimized = true
		}
		r.Dimensions = d
		r.Module = module
		out = append(out, r)
	}
	return out, failures
}
