package pipeline

import (
	"fmt"
	"time"

	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/score"
	"github.com/gduarte0/program2mass/pkg/stats"
)

// Solve runs classify → solve → optimize → stats over reqs without any
// caching. The requests are never modified; every run works on fresh rooms.
func Solve(reqs []room.Request, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return solve(reqs, opts, nil)
}

// prepared is the classified working set of a run.
type prepared struct {
	rooms    []room.Room
	skipped  []string
	warnings []string
}

// prepare validates and classifies reqs. Circulation rooms are dropped
// unless IncludeCirculation is set and rooms below SmallRoomArea are
// flagged.
func prepare(reqs []room.Request, opts Options) (prepared, error) {
	if err := ValidateRequests(reqs); err != nil {
		return prepared{}, err
	}
	p := prepared{rooms: make([]room.Room, 0, len(reqs))}
	for _, req := range reqs {
		typ := opts.Catalog.Classify(req.Name)
		if typ == room.Circulation && !opts.IncludeCirculation {
			p.skipped = append(p.skipped, req.Name)
			p.warnings = append(p.warnings, fmt.Sprintf("skipped circulation room %q", req.Name))
			continue
		}
		if req.Area < opts.SmallRoomArea {
			p.warnings = append(p.warnings, fmt.Sprintf("room %q is very small (%.1f m2)", req.Name, req.Area))
		}
		p.rooms = append(p.rooms, room.Room{Name: req.Name, RequestedArea: req.Area, Type: typ})
	}
	opts.Logger.Debug("classified rooms", "rooms", len(p.rooms), "skipped", len(p.skipped))
	return p, nil
}

// solve assumes validated options. A non-nil search skips the module sweep.
func solve(reqs []room.Request, opts Options, search *optimize.ModuleSearchResult) (*Result, error) {
	p, err := prepare(reqs, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Status:   StatusOK,
		Strategy: opts.Strategy,
		Rooms:    p.rooms,
		Skipped:  p.skipped,
		Warnings: p.warnings,
	}
	if len(p.rooms) == 0 {
		res.Status = StatusEmpty
		res.Warnings = append(res.Warnings, "nothing to optimize")
		res.Stats = stats.Compute(nil, 0)
		return res, nil
	}

	solver := opts.Solver()

	if opts.Strategy == StrategyModule {
		start := time.Now()
		applyModule(res, opts, search)
		res.Timing.Optimize = time.Since(start)
		res.Stats = stats.Compute(res.Rooms, res.Module)
		opts.Logger.Info("dimensioned rooms on module",
			"module", res.Module,
			"rooms", len(res.Rooms),
			"failed", len(res.Failures),
			"duration", res.Timing.Optimize)
		return res, nil
	}

	start := time.Now()
	for i := range res.Rooms {
		res.Rooms[i].Dimensions = solver.Solve(res.Rooms[i].RequestedArea, res.Rooms[i].Type)
	}
	res.Timing.Solve = time.Since(start)
	opts.Logger.Debug("solved rooms", "rooms", len(res.Rooms), "duration", res.Timing.Solve)

	start = time.Now()
	switch opts.Strategy {
	case StrategyMultiPass:
		mp := optimize.NewMultiPass(solver, score.New(opts.Catalog))
		mp.Passes = opts.Passes
		mp.ToleranceStart = opts.ToleranceStart
		mp.ToleranceStep = opts.ToleranceStep
		mp.TopK = opts.TopK
		mp.Threshold = opts.Threshold
		mp.ClusterTolerance = opts.ClusterTolerance
		mp.Progress = opts.OnPass
		run := mp.Run(res.Rooms)
		res.Passes = run.Passes
		res.Improvements = run.Improvements
		res.Converged = run.Converged
	case StrategyCommon:
		res.Improvements = optimize.NewCommonDimensions(solver).Run(res.Rooms)
	}
	res.Timing.Optimize = time.Since(start)
	res.Stats = stats.Compute(res.Rooms, 0)

	opts.Logger.Info("optimized rooms",
		"strategy", opts.describe(),
		"rooms", len(res.Rooms),
		"changes", len(res.Improvements),
		"sharing", fmt.Sprintf("%.1f%%", res.Stats.SharingPct),
		"duration", res.Timing.Optimize)
	return res, nil
}

// applyModule dimensions res.Rooms on a grid module, searching for one
// unless it is fixed by the options or supplied by the caller.
func applyModule(res *Result, opts Options, search *optimize.ModuleSearchResult) {
	ms := newModuleSearch(opts)

	module := opts.Module
	if module == 0 {
		if search == nil {
			s := ms.Find(res.Rooms)
			search = &s
		}
		module = search.Module
		res.Candidates = search.Top
		res.ModuleFallback = search.Fallback
		if search.Fallback {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("no module solved every room; using default %d cm", module))
		}
	}

	rooms, failures := ms.Apply(res.Rooms, module)
	res.Module = module
	res.Rooms = rooms
	res.Failures = failures
	for _, f := range failures {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", f.Room, f.Reason))
	}
}

func newModuleSearch(opts Options) *optimize.ModuleSearch {
	ms := optimize.NewModuleSearch(opts.Solver())
	ms.Bands = opts.Bands
	ms.DefaultModule = opts.DefaultModule
	ms.Progress = opts.OnCandidate
	return ms
}

// SearchModule runs only the module sweep over the classified requests.
func SearchModule(reqs []room.Request, opts Options) (optimize.ModuleSearchResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return optimize.ModuleSearchResult{}, err
	}
	p, err := prepare(reqs, opts)
	if err != nil {
		return optimize.ModuleSearchResult{}, err
	}
	return newModuleSearch(opts).Find(p.rooms), nil
}
