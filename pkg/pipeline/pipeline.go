// Package pipeline provides the core dimensioning pipeline for program2mass.
//
// This package implements the complete classify → solve → optimize → stats
// pipeline that is shared by the CLI and the HTTP API. By centralizing this
// logic, both entry points apply the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Classify: Assign a room type to every request by keyword
//  2. Solve: Dimension every room with the ratio-constrained solver
//  3. Optimize: Align walls with the selected strategy
//  4. Stats: Summarize wall sharing and area accuracy
//
// Strategies:
//
//   - multipass: cluster-driven refinement over several passes (default)
//   - module: search one grid module that fits every room
//   - common: single pass onto the most frequent wall lengths
//   - none: solver output only
//
// # Usage
//
// [Solve] runs the pure pipeline without caching:
//
//	res, err := pipeline.Solve(requests, pipeline.Options{Strategy: "module"})
//
// A [Runner] adds the result cache and observability hooks:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, requests, opts)
//
// After solving, [Arrange] lays the rooms out for the renderers and
// [Render] produces the requested output files.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gduarte0/program2mass/pkg/cache"
	"github.com/gduarte0/program2mass/pkg/dimension"
	perrors "github.com/gduarte0/program2mass/pkg/errors"
	pkgio "github.com/gduarte0/program2mass/pkg/io"
	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/stats"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStrategy is the optimization strategy used when none is given.
	DefaultStrategy = StrategyMultiPass

	// DefaultSmallRoomArea is the area in m² below which a room is flagged.
	DefaultSmallRoomArea = 2.0
)

// Strategy names.
const (
	StrategyMultiPass = "multipass"
	StrategyModule    = "module"
	StrategyCommon    = "common"
	StrategyNone      = "none"
)

// ValidStrategies is the set of supported strategies.
var ValidStrategies = map[string]bool{
	StrategyMultiPass: true,
	StrategyModule:    true,
	StrategyCommon:    true,
	StrategyNone:      true,
}

// Result status values.
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the dimensioning pipeline.
// Zero numeric fields select the package defaults. This struct supports
// JSON serialization for API requests.
type Options struct {
	Strategy string `json:"strategy,omitempty"`

	// Solver options
	Unit    int `json:"unit_cm,omitempty"`
	MinWall int `json:"min_wall_cm,omitempty"`

	// Multi-pass options
	Passes           int     `json:"passes,omitempty"`
	ToleranceStart   float64 `json:"tolerance_start,omitempty"`
	ToleranceStep    float64 `json:"tolerance_step,omitempty"`
	TopK             int     `json:"top_k,omitempty"`
	Threshold        float64 `json:"threshold,omitempty"`
	ClusterTolerance int     `json:"cluster_tolerance_cm,omitempty"`

	// Module options
	Bands         []optimize.Band `json:"bands,omitempty"`
	DefaultModule int             `json:"default_module_cm,omitempty"`
	// Module fixes the grid module and skips the search.
	Module int `json:"module_cm,omitempty"`

	// Ingestion options
	IncludeCirculation bool    `json:"include_circulation,omitempty"`
	SmallRoomArea      float64 `json:"small_room_m2,omitempty"`
	Refresh            bool    `json:"refresh,omitempty"`

	// Layout and render options
	Formats []string `json:"formats,omitempty"`
	Spacing int      `json:"spacing_cm,omitempty"`
	Height  int      `json:"height_cm,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger               `json:"-"`
	Catalog     *room.Catalog             `json:"-"`
	OnPass      func(optimize.PassReport) `json:"-"`
	OnCandidate func(optimize.Candidate)  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run. Rooms keep input order.
type Result struct {
	Status   string      `json:"status"`
	Strategy string      `json:"strategy"`
	Rooms    []room.Room `json:"rooms"`

	// Skipped lists circulation rooms left out at ingestion.
	Skipped      []string               `json:"skipped,omitempty"`
	Failures     []optimize.Failure     `json:"failures,omitempty"`
	Improvements []optimize.Improvement `json:"improvements,omitempty"`
	Passes       []optimize.PassReport  `json:"passes,omitempty"`
	Converged    bool                   `json:"converged,omitempty"`

	Module         int                  `json:"module_cm,omitempty"`
	ModuleFallback bool                 `json:"module_fallback,omitempty"`
	Candidates     []optimize.Candidate `json:"candidates,omitempty"`

	Stats    stats.Stats `json:"stats"`
	Warnings []string    `json:"warnings,omitempty"`

	Timing   Timing `json:"timing"`
	CacheHit bool   `json:"cache_hit"`
}

// Timing contains stage durations.
type Timing struct {
	Solve    time.Duration `json:"solve_ns"`
	Optimize time.Duration `json:"optimize_ns"`
}

// Summary converts the result into the optimization log summary.
func (r *Result) Summary() pkgio.Summary {
	return pkgio.Summary{
		Strategy:     r.Strategy,
		Module:       r.Module,
		Fallback:     r.ModuleFallback,
		Rooms:        r.Rooms,
		Stats:        r.Stats,
		Passes:       r.Passes,
		Improvements: r.Improvements,
		Failures:     r.Failures,
		Warnings:     r.Warnings,
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateStrategy checks that a strategy is valid.
func ValidateStrategy(s string) error {
	if !ValidStrategies[s] {
		return perrors.New(perrors.ErrCodeInvalidStrategy,
			"invalid strategy: %q (must be one of: multipass, module, common, none)", s)
	}
	return nil
}

// ValidateRequests checks every request name and area.
func ValidateRequests(reqs []room.Request) error {
	for i, r := range reqs {
		if err := perrors.ValidateRoomName(r.Name); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "room %d", i+1)
		}
		if err := perrors.ValidateArea(r.Area); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "room %d (%s)", i+1, r.Name)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if err := o.validateRanges(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.SetSolverDefaults()
	if o.Passes == 0 {
		o.Passes = optimize.DefaultPasses
	}
	if o.ToleranceStart == 0 {
		o.ToleranceStart = optimize.DefaultToleranceStart
	}
	if o.ToleranceStep == 0 {
		o.ToleranceStep = optimize.DefaultToleranceStep
	}
	if o.TopK == 0 {
		o.TopK = optimize.DefaultTopK
	}
	if o.Threshold == 0 {
		o.Threshold = optimize.DefaultThreshold
	}
	if o.ClusterTolerance == 0 {
		o.ClusterTolerance = optimize.DefaultClusterTolerance
	}
	if len(o.Bands) == 0 {
		o.Bands = optimize.DefaultBands(o.MinWall)
	}
	if o.DefaultModule == 0 {
		o.DefaultModule = optimize.DefaultModule
	}
	if o.SmallRoomArea == 0 {
		o.SmallRoomArea = DefaultSmallRoomArea
	}
	o.validated = true
	return nil
}

func (o *Options) validateRanges() error {
	ints := []struct {
		name string
		v    int
	}{
		{"unit_cm", o.Unit}, {"min_wall_cm", o.MinWall}, {"passes", o.Passes},
		{"top_k", o.TopK}, {"cluster_tolerance_cm", o.ClusterTolerance},
		{"default_module_cm", o.DefaultModule}, {"module_cm", o.Module},
		{"height_cm", o.Height},
	}
	for _, f := range ints {
		if f.v < 0 {
			return perrors.New(perrors.ErrCodeInvalidConfig, "%s must not be negative, got %d", f.name, f.v)
		}
	}
	floats := []struct {
		name string
		v    float64
	}{
		{"tolerance_start", o.ToleranceStart}, {"tolerance_step", o.ToleranceStep},
		{"threshold", o.Threshold}, {"small_room_m2", o.SmallRoomArea},
	}
	for _, f := range floats {
		if f.v < 0 || math.IsNaN(f.v) {
			return perrors.New(perrors.ErrCodeInvalidConfig, "%s must be a non-negative number, got %v", f.name, f.v)
		}
	}
	if o.ToleranceStart > 1 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "tolerance_start is a fraction, got %v", o.ToleranceStart)
	}
	for _, b := range o.Bands {
		if b.Step <= 0 || b.From <= 0 || b.To < b.From {
			return perrors.New(perrors.ErrCodeInvalidConfig, "invalid module band %d..%d/%d", b.From, b.To, b.Step)
		}
	}
	return nil
}

// SetSolverDefaults fills the solver unit, minimum wall and logger.
func (o *Options) SetSolverDefaults() {
	if o.Unit == 0 {
		o.Unit = dimension.DefaultUnit
	}
	if o.MinWall == 0 {
		o.MinWall = dimension.DefaultMinWall
	}
	if o.Catalog == nil {
		o.Catalog = room.DefaultCatalog()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Solver returns the dimension solver described by the options.
func (o *Options) Solver() *dimension.Solver {
	o.SetSolverDefaults()
	s := dimension.New(o.Catalog)
	s.Unit = o.Unit
	s.MinWall = o.MinWall
	return s
}

// ResultKeyOpts returns cache key options for a full result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Strategy:           o.Strategy,
		Unit:               o.Unit,
		MinWall:            o.MinWall,
		Passes:             o.Passes,
		ToleranceStart:     o.ToleranceStart,
		ToleranceStep:      o.ToleranceStep,
		TopK:               o.TopK,
		Threshold:          o.Threshold,
		ClusterTolerance:   o.ClusterTolerance,
		Bands:              bandKey(o.Bands),
		DefaultModule:      o.DefaultModule,
		Module:             o.Module,
		IncludeCirculation: o.IncludeCirculation,
		SmallRoomArea:      o.SmallRoomArea,
		CatalogHash:        cache.HashJSON(o.Catalog),
	}
}

// ModuleKeyOpts returns cache key options for a module search.
func (o *Options) ModuleKeyOpts() cache.ModuleKeyOpts {
	return cache.ModuleKeyOpts{
		MinWall:            o.MinWall,
		Bands:              bandKey(o.Bands),
		DefaultModule:      o.DefaultModule,
		IncludeCirculation: o.IncludeCirculation,
		CatalogHash:        cache.HashJSON(o.Catalog),
	}
}

func bandKey(bands []optimize.Band) [][3]int {
	out := make([][3]int, len(bands))
	for i, b := range bands {
		out[i] = [3]int{b.From, b.To, b.Step}
	}
	return out
}

// ProgramHash identifies a request list for caching. Order matters because
// the optimizers are order dependent.
func ProgramHash(reqs []room.Request) string {
	return cache.HashJSON(reqs)
}

// describe is used in log lines.
func (o *Options) describe() string {
	switch o.Strategy {
	case StrategyModule:
		if o.Module > 0 {
			return fmt.Sprintf("module %d cm", o.Module)
		}
		return "module search"
	case StrategyMultiPass:
		return fmt.Sprintf("multipass x%d", o.Passes)
	}
	return o.Strategy
}
