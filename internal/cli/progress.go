package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/pipeline"
)

// optimizerProgress turns optimizer callbacks into log lines. It logs
// every multipass pass, each module candidate at debug level, and a final
// summary with the elapsed time.
//
// It is not safe for concurrent use.
type optimizerProgress struct {
	prog       *progress
	logger     *log.Logger
	candidates int
	viable     int
}

func newOptimizerProgress(logger *log.Logger) *optimizerProgress {
	return &optimizerProgress{prog: newProgress(logger), logger: logger}
}

// onPass is called after each multipass pass.
func (o *optimizerProgress) onPass(p optimize.PassReport) {
	o.logger.Infof("Pass %d: %d rooms changed (tolerance %.0f%%, %d clusters)",
		p.Pass, p.Changed, p.Tolerance*100, len(p.Clusters))
	if len(p.Targets) > 0 {
		o.logger.Debugf("  Targets: %v", p.Targets)
	}
}

// onCandidate is called after each module candidate is evaluated.
func (o *optimizerProgress) onCandidate(c optimize.Candidate) {
	o.candidates++
	if c.Viable() {
		o.viable++
		o.logger.Debugf("Module %d cm: avg error %.2f m2", c.Module, c.AvgError)
		return
	}
	o.logger.Debugf("Module %d cm: %d rooms failed", c.Module, len(c.Failed))
}

// done logs the outcome of the run.
func (o *optimizerProgress) done(res *pipeline.Result) {
	if res.CacheHit {
		o.prog.done("Loaded cached result")
		return
	}
	switch res.Strategy {
	case pipeline.StrategyModule:
		if o.candidates > 0 {
			o.logger.Infof("Evaluated %d modules, %d viable", o.candidates, o.viable)
		}
		o.prog.done(fmt.Sprintf("Module %d cm", res.Module))
		if res.ModuleFallback {
			o.logger.Warn("No module fits every room; try widening the module bands")
		}
	case pipeline.StrategyMultiPass:
		msg := fmt.Sprintf("Optimized in %d passes", len(res.Passes))
		if !res.Converged {
			msg += " (pass limit reached)"
		}
		o.prog.done(msg)
	default:
		o.prog.done(fmt.Sprintf("Dimensioned %d rooms", len(res.Rooms)))
	}
}
