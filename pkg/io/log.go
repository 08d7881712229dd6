package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/stats"
)

// Summary is everything the optimization log reports.
type Summary struct {
	Strategy     string
	Module       int
	Fallback     bool
	Rooms        []room.Room
	Stats        stats.Stats
	Passes       []optimize.PassReport
	Improvements []optimize.Improvement
	Failures     []optimize.Failure
	Warnings     []string
}

const rule = "=================================================="

// WriteLog writes the plain-text optimization summary.
func WriteLog(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)
	st := s.Stats

	fmt.Fprintln(bw, "OPTIMIZATION SUMMARY")
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw)
	if s.Strategy != "" {
		fmt.Fprintf(bw, "Strategy: %s\n", s.Strategy)
	}
	if s.Module > 0 {
		fmt.Fprintf(bw, "Module: %dcm (%.2fm)", s.Module, float64(s.Module)/100)
		if s.Fallback {
			fmt.Fprint(bw, " [fallback]")
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintf(bw, "Total rooms: %d\n", st.Rooms)
	fmt.Fprintf(bw, "Optimized rooms: %d (%.1f%%)\n", st.Optimized, st.OptimizedPct)
	fmt.Fprintf(bw, "Unique wall dimensions: %d\n", st.UniqueLengths)
	fmt.Fprintf(bw, "Shared walls: %d of %d (%.1f%%)\n", st.SharedWalls, st.TotalWalls, st.SharingPct)
	fmt.Fprintf(bw, "Requested area: %.2fm2\n", st.RequestedArea)
	fmt.Fprintf(bw, "Actual area: %.2fm2\n", st.ActualArea)
	fmt.Fprintf(bw, "Variance: %+.2f%%\n", st.VariancePct)
	fmt.Fprintf(bw, "Average area error: %.2fm2\n", st.AvgError)
	if s.Module > 0 {
		fmt.Fprintf(bw, "\nAll walls are multiples of %dcm\n", s.Module)
		if len(s.Failures) == 0 && !s.Fallback {
			fmt.Fprintln(bw, "Universal connectivity: 100%")
		}
	}

	if len(s.Rooms) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "ROOMS")
		fmt.Fprintln(bw, strings.Repeat("-", len(rule)))
		for i, r := range s.Rooms {
			mark := " "
			if r.Optimized {
				mark = "*"
			}
			fmt.Fprintf(bw, "%2d. %s %-24s %-12s %9s cm  %6.2f / %6.2f m2\n",
				i+1, mark, r.Name, "["+r.Type.String()+"]", r.Dimensions, r.ActualArea(), r.RequestedArea)
		}
	}

	if top := st.Top(5); len(top) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "MOST USED WALL LENGTHS")
		fmt.Fprintln(bw, strings.Repeat("-", len(rule)))
		for _, u := range top {
			fmt.Fprintf(bw, "%5dcm  x%-3d %5.1f%%  %s\n", u.Length, u.Count, u.Share, strings.Join(u.Rooms, ", "))
		}
	}

	if len(s.Passes) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "PASSES")
		fmt.Fprintln(bw, strings.Repeat("-", len(rule)))
		for _, p := range s.Passes {
			fmt.Fprintf(bw, "Pass %d: tolerance %.0f%%, %d changes, targets %v\n",
				p.Pass, p.Tolerance*100, p.Changed, p.Targets)
		}
	}

	if len(s.Improvements) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "CHANGES")
		fmt.Fprintln(bw, strings.Repeat("-", len(rule)))
		for _, imp := range s.Improvements {
			fmt.Fprintf(bw, "[%d] %s: %s -> %s (value %.0f, %d connections)\n",
				imp.Pass, imp.Room, imp.Old, imp.New, imp.Value, imp.Connections)
		}
	}

	if len(s.Failures) > 0 || len(s.Warnings) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "WARNINGS")
		fmt.Fprintln(bw, strings.Repeat("-", len(rule)))
		for _, f := range s.Failures {
			fmt.Fprintf(bw, "%s: %s\n", f.Room, f.Reason)
		}
		for _, msg := range s.Warnings {
			fmt.Fprintln(bw, msg)
		}
	}

	return bw.Flush()
}

// ExportLog writes the optimization summary to path.
func ExportLog(s Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLog(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
