// Package stats summarizes a dimensioned program: how many rooms moved,
// how close the areas are to the request and how often wall lengths repeat.
package stats

import (
	"sort"

	"github.com/gduarte0/program2mass/pkg/room"
)

// WallUse is one row of the wall-length frequency table.
type WallUse struct {
	Length int `json:"length_cm"`
	Count  int `json:"count"`
	// Share is Count as a percentage of all walls.
	Share float64  `json:"share_pct"`
	Rooms []string `json:"rooms"`
	// Multiples is Length / module, or 0 without a module.
	Multiples int `json:"module_multiples,omitempty"`
}

// Stats is the statistics record attached to every result.
type Stats struct {
	Rooms        int     `json:"rooms"`
	Optimized    int     `json:"optimized"`
	OptimizedPct float64 `json:"optimized_pct"`

	TotalWalls    int     `json:"total_walls"`
	UniqueLengths int     `json:"unique_lengths"`
	SharedWalls   int     `json:"shared_walls"`
	SharingPct    float64 `json:"sharing_pct"`

	RequestedArea float64 `json:"requested_area_m2"`
	ActualArea    float64 `json:"actual_area_m2"`
	VariancePct   float64 `json:"variance_pct"`
	TotalError    float64 `json:"total_area_error_m2"`
	AvgError      float64 `json:"avg_area_error_m2"`

	Module      int       `json:"module_cm,omitempty"`
	Frequencies []WallUse `json:"frequencies"`
}

// Compute builds the statistics for rooms. Pass module 0 when the rooms
// were not dimensioned on a grid.
func Compute(rooms []room.Room, module int) Stats {
	s := Stats{Rooms: len(rooms), Module: module, Frequencies: []WallUse{}}
	if len(rooms) == 0 {
		return s
	}

	index := make(map[int]int)
	for _, r := range rooms {
		if r.Optimized {
			s.Optimized++
		}
		s.RequestedArea += r.RequestedArea
		s.ActualArea += r.ActualArea()
		s.TotalError += r.AreaError()

		walls := r.Dimensions.Walls()
		for k, w := range walls {
			s.TotalWalls++
			i, ok := index[w]
			if !ok {
				i = len(s.Frequencies)
				index[w] = i
				s.Frequencies = append(s.Frequencies, WallUse{Length: w})
			}
			s.Frequencies[i].Count++
			// A square room is listed once.
			if k == 0 || walls[0] != walls[1] {
				s.Frequencies[i].Rooms = append(s.Frequencies[i].Rooms, r.Name)
			}
		}
	}

	s.OptimizedPct = pct(s.Optimized, s.Rooms)
	s.UniqueLengths = len(s.Frequencies)
	for i := range s.Frequencies {
		f := &s.Frequencies[i]
		f.Share = pct(f.Count, s.TotalWalls)
		if module > 0 {
			f.Multiples = f.Length / module
		}
		if f.Count > 1 {
			s.SharedWalls += f.Count
		}
	}
	s.SharingPct = pct(s.SharedWalls, s.TotalWalls)
	if s.RequestedArea > 0 {
		s.VariancePct = (s.ActualArea - s.RequestedArea) / s.RequestedArea * 100
	}
	s.AvgError = s.TotalError / float64(s.Rooms)

	sort.SliceStable(s.Frequencies, func(i, j int) bool {
		return s.Frequencies[i].Count > s.Frequencies[j].Count
	})
	return s
}

// Top returns at most n rows of the frequency table.
func (s Stats) Top(n int) []WallUse {
	if n <= 0 || n > len(s.Frequencies) {
		return s.Frequencies
	}
	return s.Frequencies[:n]
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
