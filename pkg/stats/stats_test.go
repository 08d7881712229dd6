package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/gduarte0/program2mass/pkg/room"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, 0)
	if s.Rooms != 0 || s.TotalWalls != 0 || s.Frequencies == nil || len(s.Frequencies) != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestCompute(t *testing.T) {
	rooms := []room.Room{
		{Name: "Bedroom", RequestedArea: 16, Type: room.Bedroom, Dimensions: room.Dimensions{Length: 350, Width: 450}, Optimized: true},
		{Name: "Kitchen", RequestedArea: 12, Type: room.Kitchen, Dimensions: room.Dimensions{Length: 450, Width: 250}},
		{Name: "Bath", RequestedArea: 5, Type: room.Bathroom, Dimensions: room.Dimensions{Length: 150, Width: 350}, Optimized: true},
		{Name: "Store", RequestedArea: 2, Type: room.Utility, Dimensions: room.Dimensions{Length: 150, Width: 150}},
	}
	s := Compute(rooms, 50)

	if s.Rooms != 4 || s.Optimized != 2 || !approx(s.OptimizedPct, 50) {
		t.Errorf("room counts = %d/%d (%.1f%%)", s.Optimized, s.Rooms, s.OptimizedPct)
	}
	if s.TotalWalls != 8 || s.UniqueLengths != 4 {
		t.Errorf("walls = %d, unique = %d", s.TotalWalls, s.UniqueLengths)
	}
	// 350 x2, 450 x2, 150 x3 are shared; 250 is not.
	if s.SharedWalls != 7 || !approx(s.SharingPct, 87.5) {
		t.Errorf("shared = %d (%.1f%%)", s.SharedWalls, s.SharingPct)
	}
	// Actual: 15.75 + 11.25 + 5.25 + 2.25 = 34.5
	if !approx(s.RequestedArea, 35) || !approx(s.ActualArea, 34.5) {
		t.Errorf("areas = %v / %v", s.RequestedArea, s.ActualArea)
	}
	if !approx(s.VariancePct, -0.5/35*100) {
		t.Errorf("variance = %v", s.VariancePct)
	}
	// 0.25 + 0.75 + 0.25 + 0.25
	if !approx(s.TotalError, 1.5) || !approx(s.AvgError, 0.375) {
		t.Errorf("errors = %v / %v", s.TotalError, s.AvgError)
	}

	gotLengths := make([]int, len(s.Frequencies))
	for i, f := range s.Frequencies {
		gotLengths[i] = f.Length
	}
	// Count desc, ties in first-seen order.
	if !reflect.DeepEqual(gotLengths, []int{150, 350, 450, 250}) {
		t.Errorf("frequency order = %v", gotLengths)
	}
	top := s.Frequencies[0]
	if top.Count != 3 || !reflect.DeepEqual(top.Rooms, []string{"Bath", "Store"}) || top.Multiples != 3 {
		t.Errorf("top row = %+v", top)
	}
	if !approx(top.Share, 37.5) {
		t.Errorf("share = %v", top.Share)
	}
	if len(s.Top(2)) != 2 || len(s.Top(0)) != 4 {
		t.Error("Top() bounds")
	}
}

func TestComputeWithoutModule(t *testing.T) {
	rooms := []room.Room{{Name: "A", RequestedArea: 4, Dimensions: room.Dimensions{Length: 200, Width: 200}}}
	s := Compute(rooms, 0)
	if s.Frequencies[0].Multiples != 0 {
		t.Error("multiples must be zero without a module")
	}
	if s.SharedWalls != 2 {
		t.Errorf("a square room shares its own length: got %d", s.SharedWalls)
	}
}
