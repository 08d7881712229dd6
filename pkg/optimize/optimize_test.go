package optimize

import (
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/gduarte0/program2mass/pkg/dimension"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/score"
)

type req struct {
	name string
	area float64
}

// solved classifies and solves requests the way the pipeline does.
func solved(reqs ...req) []room.Room {
	c := room.DefaultCatalog()
	s := dimension.New(c)
	out := make([]room.Room, len(reqs))
	for i, r := range reqs {
		t := c.Classify(r.name)
		out[i] = room.Room{Name: r.name, RequestedArea: r.area, Type: t, Dimensions: s.Solve(r.area, t)}
	}
	return out
}

func dims(l, w int) room.Dimensions { return room.Dimensions{Length: l, Width: w} }

var smallProgram = []req{{"Master Bedroom", 16}, {"Kitchen", 12}, {"Bathroom", 5}}

var houseProgram = []req{
	{"Living Room", 20},
	{"Kitchen", 12},
	{"Master Bedroom", 16},
	{"Bedroom 2", 12},
	{"Bathroom", 5},
	{"Office", 9},
	{"Laundry", 4},
}

func TestMultiPassSmallProgram(t *testing.T) {
	rooms := solved(smallProgram...)
	mp := NewMultiPass(dimension.New(nil), score.New(nil))

	var reports []PassReport
	mp.Progress = func(r PassReport) { reports = append(reports, r) }
	res := mp.Run(rooms)

	if !res.Converged {
		t.Error("expected convergence")
	}
	if len(res.Passes) != 3 || len(reports) != 3 {
		t.Fatalf("passes = %d, reports = %d, want 3", len(res.Passes), len(reports))
	}
	wantChanged := []int{1, 1, 0}
	for i, p := range res.Passes {
		if p.Changed != wantChanged[i] {
			t.Errorf("pass %d changed = %d, want %d", p.Pass, p.Changed, wantChanged[i])
		}
	}
	if got := res.Passes[0].Targets; !reflect.DeepEqual(got, []int{250, 450, 350}) {
		t.Errorf("pass 1 targets = %v", got)
	}

	want := []Improvement{
		{Pass: 1, Room: "Bathroom", Index: 2, Old: dims(250, 200), New: dims(150, 350), Value: 115, Connections: 1},
		{Pass: 2, Room: "Master Bedroom", Index: 0, Old: dims(450, 350), New: dims(350, 450), Value: 115, Connections: 2},
	}
	if !reflect.DeepEqual(res.Improvements, want) {
		t.Errorf("improvements = %+v\nwant %+v", res.Improvements, want)
	}

	final := []room.Dimensions{dims(350, 450), dims(450, 250), dims(150, 350)}
	for i, r := range rooms {
		if r.Dimensions != final[i] {
			t.Errorf("%s = %v, want %v", r.Name, r.Dimensions, final[i])
		}
	}
	if rooms[1].Optimized || !rooms[0].Optimized || !rooms[2].Optimized {
		t.Error("optimized flags do not match the applied changes")
	}
}

func TestMultiPassAreaWithinFirstPassTolerance(t *testing.T) {
	rooms := solved(smallProgram...)
	NewMultiPass(nil, nil).Run(rooms)
	want := []room.Type{room.Bedroom, room.Kitchen, room.Bathroom}
	c := room.DefaultCatalog()
	for i, r := range rooms {
		if r.Type != want[i] {
			t.Errorf("%s type = %s, want %s", r.Name, r.Type, want[i])
		}
		if !c.Aspect(r.Type).Contains(r.Dimensions.Aspect()) {
			t.Errorf("%s aspect %.2f out of bounds", r.Name, r.Dimensions.Aspect())
		}
		if frac := r.AreaError() / r.RequestedArea; frac > DefaultToleranceStart {
			t.Errorf("%s area error %.3f above 7%%", r.Name, frac)
		}
	}
}

func TestMultiPassHouse(t *testing.T) {
	rooms := solved(houseProgram...)
	res := NewMultiPass(nil, nil).Run(rooms)

	if res.Converged {
		t.Error("house program should use all three passes")
	}
	changed := make([]int, len(res.Passes))
	for i, p := range res.Passes {
		changed[i] = p.Changed
	}
	if !reflect.DeepEqual(changed, []int{6, 3, 1}) {
		t.Errorf("changes per pass = %v, want [6 3 1]", changed)
	}

	// Mid-pass updates are visible to later rooms: the master bedroom's
	// square candidate also matches the kitchen's 300x400, applied earlier
	// in pass 1.
	first := res.Improvements[1]
	if first.Room != "Master Bedroom" || first.New != dims(400, 400) || first.Connections != 6 {
		t.Errorf("second improvement = %+v", first)
	}

	final := []room.Dimensions{
		dims(400, 500), dims(500, 250), dims(400, 400), dims(400, 300),
		dims(200, 250), dims(300, 300), dims(200, 200),
	}
	for i, r := range rooms {
		if r.Dimensions != final[i] {
			t.Errorf("%s = %v, want %v", r.Name, r.Dimensions, final[i])
		}
		if !r.Optimized {
			t.Errorf("%s not marked optimized", r.Name)
		}
	}
}

func TestMultiPassIdempotentAtFixpoint(t *testing.T) {
	for _, program := range [][]req{smallProgram, houseProgram} {
		rooms := solved(program...)
		mp := NewMultiPass(nil, nil)
		res := mp.Run(rooms)
		last := res.Passes[len(res.Passes)-1]

		before := slices.Clone(rooms)
		report, imps := mp.Pass(rooms, last.Pass+1, last.Tolerance)
		if res.Converged && (report.Changed != 0 || len(imps) != 0) {
			t.Errorf("extra pass after convergence changed %d rooms", report.Changed)
		}
		if res.Converged && !reflect.DeepEqual(before, rooms) {
			t.Error("extra pass mutated rooms")
		}
	}
}

func TestMultiPassDeterministic(t *testing.T) {
	a := solved(houseProgram...)
	b := solved(houseProgram...)
	ra := NewMultiPass(nil, nil).Run(a)
	rb := NewMultiPass(nil, nil).Run(b)
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(ra, rb) {
		t.Error("same input order produced different output")
	}
}

func TestMultiPassThreshold(t *testing.T) {
	rooms := solved(smallProgram...)
	mp := NewMultiPass(nil, nil)
	mp.Threshold = 1000
	res := mp.Run(rooms)
	if len(res.Improvements) != 0 || !res.Converged || len(res.Passes) != 1 {
		t.Errorf("threshold not enforced: %+v", res)
	}
}

func TestTolerance(t *testing.T) {
	mp := NewMultiPass(nil, nil)
	for p, want := range map[int]float64{1: 0.07, 2: 0.06, 3: 0.05, 8: 0, 20: 0} {
		if got := mp.Tolerance(p); math.Abs(got-want) > 1e-12 {
			t.Errorf("Tolerance(%d) = %v, want %v", p, got, want)
		}
	}
}

func TestMultiPassEmpty(t *testing.T) {
	res := NewMultiPass(nil, nil).Run(nil)
	if !res.Converged || len(res.Improvements) != 0 {
		t.Errorf("empty run = %+v", res)
	}
}

func TestModuleCandidates(t *testing.T) {
	ms := NewModuleSearch(nil)
	want := []int{120, 130, 140, 150, 160, 170, 180, 190, 200, 225, 250, 275, 300, 350, 400, 450, 500}
	if got := ms.Candidates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v", got)
	}

	ms.Bands = []Band{{100, 200, 50}, {150, 250, 50}, {0, 10, 0}}
	if got := ms.Candidates(); !reflect.DeepEqual(got, []int{100, 150, 200, 250}) {
		t.Errorf("overlapping bands = %v", got)
	}
}

func TestModuleSearchFind(t *testing.T) {
	rooms := solved(req{"Living", 20}, req{"Bedroom", 14})
	ms := NewModuleSearch(nil)

	evaluated := 0
	ms.Progress = func(Candidate) { evaluated++ }
	res := ms.Find(rooms)

	if res.Fallback {
		t.Fatal("unexpected fallback")
	}
	if res.Module != 150 {
		t.Errorf("Module = %d, want 150", res.Module)
	}
	if res.Best == nil || res.Best.TotalError != 0.75 || res.Best.SuccessRate != 1 {
		t.Errorf("Best = %+v", res.Best)
	}
	if res.Evaluated != 17 || evaluated != 17 {
		t.Errorf("evaluated %d / %d candidates, want 17", res.Evaluated, evaluated)
	}
	if res.Viable != 13 {
		t.Errorf("Viable = %d, want 13", res.Viable)
	}
	gotTop := make([]int, len(res.Top))
	for i, c := range res.Top {
		gotTop[i] = c.Module
	}
	if !reflect.DeepEqual(gotTop, []int{150, 130, 180, 190, 120}) {
		t.Errorf("top modules = %v", gotTop)
	}

	// Determinism.
	if again := ms.Find(rooms); again.Module != res.Module {
		t.Errorf("second run selected %d", again.Module)
	}
}

func TestModuleSearchNeverWorseThanViable(t *testing.T) {
	rooms := solved(houseProgram...)
	ms := NewModuleSearch(nil)
	res := ms.Find(rooms)
	if res.Best == nil {
		t.Fatal("house program should have a viable module")
	}
	for _, m := range ms.Candidates() {
		c := ms.Evaluate(rooms, m)
		if c.Viable() && c.TotalError < res.Best.TotalError {
			t.Errorf("module %d has lower error %.3f than selected %d (%.3f)",
				m, c.TotalError, res.Module, res.Best.TotalError)
		}
	}
}

func impossibleCatalog(t *testing.T) *room.Catalog {
	t.Helper()
	c, err := room.NewCatalog(map[room.Type]room.Profile{
		room.Office: {
			Keywords: []string{"office"},
			Ratios:   []room.Ratio{{4, 1}},
			Aspect:   room.Bounds{Min: 0.1, Max: 0.2},
			Category: room.Private,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestModuleSearchFallback(t *testing.T) {
	c := impossibleCatalog(t)
	s := dimension.New(c)
	rooms := []room.Room{
		{Name: "Living", RequestedArea: 20, Type: room.Living},
		{Name: "Office", RequestedArea: 9, Type: room.Office},
	}
	ms := NewModuleSearch(s)
	res := ms.Find(rooms)
	if !res.Fallback || res.Module != DefaultModule || res.Best != nil || res.Viable != 0 {
		t.Errorf("fallback result = %+v", res)
	}

	c150 := ms.Evaluate(rooms, 150)
	if c150.SuccessRate != 0.5 || !reflect.DeepEqual(c150.Failed, []string{"Office"}) {
		t.Errorf("Evaluate = %+v", c150)
	}

	out, failures := ms.Apply(rooms, res.Module)
	if len(out) != 1 || out[0].Name != "Living" {
		t.Errorf("Apply kept %+v", out)
	}
	if len(failures) != 1 || failures[0].Room != "Office" || failures[0].Index != 1 {
		t.Errorf("failures = %+v", failures)
	}
}

func TestModuleSearchApply(t *testing.T) {
	rooms := solved(req{"Living", 20}, req{"Bedroom", 14})
	out, failures := NewModuleSearch(nil).Apply(rooms, 150)
	if len(failures) != 0 {
		t.Fatalf("failures = %+v", failures)
	}
	want := []room.Dimensions{dims(450, 450), dims(450, 300)}
	for i, r := range out {
		if r.Dimensions != want[i] || r.Module != 150 {
			t.Errorf("%s = %v on %d", r.Name, r.Dimensions, r.Module)
		}
		if r.Dimensions.Length%150 != 0 || r.Dimensions.Width%150 != 0 {
			t.Errorf("%s not on module", r.Name)
		}
	}
	// Living moved from 500x400, Bedroom kept 450x300.
	if !out[0].Optimized || out[1].Optimized {
		t.Errorf("optimized flags = %v, %v", out[0].Optimized, out[1].Optimized)
	}
	// Input left untouched.
	if rooms[0].Dimensions != dims(500, 400) || rooms[0].Module != 0 {
		t.Error("Apply mutated its input")
	}
}

func TestFrequencies(t *testing.T) {
	rooms := solved(smallProgram...)
	got := Frequencies(rooms)
	want := []Frequency{{450, 2}, {250, 2}, {350, 1}, {200, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies = %v, want %v", got, want)
	}
}

func TestCommonDimensions(t *testing.T) {
	rooms := solved(smallProgram...)
	imps := NewCommonDimensions(dimension.New(nil)).Run(rooms)
	want := []Improvement{{Pass: 1, Room: "Kitchen", Index: 1, Old: dims(450, 250), New: dims(250, 500), Value: 2, Connections: 2}}
	if !reflect.DeepEqual(imps, want) {
		t.Errorf("improvements = %+v", imps)
	}
	if !rooms[1].Optimized || rooms[0].Optimized || rooms[2].Optimized {
		t.Error("optimized flags wrong")
	}

	house := solved(houseProgram...)
	imps = NewCommonDimensions(nil).Run(house)
	names := make([]string, len(imps))
	for i, imp := range imps {
		names[i] = imp.Room
	}
	if !reflect.DeepEqual(names, []string{"Living Room", "Kitchen", "Master Bedroom", "Bedroom 2", "Office"}) {
		t.Errorf("changed rooms = %v", names)
	}
}
