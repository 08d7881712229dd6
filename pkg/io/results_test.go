package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gduarte0/program2mass/pkg/optimize"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/stats"
)

func solved() []room.Room {
	return []room.Room{
		{Name: "Kitchen", RequestedArea: 12, Type: room.Kitchen, Dimensions: room.Dimensions{Length: 250, Width: 500}, Optimized: true},
		{Name: "Bathroom", RequestedArea: 5, Type: room.Bathroom, Dimensions: room.Dimensions{Length: 250, Width: 200}},
	}
}

func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := ExportResults(solved(), path); err != nil {
		t.Fatalf("ExportResults: %v", err)
	}
	rooms, err := ImportResults(path)
	if err != nil {
		t.Fatalf("ImportResults: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms", len(rooms))
	}
	if rooms[0] != solved()[0] {
		t.Errorf("room 0 = %+v", rooms[0])
	}
}

func TestWriteResultsFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, solved()[:1]); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	for _, want := range []string{`"name": "Kitchen"`, `"room_type": "kitchen"`, `"length_cm": 250`, `"actual_area_m2": 12.5`} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %s:\n%s", want, s)
		}
	}

	buf.Reset()
	WriteResults(&buf, nil)
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("nil rooms should encode as [], got %s", buf.String())
	}
}

func TestReadResultsInvalidType(t *testing.T) {
	_, err := ReadResults(strings.NewReader(`[{"name":"X","room_type":"garage"}]`))
	if err == nil {
		t.Error("unknown room type should fail")
	}
}

func TestWriteLog(t *testing.T) {
	rooms := solved()
	var buf bytes.Buffer
	err := WriteLog(&buf, Summary{
		Strategy: "module",
		Module:   50,
		Rooms:    rooms,
		Stats:    stats.Compute(rooms, 50),
		Improvements: []optimize.Improvement{
			{Pass: 1, Room: "Kitchen", Old: room.Dimensions{Length: 450, Width: 250}, New: room.Dimensions{Length: 250, Width: 500}, Value: 2},
		},
		Warnings: []string{"room \"Closet\" is very small (1.5 m2)"},
	})
	if err != nil {
		t.Fatalf("WriteLog: %v", err)
	}

	s := buf.String()
	for _, want := range []string{
		"OPTIMIZATION SUMMARY",
		"Module: 50cm (0.50m)",
		"Total rooms: 2",
		"Requested area: 17.00m2",
		"Actual area: 17.50m2",
		"Variance: +2.94%",
		"All walls are multiples of 50cm",
		"Universal connectivity: 100%",
		"Kitchen",
		"Bathroom",
		"[1] Kitchen: 450x250 -> 250x500",
		"very small",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("log missing %q:\n%s", want, s)
		}
	}
}

func TestWriteLogFallback(t *testing.T) {
	var buf bytes.Buffer
	WriteLog(&buf, Summary{Module: 150, Fallback: true})
	s := buf.String()
	if !strings.Contains(s, "[fallback]") {
		t.Errorf("fallback not reported:\n%s", s)
	}
	if strings.Contains(s, "Universal connectivity") {
		t.Error("fallback module must not claim universal connectivity")
	}
}
