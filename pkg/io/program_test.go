package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gduarte0/program2mass/pkg/room"
)

func TestReadProgram(t *testing.T) {
	in := `name,area_m2
Living Room,20
 Master Bedroom , 16.5
Kitchen,abc
Ghost,0
Negative,-4

,12
Note only,
Storage,2,extra,cols
"Bath, upstairs",5
`
	prog, err := ReadProgram(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadProgram: %v", err)
	}

	want := []room.Request{
		{Name: "Living Room", Area: 20},
		{Name: "Master Bedroom", Area: 16.5},
		{Name: "Storage", Area: 2},
		{Name: "Bath, upstairs", Area: 5},
	}
	if len(prog.Requests) != len(want) {
		t.Fatalf("got %d requests %v, want %d", len(prog.Requests), prog.Requests, len(want))
	}
	for i, w := range want {
		if prog.Requests[i] != w {
			t.Errorf("request %d = %+v, want %+v", i, prog.Requests[i], w)
		}
	}

	if len(prog.Warnings) != 3 {
		t.Fatalf("got %d warnings %v, want 3", len(prog.Warnings), prog.Warnings)
	}
	if prog.Warnings[0].Line != 4 || !strings.Contains(prog.Warnings[0].Message, `invalid area "abc"`) {
		t.Errorf("warning 0 = %+v", prog.Warnings[0])
	}
	if prog.Warnings[1].Line != 5 || prog.Warnings[2].Line != 6 {
		t.Errorf("warning lines = %d, %d; want 5, 6", prog.Warnings[1].Line, prog.Warnings[2].Line)
	}
	if got := prog.Warnings[0].String(); !strings.HasPrefix(got, "row 4: ") {
		t.Errorf("Warning.String() = %q", got)
	}
}

func TestReadProgramHeaderOnly(t *testing.T) {
	prog, err := ReadProgram(strings.NewReader("name,area\n"))
	if err != nil {
		t.Fatalf("ReadProgram: %v", err)
	}
	if prog.Requests == nil || len(prog.Requests) != 0 {
		t.Errorf("Requests = %v, want empty non-nil", prog.Requests)
	}
}

func TestReadProgramRejectsNonFinite(t *testing.T) {
	prog, _ := ReadProgram(strings.NewReader("name,area\nA,NaN\nB,Inf\nC,1e9\n"))
	if len(prog.Requests) != 0 {
		t.Errorf("non-finite areas accepted: %v", prog.Requests)
	}
	if len(prog.Warnings) != 3 {
		t.Errorf("got %d warnings, want 3", len(prog.Warnings))
	}
}

func TestReadProgramMalformedQuote(t *testing.T) {
	prog, err := ReadProgram(strings.NewReader("name,area\nKitchen,12\nBad \"quote,3\n"))
	if err != nil {
		t.Fatalf("malformed row should be a warning, got %v", err)
	}
	if len(prog.Requests) != 1 || prog.Requests[0].Name != "Kitchen" {
		t.Errorf("Requests = %v", prog.Requests)
	}
	if len(prog.Warnings) != 1 {
		t.Errorf("Warnings = %v", prog.Warnings)
	}
}

func TestImportProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.csv")
	reqs := []room.Request{{Name: "Office", Area: 9}, {Name: "Bathroom", Area: 4.5}}

	var buf bytes.Buffer
	if err := WriteProgram(&buf, reqs); err != nil {
		t.Fatalf("WriteProgram: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	prog, err := ImportProgram(path)
	if err != nil {
		t.Fatalf("ImportProgram: %v", err)
	}
	if len(prog.Requests) != 2 || prog.Requests[1] != reqs[1] {
		t.Errorf("Requests = %v", prog.Requests)
	}

	if _, err := ImportProgram(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("missing file should fail")
	}
}
