package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gduarte0/program2mass/pkg/room"
)

// Warning describes a skipped CSV row. Line is 1-based and counts the
// header.
type Warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d: %s", w.Line, w.Message)
}

// Program is a parsed room program.
type Program struct {
	Requests []room.Request `json:"requests"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// ReadProgram parses a CSV room program from r. The first row is always
// treated as a header. ReadProgram does not close r.
func ReadProgram(r io.Reader) (Program, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	prog := Program{Requests: []room.Request{}}
	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				prog.Warnings = append(prog.Warnings, Warning{Line: perr.Line, Message: perr.Err.Error()})
				header = false
				continue
			}
			return prog, fmt.Errorf("read csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 2 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		raw := strings.TrimSpace(rec[1])
		if name == "" || raw == "" {
			continue
		}

		area, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			prog.Warnings = append(prog.Warnings, Warning{Line: line, Message: fmt.Sprintf("invalid area %q", raw)})
			continue
		}
		if !(area > 0) || area > maxArea {
			prog.Warnings = append(prog.Warnings, Warning{Line: line, Message: fmt.Sprintf("area %s out of range for %q", raw, name)})
			continue
		}
		prog.Requests = append(prog.Requests, room.Request{Name: name, Area: area})
	}
	return prog, nil
}

// maxArea bounds a single request in square metres.
const maxArea = 1e6

// ImportProgram reads a CSV room program from path.
func ImportProgram(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Program{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadProgram(f)
}

// WriteProgram writes requests as CSV with a name,area_m2 header.
func WriteProgram(w io.Writer, reqs []room.Request) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "area_m2"}); err != nil {
		return err
	}
	for _, r := range reqs {
		if err := cw.Write([]string{r.Name, strconv.FormatFloat(r.Area, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
