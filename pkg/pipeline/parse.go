package pipeline

import (
	"errors"
	"io"
	"io/fs"

	perrors "github.com/gduarte0/program2mass/pkg/errors"
	pkgio "github.com/gduarte0/program2mass/pkg/io"
	"github.com/gduarte0/program2mass/pkg/room"
)

// Load reads a CSV room program from path. Skipped rows come back as
// warning strings.
func Load(path string) ([]room.Request, []string, error) {
	prog, err := pkgio.ImportProgram(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "program not found: %s", path)
	}
	if err != nil {
		return nil, nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read program")
	}
	return prog.Requests, warnings(prog), nil
}

// Read parses a CSV room program from r.
func Read(r io.Reader) ([]room.Request, []string, error) {
	prog, err := pkgio.ReadProgram(r)
	if err != nil {
		return nil, nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read program")
	}
	return prog.Requests, warnings(prog), nil
}

func warnings(p pkgio.Program) []string {
	if len(p.Warnings) == 0 {
		return nil
	}
	out := make([]string, len(p.Warnings))
	for i, w := range p.Warnings {
		out[i] = w.String()
	}
	return out
}
