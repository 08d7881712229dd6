// Package store persists solved programs as runs.
//
// A [Run] records the request list and the pipeline result of one solve so
// it can be listed and fetched again later. Three backends implement
// [Store]:
//
//   - [Memory]: process-local, used by tests and `serve` without a store
//   - [SQLite]: a single local database file (the CLI default)
//   - [Mongo]: a shared MongoDB collection for deployed servers
//
// [Open] picks a backend from a URI:
//
//	memory:
//	sqlite:///home/me/.local/share/program2mass/runs.db
//	mongodb://localhost:27017/program2mass
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	perrors "github.com/gduarte0/program2mass/pkg/errors"
	"github.com/gduarte0/program2mass/pkg/observability"
	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
)

// ErrNotFound is returned by Get when no run has the given ID.
var ErrNotFound = errors.New("store: run not found")

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Run is one persisted solve.
type Run struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Source    string           `json:"source,omitempty"`
	Requests  []room.Request   `json:"requests"`
	Result    *pipeline.Result `json:"result"`
}

// NewRun builds a run with a fresh ID.
func NewRun(source string, reqs []room.Request, res *pipeline.Result) *Run {
	return &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Requests:  reqs,
		Result:    res,
	}
}

// Strategy returns the strategy of the stored result.
func (r *Run) Strategy() string {
	if r.Result == nil {
		return ""
	}
	return r.Result.Strategy
}

// Store persists runs. Implementations are safe for concurrent use.
type Store interface {
	// Save stores run, assigning an ID and creation time when missing.
	Save(ctx context.Context, run *Run) error
	// Get returns the run with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)
	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]*Run, error)
	Close() error
}

// Open connects to the store described by uri. An empty uri opens an
// in-memory store.
func Open(ctx context.Context, uri string) (Store, error) {
	var (
		s       Store
		backend string
		err     error
	)
	switch {
	case uri == "" || uri == "memory:":
		s, backend = NewMemory(), "memory"
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		s, err = OpenMongo(ctx, uri)
		backend = "mongo"
	default:
		path := strings.TrimPrefix(uri, "sqlite://")
		if err := perrors.ValidatePath(path); err != nil {
			return nil, err
		}
		s, err = OpenSQLite(path)
		backend = "sqlite"
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeStore, err, "open %s store", backend)
	}
	return &instrumented{Store: s, backend: backend}, nil
}

// prepare fills the ID and creation time of a run about to be saved.
func prepare(run *Run) error {
	if run == nil {
		return perrors.New(perrors.ErrCodeInvalidInput, "nil run")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid run id %q", run.ID)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	return nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// instrumented reports store calls to the observability hooks.
type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Save(ctx context.Context, run *Run) error {
	start := time.Now()
	err := s.Store.Save(ctx, run)
	id := ""
	if run != nil {
		id = run.ID
	}
	observability.Store().OnSave(ctx, s.backend, id, time.Since(start), err)
	return err
}

func (s *instrumented) Get(ctx context.Context, id string) (*Run, error) {
	start := time.Now()
	run, err := s.Store.Get(ctx, id)
	observability.Store().OnLoad(ctx, s.backend, id, time.Since(start), err)
	return run, err
}
