package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/gduarte0/program2mass/pkg/errors"
	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
)

func sampleRun(t *testing.T, created time.Time) *Run {
	t.Helper()
	reqs := []room.Request{{Name: "Kitchen", Area: 12}, {Name: "Bathroom", Area: 5}}
	res, err := pipeline.Solve(reqs, pipeline.Options{})
	require.NoError(t, err)
	run := NewRun("test.csv", reqs, res)
	run.CreatedAt = created
	return run
}

// exercise runs the shared contract against a backend.
func exercise(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := sampleRun(t, base)
	newer := sampleRun(t, base.Add(time.Hour))
	require.NoError(t, s.Save(ctx, older))
	require.NoError(t, s.Save(ctx, newer))

	got, err := s.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
	assert.True(t, older.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, older.Requests, got.Requests)
	require.NotNil(t, got.Result)
	require.Len(t, got.Result.Rooms, 2)
	assert.Equal(t, older.Result.Rooms[0].Dimensions, got.Result.Rooms[0].Dimensions)
	assert.Equal(t, room.Kitchen, got.Result.Rooms[0].Type)
	assert.Equal(t, "multipass", got.Strategy())

	runs, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(runs), 2)
	assert.Equal(t, newer.ID, runs[0].ID, "newest first")

	runs, err = s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	_, err = s.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	// Saving again replaces the run.
	older.Source = "renamed.csv"
	require.NoError(t, s.Save(ctx, older))
	got, err = s.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed.csv", got.Source)
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	exercise(t, s)
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	defer s.Close()
	exercise(t, s)
}

func TestSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	run := sampleRun(t, time.Now().UTC())
	require.NoError(t, s.Save(ctx, run))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
}

func TestMongo(t *testing.T) {
	uri := os.Getenv("P2M_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("P2M_TEST_MONGO_URI not set")
	}
	s, err := OpenMongo(context.Background(), uri)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.coll.Drop(context.Background()))
	exercise(t, s)
}

func TestSavePreparesRun(t *testing.T) {
	s := NewMemory()
	run := &Run{}
	require.NoError(t, s.Save(context.Background(), run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	err := s.Save(context.Background(), &Run{ID: "not-a-uuid"})
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput))

	err = s.Save(context.Background(), nil)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "")
	require.NoError(t, err)
	exercise(t, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = Open(ctx, "sqlite://../escape.db")
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidPath))
}
