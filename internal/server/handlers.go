package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gduarte0/program2mass/pkg/buildinfo"
	perrors "github.com/gduarte0/program2mass/pkg/errors"
	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
	"github.com/gduarte0/program2mass/pkg/store"
)

// SolveRequest is the body of POST /v1/solve. Rooms and CSV are
// alternatives; CSV is parsed like a program file.
type SolveRequest struct {
	Rooms   []room.Request   `json:"rooms,omitempty"`
	CSV     string           `json:"csv,omitempty"`
	Options pipeline.Options `json:"options"`
	// Save persists the run and returns its ID.
	Save bool `json:"save,omitempty"`
}

// SolveResponse is returned by POST /v1/solve.
type SolveResponse struct {
	RunID    string           `json:"run_id,omitempty"`
	Result   *pipeline.Result `json:"result"`
	Warnings []string         `json:"warnings,omitempty"`
	// Outputs holds rendered files keyed by format. JSON encodes them as
	// base64.
	Outputs map[string][]byte `json:"outputs,omitempty"`
}

// RunSummary is one entry of GET /v1/runs.
type RunSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Source     string    `json:"source,omitempty"`
	Strategy   string    `json:"strategy"`
	Rooms      int       `json:"rooms"`
	Module     int       `json:"module_cm,omitempty"`
	SharingPct float64   `json:"sharing_pct"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.Defaults.Catalog
	if cat == nil {
		cat = room.DefaultCatalog()
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return
	}

	reqs, warnings, err := requests(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := merge(s.Defaults, req.Options)
	res, err := s.Runner.Execute(r.Context(), reqs, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := SolveResponse{Result: res, Warnings: warnings}
	if len(req.Options.Formats) > 0 {
		if resp.Outputs, err = pipeline.Render(res, opts); err != nil {
			s.writeError(w, perrors.Wrap(perrors.ErrCodeInternal, err, "render outputs"))
			return
		}
	}
	if req.Save {
		run := store.NewRun("api", reqs, res)
		if err := s.Store.Save(r.Context(), run); err != nil {
			s.writeError(w, perrors.Wrap(perrors.ErrCodeStore, err, "save run"))
			return
		}
		resp.RunID = run.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	runs, err := s.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, perrors.Wrap(perrors.ErrCodeStore, err, "list runs"))
		return
	}
	out := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, summarize(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, perrors.New(perrors.ErrCodeNotFound, "run %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, perrors.Wrap(perrors.ErrCodeStore, err, "get run"))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// requests extracts the room list from a solve request.
func requests(req SolveRequest) ([]room.Request, []string, error) {
	var (
		reqs     = req.Rooms
		warnings []string
	)
	switch {
	case len(req.Rooms) > 0 && req.CSV != "":
		return nil, nil, perrors.New(perrors.ErrCodeInvalidInput, "send either rooms or csv, not both")
	case req.CSV != "":
		var err error
		reqs, warnings, err = pipeline.Read(strings.NewReader(req.CSV))
		if err != nil {
			return nil, nil, err
		}
	}
	if len(reqs) > maxRooms {
		return nil, nil, perrors.New(perrors.ErrCodeInvalidInput, "too many rooms (max %d)", maxRooms)
	}
	return reqs, warnings, nil
}

// merge applies the non-zero request options over the server defaults.
// The catalog and logger always come from the server.
func merge(base, o pipeline.Options) pipeline.Options {
	out := base
	if o.Strategy != "" {
		out.Strategy = o.Strategy
	}
	setInt(&out.Unit, o.Unit)
	setInt(&out.MinWall, o.MinWall)
	setInt(&out.Passes, o.Passes)
	setFloat(&out.ToleranceStart, o.ToleranceStart)
	setFloat(&out.ToleranceStep, o.ToleranceStep)
	setInt(&out.TopK, o.TopK)
	setFloat(&out.Threshold, o.Threshold)
	setInt(&out.ClusterTolerance, o.ClusterTolerance)
	if len(o.Bands) > 0 {
		out.Bands = o.Bands
	}
	setInt(&out.DefaultModule, o.DefaultModule)
	setInt(&out.Module, o.Module)
	out.IncludeCirculation = out.IncludeCirculation || o.IncludeCirculation
	setFloat(&out.SmallRoomArea, o.SmallRoomArea)
	out.Refresh = o.Refresh
	out.Formats = o.Formats
	setInt(&out.Spacing, o.Spacing)
	setInt(&out.Height, o.Height)
	return out
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func summarize(run *store.Run) RunSummary {
	sum := RunSummary{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Source:    run.Source,
		Strategy:  run.Strategy(),
	}
	if res := run.Result; res != nil {
		sum.Rooms = len(res.Rooms)
		sum.Module = res.Module
		sum.SharingPct = res.Stats.SharingPct
	}
	return sum
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := perrors.HTTPStatus(err)
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: perrors.UserMessage(err),
		Code:  string(perrors.GetCode(err)),
	})
}
