package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/engine"
	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/history"
	"github.com/danieljhkim/cleanslate/internal/logging"
	"github.com/danieljhkim/cleanslate/internal/planner"
)

// MergeResponse is the body returned by POST /v1/merge.
type MergeResponse struct {
	Summary    engine.MergeSummary `json:"summary"`
	Message    string              `json:"message"`
	Operations []planner.Operation `json:"operations"`
	Conflicts  []planner.Conflict  `json:"conflicts"`
	Applied    bool                `json:"applied"`
	Dataset    json.RawMessage     `json:"dataset"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMerge merges a posted GeoJSON FeatureCollection and returns the
// edited collection. Existing buildings are treated as hidden by the
// clean-slate filter, exactly as after opening the file. Pass ?dry_run=true
// to get the plan without edits.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithField(r.Context(), "route", "merge")
	log := logging.FromContext(ctx)

	dryRun := false
	if v := r.URL.Query().Get("dry_run"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dry_run value")
			return
		}
		dryRun = parsed
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, engine.ErrNoActiveDataset.Error())
		return
	}

	snapshot, err := dataset.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filterText := s.engine.Settings().FilterText
	model, err := filter.NewModel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var notifier dataset.Notifier
	notifier.Subscribe(filter.NewAutoHide(model, filterText, log))
	notifier.NotifyAdded(snapshot)

	result, err := s.engine.MergeAndFix(ctx, snapshot, filter.NewContext(model, filterText))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrNoActiveDataset) || errors.Is(err, engine.ErrNoActiveFilterContext) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	edited := snapshot
	applied := false
	if result.Batch != nil && !dryRun {
		edited, _, err = history.Apply(snapshot, result.Batch.Operations)
		if err != nil {
			log.Error().Err(err).Msg("failed to apply merge")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		applied = true
	}

	encoded, err := dataset.Encode(edited)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, MergeResponse{
		Summary:    result.Summary,
		Message:    result.Summary.Message(),
		Operations: result.Plan.Operations,
		Conflicts:  result.Plan.Conflicts,
		Applied:    applied,
		Dataset:    encoded,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
