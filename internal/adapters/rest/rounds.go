package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vekt0r-github/osu-heardle/internal/core/ports"
	"github.com/vekt0r-github/osu-heardle/internal/core/services"
)

const (
	errCodeRoundInProgress     = "ROUND_IN_PROGRESS"
	errCodeSelectionInFlight   = "SELECTION_IN_FLIGHT"
	errCodeSelectionSuperseded = "SELECTION_SUPERSEDED"
	errCodeNoCandidate         = "NO_ELIGIBLE_CANDIDATE"
)

// startRoundRequest defines what the client sends us. The body is optional;
// force abandons a pending or undecided round.
type startRoundRequest struct {
	Force bool `json:"force"`
}

// StartRound handles POST /api/rooms/{code}/rounds
func (h *Handler) StartRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req startRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	start := sess.StartRound
	if req.Force {
		start = sess.ForceStartRound
	}

	round, err := start(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoundInProgress):
			writeErrorWithCode(w, http.StatusConflict, "current round is still in progress", errCodeRoundInProgress)
		case errors.Is(err, services.ErrSelectionInFlight):
			writeErrorWithCode(w, http.StatusConflict, "a round is already being selected", errCodeSelectionInFlight)
		case errors.Is(err, services.ErrStaleSelection):
			writeErrorWithCode(w, http.StatusConflict, "selection superseded by a newer round", errCodeSelectionSuperseded)
		case errors.Is(err, ports.ErrNoEligibleCandidate):
			writeErrorWithCode(w, http.StatusServiceUnavailable, err.Error(), errCodeNoCandidate)
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, round)
}

type replayRequest struct {
	SongID int `json:"songId"`
}

// Replay handles POST /api/rooms/{code}/replays
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req replayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SongID <= 0 {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}

	round, err := sess.Replay(req.SongID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownRound):
			writeError(w, http.StatusNotFound, "song not in room history")
		case errors.Is(err, services.ErrRoundInProgress):
			writeErrorWithCode(w, http.StatusConflict, "current round is still in progress", errCodeRoundInProgress)
		case errors.Is(err, services.ErrSelectionInFlight):
			writeErrorWithCode(w, http.StatusConflict, "a round is already being selected", errCodeSelectionInFlight)
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, round)
}
