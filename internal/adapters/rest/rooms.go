package rest

import (
	"errors"
	"net/http"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/services"
)

type roomResponse struct {
	Round      *domain.Round         `json:"round,omitempty"`
	History    []domain.RoundSummary `json:"history"`
	TotalScore int                   `json:"totalScore"`
	Loading    bool                  `json:"loading"`
}

func roomResponseFrom(snap services.Snapshot) roomResponse {
	history := snap.History
	if history == nil {
		history = []domain.RoundSummary{}
	}
	return roomResponse{
		Round:      snap.Round,
		History:    history,
		TotalScore: snap.TotalScore,
		Loading:    snap.Loading,
	}
}

// session resolves the room code path segment; on failure the error response
// has already been written.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	sess, err := h.manager.Session(r.Context(), r.PathValue("code"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidRoomCode) {
			writeError(w, http.StatusBadRequest, "room code must be 5 letters or digits")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return sess, true
}

// GetRoom handles GET /api/rooms/{code}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, roomResponseFrom(sess.Snapshot()))
}
