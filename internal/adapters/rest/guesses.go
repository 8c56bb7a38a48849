package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/services"
)

const errCodeInvalidGuess = "INVALID_GUESS"

// guessRequest defines what the client sends us. Artist and title are the
// displayed forms the player picked; useAlternate says which display language
// they were picked from. Skip consumes an attempt without naming anything.
type guessRequest struct {
	Artist       string `json:"artist"`
	Title        string `json:"title"`
	UseAlternate bool   `json:"useAlternate"`
	Skip         bool   `json:"skip"`
}

// SubmitGuess handles POST /api/rooms/{code}/guesses
func (h *Handler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	guess, err := h.resolveGuess(sess, req)
	if err != nil {
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeInvalidGuess)
		return
	}

	round, err := sess.SubmitGuess(guess)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidGuess):
			writeErrorWithCode(w, http.StatusUnprocessableEntity, "guess is not in the round's vocabulary", errCodeInvalidGuess)
		case errors.Is(err, services.ErrNoActiveRound):
			writeError(w, http.StatusConflict, "no round has been started")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, round)
}

// resolveGuess maps displayed forms back to vocabulary entries. The lookup is
// exact: free-typed text that matches no dropdown entry is an invalid guess.
func (h *Handler) resolveGuess(sess *services.Session, req guessRequest) (domain.Guess, error) {
	if req.Skip {
		return domain.SkipGuess(), nil
	}

	snap := sess.Snapshot()
	if snap.Round == nil {
		// Let the session report ErrNoActiveRound consistently.
		return domain.SkipGuess(), nil
	}

	artist, ok := snap.Round.Vocabulary.LookupArtist(req.Artist, req.UseAlternate)
	if !ok {
		return domain.Guess{}, errors.New("unknown artist: " + req.Artist)
	}
	title, ok := snap.Round.Vocabulary.LookupTitle(req.Title, req.UseAlternate)
	if !ok {
		return domain.Guess{}, errors.New("unknown title: " + req.Title)
	}
	return domain.Guess{Artist: artist, Title: title}, nil
}
