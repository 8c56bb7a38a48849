package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/services"
)

// --- Mocks ---

// The handler is exercised with a real Manager over a mock catalog, the same
// wiring main uses minus the network.

type mockCatalog struct {
	records []domain.CatalogRecord
	err     error
}

func (m *mockCatalog) FetchCandidatePool(ctx context.Context, seed string) ([]domain.CatalogRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func testRecords() []domain.CatalogRecord {
	return []domain.CatalogRecord{
		{ID: 1, Artist: domain.Bilingual("Artist One", ""), Title: domain.Bilingual("Title One", ""), PopularityWeight: 10, Eligible: true},
		{ID: 2, Artist: domain.Bilingual("Artist Two", ""), Title: domain.Bilingual("Title Two", ""), PopularityWeight: 10, Eligible: true},
	}
}

func newTestHandler(catalog *mockCatalog) *Handler {
	selector := services.NewSelector(catalog, services.SelectorConfig{})
	return NewHandler(services.NewManager(selector, nil, nil))
}

func doJSON(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeRound(t *testing.T, rec *httptest.ResponseRecorder) domain.Round {
	t.Helper()
	var round domain.Round
	if err := json.NewDecoder(rec.Body).Decode(&round); err != nil {
		t.Fatalf("decode round: %v", err)
	}
	return round
}

// --- Tests ---

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestStartRound(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	round := decodeRound(t, rec)
	if round.Status != domain.StatusActive {
		t.Fatalf("round status %s", round.Status)
	}
	if len(round.Vocabulary.Artists) == 0 {
		t.Fatal("round is missing its guess vocabulary")
	}

	// Starting again with the round undecided conflicts.
	rec = doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second start: status %d, want 409", rec.Code)
	}

	// Unless forced.
	rec = doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", startRoundRequest{Force: true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("forced start: status %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestStartRoundInvalidRoomCode(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	for _, code := range []string{"abc", "abcdef", "ab!de"} {
		rec := doJSON(t, h, http.MethodPost, "/api/rooms/"+code+"/rounds", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code %q: status %d, want 400", code, rec.Code)
		}
	}
}

func TestStartRoundNoCandidates(t *testing.T) {
	h := newTestHandler(&mockCatalog{err: fmt.Errorf("osu adapter: status 500")})

	rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != errCodeNoCandidate {
		t.Fatalf("error code %q, want %q", resp.Code, errCodeNoCandidate)
	}
}

func TestSubmitGuessFlow(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: status %d", rec.Code)
	}
	round := decodeRound(t, rec)

	// A correct guess wins the round.
	rec = doJSON(t, h, http.MethodPost, "/api/rooms/abcde/guesses", guessRequest{
		Artist: round.Song.Artist.Original,
		Title:  round.Song.Title.Original,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("guess: status %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeRound(t, rec); got.Status != domain.StatusWon {
		t.Fatalf("round status %s, want won", got.Status)
	}

	// The win shows up in the room snapshot.
	rec = doJSON(t, h, http.MethodGet, "/api/rooms/abcde", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot: status %d", rec.Code)
	}
	var room roomResponse
	if err := json.NewDecoder(rec.Body).Decode(&room); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if len(room.History) != 1 || room.TotalScore != 15 {
		t.Fatalf("room = %+v, want one win worth 15", room)
	}
}

func TestSubmitGuessValidation(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	// Guess with no round started.
	rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/guesses", guessRequest{Skip: true})
	if rec.Code != http.StatusConflict {
		t.Fatalf("no round: status %d, want 409", rec.Code)
	}

	if rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", nil); rec.Code != http.StatusCreated {
		t.Fatalf("start: status %d", rec.Code)
	}

	// Free-typed text outside the vocabulary is rejected without consuming
	// an attempt.
	rec = doJSON(t, h, http.MethodPost, "/api/rooms/abcde/guesses", guessRequest{
		Artist: "not a real artist",
		Title:  "not a real title",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid guess: status %d, want 422", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/rooms/abcde", nil)
	var room roomResponse
	if err := json.NewDecoder(rec.Body).Decode(&room); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if len(room.Round.Guesses) != 0 {
		t.Fatal("invalid guess consumed an attempt")
	}

	// Missing content type.
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/abcde/guesses", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("missing content type: status %d, want 415", w.Code)
	}
}

func TestSkipGuess(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	if rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", nil); rec.Code != http.StatusCreated {
		t.Fatalf("start: status %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/guesses", guessRequest{Skip: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("skip: status %d: %s", rec.Code, rec.Body.String())
	}
	round := decodeRound(t, rec)
	if len(round.Guesses) != 1 || !round.Guesses[0].IsSkip() {
		t.Fatalf("skip not recorded: %+v", round.Guesses)
	}
	if round.Status != domain.StatusActive {
		t.Fatalf("skip finished the round: %s", round.Status)
	}
}

func TestReplay(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	rec := doJSON(t, h, http.MethodPost, "/api/rooms/abcde/rounds", nil)
	round := decodeRound(t, rec)
	rec = doJSON(t, h, http.MethodPost, "/api/rooms/abcde/guesses", guessRequest{
		Artist: round.Song.Artist.Original,
		Title:  round.Song.Title.Original,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("guess: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/rooms/abcde/replays", replayRequest{SongID: round.Song.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("replay: status %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeRound(t, rec); got.Song.ID != round.Song.ID || got.Status != domain.StatusActive {
		t.Fatalf("replay round = %+v", got)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/rooms/abcde/replays", replayRequest{SongID: 9999})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown replay: status %d, want 404", rec.Code)
	}
}

func TestGetRoomQR(t *testing.T) {
	h := newTestHandler(&mockCatalog{records: testRecords()})

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/abcde/qr", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q, want image/png", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("empty png body")
	}
}
