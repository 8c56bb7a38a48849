package rest

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/vekt0r-github/osu-heardle/internal/core/services"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	manager *services.Manager // Dependency on the Core Service
	router  *http.ServeMux    // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(manager *services.Manager) *Handler {
	h := &Handler{
		manager: manager,
		router:  http.NewServeMux(),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Room State
	h.router.HandleFunc("GET /api/rooms/{code}", h.GetRoom)
	h.router.HandleFunc("GET /api/rooms/{code}/qr", h.GetRoomQR)
	// Gameplay
	h.router.HandleFunc("POST /api/rooms/{code}/rounds", h.StartRound)
	h.router.HandleFunc("POST /api/rooms/{code}/guesses", h.SubmitGuess)
	h.router.HandleFunc("POST /api/rooms/{code}/replays", h.Replay)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "osu!heardle is live 🎵"})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
