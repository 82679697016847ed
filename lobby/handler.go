package lobby

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers the lobby endpoints:
//
//	GET  /lobby?id=<lobbyID>          -> {"players": [...]}
//	POST /join {"lobbyId": ..., "player": {...}}
//
// There is no authentication; a lobby id is its only secret.
func Routes(r *mux.Router, s *Store) {
	r.HandleFunc("/lobby", getLobby(s)).Methods(http.MethodGet)
	r.HandleFunc("/join", postJoin(s)).Methods(http.MethodPost)
}

func getLobby(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "id query parameter is required")
			return
		}
		roster, err := s.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, roster)
	}
}

type joinRequest struct {
	LobbyID string `json:"lobbyId"`
	Player  Player `json:"player"`
}

func postJoin(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed join request: "+err.Error())
			return
		}
		if req.LobbyID == "" {
			writeError(w, http.StatusBadRequest, "lobbyId is required")
			return
		}
		roster, err := s.Join(r.Context(), req.LobbyID, req.Player)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, roster)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
