package quote

import (
	"encoding/json"
	"net/http"
)

// Handler exposes the proxy endpoint:
//
//	GET /api/alpha-vantage?function=GLOBAL_QUOTE&symbol=IBM
//
// answering with the (possibly cached) upstream JSON, or a 500 with an
// error body when nothing can be served.
func Handler(c *Client) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		function := r.URL.Query().Get("function")
		symbol := r.URL.Query().Get("symbol")
		if function == "" || symbol == "" {
			writeError(w, http.StatusBadRequest, "function and symbol query parameters are required")
			return
		}
		payload, err := c.Fetch(r.Context(), function, symbol)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
