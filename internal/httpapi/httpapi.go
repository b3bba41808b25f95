// Package httpapi exposes the pyjs compiler over HTTP: a single
// translate endpoint plus the static page that stands in for the
// out-of-scope desktop GUI collaborator.
package httpapi

import (
	"embed"
	"encoding/json"
	"net/http"

	"github.com/corvidlang/pyjs/internal/compiler"
)

//go:embed static
var staticFiles embed.FS

// translateRequest is the POST /translate request body.
type translateRequest struct {
	Code string `json:"code"`
}

// translateResponse is the POST /translate success or failure body.
type translateResponse struct {
	Success    bool   `json:"success,omitempty"`
	JavaScript string `json:"javascript,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewMux builds the HTTP surface: the static GUI page at "/" and the
// translate endpoint at "/translate", wrapped with security headers.
func NewMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/translate", handleTranslate)
	mux.Handle("/", http.FileServer(http.FS(staticFiles)))
	return secureHeaders(mux)
}

func handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, translateResponse{Error: "invalid request body"})
		return
	}

	javascript, err := compiler.Compile(req.Code)
	if err != nil {
		writeJSON(w, http.StatusOK, translateResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{Success: true, JavaScript: javascript})
}

func writeJSON(w http.ResponseWriter, status int, body translateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// secureHeaders injects baseline security response headers before
// delegating to the wrapped handler.
func secureHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		handler.ServeHTTP(w, r)
	})
}
