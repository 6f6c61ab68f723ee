package server

import "net/http"

// NewRouter wires HTTP routes to the server's handlers.
func NewRouter(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/decode", s.handleDecode)
	mux.HandleFunc("/summary", s.handleSummary)
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/fields", s.handleFields)
	mux.HandleFunc("/artifacts", s.handleArtifacts)
	mux.HandleFunc("/artifacts/", s.handleArtifactDownload)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}
