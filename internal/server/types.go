// Package server exposes the Decoder and Heuristic Binner/Corrector
// over HTTP, plus a websocket endpoint for interactive annotation
// (spec §9.4), adapted from the teacher's NewServer/SetupRoutes
// pattern.
package server

import (
	"net/http"
	"time"

	"github.com/correctocr/correctocr/internal/decode"
	"github.com/correctocr/correctocr/internal/heuristics"
)

// Server holds HTTP server state and the decode/correct dependencies.
type Server struct {
	decoder     *decode.Decoder
	corrector   *heuristics.Corrector
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// Config holds server configuration (spec §9.4).
type Config struct {
	Host            string
	Port            int
	CORSOrigin      string
	MaxUploadMB     int64
	TimeoutSec      int
	ShutdownTimeout int
	RateLimiter     *RateLimiter
}

// NewServer builds a Server around an already-trained decoder and
// corrector.
func NewServer(cfg Config, dec *decode.Decoder, corrector *heuristics.Corrector) *Server {
	corsOrigin := cfg.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	return &Server{
		decoder:     dec,
		corrector:   corrector,
		corsOrigin:  corsOrigin,
		maxUploadMB: cfg.MaxUploadMB,
		timeoutSec:  cfg.TimeoutSec,
		rateLimiter: cfg.RateLimiter,
	}
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/decode", s.corsMiddleware(s.rateLimitMiddleware(s.decodeHandler)))
	mux.HandleFunc("/correct", s.corsMiddleware(s.rateLimitMiddleware(s.correctHandler)))
	mux.HandleFunc("/ws/annotate", s.annotateWebSocketHandler)
	mux.Handle("/metrics", metricsHandler())
}

// HealthResponse is the /health response body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// DecodeRequest is the /decode request body: a batch of original
// (noisy) tokens to run through k-best Viterbi decoding (spec §4.3).
type DecodeRequest struct {
	Tokens []string `json:"tokens"`
}

// CandidateJSON mirrors decode.Candidate with JSON tags.
type CandidateJSON struct {
	Candidate string  `json:"candidate"`
	LogProb   float64 `json:"log_prob"`
}

// DecodeResult is one token's k-best list in a /decode response.
type DecodeResult struct {
	Original   string          `json:"original"`
	Candidates []CandidateJSON `json:"candidates"`
}

// DecodeResponse is the /decode response body.
type DecodeResponse struct {
	Results []DecodeResult `json:"results"`
}

// CorrectRequest is the /correct request body: original tokens to
// decode, bin, and resolve per the configured policy (spec §4.4).
type CorrectRequest struct {
	Tokens []string `json:"tokens"`
}

// CorrectResult is one token's binning/resolution outcome.
type CorrectResult struct {
	Original  string `json:"original"`
	Bin       int    `json:"bin"`
	Heuristic string `json:"heuristic"`
	Selection string `json:"selection"`
	Resolved  bool   `json:"resolved"`
}

// CorrectResponse is the /correct response body.
type CorrectResponse struct {
	Results []CorrectResult `json:"results"`
}

// ErrorResponse is a generic error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
