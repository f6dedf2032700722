package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/correctocr/correctocr/internal/token"
	"github.com/correctocr/correctocr/internal/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v, _, _ := version.Info()
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: v, Time: nowRFC3339()})
}

func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeRequestsTotal.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	results := make([]DecodeResult, 0, len(req.Tokens))
	for _, original := range req.Tokens {
		cands := s.decoder.Decode(original)
		cj := make([]CandidateJSON, len(cands))
		for i, c := range cands {
			cj[i] = CandidateJSON{Candidate: c.String, LogProb: c.LogProb}
		}
		results = append(results, DecodeResult{Original: original, Candidates: cj})
	}
	decodeDuration.WithLabelValues("mixed").Observe(time.Since(start).Seconds())
	decodeRequestsTotal.WithLabelValues("success").Inc()

	writeJSON(w, http.StatusOK, DecodeResponse{Results: results})
}

func (s *Server) correctHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CorrectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	results := make([]CorrectResult, 0, len(req.Tokens))
	for _, original := range req.Tokens {
		cands := s.decoder.Decode(original)
		t := &token.Token{Original: original, Type: token.Word}
		t.KBest = make([]token.KBest, len(cands))
		for i, c := range cands {
			t.KBest[i] = token.KBest{Candidate: c.String, LogProb: c.LogProb}
		}
		s.corrector.Resolve(t)
		binAssignmentsTotal.WithLabelValues(strconv.Itoa(t.Bin)).Inc()

		results = append(results, CorrectResult{
			Original:  t.Original,
			Bin:       t.Bin,
			Heuristic: string(t.Heuristic),
			Selection: t.Selection,
			Resolved:  t.Resolved,
		})
	}

	writeJSON(w, http.StatusOK, CorrectResponse{Results: results})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
