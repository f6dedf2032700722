package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/correctocr/correctocr/internal/alphabet"
	"github.com/correctocr/correctocr/internal/decode"
	"github.com/correctocr/correctocr/internal/dictionary"
	"github.com/correctocr/correctocr/internal/heuristics"
	"github.com/correctocr/correctocr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	b := alphabet.NewBuilder()
	b.AddString("abcdefghijklmnopqrstuvwxyz")
	alpha := b.Freeze()
	n := alpha.Len()

	pi := make([]float64, n)
	a := make([]float64, n*n)
	bMat := make([]float64, n*n)
	for i := 0; i < n; i++ {
		pi[i] = 1.0 / float64(n)
		for j := 0; j < n; j++ {
			a[i*n+j] = 1.0 / float64(n)
			if i == j {
				bMat[i*n+j] = 0.9
			} else {
				bMat[i*n+j] = 0.1 / float64(n-1)
			}
		}
	}
	hmm, err := model.New(alpha, pi, a, bMat)
	require.NoError(t, err)

	dec := decode.New(hmm, nil, 3, nil)
	dict := dictionary.New(true)
	dict.Add("the")
	corrector := heuristics.New(heuristics.DefaultPolicy(), dict, nil, nil)

	return NewServer(Config{}, dec, corrector)
}

func TestHealthHandler(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestDecodeHandler(t *testing.T) {
	s := testServer(t)
	body, _ := json.Marshal(DecodeRequest{Tokens: []string{"the"}})
	req := httptest.NewRequest(http.MethodPost, "/decode", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "the", resp.Results[0].Original)
	assert.NotEmpty(t, resp.Results[0].Candidates)
}

func TestDecodeHandler_RejectsBadMethod(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/decode", nil)
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCorrectHandler(t *testing.T) {
	s := testServer(t)
	body, _ := json.Marshal(CorrectRequest{Tokens: []string{"the"}})
	req := httptest.NewRequest(http.MethodPost, "/correct", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.correctHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp CorrectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].Bin)
	assert.True(t, resp.Results[0].Resolved)
}
