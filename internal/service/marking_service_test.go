package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"spm_tracker_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarkingService(t *testing.T, handler http.Handler) *MarkingService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	return NewMarkingService(
		config.MarkingConfig{BaseURL: server.URL, Timeout: 5},
		NewStorageService(cfg),
	)
}

func TestRecognizeAnswerForwardsMultipart(t *testing.T) {
	svc := newMarkingService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/recognize-answer", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "answer.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"type":       "formula",
			"latex":      "x^2 + 1",
			"raw_text":   "x squared plus one",
			"confidence": 0.93,
		})
	}))

	result, err := svc.RecognizeAnswer(context.Background(), "answer.png", []byte("fake-png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "formula", result.Type)
	assert.Equal(t, "x^2 + 1", result.Latex)
	assert.Equal(t, "x squared plus one", result.RawText)
	assert.InDelta(t, 0.93, result.Confidence, 0.001)
	// 本地存档地址
	assert.Contains(t, result.ImageURL, "/uploads/answers/")
}

func TestGradeAnswerSnakeCasePayload(t *testing.T) {
	svc := newMarkingService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/grade-answer", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "x^2", body["student_latex"])
		assert.Equal(t, "x^{2}", body["answer_latex"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"correct":            true,
			"reason":             "Expressions are symbolically equivalent.",
			"normalized_student": "x**2",
			"normalized_answer":  "x**2",
		})
	}))

	result, err := svc.GradeAnswer(context.Background(), "x^2", "x^{2}")
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, "Expressions are symbolically equivalent.", result.Reason)
	require.NotNil(t, result.NormalizedStudent)
	assert.Equal(t, "x**2", *result.NormalizedStudent)
}

func TestGradeAnswerUpstreamError(t *testing.T) {
	svc := newMarkingService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ocr backend down", http.StatusInternalServerError)
	}))

	_, err := svc.GradeAnswer(context.Background(), "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
