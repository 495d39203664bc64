package server

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Local Packages
	apperrors "fraud-service/errors"
	models "fraud-service/models"

	// External Packages
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubDetector struct {
	result models.AnalysisResult
	score  models.UserRiskScore
	err    error
	lastTx models.Transaction
}

func (s *stubDetector) Analyze(_ context.Context, tx models.Transaction, _ string) (models.AnalysisResult, error) {
	s.lastTx = tx
	if s.err != nil {
		return models.AnalysisResult{}, s.err
	}
	return s.result, nil
}

func (s *stubDetector) UserRiskScore(_ context.Context, userID string) (models.UserRiskScore, error) {
	if s.err != nil {
		return models.UserRiskScore{}, s.err
	}
	score := s.score
	score.UserID = userID
	return score, nil
}

func serve(t *testing.T, detector DetectorService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := New(zap.NewNop(), detector)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthIsFixed(t *testing.T) {
	for i := 0; i < 3; i++ {
		w := serve(t, &stubDetector{}, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"OK","service":"fraud-detection"}`, w.Body.String())
	}
}

func TestAnalyzeRejectsMissingBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "empty object", body: "{}"},
		{name: "not json", body: "amount=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, &stubDetector{}, http.MethodPost, "/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"No transaction data provided"}`, w.Body.String())
		})
	}
}

func TestAnalyzeReturnsResult(t *testing.T) {
	detector := &stubDetector{result: models.AnalysisResult{
		RiskScore: 55,
		Alerts: []models.Alert{{
			Type:     models.AlertVelocity,
			Severity: models.SeverityHigh,
		}},
		Timestamp: "2025-03-10T14:00:00Z",
	}}

	w := serve(t, detector, http.MethodPost, "/analyze", `{"fromUser":"alice","amount":300,"location":"Lagos"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 55, got.RiskScore)
	require.Len(t, got.Alerts, 1)
	assert.Equal(t, models.AlertVelocity, got.Alerts[0].Type)

	assert.Equal(t, "alice", detector.lastTx.FromUser)
	assert.Equal(t, float64(300), detector.lastTx.Amount)
}

func TestAnalyzeMapsFailuresToGenericError(t *testing.T) {
	detector := &stubDetector{err: apperrors.StoreErr("zadd", assert.AnError)}

	w := serve(t, detector, http.MethodPost, "/analyze", `{"fromUser":"alice","amount":300}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRiskScoreEndpoint(t *testing.T) {
	detector := &stubDetector{score: models.UserRiskScore{
		RiskScore: 27,
		Factors:   models.RiskFactors{TransactionFrequency: 12, BaseScore: 24},
	}}

	w := serve(t, detector, http.MethodGet, "/risk-score/alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got models.UserRiskScore
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, 27, got.RiskScore)
	assert.Equal(t, int64(12), got.Factors.TransactionFrequency)
	assert.Equal(t, 24, got.Factors.BaseScore)
}

func TestRiskScoreFailure(t *testing.T) {
	detector := &stubDetector{err: apperrors.StoreErr("zcard", assert.AnError)}

	w := serve(t, detector, http.MethodGet, "/risk-score/alice", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
