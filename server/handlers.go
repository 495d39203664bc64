package server

import (
	// Go Internal Packages
	"encoding/json"
	"net/http"

	// Local Packages
	errors "fraud-service/errors"
	models "fraud-service/models"
	detector "fraud-service/services/detector"

	// External Packages
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Client-facing messages. Internal detail stays in the server logs.
const (
	msgNoTransaction = "No transaction data provided"
	msgInternalError = "Internal server error"
)

// Health handles GET /health with a fixed payload.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "fraud-detection"})
}

// AnalyzeTransaction handles POST /analyze. A missing body, unparseable
// JSON or an empty JSON object all count as "no transaction data".
func (s *Server) AnalyzeTransaction(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoTransaction})
		return
	}

	var fields map[string]json.RawMessage
	if err = json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoTransaction})
		return
	}

	var tx models.Transaction
	if err = json.Unmarshal(body, &tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoTransaction})
		return
	}

	result, err := s.detector.Analyze(c.Request.Context(), tx, detector.SourceHTTP)
	if err != nil {
		s.respondError(c, "error analyzing transaction", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserRiskScore handles GET /risk-score/:user_id.
func (s *Server) GetUserRiskScore(c *gin.Context) {
	userID := c.Param("user_id")

	score, err := s.detector.UserRiskScore(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, "error calculating risk score", err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// respondError logs the failure with context and maps the error kind to a
// status with a generic client message.
func (s *Server) respondError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg,
		zap.String("path", c.FullPath()),
		zap.String("kind", errors.KindOf(err).String()),
		zap.Error(err))

	if errors.IsKind(err, errors.Invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoTransaction})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
}
