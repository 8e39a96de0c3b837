package http

import (
	"net/http"

	"github.com/aescanero/details/internal/application/details"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contentTypeJSON = "application/json"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	respondJSON(c, http.StatusOK, details.Healthy())
}

// handleGetDetails handles movie details lookups
func (s *Server) handleGetDetails(c *gin.Context) {
	movie, err := s.details.GetDetails(c.Request.URL.Path, c.Request.Header)
	if err != nil {
		if !details.IsInvalidInput(err) {
			s.logger.Error("failed to get movie details",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	respondJSON(c, http.StatusOK, movie)
}

// respondJSON writes obj as JSON with a bare application/json content type
func respondJSON(c *gin.Context, code int, obj any) {
	c.Header("Content-Type", contentTypeJSON)
	c.JSON(code, obj)
}
