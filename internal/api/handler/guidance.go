package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JJBon/synth-data-service/internal/guidance"
)

// GuidanceHandler handles goal classification endpoints.
type GuidanceHandler struct {
	classifier *guidance.Classifier
}

// NewGuidanceHandler creates a new guidance handler.
func NewGuidanceHandler(classifier *guidance.Classifier) *GuidanceHandler {
	return &GuidanceHandler{classifier: classifier}
}

type classifyRequest struct {
	Goal string `json:"goal"`
}

// Classify handles POST /v1/guidance. Any goal string is accepted, including
// empty; an unmatched goal yields the fallback recommendation.
func (h *GuidanceHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.classifier.Classify(req.Goal))
}
