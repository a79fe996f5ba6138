package handler

import (
	"net/http"

	"advisor-api/internal/services"
	"advisor-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler proxies questions to the chat provider.
type RecommendationHandler struct {
	service *services.RecommendationService
}

func NewRecommendationHandler(service *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req httpdto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = httpdto.RecommendationRequest{}
	}

	answer, err := h.service.Recommend(c.Request.Context(), req.Question)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.RecommendationResponse{Recommendation: answer})
}
