package handler

import (
	"log"
	"net/http"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/gin-gonic/gin"
)

type AgricultureHandler struct {
	svc *service.AgricultureService
}

func NewAgricultureHandler(svc *service.AgricultureService) *AgricultureHandler {
	return &AgricultureHandler{svc: svc}
}

// Calculate handles POST /agriculture/calculate
func (h *AgricultureHandler) Calculate(c *gin.Context) {
	var req dto.AgricultureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "AGRICULTURE_FAILED", "Invalid agriculture input", err)
		return
	}

	log.Println("Received agriculture calculation request")

	result, err := h.svc.Calculate(c.Request.Context(), req)
	if err != nil {
		sendError(c, http.StatusBadGateway, "AGRICULTURE_FAILED", "Agriculture calculation failed. Check backend.", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
