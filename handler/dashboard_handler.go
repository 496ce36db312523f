package handler

import (
	"fmt"
	"net/http"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/gin-gonic/gin"
)

const decisionError = "DECISION_FAILED"

type DashboardHandler struct {
	svc *service.DecisionService
}

func NewDashboardHandler(svc *service.DecisionService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, decisionError, "Failed to build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Report handles GET /dashboard/report?name=
func (h *DashboardHandler) Report(c *gin.Context) {
	data, filename, err := h.svc.CaseReport(c.Request.Context(), c.Query("name"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, decisionError, "Failed to render report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// SaveCase handles POST /cases
func (h *DashboardHandler) SaveCase(c *gin.Context) {
	var req dto.SaveCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, decisionError, "Invalid case input", err)
		return
	}

	saved, err := h.svc.SaveCase(c.Request.Context(), req.Name)
	if err != nil {
		sendError(c, http.StatusInternalServerError, decisionError, "Failed to save case", err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListCases handles GET /cases
func (h *DashboardHandler) ListCases(c *gin.Context) {
	cases, err := h.svc.ListCases(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, decisionError, "Failed to load cases", err)
		return
	}
	c.JSON(http.StatusOK, cases)
}
