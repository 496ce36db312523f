package handler

import (
	"log"
	"net/http"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/gin-gonic/gin"
)

const workingCapitalError = "WORKING_CAPITAL_FAILED"

type WorkingCapitalHandler struct {
	svc *service.WorkingCapitalService
}

func NewWorkingCapitalHandler(svc *service.WorkingCapitalService) *WorkingCapitalHandler {
	return &WorkingCapitalHandler{svc: svc}
}

// Extract handles POST /working-capital/extract
func (h *WorkingCapitalHandler) Extract(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, workingCapitalError, "file is required", err)
		return
	}

	log.Printf("Received financial statement %s (%d bytes)", file.Filename, file.Size)

	doc, err := readDocument(file, c.PostForm("password"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, workingCapitalError, "Failed to read uploaded file", err)
		return
	}

	fields, err := h.svc.ExtractFromDocument(c.Request.Context(), doc)
	if err != nil {
		sendError(c, http.StatusUnprocessableEntity, workingCapitalError, "Failed to parse financial statement", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fields": fields,
		"draft":  h.svc.Draft(),
	})
}

// Draft handles GET /working-capital/draft
func (h *WorkingCapitalHandler) Draft(c *gin.Context) {
	draft := h.svc.Draft()
	c.JSON(http.StatusOK, gin.H{
		"fields":  draft,
		"request": draft.Request(),
	})
}

// Calculate handles POST /working-capital/calculate. An empty body submits the
// draft assembled from uploads.
func (h *WorkingCapitalHandler) Calculate(c *gin.Context) {
	var (
		result *dto.WorkingCapitalResult
		err    error
	)

	if c.Request.ContentLength == 0 {
		result, err = h.svc.CalculateDraft(c.Request.Context())
	} else {
		var req dto.WorkingCapitalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, http.StatusBadRequest, workingCapitalError, "Invalid working capital input", err)
			return
		}
		result, err = h.svc.Calculate(c.Request.Context(), req)
	}
	if err != nil {
		sendError(c, http.StatusBadGateway, workingCapitalError, "Working capital calculation failed. Check backend.", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
