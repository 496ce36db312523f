package handler

import (
	"log"
	"net/http"

	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/gin-gonic/gin"
)

const bankingError = "BANKING_FAILED"

type BankingHandler struct {
	svc *service.BankingService
}

func NewBankingHandler(svc *service.BankingService) *BankingHandler {
	return &BankingHandler{svc: svc}
}

// Upload handles POST /banking/upload with one or more statements under "files[]" or "file".
func (h *BankingHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		sendError(c, http.StatusBadRequest, bankingError, "Failed to parse multipart form", err)
		return
	}

	files := form.File["files[]"]
	files = append(files, form.File["file"]...)
	if len(files) == 0 {
		sendError(c, http.StatusBadRequest, bankingError, "No files provided", dto.ErrNoFiles)
		return
	}

	log.Printf("Processing %d bank statements", len(files))

	password := c.PostForm("password")
	docs := make([]service.Document, 0, len(files))
	for _, file := range files {
		doc, err := readDocument(file, password)
		if err != nil {
			sendError(c, http.StatusInternalServerError, bankingError, "Failed to read uploaded file", err)
			return
		}
		docs = append(docs, doc)
	}

	summary, err := h.svc.Upload(c.Request.Context(), docs)
	if err != nil {
		sendError(c, http.StatusInternalServerError, bankingError, "Failed to process statements", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Transactions handles GET /banking/transactions
func (h *BankingHandler) Transactions(c *gin.Context) {
	txns := h.svc.Transactions()
	if txns == nil {
		txns = []dto.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        len(txns),
		"transactions": txns,
	})
}

// Reset handles DELETE /banking/transactions
func (h *BankingHandler) Reset(c *gin.Context) {
	h.svc.Reset()
	c.Status(http.StatusNoContent)
}

// Analyze handles POST /banking/analyze
func (h *BankingHandler) Analyze(c *gin.Context) {
	var input dto.AnalyzeBankingInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			sendError(c, http.StatusBadRequest, bankingError, "Invalid banking input", err)
			return
		}
	}

	result, err := h.svc.Analyze(c.Request.Context(), input.MonthsCount)
	if err != nil {
		sendError(c, http.StatusBadGateway, bankingError, "Banking analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
