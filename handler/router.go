package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	WorkingCapital *WorkingCapitalHandler
	Agriculture    *AgricultureHandler
	Banking        *BankingHandler
	Dashboard      *DashboardHandler
}

// NewRouter builds the gin engine with all API routes. Request bodies larger
// than maxUploadSize are refused with 413.
func NewRouter(h Handlers, maxUploadSize int64) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = maxUploadSize
	router.Use(limitBodySize(maxUploadSize))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Loan Underwriting",
		})
	})

	api := router.Group("/api/v1")
	{
		wc := api.Group("/working-capital")
		{
			wc.POST("/extract", h.WorkingCapital.Extract)
			wc.GET("/draft", h.WorkingCapital.Draft)
			wc.POST("/calculate", h.WorkingCapital.Calculate)
		}

		api.POST("/agriculture/calculate", h.Agriculture.Calculate)

		banking := api.Group("/banking")
		{
			banking.POST("/upload", h.Banking.Upload)
			banking.GET("/transactions", h.Banking.Transactions)
			banking.DELETE("/transactions", h.Banking.Reset)
			banking.POST("/analyze", h.Banking.Analyze)
		}

		api.GET("/dashboard", h.Dashboard.Dashboard)
		api.GET("/dashboard/report", h.Dashboard.Report)
		api.POST("/cases", h.Dashboard.SaveCase)
		api.GET("/cases", h.Dashboard.ListCases)
	}

	return router
}

// limitBodySize rejects declared oversize bodies up front and caps the rest while they are read.
func limitBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			sendError(c, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE",
				fmt.Sprintf("Request body exceeds %d bytes", limit), nil)
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
