package handler

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/Aashish23092/loan-underwriting/client"
	"github.com/Aashish23092/loan-underwriting/dto"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/gin-gonic/gin"
)

// statusFor maps known failures to an HTTP status, falling back to fallback.
func statusFor(err error, fallback int) int {
	var backendErr *client.BackendError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dto.ErrCaseNameRequired),
		errors.Is(err, dto.ErrNoTransactions),
		errors.Is(err, dto.ErrNoFiles),
		errors.Is(err, dto.ErrEmptyDraft):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &backendErr):
		return http.StatusBadGateway
	}
	return fallback
}

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		statusCode = statusFor(err, statusCode)
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

// readDocument loads an uploaded file into memory.
func readDocument(file *multipart.FileHeader, password string) (service.Document, error) {
	reader, err := file.Open()
	if err != nil {
		return service.Document{}, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return service.Document{}, err
	}

	return service.Document{
		Filename: file.Filename,
		Data:     data,
		Password: password,
	}, nil
}
