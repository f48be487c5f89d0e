package mood

import (
	"MoodDetector/pkg/response"
	"net/http"
)

var (
	ErrNoImageProvided     = response.NewError(http.StatusBadRequest, "No image file provided")
	ErrFileParsing         = response.NewError(http.StatusBadRequest, "File parsing error")
	ErrInvalidImage        = response.NewError(http.StatusBadRequest, "uploaded file is not an image")
	ErrFileTooLarge        = response.NewError(http.StatusBadRequest, "file size exceeds limit")
	ErrDetectionFailed     = response.NewError(http.StatusInternalServerError, "Error analyzing image")
	ErrHistoryUnavailable  = response.NewError(http.StatusServiceUnavailable, "mood history is not enabled")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
