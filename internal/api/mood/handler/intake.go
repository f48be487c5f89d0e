package moodHandler

import (
	"errors"
	"mime/multipart"
	"strings"

	"MoodDetector/internal/api/mood"
	"MoodDetector/pkg/log"
	"MoodDetector/pkg/response"
	"MoodDetector/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// Upload fields in lookup order.
var uploadFields = []string{"selfie", "image"}

// readImage extracts the image from a multipart upload or a JSON body carrying
// base64 data. Returned errors are mood sentinels.
func (h *MoodHandler) readImage(ctx *fiber.Ctx, requestID string) ([]byte, error) {
	contentType := strings.ToLower(string(ctx.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := ctx.MultipartForm()
		if err != nil {
			return nil, response.Wrap(mood.ErrFileParsing, err)
		}

		file := firstFile(form)
		if file == nil {
			return nil, mood.ErrNoImageProvided
		}

		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		data, err := h.utils.ReadImageFile(file)
		if err != nil {
			return nil, intakeError(err)
		}
		return data, nil

	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		var req mood.DetectMoodRequest
		if err := ctx.BodyParser(&req); err != nil {
			return nil, response.Wrap(mood.ErrFileParsing, err)
		}
		if err := h.validator.Struct(req); err != nil {
			return nil, mood.ErrNoImageProvided
		}

		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Debug("Processing JSON request")

		data, err := h.utils.DecodeBase64Image(req.ImageBase64)
		if err != nil {
			return nil, intakeError(err)
		}
		return data, nil
	}

	return nil, mood.ErrNoImageProvided
}

func firstFile(form *multipart.Form) *multipart.FileHeader {
	for _, field := range uploadFields {
		if files := form.File[field]; len(files) > 0 {
			return files[0]
		}
	}
	return nil
}

func intakeError(err error) error {
	switch {
	case errors.Is(err, utils.ErrNoFile):
		return mood.ErrNoImageProvided
	case errors.Is(err, utils.ErrFileTooLarge):
		return mood.ErrFileTooLarge
	case errors.Is(err, utils.ErrNotAnImage):
		return mood.ErrInvalidImage
	default:
		return response.Wrap(mood.ErrFileParsing, err)
	}
}
