package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const DefaultMaxFileSize int64 = 5 * 1024 * 1024

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
	ErrInvalidImage = errors.New("invalid base64 image data")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadImageFile(file *multipart.FileHeader) ([]byte, error)
	DecodeBase64Image(encoded string) ([]byte, error)
	ValidateImageBytes(data []byte) error
	Digest(data []byte) string
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return NewWithLimit(DefaultMaxFileSize)
}

func NewWithLimit(maxFileSize int64) IUtils {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &utils{
		maxFileSize: maxFileSize,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if declaresType(contentType) && !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}

	return nil
}

// ReadImageFile validates the upload and reads it fully. When the client sent
// no usable part Content-Type the type is sniffed from the content.
func (u *utils) ReadImageFile(file *multipart.FileHeader) ([]byte, error) {
	if err := u.ValidateImageFile(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}

	if !declaresType(file.Header.Get("Content-Type")) && !isImage(data) {
		return nil, ErrNotAnImage
	}

	return data, nil
}

func (u *utils) DecodeBase64Image(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImage
	}
	if err := u.ValidateImageBytes(data); err != nil {
		return nil, err
	}

	return data, nil
}

// ValidateImageBytes applies the upload rules to an already buffered image.
func (u *utils) ValidateImageBytes(data []byte) error {
	if len(data) == 0 {
		return ErrNoFile
	}
	if int64(len(data)) > u.maxFileSize {
		return ErrFileTooLarge
	}
	if !isImage(data) {
		return ErrNotAnImage
	}
	return nil
}

// Digest returns the hex sha256 of data.
func (u *utils) Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// declaresType reports whether a part Content-Type says anything about the
// payload. Generic uploaders send application/octet-stream.
func declaresType(contentType string) bool {
	return contentType != "" && !strings.HasPrefix(contentType, "application/octet-stream")
}

func isImage(data []byte) bool {
	return strings.HasPrefix(http.DetectContentType(data), "image/")
}
