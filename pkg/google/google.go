package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
)

// CloudVisionScope is the OAuth scope required by the images:annotate API.
const CloudVisionScope = "https://www.googleapis.com/auth/cloud-vision"

var ErrMissingCredentials = errors.New("google cloud credentials are not configured")

// NewCredentials builds the credential handle used by Google API clients.
// encodedKey is a base64 encoded service-account JSON document; when it is
// empty keyFile is read instead. Nothing is written to disk.
func NewCredentials(ctx context.Context, encodedKey, keyFile string) (*google.Credentials, error) {
	keyJSON, err := loadKey(encodedKey, keyFile)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, keyJSON, CloudVisionScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}

	return creds, nil
}

func loadKey(encodedKey, keyFile string) ([]byte, error) {
	encodedKey = strings.TrimSpace(encodedKey)
	if encodedKey != "" {
		keyJSON, err := base64.StdEncoding.DecodeString(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("decode GOOGLE_CLOUD_KEY: %w", err)
		}
		return keyJSON, nil
	}

	if keyFile == "" {
		return nil, ErrMissingCredentials
	}

	keyJSON, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return keyJSON, nil
}
