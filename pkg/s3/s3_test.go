package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        string
}

func newFakeS3(t *testing.T) (string, func() []recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		})
		mu.Unlock()

		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return srv.URL, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func TestUploadImage(t *testing.T) {
	endpoint, recorded := newFakeS3(t)

	client, err := New(Options{
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		BucketName:      "moods",
		Endpoint:        endpoint,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	location, err := client.UploadImage(context.Background(), "01HX.png", "image/png", []byte("pixels"))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	requests := recorded()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	req := requests[0]
	if req.method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", req.method)
	}
	if !strings.HasPrefix(req.path, "/moods/selfies/") || !strings.HasSuffix(req.path, "/01HX.png") {
		t.Fatalf("unexpected object path %s", req.path)
	}
	if req.body != "pixels" {
		t.Fatalf("unexpected body %q", req.body)
	}
	if req.contentType != "image/png" {
		t.Fatalf("unexpected content type %q", req.contentType)
	}
	if !strings.Contains(location, "01HX.png") {
		t.Fatalf("unexpected location %q", location)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(Options{Region: "us-east-1"}); err == nil {
		t.Fatal("expected error without bucket")
	}
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	tests := map[string]string{
		"x.jpg":                  "selfies/2024/03/09/x.jpg",
		"../../../../victim.jpg": "selfies/2024/03/09/victim.jpg",
		"a/b/../c.png":           "selfies/2024/03/09/c.png",
		"/etc/passwd":            "selfies/2024/03/09/passwd",
		"..":                     "selfies/2024/03/09/unnamed",
		"":                       "selfies/2024/03/09/unnamed",
	}

	for name, want := range tests {
		if got := objectKey("selfies", name, now); got != want {
			t.Errorf("objectKey(%q) = %s, want %s", name, got, want)
		}
	}
}
