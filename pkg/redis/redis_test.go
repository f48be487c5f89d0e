package redis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
)

func newTestRedis(t *testing.T) (IRedis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := New(Options{Address: mr.Addr()}, logger)
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestMoodCacheRoundTrip(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	if _, err := client.GetMood(ctx, "abc"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	payload := []byte(`{"mood":"Joy","face_count":1}`)
	if err := client.SetMood(ctx, "abc", payload, time.Minute); err != nil {
		t.Fatalf("SetMood: %v", err)
	}

	if !mr.Exists("mood:abc") {
		t.Fatal("expected key mood:abc to exist")
	}
	if ttl := mr.TTL("mood:abc"); ttl != time.Minute {
		t.Fatalf("expected TTL of 1m, got %v", ttl)
	}

	got, err := client.GetMood(ctx, "abc")
	if err != nil {
		t.Fatalf("GetMood: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("got %s, want %s", got, payload)
	}

	if err := client.DeleteMood(ctx, "abc"); err != nil {
		t.Fatalf("DeleteMood: %v", err)
	}
	if _, err := client.GetMood(ctx, "abc"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestMoodCacheExpires(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	if err := client.SetMood(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatalf("SetMood: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, err := client.GetMood(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired entry, got %v", err)
	}
}

func TestNewFailsWithoutServer(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if _, err := New(Options{Address: "127.0.0.1:1"}, logger); err == nil {
		t.Fatal("expected connection error")
	}
}
