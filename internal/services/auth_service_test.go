package services

import (
	"testing"
	"time"
)

func TestTTLFromEnv(t *testing.T) {
	t.Setenv("TEST_TOKEN_TTL", "45m")
	if got := ttlFromEnv("TEST_TOKEN_TTL", time.Hour); got != 45*time.Minute {
		t.Fatalf("got %v, want 45m", got)
	}

	t.Setenv("TEST_TOKEN_TTL", "168h")
	if got := ttlFromEnv("TEST_TOKEN_TTL", time.Hour); got != 168*time.Hour {
		t.Fatalf("got %v, want 168h", got)
	}

	t.Setenv("TEST_TOKEN_TTL", "not-a-duration")
	if got := ttlFromEnv("TEST_TOKEN_TTL", time.Hour); got != time.Hour {
		t.Fatalf("fallback not used, got %v", got)
	}

	if got := ttlFromEnv("TEST_TOKEN_TTL_UNSET", 7*24*time.Hour); got != 7*24*time.Hour {
		t.Fatalf("default not used, got %v", got)
	}
}
