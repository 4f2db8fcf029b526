package main

import (
	"testing"
	"time"
)

func TestRootCmdParsesArgsAndFlags(t *testing.T) {
	var got viewerOptions
	cmd := newRootCmd(func(opts viewerOptions) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{" USCHSLAOS ", "--base-url", "http://localhost:9999", "--debounce", "250ms", "--timeout", "5s"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.eventCode != "USCHSLAOS" {
		t.Fatalf("expected trimmed event code, got %q", got.eventCode)
	}
	if got.baseURL != "http://localhost:9999" {
		t.Fatalf("unexpected base url %q", got.baseURL)
	}
	if got.debounce != 250*time.Millisecond || got.timeout != 5*time.Second {
		t.Fatalf("unexpected durations %v %v", got.debounce, got.timeout)
	}
}

func TestRootCmdDefaultsFromEnv(t *testing.T) {
	t.Setenv("FTCSCOUT_BASE_URL", "http://env.example")
	t.Setenv("VIEWER_DEBOUNCE", "1s")

	var got viewerOptions
	cmd := newRootCmd(func(opts viewerOptions) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.eventCode != "" {
		t.Fatalf("expected no event code, got %q", got.eventCode)
	}
	if got.baseURL != "http://env.example" || got.debounce != time.Second {
		t.Fatalf("expected env defaults, got %q %v", got.baseURL, got.debounce)
	}
	if got.timeout != 30*time.Second {
		t.Fatalf("expected default aggregate timeout, got %v", got.timeout)
	}
}

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd(func(viewerOptions) error { return nil })
	cmd.SetArgs([]string{"A", "B"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for two event codes")
	}
}
