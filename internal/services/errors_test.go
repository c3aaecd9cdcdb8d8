package services_test

import (
	"errors"
	"strings"
	"testing"

	"vidforge/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrStrategyFailed, "procedural", "render", "encoder exited", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStrategyFailed) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"procedural", "render", "encoder exited"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "placeholder", "write", "", nil)
	if !errors.Is(err, services.ErrStrategyFailed) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestFatalClassification(t *testing.T) {
	fatal := services.Wrap(services.ErrFilesystemFatal, "placeholder", "write", "disk full", errors.New("enospc"))
	if !services.Fatal(fatal) {
		t.Fatalf("expected filesystem error to be fatal: %v", fatal)
	}

	recoverable := services.Wrap(services.ErrStrategyFailed, "neural", "still", "no accelerator", nil)
	if services.Fatal(recoverable) {
		t.Fatalf("expected strategy failure to be recoverable: %v", recoverable)
	}

	skipped := services.Wrap(services.ErrCapabilityUnavailable, "neural", "probe", "binary missing", nil)
	if services.Fatal(skipped) {
		t.Fatalf("expected missing capability to be recoverable: %v", skipped)
	}

	if services.Fatal(nil) {
		t.Fatal("nil error must not be fatal")
	}
}
