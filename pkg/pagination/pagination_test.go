package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default for negative limit, got %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected passthrough, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected buffered limit 11, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2026, 2, 14, 9, 30, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}
	encoded := EncodeCursor(original)

	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected cursor, got nil")
	}
	if !parsed.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("timestamp mismatch: %v vs %v", parsed.CreatedAt, original.CreatedAt)
	}
	if parsed.ID != original.ID {
		t.Fatalf("id mismatch: %s vs %s", parsed.ID, original.ID)
	}
}

func TestParseCursorEdgeCases(t *testing.T) {
	if parsed, err := ParseCursor("  "); err != nil || parsed != nil {
		t.Fatalf("blank cursor should be nil/nil, got %v/%v", parsed, err)
	}
	if _, err := ParseCursor("not-base64!!!"); err == nil {
		t.Fatal("expected error for invalid encoding")
	}
	if _, err := ParseCursor("bm8tc2VwYXJhdG9y"); err == nil {
		t.Fatal("expected error for missing separator")
	}
}

func TestNextCursor(t *testing.T) {
	id := uuid.New()
	at := time.Now().UTC()
	if got := NextCursor(at, id, false); got != "" {
		t.Fatalf("partial page should yield empty cursor, got %q", got)
	}
	got := NextCursor(at, id, true)
	parsed, err := ParseCursor(got)
	if err != nil || parsed == nil || parsed.ID != id {
		t.Fatalf("expected parseable cursor for full page: %v %v", parsed, err)
	}
}
