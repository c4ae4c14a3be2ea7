package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chronocode/chrono/pkg/models"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.TempDir(), 24, true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)

	if err := c.Set("timeline-abc", []byte("payload")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok := c.Get("timeline-abc")
	if !ok {
		t.Fatal("Get() miss for existing key")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want payload", data)
	}

	if _, ok := c.Get("absent"); ok {
		t.Error("Get() hit for absent key")
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New("", 24, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := c.Set("key", []byte("data")); err != nil {
		t.Errorf("Set() on disabled cache error = %v", err)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("disabled cache must never hit")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 1, true)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set("key", []byte("data")); err != nil {
		t.Fatal(err)
	}

	// Backdate the entry past the TTL by rewriting its timestamp.
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected 1 cache file, got %d (err %v)", len(entries), err)
	}
	path := filepath.Join(dir, entries[0].Name())
	stale := `{"hash":"","timestamp":"` + time.Now().Add(-2*time.Hour).Format(time.RFC3339) + `","data":"ZGF0YQ=="}`
	if err := os.WriteFile(path, []byte(stale), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("key"); ok {
		t.Error("expired entry must miss")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired entry should be removed on read")
	}
}

func TestCache_HashValidation(t *testing.T) {
	c := newTestCache(t)

	if err := c.SetWithHash("key", "hash-a", []byte("data")); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.GetWithHash("key", "hash-a"); !ok {
		t.Error("matching hash must hit")
	}
	if _, ok := c.GetWithHash("key", "hash-b"); ok {
		t.Error("stale hash must miss")
	}
	if _, ok := c.GetWithHash("key", "hash-a"); ok {
		t.Error("stale entry must be dropped after a hash mismatch")
	}
	if _, ok := c.GetWithHash("key", ""); ok {
		t.Error("empty hash must miss")
	}
}

func TestCache_InvalidateAndClear(t *testing.T) {
	c := newTestCache(t)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	if err := c.Invalidate("a"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated key must miss")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("other keys must survive Invalidate")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("cleared cache must miss")
	}
}

func TestSnapshotKey(t *testing.T) {
	commits := []models.Commit{
		{SHA: "a", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{SHA: "b", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	base := SnapshotKey("timeline", commits, "week")
	if base != SnapshotKey("timeline", commits, "week") {
		t.Error("same inputs must produce the same key")
	}
	if base == SnapshotKey("timeline", commits, "month") {
		t.Error("different params must change the key")
	}
	if base == SnapshotKey("buckets", commits, "week") {
		t.Error("different scope must change the key")
	}

	amended := []models.Commit{commits[0], {SHA: "b2", Date: commits[1].Date}}
	if base == SnapshotKey("timeline", amended, "week") {
		t.Error("changed history must change the key")
	}
}

func TestHashBytes(t *testing.T) {
	a := HashBytes([]byte("content"))
	b := HashBytes([]byte("content"))
	if a != b {
		t.Error("HashBytes must be deterministic")
	}
	if a == HashBytes([]byte("other")) {
		t.Error("different content must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestGetStats(t *testing.T) {
	c := newTestCache(t)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, want 2", stats.Entries)
	}
	if stats.TotalSize == 0 {
		t.Error("TotalSize should be non-zero")
	}
}
