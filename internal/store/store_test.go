package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "calmkeys.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSQLiteSetGetOverwrite(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Get(ctx, KeyProgress); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Set(ctx, KeyProgress, []byte(`{"currentLevel":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, KeyProgress, []byte(`{"currentLevel":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := st.Get(ctx, KeyProgress)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"currentLevel":2}` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestSQLiteDeleteAndUpdatedAt(t *testing.T) {
	st := openTestStore(t)
	fixed := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }
	ctx := context.Background()

	if err := st.Set(ctx, KeyHistory, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	at, err := st.UpdatedAt(ctx, KeyHistory)
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !at.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, at)
	}
	if err := st.Delete(ctx, KeyHistory); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, KeyHistory); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(ctx, KeyHistory); err != nil {
		t.Fatalf("delete of missing key should succeed: %v", err)
	}
}

func TestWithPrefixIsolatesProfiles(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	alice := WithPrefix(mem, "alice")
	bob := WithPrefix(mem, "bob")

	if err := alice.Set(ctx, KeyProgress, []byte("a")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := bob.Get(ctx, KeyProgress); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected bob to see nothing, got %v", err)
	}
	raw, err := mem.Get(ctx, "alice:"+KeyProgress)
	if err != nil || string(raw) != "a" {
		t.Fatalf("expected prefixed key in backing store, got %q, %v", raw, err)
	}
	if WithPrefix(mem, "") != KV(mem) {
		t.Fatalf("expected empty prefix to return the store unchanged")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	if err := mem.Set(ctx, "k", buf); err != nil {
		t.Fatalf("set: %v", err)
	}
	buf[0] = 'x'
	got, _ := mem.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value changed through caller slice: %s", got)
	}
	mem.FailSet = errors.New("disk full")
	if err := mem.Set(ctx, "k", []byte("z")); err == nil {
		t.Fatalf("expected injected failure")
	}
}
