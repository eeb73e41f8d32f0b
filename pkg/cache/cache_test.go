package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "absent"); hit || err != nil {
		t.Fatalf("Get(absent) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get(key) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get(key) = %q, want %q", data, "value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Errorf("expired entry should be removed, stat err = %v", err)
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, hit, err := c.Get(ctx, "bad")
	if err != nil || hit || data != nil {
		t.Errorf("Get(corrupt) = %q, %v, %v; want silent miss", data, hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestFileCacheClearKeepsForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "a", []byte("a"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	shard := HashString("a")[:2]

	write := func(rel string) string {
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("keep"), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	foreign := []string{
		write(filepath.Join("projects", "thesis.tex")),
		write(filepath.Join("zz", "notes.json")),
		write(filepath.Join(shard, "README")),
		write("todo.md"),
	}
	leftover := write(filepath.Join("0f", ".entry-123"))

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 1 {
		t.Errorf("Clear() removed %d, want 1", n)
	}
	for _, p := range foreign {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("foreign file %s was removed: %v", p, err)
		}
	}
	if _, err := os.Stat(leftover); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary file %s should be removed, stat err = %v", leftover, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "0f")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("empty shard should be removed, stat err = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := HashString("hello")
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	resp := HashString("response")
	doc := HashString("document")

	pk1 := k.PreparedKey(resp, PreparedKeyOpts{})
	pk2 := k.PreparedKey(resp, PreparedKeyOpts{KeepOrphans: true})
	if pk1 == pk2 {
		t.Error("Different PreparedKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(pk1, "prepared:") {
		t.Errorf("PreparedKey = %s, want prepared: prefix", pk1)
	}
	if pk1 != k.PreparedKey(resp, PreparedKeyOpts{}) {
		t.Error("PreparedKey should be deterministic")
	}

	xk1 := k.PatchKey(doc, resp, PatchKeyOpts{Threshold: 0.8})
	xk2 := k.PatchKey(doc, resp, PatchKeyOpts{Threshold: 0.9})
	xk3 := k.PatchKey(HashString("other"), resp, PatchKeyOpts{Threshold: 0.8})
	if xk1 == xk2 || xk1 == xk3 {
		t.Error("PatchKey should depend on document and threshold")
	}
	if !strings.HasPrefix(xk1, "patch:") {
		t.Errorf("PatchKey = %s, want patch: prefix", xk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	got := scoped.PreparedKey("h", PreparedKeyOpts{})
	if got != "user:123:"+inner.PreparedKey("h", PreparedKeyOpts{}) {
		t.Errorf("ScopedKeyer PreparedKey unexpected: %s", got)
	}
	patchKey := scoped.PatchKey("d", "r", PatchKeyOpts{})
	if !strings.HasPrefix(patchKey, "user:123:patch:") {
		t.Errorf("ScopedKeyer PatchKey should be prefixed: %s", patchKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.PreparedKey("h", PreparedKeyOpts{})
	if !strings.HasPrefix(key, "prefix:prepared:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrBackend)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrBackend) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if err.Error() != ErrBackend.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrBackend) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = 100 * time.Millisecond })

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	errPermanent := errors.New("permanent")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrBackend)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrBackend)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted retries: err = %v, calls = %d; want retryable after 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrBackend)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

// recordingCache remembers the TTL of the last write.
type recordingCache struct {
	NullCache
	ttl time.Duration
}

func (r *recordingCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	r.ttl = ttl
	return nil
}

func TestWithTTL(t *testing.T) {
	inner := &recordingCache{}
	c := WithTTL(inner, time.Minute)
	if err := c.Set(context.Background(), "k", []byte("v"), TTLPrepared); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if inner.ttl != time.Minute {
		t.Errorf("ttl = %v, want %v", inner.ttl, time.Minute)
	}

	if got := WithTTL(inner, 0); got != Cache(inner) {
		t.Error("WithTTL(0) should return the cache unchanged")
	}
}
