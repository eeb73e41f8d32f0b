package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mend/internal/config"
	"github.com/matzehuels/mend/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestResolveCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	tests := []struct {
		name string
		cfg  config.Cache
		want string
	}{
		{"default", config.Cache{}, filepath.Join("/tmp/xdg-cache", appName)},
		{"configured", config.Cache{Dir: "/var/cache/notes"}, "/var/cache/notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCacheDir(tt.cfg)
			if err != nil {
				t.Fatalf("resolveCacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveCacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      config.Cache
		noCache  bool
		wantNull bool
	}{
		{"no-cache flag", config.Cache{Backend: config.BackendFile, Dir: dir}, true, true},
		{"none backend", config.Cache{Backend: config.BackendNone}, false, true},
		{"file backend", config.Cache{Backend: config.BackendFile, Dir: dir}, false, false},
		{"file backend with ttl", config.Cache{Backend: config.BackendFile, Dir: dir, TTL: config.Duration{Duration: time.Hour}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer c.Close()

			_, isNull := c.(cache.NullCache)
			if isNull != tt.wantNull {
				t.Errorf("newCache() null = %v, want %v (got %T)", isNull, tt.wantNull, c)
			}
		})
	}
}

func TestNewCacheRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := newCache(ctx, config.Cache{Backend: config.BackendRedis, RedisAddr: "127.0.0.1:1"}, false)
	if err == nil {
		t.Fatal("newCache() should fail for an unreachable redis")
	}
}
