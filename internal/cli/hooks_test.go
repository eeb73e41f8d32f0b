package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mend/pkg/observability"
)

func TestRegisterHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	ctx := context.Background()

	var buf bytes.Buffer
	registerHooks(newLogger(&buf, log.DebugLevel))

	observability.Synthesis().OnSynthesizeStart(ctx, "reply.md")
	observability.Synthesis().OnSynthesizeComplete(ctx, "reply.md", 3, 2, time.Millisecond, nil)
	observability.Synthesis().OnSynthesizeComplete(ctx, "bad.md", 0, 0, time.Millisecond, errors.New("boom"))
	observability.Patch().OnPatchStart(ctx, 2)
	observability.Patch().OnPatchComplete(ctx, 1, 1, time.Millisecond, nil)
	observability.Cache().OnCacheHit(ctx, "prepared")
	observability.Cache().OnCacheMiss(ctx, "patch")
	observability.Cache().OnCacheSet(ctx, "patch", 128)

	out := buf.String()
	for _, want := range []string{
		"synthesis started", "synthesis finished", "nodes=3", "synthesis failed", "err=boom",
		"patch started", "patch finished", "applied=1",
		"cache hit", "type=prepared", "cache miss", "cache set", "bytes=128",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output should contain %q:\n%s", want, out)
		}
	}
}

func TestRegisterHooksQuietAtInfo(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	registerHooks(newLogger(&buf, log.InfoLevel))
	observability.Cache().OnCacheHit(context.Background(), "prepared")

	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}
