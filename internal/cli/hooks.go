package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mend/pkg/observability"
)

// logHooks reports pipeline events at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerHooks installs logHooks for every event family.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetSynthesisHooks(h)
	observability.SetPatchHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnSynthesizeStart(_ context.Context, source string) {
	h.logger.Debug("synthesis started", "source", source)
}

func (h logHooks) OnSynthesizeComplete(_ context.Context, source string, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("synthesis failed", "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("synthesis finished", "source", source, "nodes", nodes, "edges", edges, "duration", d)
}

func (h logHooks) OnPatchStart(_ context.Context, changes int) {
	h.logger.Debug("patch started", "changes", changes)
}

func (h logHooks) OnPatchComplete(_ context.Context, applied, failed int, d time.Duration, err error) {
	h.logger.Debug("patch finished", "applied", applied, "failed", failed, "duration", d, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
