package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and cache events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load start", "path", path)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("load complete", "path", path, "nodes", nodes, "edges", edges, "duration", d)
}

func (h *logHooks) OnComputeStart(_ context.Context, nodes, workers int) {
	h.logger.Debug("compute start", "nodes", nodes, "workers", workers)
}

func (h *logHooks) OnComputeComplete(_ context.Context, pairs int64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compute failed", "err", err)
		return
	}
	h.logger.Debug("compute complete", "pairs", pairs, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
