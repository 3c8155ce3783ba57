package engine2d

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing and instance metrics.
// Only populated when debug mode is enabled.
type frameStats struct {
	steps      int
	stepTime   time.Duration
	buildTime  time.Duration
	uploadTime time.Duration
	instances  int
	live       int
}

// debugLog writes frame stats at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	total := stats.stepTime + stats.buildTime + stats.uploadTime
	e.log.Debug("frame",
		zap.Int("steps", stats.steps),
		zap.Duration("step", stats.stepTime),
		zap.Duration("build", stats.buildTime),
		zap.Duration("upload", stats.uploadTime),
		zap.Duration("total", total),
		zap.Int("instances", stats.instances),
		zap.Int("live", stats.live))
}

// debugMaxTreeDepth is the hierarchy depth above which attach warns.
const debugMaxTreeDepth = 32

// Depth returns the number of ancestors e resolves through, following only
// links that resolve (see ResolveWorldTransforms). Cycles stop the count.
func (w *World) Depth(e Entity) int {
	i, ok := w.index(e)
	if !ok {
		return 0
	}
	depth := 0
	for limit := len(w.flags); limit > 0; limit-- {
		p, ok := w.parentIndex(i)
		if !ok || p == e.Index() {
			break
		}
		depth++
		i = p
	}
	return depth
}

// debugCheckTreeDepth warns if e sits deeper than debugMaxTreeDepth.
func (e *Engine) debugCheckTreeDepth(ent Entity) {
	if !e.debug {
		return
	}
	if depth := e.world.Depth(ent); depth > debugMaxTreeDepth {
		e.log.Warn("hierarchy depth exceeds threshold",
			zap.Stringer("entity", ent),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth))
	}
}
