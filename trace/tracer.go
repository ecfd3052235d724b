package trace

import (
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rho/types"
)

// Tracer provides lowering and evaluation tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	logger  *zap.Logger
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer. Filters are glob patterns over
// trace keys (function names, operation names); no filters traces
// everything.
func Init(enabled bool, filters []string) {
	var logger *zap.Logger
	if enabled {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
		logger, _ = cfg.Build()
	} else {
		logger = zap.NewNop()
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		logger:  logger,
	}
}

// Get returns the global tracer, initializing a disabled one on first use
func Get() *Tracer {
	if globalTracer == nil {
		Init(false, nil)
	}
	return globalTracer
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	return Get().enabled
}

// matchesFilter checks if a trace key matches any of the filter patterns
func (t *Tracer) matchesFilter(key string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, key); matched {
			return true
		}
	}
	return false
}

// LoweringUnit logs the start of one lowering unit
func (t *Tracer) LoweringUnit(unit string, source string) {
	if !t.enabled || !t.matchesFilter("lower") {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Debug("lowering unit",
		zap.String("unit", unit),
		zap.String("source", source))
}

// Replacement logs a lowered replacement sequence and its temporaries
func (t *Tracer) Replacement(unit string, target string, temps []string) {
	if !t.enabled || !t.matchesFilter("replacement") {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Debug("replacement sequence",
		zap.String("unit", unit),
		zap.String("target", target),
		zap.Strings("temps", temps))
}

// Call logs a lowered builtin call site
func (t *Tracer) Call(unit string, name string, argc int) {
	if !t.enabled || !t.matchesFilter(name) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Debug("call site",
		zap.String("unit", unit),
		zap.String("function", name),
		zap.Int("argc", argc))
}

// Result logs an evaluated top-level result
func (t *Tracer) Result(unit string, res types.Result) {
	if !t.enabled || !t.matchesFilter("result") {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if res.IsError() {
		t.logger.Debug("evaluation error",
			zap.String("unit", unit),
			zap.String("error", res.Err.Message()))
		return
	}
	t.logger.Debug("evaluation result",
		zap.String("unit", unit),
		zap.String("value", res.Val.String()),
		zap.Bool("invisible", res.Invisible))
}

// FormatValues renders values for trace output
func FormatValues(vals []types.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
