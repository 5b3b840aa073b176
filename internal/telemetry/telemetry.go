// Package telemetry builds the structured logger cmd/resctx uses: zap for
// the sink, bridged to logr.Logger via go-logr/zapr. The library packages
// take no logger and do not log. Grounded on Azure-eno's
// internal/logging/telemetry.go, which does the same bridging for its
// reconciler.
package telemetry

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a logr.Logger backed by zap. verbose selects zap's
// development config (human-readable, debug level, stack traces on
// warnings) over its production config (JSON, info level).
func NewLogger(verbose bool) (logr.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
	}
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}
