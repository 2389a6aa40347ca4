// Package debuglog builds the optional diagnostic logger.
package debuglog

import (
	"go.uber.org/zap"

	"github.com/crategem/crategem/internal/envread"
)

// EnvDebugFilename names the file that receives verbose diagnostic
// output. When unset, diagnostics are discarded.
const EnvDebugFilename = "CRATEGEM_DEBUG_FILENAME"

// New returns a logger writing to the file named by
// CRATEGEM_DEBUG_FILENAME, falling back to the configured filename,
// or a no-op logger when neither is set or the file cannot be opened.
func New(env envread.Env, configured string) *zap.SugaredLogger {
	name, ok := env.LookupEnv(EnvDebugFilename)
	if !ok || name == "" {
		name = configured
	}
	if name == "" {
		return zap.NewNop().Sugar()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{name}
	cfg.ErrorOutputPaths = []string{name}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
