package runner

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kvit-s/tokpatch/internal/patch"
)

// Logger provides structured logging for patch runs.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a Logger that appends JSON records to logPath.
// If logPath is empty, logging is disabled.
func NewLogger(logPath string) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// RunStarted logs the beginning of a patch run.
func (l *Logger) RunStarted(file string, hunks int) {
	l.zap.Info("run started",
		zap.String("file", file),
		zap.Int("hunks", hunks),
	)
}

// HunkOutcome logs the terminal state of one hunk.
func (l *Logger) HunkOutcome(o patch.Outcome) {
	if o.Applied() {
		l.zap.Info("hunk applied",
			zap.Int("hunk", o.Index+1),
			zap.String("description", o.Description),
			zap.String("mode", o.Mode.String()),
			zap.Int("line", o.Span.Start+1),
			zap.Int("candidates", o.Candidates),
		)
		return
	}
	l.zap.Info("hunk failed",
		zap.Int("hunk", o.Index+1),
		zap.String("description", o.Description),
		zap.String("reason", o.Reason),
	)
}

// RunFinished logs the end of a run and where the output went.
func (l *Logger) RunFinished(applied, total int, output string) {
	l.zap.Info("run finished",
		zap.Int("applied", applied),
		zap.Int("total", total),
		zap.String("output", output),
	)
}

// RunFailed logs a run that was aborted before any hunk was applied.
func (l *Logger) RunFailed(file string, err error) {
	l.zap.Info("run failed",
		zap.String("file", file),
		zap.Error(err),
	)
}
