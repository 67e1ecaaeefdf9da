// Package log wraps the node's structured logger and adapts it to the
// small collaborator interfaces the rest of this module expects,
// so that crds.Table and the gossip service never import zap directly.
package log

import (
	"go.uber.org/zap"
)

// Logger is a leveled, structured sink. Its shape mirrors the logging
// call sites used throughout this module: a message followed by
// alternating key/value pairs.
type Logger struct {
	z *zap.SugaredLogger
}

// New builds a production logger: JSON encoding to stderr, info level
// and above.
func New() (*Logger, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{z: zl.Sugar()}, nil
}

// NewDevelopment builds a console-encoded, debug-level logger suitable
// for local runs of cmd/crdsnode.
func NewDevelopment() (*Logger, error) {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{z: zl.Sugar()}, nil
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.z.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.z.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.z.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.z.Errorw(msg, kv...) }
func (l *Logger) Crit(msg string, kv ...interface{})  { l.z.Fatalw(msg, kv...) }

// Sync flushes any buffered log entries. Callers defer this from main.
func (l *Logger) Sync() error { return l.z.Sync() }

// CrdsAdapter satisfies crds.Logger by formatting printf-style calls
// through the structured logger, since the table's own Logger interface
// predates and is independent of whichever backend a given deployment
// plugs in.
type CrdsAdapter struct {
	l *Logger
}

// NewCrdsAdapter wraps l for use as a crds.Logger.
func NewCrdsAdapter(l *Logger) *CrdsAdapter {
	return &CrdsAdapter{l: l}
}

func (a *CrdsAdapter) Debugf(format string, args ...interface{}) {
	a.l.z.Debugf(format, args...)
}

func (a *CrdsAdapter) Warnf(format string, args ...interface{}) {
	a.l.z.Warnf(format, args...)
}
