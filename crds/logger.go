package crds

// Logger is the minimal logging collaborator InsertValues reports
// rejected/failed inserts through. Logging is an external concern of
// the core (see package doc); the concrete implementation — structured,
// leveled, backed by whatever the embedding service uses — is injected
// by the caller. A nil Logger is valid and silences all reporting.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}
