package core

// Logger logs messages locally and to any hooked-up error tracking service.
// Extra args are appended to the local output with %+v formatting.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
