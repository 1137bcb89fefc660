// Package logger предоставляет единый интерфейс логирования приложения
// с реализациями поверх zap и log/slog.
package logger

// Logger - интерфейс логгера, который принимают все слои приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}
