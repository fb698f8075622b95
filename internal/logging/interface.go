package logging

import (
	"github.com/charmbracelet/log"
)

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) LoggerInterface
}

// Wrapper adapts a *log.Logger to LoggerInterface. A nil logger means the global one.
type Wrapper struct {
	logger *log.Logger
}

// NewDefaultLogger wraps the global logger.
func NewDefaultLogger() LoggerInterface {
	return &Wrapper{}
}

func (w *Wrapper) target() *log.Logger {
	if w.logger != nil {
		return w.logger
	}
	return GetLogger()
}

func (w *Wrapper) Debug(msg string, keysAndValues ...interface{}) {
	w.target().Debug(msg, keysAndValues...)
}

func (w *Wrapper) Info(msg string, keysAndValues ...interface{}) {
	w.target().Info(msg, keysAndValues...)
}

func (w *Wrapper) Warn(msg string, keysAndValues ...interface{}) {
	w.target().Warn(msg, keysAndValues...)
}

func (w *Wrapper) Error(msg string, keysAndValues ...interface{}) {
	w.target().Error(msg, keysAndValues...)
}

func (w *Wrapper) With(keysAndValues ...interface{}) LoggerInterface {
	return &Wrapper{logger: w.target().With(keysAndValues...)}
}

// Nop discards everything. Handy as a default when callers pass nil.
type Nop struct{}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}

func (n Nop) With(...interface{}) LoggerInterface { return n }

// OrNop returns l, or a Nop logger when l is nil.
func OrNop(l LoggerInterface) LoggerInterface {
	if l == nil {
		return Nop{}
	}
	return l
}
