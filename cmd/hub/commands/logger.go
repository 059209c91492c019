package commands

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// logrusLogger adapts a logrus logger to hub.Logger.
type logrusLogger struct {
	log *logrus.Logger
}

var _ hub.Logger = (*logrusLogger)(nil)

// NewLogger returns a hub.Logger writing text logs to w. Debug messages are
// only emitted when verbose is set.
func NewLogger(w io.Writer, verbose bool) hub.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return &logrusLogger{log: log}
}

func (l *logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Error(msg)
}
