package simlog

import "github.com/sirupsen/logrus"

// Logger gates logrus output by simlog's five-level threshold, adding the
// "message" level logrus itself does not have.
type Logger struct {
	threshold Level
	base      *logrus.Logger
}

// New returns a Logger that writes through base, suppressing anything
// below threshold.
func New(base *logrus.Logger, threshold Level) *Logger {
	base.SetLevel(threshold.logrusLevel())
	return &Logger{threshold: threshold, base: base}
}

func (l *Logger) enabled(level Level) bool {
	return level >= l.threshold
}

// Debugf logs at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.enabled(LevelDebug) {
		l.base.Debugf(format, args...)
	}
}

// Infof logs at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.enabled(LevelInfo) {
		l.base.Infof(format, args...)
	}
}

// Messagef logs at LevelMessage: user-facing progress, coarser than Info.
func (l *Logger) Messagef(format string, args ...interface{}) {
	if l.enabled(LevelMessage) {
		l.base.Infof(format, args...)
	}
}

// Warningf logs at LevelWarning.
func (l *Logger) Warningf(format string, args ...interface{}) {
	if l.enabled(LevelWarning) {
		l.base.Warnf(format, args...)
	}
}

// Errorf logs at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.enabled(LevelError) {
		l.base.Errorf(format, args...)
	}
}
