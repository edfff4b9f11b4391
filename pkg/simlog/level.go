// Package simlog provides the leveled, human-readable progress logger for a
// circuitsim run, layered on logrus. It is distinct from pkg/logging, which
// emits machine-readable structured Events; simlog is what a human watching
// a terminal or a log file actually reads.
package simlog

import "github.com/sirupsen/logrus"

// Level is an ordinal logging threshold. logrus has no native "message"
// level, so it is inserted here between Info and Warning: coarser than
// per-line info logging but not severe enough to be a warning.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelMessage
	LevelWarning
	LevelError
)

// ParseLevel maps a --log flag value to a Level. An unrecognised name
// defaults to LevelInfo.
func ParseLevel(name string) Level {
	switch name {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "message":
		return LevelMessage
	case "warning":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelMessage:
		return "message"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// logrusLevel maps a Level to the nearest native logrus.Level for the
// underlying formatter/output decision; LevelMessage rides on logrus's Info
// severity since logrus itself has no concept of the distinction.
func (l Level) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo, LevelMessage:
		return logrus.InfoLevel
	case LevelWarning:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
