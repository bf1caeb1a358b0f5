package logger

import (
	"fmt"
	"log"
	"strings"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarning
	levelError
)

var currentLevel = levelInfo

func setLevel(name string) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		currentLevel = levelDebug
	case "INFO":
		currentLevel = levelInfo
	case "WARNING", "WARN":
		currentLevel = levelWarning
	case "ERROR":
		currentLevel = levelError
	default:
		currentLevel = levelInfo
	}
}

func output(l level, prefix, format string, args ...interface{}) {
	if l < currentLevel {
		return
	}
	log.Output(3, prefix+" "+fmt.Sprintf(format, args...))
}

// Debugf logs a debug message
func Debugf(format string, args ...interface{}) {
	output(levelDebug, "[DEBUG]", format, args...)
}

// Infof logs an informational message
func Infof(format string, args ...interface{}) {
	output(levelInfo, "[INFO]", format, args...)
}

// Warningf logs a warning message
func Warningf(format string, args ...interface{}) {
	output(levelWarning, "[WARNING]", format, args...)
}

// Errorf logs an error message
func Errorf(format string, args ...interface{}) {
	output(levelError, "[ERROR]", format, args...)
}
