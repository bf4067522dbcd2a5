//  Copyright (c) 2014 Couchbase, Inc.

// Package xlog provides leveled logging for the allocator, independent of
// whatever logging the embedding application uses.
//
// The allocator's failure taxonomy (see malloc/log.go) never routes an
// error through a log call -- a caller either gets a value back or the
// allocator panics on a programmer mistake. The only two things this
// package ever logs are an operator-facing warning (an arena's OS
// reservation failed) and a diagnostic trace (a request exhausted an
// arena). There is nothing in this domain that is "fatal" (that's a
// panic), an "error" (that's a return value), or merely "informational"
// or "debug" in the generic sense the teacher's logger supports, so the
// level set below only carries what's actually exercised: Ignore, Warn,
// and Verbose.
package xlog

import "io"
import "os"
import "fmt"
import "time"
import "strings"

func init() {
	setts := map[string]interface{}{
		"log.level": "warn",
		"log.file":  "",
	}
	SetLogger(nil, setts)
}

// Logger interface for allocator logging. Applications can supply their
// own implementation via SetLogger, or fall back to defaultLogger.
type Logger interface {
	SetLogLevel(string)
	Warnf(format string, v ...interface{})
	Verbosef(format string, v ...interface{})
	Printlf(loglevel LogLevel, format string, v ...interface{})
}

// LogLevel defines allocator log level.
type LogLevel int

const (
	logLevelIgnore LogLevel = iota + 1
	logLevelWarn
	logLevelVerbose
)

var log Logger

// SetLogger installs logger, or a default stderr logger configured from
// setts ("log.level", "log.file") when logger is nil.
func SetLogger(logger Logger, setts map[string]interface{}) Logger {
	if logger != nil {
		log = logger
		return log
	}

	var err error
	level := string2logLevel(setts["log.level"].(string))
	logfd := os.Stderr
	if logfile, _ := setts["log.file"].(string); logfile != "" {
		logfd, err = os.OpenFile(logfile, os.O_RDWR|os.O_APPEND, 0660)
		if err != nil {
			if logfd, err = os.Create(logfile); err != nil {
				panic(err)
			}
		}
	}
	log = &defaultLogger{level: level, output: logfd}
	return log
}

// defaultLogger writes to output (os.Stderr unless reconfigured) filtered
// by level.
type defaultLogger struct {
	level  LogLevel
	output io.Writer
}

func (l *defaultLogger) SetLogLevel(level string) {
	l.level = string2logLevel(level)
}

func (l *defaultLogger) Warnf(format string, v ...interface{}) {
	l.Printlf(logLevelWarn, format, v...)
}

func (l *defaultLogger) Verbosef(format string, v ...interface{}) {
	l.Printlf(logLevelVerbose, format, v...)
}

func (l *defaultLogger) Printlf(level LogLevel, format string, v ...interface{}) {
	if l.canlog(level) {
		ts := time.Now().Format("2006-01-02T15:04:05.999Z-07:00")
		fmt.Fprintf(l.output, ts+" ["+level.String()+"] "+format+"\n", v...)
	}
}

func (l *defaultLogger) canlog(level LogLevel) bool {
	return level <= l.level
}

func (l LogLevel) String() string {
	switch l {
	case logLevelIgnore:
		return "Ignor"
	case logLevelWarn:
		return "Warng"
	case logLevelVerbose:
		return "Verbs"
	}
	panic("unexpected log level")
}

func string2logLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "ignore":
		return logLevelIgnore
	case "warn":
		return logLevelWarn
	case "verbose":
		return logLevelVerbose
	}
	panic("unexpected log level")
}

// Warnf logs at warn level using the package-wide logger.
func Warnf(format string, v ...interface{}) { log.Printlf(logLevelWarn, format, v...) }

// Verbosef logs at verbose level using the package-wide logger.
func Verbosef(format string, v ...interface{}) { log.Printlf(logLevelVerbose, format, v...) }
