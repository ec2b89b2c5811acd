// Copyright (c) 2024 Wiregram Authors

package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/k0kubun/colorstring"
	"github.com/mattn/go-isatty"
)

type LogLevel int

const (
	DebugLevel LogLevel = iota + 1
	InfoLevel
	WarnLevel
	ErrorLevel
	NoLevel
)

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case NoLevel:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

func levelColor(l LogLevel) string {
	switch l {
	case DebugLevel:
		return "dark_gray"
	case InfoLevel:
		return "green"
	case WarnLevel:
		return "yellow"
	case ErrorLevel:
		return "red"
	default:
		return "white"
	}
}

// Logger is a small leveled logger with an optional prefix per subsystem.
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	prefix string
	out    io.Writer
	color  bool
}

func NewLogger(prefix string) *Logger {
	return &Logger{
		level:  InfoLevel,
		prefix: prefix,
		out:    os.Stderr,
		color:  isatty.IsTerminal(os.Stderr.Fd()),
	}
}

func (l *Logger) SetLevel(level LogLevel) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	return l
}

func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.color = false
	return l
}

func (l *Logger) log(level LogLevel, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	tag := fmt.Sprintf("[%s]", level)
	if l.color {
		tag = colorstring.Color("[" + levelColor(level) + "]" + tag)
	}

	fmt.Fprintf(l.out, "%s %s %s%s\n",
		time.Now().Format("2006-01-02 15:04:05.000"),
		tag,
		prefixed(l.prefix),
		fmt.Sprint(args...))
}

func prefixed(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + ": "
}

func (l *Logger) Debug(args ...any) {
	l.log(DebugLevel, args...)
}

func (l *Logger) Info(args ...any) {
	l.log(InfoLevel, args...)
}

func (l *Logger) Warn(args ...any) {
	l.log(WarnLevel, args...)
}

func (l *Logger) Error(args ...any) {
	l.log(ErrorLevel, args...)
}
