// Package common provides shared constants, types, and utilities
// used across the Twingate Tray application.
package common

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel maps a level name to a LogLevel. Unknown names map to LevelInfo.
func ParseLogLevel(name string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// AppLogger writes levelled log lines to stdout and, optionally, to a
// size-rotated file under the config directory.
type AppLogger struct {
	mu          sync.Mutex
	level       LogLevel
	out         io.Writer
	file        *os.File
	filePath    string
	maxFileSize int64
	maxBackups  int
	now         func() time.Time
}

// LogConfig holds configuration options for the logger.
type LogConfig struct {
	Level       LogLevel
	EnableFile  bool
	MaxFileSize int64 // bytes; 0 keeps the default
	MaxBackups  int   // rotated files kept; 0 keeps the default
}

const (
	defaultMaxFileSize = 5 * 1024 * 1024
	defaultMaxBackups  = 5
)

var (
	defaultLogger *AppLogger
	loggerOnce    sync.Once
)

// NewLogger creates a logger writing to w at the given level.
func NewLogger(w io.Writer, level LogLevel) *AppLogger {
	return &AppLogger{
		level:       level,
		out:         w,
		maxFileSize: defaultMaxFileSize,
		maxBackups:  defaultMaxBackups,
		now:         time.Now,
	}
}

// GetLogger returns the singleton logger instance.
func GetLogger() *AppLogger {
	loggerOnce.Do(func() {
		defaultLogger = NewLogger(os.Stdout, LevelInfo)
	})
	return defaultLogger
}

// InitLogger configures the default logger.
// Should be called early in application startup.
func InitLogger(config LogConfig) error {
	logger := GetLogger()
	logger.SetLevel(config.Level)

	logger.mu.Lock()
	if config.MaxFileSize > 0 {
		logger.maxFileSize = config.MaxFileSize
	}
	if config.MaxBackups > 0 {
		logger.maxBackups = config.MaxBackups
	}
	logger.mu.Unlock()

	if !config.EnableFile {
		return nil
	}
	logDir := GetLogDir()
	if logDir == "" {
		return fmt.Errorf("cannot resolve log directory")
	}
	return logger.OpenFile(filepath.Join(logDir, LogFileName))
}

// SetLevel sets the minimum log level.
func (l *AppLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum log level.
func (l *AppLogger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetOutput replaces the console destination. File output, if any, is kept.
func (l *AppLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// OpenFile additionally writes log lines to path, rotating it first when it
// has outgrown the size limit. Symlinked directories and files are refused.
func (l *AppLogger) OpenFile(path string) error {
	dir := filepath.Dir(path)
	if isSymlink(dir) {
		return fmt.Errorf("security error: log directory is a symlink")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	if isSymlink(path) {
		return fmt.Errorf("security error: log file is a symlink")
	}

	l.rotateIfNeeded(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	l.filePath = path
	return nil
}

// rotateIfNeeded compresses path into a timestamped .gz backup once it
// reaches maxFileSize and prunes backups beyond maxBackups.
func (l *AppLogger) rotateIfNeeded(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() < l.maxFileSize {
		return
	}

	l.mu.Lock()
	if l.file != nil && l.filePath == path {
		l.file.Close()
		l.file = nil
	}
	stamp := l.now().Format("20060102-150405")
	l.mu.Unlock()

	backup := fmt.Sprintf("%s.%s.gz", path, stamp)
	if err := gzipFile(path, backup); err != nil {
		os.Rename(path, strings.TrimSuffix(backup, ".gz"))
	} else {
		os.Remove(path)
	}

	l.pruneBackups(path)
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// pruneBackups removes the oldest rotated files of path beyond maxBackups.
func (l *AppLogger) pruneBackups(path string) {
	matches, err := filepath.Glob(path + ".*")
	if err != nil || len(matches) <= l.maxBackups {
		return
	}

	modTime := func(p string) time.Time {
		info, err := os.Stat(p)
		if err != nil {
			return time.Time{}
		}
		return info.ModTime()
	}
	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]).Before(modTime(matches[j]))
	})

	for _, old := range matches[:len(matches)-l.maxBackups] {
		os.Remove(old)
	}
}

// log formats and writes one line. depth is the number of frames between the
// public entry point and the caller being reported.
func (l *AppLogger) log(depth int, level LogLevel, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(depth); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}

	line := fmt.Sprintf("%s [%s] %s: %s\n", l.now().Format("2006/01/02 15:04:05"), level, caller, text)
	if l.out != nil {
		io.WriteString(l.out, line)
	}
	if l.file != nil {
		io.WriteString(l.file, line)
	}
}

// Debug logs a debug message.
func (l *AppLogger) Debug(msg string, args ...interface{}) {
	l.log(2, LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *AppLogger) Info(msg string, args ...interface{}) {
	l.log(2, LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *AppLogger) Warn(msg string, args ...interface{}) {
	l.log(2, LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *AppLogger) Error(msg string, args ...interface{}) {
	l.log(2, LevelError, msg, args...)
}

// Shorthand functions for default logger.

// LogDebug logs a debug message to the default logger.
func LogDebug(msg string, args ...interface{}) {
	GetLogger().log(2, LevelDebug, msg, args...)
}

// LogInfo logs an info message to the default logger.
func LogInfo(msg string, args ...interface{}) {
	GetLogger().log(2, LevelInfo, msg, args...)
}

// LogWarn logs a warning message to the default logger.
func LogWarn(msg string, args ...interface{}) {
	GetLogger().log(2, LevelWarn, msg, args...)
}

// LogError logs an error message to the default logger.
func LogError(msg string, args ...interface{}) {
	GetLogger().log(2, LevelError, msg, args...)
}

// Close closes the log file. Should be called on application shutdown.
func (l *AppLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// CloseLogger closes the default logger.
func CloseLogger() error {
	return GetLogger().Close()
}
