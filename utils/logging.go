package utils

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
)

// Level filters what reaches the loggers. Errors are always written.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// Info logs go to stdout, errors to stderr. InitLogging re-applies the
// production flags; the defaults keep the loggers usable from tests.
var (
	InfoLogger  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)

	level atomic.Int32
)

func init() {
	level.Store(int32(LevelInfo))
}

// ParseLevel maps LOG_LEVEL values onto a Level
func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info or error)", value)
	}
}

// String returns the LOG_LEVEL spelling of l
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// InitLogging sets up the stdout/stderr loggers and the minimum level
func InitLogging(minLevel Level) {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	SetLevel(minLevel)

	log.SetOutput(os.Stderr)
	log.SetPrefix("SYSTEM: ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

// SetLevel changes the minimum level at runtime
func SetLevel(l Level) {
	level.Store(int32(l))
}

// CurrentLevel returns the minimum level being logged
func CurrentLevel() Level {
	return Level(level.Load())
}

// Enabled reports whether messages at l are written
func Enabled(l Level) bool {
	return l >= CurrentLevel()
}

// LogError logs errors with context to stderr
func LogError(context string, err error, metadata ...interface{}) {
	if err != nil {
		args := []interface{}{context, err}
		args = append(args, metadata...)
		ErrorLogger.Println(args...)
	}
}

// LogInfo logs informational messages to stdout
func LogInfo(message string, metadata ...interface{}) {
	if !Enabled(LevelInfo) {
		return
	}
	args := []interface{}{message}
	args = append(args, metadata...)
	InfoLogger.Println(args...)
}

// LogDebug logs diagnostic messages to stdout when LOG_LEVEL=debug
func LogDebug(message string, metadata ...interface{}) {
	if !Enabled(LevelDebug) {
		return
	}
	args := []interface{}{message}
	args = append(args, metadata...)
	DebugLogger.Println(args...)
}

// LogRequestError logs errors with request context to stderr
func LogRequestError(c *fiber.Ctx, context string, err error, metadata ...interface{}) {
	if err != nil {
		requestID, _ := c.Locals(RequestIDKey).(string)

		args := []interface{}{
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"context", context,
			"error", err,
		}
		args = append(args, metadata...)
		ErrorLogger.Println(args...)
	}
}
