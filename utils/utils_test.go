package utils

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLoggers(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prevInfo, prevDebug, prevErr, prevLevel := InfoLogger, DebugLogger, ErrorLogger, CurrentLevel()
	t.Cleanup(func() {
		InfoLogger, DebugLogger, ErrorLogger = prevInfo, prevDebug, prevErr
		SetLevel(prevLevel)
	})

	var info, errs bytes.Buffer
	InfoLogger = log.New(&info, "", 0)
	DebugLogger = log.New(&info, "debug ", 0)
	ErrorLogger = log.New(&errs, "", 0)
	SetLevel(LevelInfo)
	return &info, &errs
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		want  Level
	}{
		{"", LevelInfo},
		{"info", LevelInfo},
		{"DEBUG", LevelDebug},
		{" error ", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}

func TestLogDebug(t *testing.T) {
	info, _ := captureLoggers(t)

	LogDebug("binding", "addr", "0.0.0.0:8000")
	assert.Empty(t, info.String(), "debug output is off at the default level")

	SetLevel(LevelDebug)
	LogDebug("binding", "addr", "0.0.0.0:8000")
	assert.Equal(t, "debug binding addr 0.0.0.0:8000\n", info.String())
}

func TestLogLevelError_SuppressesInfo(t *testing.T) {
	info, errs := captureLoggers(t)
	SetLevel(LevelError)

	LogInfo("server started")
	LogError("BIND", errors.New("address already in use"))

	assert.Empty(t, info.String())
	assert.Equal(t, "BIND address already in use\n", errs.String())
	assert.False(t, Enabled(LevelInfo))
	assert.True(t, Enabled(LevelError))
}

func TestLogInfo(t *testing.T) {
	info, _ := captureLoggers(t)

	LogInfo("server started", "addr", "0.0.0.0:8000")
	assert.Equal(t, "server started addr 0.0.0.0:8000\n", info.String())
}

func TestLogError(t *testing.T) {
	_, errs := captureLoggers(t)

	LogError("BIND", nil)
	assert.Empty(t, errs.String(), "nil errors are not logged")

	LogError("BIND", errors.New("address already in use"), "port", 8000)
	assert.Equal(t, "BIND address already in use port 8000\n", errs.String())
}

func TestLogRequestError(t *testing.T) {
	_, errs := captureLoggers(t)

	app := fiber.New()
	app.Use(RequestID())
	app.Get("/boom", func(c *fiber.Ctx) error {
		LogRequestError(c, "HANDLER", errors.New("kaboom"))
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	logged := errs.String()
	assert.Contains(t, logged, "request_id "+resp.Header.Get(RequestIDHeader))
	assert.Contains(t, logged, "path /boom")
	assert.Contains(t, logged, "error kaboom")
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RequestIDKey).(string))
	})

	t.Run("generates an ID when none is supplied", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("keeps a valid upstream ID", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, id)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, id, resp.Header.Get(RequestIDHeader))
	})

	t.Run("replaces a malformed upstream ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.NotEqual(t, "<script>", resp.Header.Get(RequestIDHeader))
	})
}
