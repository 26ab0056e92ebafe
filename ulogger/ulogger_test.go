package ulogger_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ordishs/gocore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torrejonv/movecall/ulogger"
)

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var lines []map[string]interface{}

	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		line := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), scanner.Text())

		lines = append(lines, line)
	}

	return lines
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level           string
		expectedOutputs map[string]bool
	}{
		{
			level: "DEBUG",
			expectedOutputs: map[string]bool{
				"DEBUG": true,
				"INFO":  true,
				"WARN":  true,
				"ERROR": true,
			},
		},
		{
			level: "INFO",
			expectedOutputs: map[string]bool{
				"DEBUG": false,
				"INFO":  true,
				"WARN":  true,
				"ERROR": true,
			},
		},
		{
			level: "WARN",
			expectedOutputs: map[string]bool{
				"DEBUG": false,
				"INFO":  false,
				"WARN":  true,
				"ERROR": true,
			},
		},
		{
			level: "ERROR",
			expectedOutputs: map[string]bool{
				"DEBUG": false,
				"INFO":  false,
				"WARN":  false,
				"ERROR": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer

			logger := ulogger.New("test-service",
				ulogger.WithLevel(tt.level),
				ulogger.WithWriter(&buf),
				ulogger.WithLoggerType("zerolog"),
				ulogger.WithPrettyLogs(false),
			)

			logger.Debugf("DEBUG message")
			logger.Infof("INFO message")
			logger.Warnf("WARN message")
			logger.Errorf("ERROR message")

			output := buf.String()

			for level, expected := range tt.expectedOutputs {
				assert.Equal(t, expected, strings.Contains(output, level+" message"), "level %s", level)
			}
		})
	}
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("executor",
		ulogger.WithLevel("INFO"),
		ulogger.WithWriter(&buf),
		ulogger.WithLoggerType("zerolog"),
		ulogger.WithPrettyLogs(false),
	)

	logger.Infof("selected gas coin %s with balance %d", "0x2", 1000)
	logger.Warnf("reference gas price is %d", 750)

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "selected gas coin 0x2 with balance 1000", lines[0]["message"])
	assert.Equal(t, "executor", lines[0]["service"])
	assert.NotEmpty(t, lines[0]["caller"])

	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "reference gas price is 750", lines[1]["message"])
}

func TestPrettyLogging(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer

	logger := ulogger.New("wallet",
		ulogger.WithLevel("DEBUG"),
		ulogger.WithWriter(&buf),
		ulogger.WithLoggerType("zerolog"),
		ulogger.WithPrettyLogs(true),
	)

	logger.Infof("loaded %d keys", 2)

	output := buf.String()
	assert.Contains(t, output, "| INFO  |")
	assert.Contains(t, output, "wallet")
	assert.Contains(t, output, "loaded 2 keys")
	assert.NotContains(t, output, "\x1b[")
}

func TestChildLoggerInheritsOptions(t *testing.T) {
	var buf bytes.Buffer

	parent := ulogger.New("parent",
		ulogger.WithLevel("WARN"),
		ulogger.WithWriter(&buf),
		ulogger.WithLoggerType("zerolog"),
		ulogger.WithPrettyLogs(false),
	)

	child := parent.New("child")
	assert.Equal(t, int(gocore.WARN), child.LogLevel())

	child.Infof("suppressed")
	child.Warnf("visible")

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "child", lines[0]["service"])
	assert.Equal(t, "visible", lines[0]["message"])

	dup := child.Duplicate(ulogger.WithLevel("DEBUG"))
	assert.Equal(t, int(gocore.DEBUG), dup.LogLevel())
}

func TestSetLogLevel(t *testing.T) {
	logger := ulogger.NewZeroLogger("svc", ulogger.WithWriter(&bytes.Buffer{}), ulogger.WithPrettyLogs(false))

	for level, expected := range map[string]int{
		"debug":   int(gocore.DEBUG),
		"INFO":    int(gocore.INFO),
		"warn":    int(gocore.WARN),
		"ERROR":   int(gocore.ERROR),
		"unknown": int(gocore.INFO),
	} {
		logger.SetLogLevel(level)
		assert.Equal(t, expected, logger.LogLevel(), level)
	}
}

func TestNoopLogger(t *testing.T) {
	logger := ulogger.New("noop", ulogger.WithLoggerType("noop"))
	_, ok := logger.(ulogger.TestLogger)
	require.True(t, ok)

	// must not panic
	logger.Infof("ignored %d", 1)
	logger.New("other").Errorf("ignored")
}

type recordingT struct {
	mu    sync.Mutex
	lines []string
	fatal bool
}

func (r *recordingT) Logf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.Logf(format, args...)
	r.fatal = true
}

func TestVerboseTestLogger(t *testing.T) {
	rt := &recordingT{}
	logger := ulogger.NewVerboseTestLogger(rt)

	logger.Debugf("debug %d", 1)
	logger.New("node").Warnf("warn %s", "x")
	logger.Fatalf("fatal")

	require.Len(t, rt.lines, 3)
	assert.Equal(t, "[DEBUG] [test] debug 1", rt.lines[0])
	assert.Equal(t, "[WARN] [node] warn x", rt.lines[1])
	assert.Equal(t, "[FATAL] [test] fatal", rt.lines[2])
	assert.True(t, rt.fatal)

	nilLogger := ulogger.NewVerboseTestLogger(nil)
	nilLogger.Infof("no test attached")
}
