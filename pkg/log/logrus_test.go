package log

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleFormatterLayout(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLoggerWithWriter("debug", &buf)

	logger.WithFields(map[string]interface{}{"topic": "/cmd_vel", "command_id": "abc"}).Infof("published %d", 1)

	line := buf.String()
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\.\d{6} \[INF\] published 1 command_id=abc topic=/cmd_vel\n$`), line)
}

func TestLevelTruncationAndFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLoggerWithWriter("warn", &buf)

	logger.Infof("hidden")
	logger.Warnf("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WAR] shown")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLoggerWithWriter("verbose", &buf)

	logger.Debugf("debug line")
	logger.Infof("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestWithFieldDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLoggerWithWriter("info", &buf)

	logger.WithField("k", "v").Infof("child")
	logger.Infof("parent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "k=v")
	assert.NotContains(t, string(lines[1]), "k=v")
}

func TestNewLogrusLoggerWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := NewLogrusLogger("info", dir)
	require.NoError(t, err)

	logger.Infof("to file")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INF] to file")
}
