package logx

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONWithCaller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{})
	logger.Info().Str("tool", "get_product").Msg("tool executed")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	for _, key := range []string{"level", "time", "caller", "message", "tool"} {
		if _, ok := event[key]; !ok {
			t.Fatalf("log event missing %q: %v", key, event)
		}
	}
}

func TestNewLevels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	quietLogger := New(&quiet, Config{})
	quietLogger.Debug().Msg("hidden")
	if quiet.Len() != 0 {
		t.Fatalf("debug event written at info level: %q", quiet.String())
	}

	var verbose bytes.Buffer
	verboseLogger := New(&verbose, Config{Debug: true})
	verboseLogger.Debug().Msg("shown")
	if !strings.Contains(verbose.String(), "shown") {
		t.Fatalf("debug event missing: %q", verbose.String())
	}
}

func TestNewAlsoWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "agent.log")
	var buf bytes.Buffer
	logger := New(&buf, Config{File: path})
	logger.Info().Msg("to both")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "to both") || !strings.Contains(buf.String(), "to both") {
		t.Fatalf("file=%q writer=%q", raw, buf.String())
	}
}
