package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLog_WritesSortedDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.log")
	logger, err := New(Config{
		Enabled:   true,
		Level:     LevelDebug,
		FilePath:  path,
		MaxSizeMB: 1,
		MaxFiles:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer logger.Close()

	logger.Log(EventPoint, map[string]interface{}{
		"y":       10,
		"x":       2000,
		"display": "DP-2",
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "[POINT]") {
		t.Fatalf("missing event tag: %q", line)
	}
	if !strings.Contains(line, `display="DP-2" x=2000 y=10`) {
		t.Fatalf("details not sorted or formatted: %q", line)
	}
}

func TestLog_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.log")
	logger, err := New(Config{
		Enabled:   true,
		Level:     LevelInfo,
		FilePath:  path,
		MaxSizeMB: 1,
		MaxFiles:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer logger.Close()

	// Debug-level query events are filtered at info.
	logger.Log(EventDisplays, nil)
	logger.Log(EventReconfigure, map[string]interface{}{"displays": 2})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if strings.Contains(string(data), "[DISPLAYS]") {
		t.Fatalf("debug event not filtered: %q", string(data))
	}
	if !strings.Contains(string(data), "[RECONFIGURE]") {
		t.Fatalf("info event missing: %q", string(data))
	}
}

func TestLog_DisabledLoggerIsNoOp(t *testing.T) {
	logger, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Log(EventStatus, nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	var nilLogger *Logger
	nilLogger.Log(EventStatus, nil) // must not panic
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != LevelDebug {
		t.Fatalf("debug parse failed")
	}
	if ParseLevel("WARNING") != LevelWarn {
		t.Fatalf("warning parse failed")
	}
	if ParseLevel("bogus") != LevelInfo {
		t.Fatalf("unknown level should default to info")
	}
}
