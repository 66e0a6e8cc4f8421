package promdata

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")

	SetLogLevel("debug")
	if getLevel() != LevelDebug {
		t.Fatalf("level = %v, want debug", getLevel())
	}
	SetLogLevel("WARNING")
	if getLevel() != LevelWarn {
		t.Fatalf("level = %v, want warn", getLevel())
	}
	// Unknown names leave the level alone.
	SetLogLevel("loud")
	if getLevel() != LevelWarn {
		t.Fatalf("unknown level name changed level to %v", getLevel())
	}
}

func TestErrorfAlwaysEmits(t *testing.T) {
	var buf bytes.Buffer
	baseLogger.SetOutput(&buf)
	defer baseLogger.SetOutput(os.Stderr)
	defer SetLogLevel("info")

	// Even at the quietest level, Errorf gets through; Infof does not.
	SetLogLevel("error")
	Infof("suppressed line")
	Errorf("readdir failed: %s", "no such directory")

	out := buf.String()
	if strings.Contains(out, "suppressed line") {
		t.Fatalf("info emitted at error level: %q", out)
	}
	if !strings.Contains(out, "[ERROR] readdir failed: no such directory") {
		t.Fatalf("missing error line: %q", out)
	}
}
