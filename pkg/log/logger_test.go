package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	logger := New("test")

	logger.Info("hidden at default level")
	if strings.Contains(buf.String(), "hidden at default level") {
		t.Errorf("Expected info message to be filtered at notice level, got %q", buf.String())
	}

	logger.Noticef("parsed %d objects", 3)
	if !strings.Contains(buf.String(), "parsed 3 objects") {
		t.Errorf("Expected notice message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[test]") {
		t.Errorf("Expected module name in output, got %q", buf.String())
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("bvh depth %d", 7)
	if !strings.Contains(buf.String(), "bvh depth 7") {
		t.Errorf("Expected debug message after SetLevel(Debug), got %q", buf.String())
	}

	buf.Reset()
	SetLevel(Error)
	logger.Warning("dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected warning to be filtered at error level, got %q", buf.String())
	}
}
