package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	logger := New("test")
	logger.Info("hidden")
	logger.Notice("visible")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Fatalf("expected only the notice message to be logged; got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("value: %d", 42)
	if out := buf.String(); !strings.Contains(out, "value: 42") || !strings.Contains(out, "[test]") {
		t.Fatalf("expected debug message tagged with the module name; got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	type spec struct {
		name     string
		expLevel Level
		expErr   bool
	}
	specs := []spec{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{"notice", Notice, false},
		{"warn", Warning, false},
		{"error", Error, false},
		{"verbose", Notice, true},
	}

	for index, s := range specs {
		level, err := ParseLevel(s.name)
		if (err != nil) != s.expErr {
			t.Fatalf("[spec %d] expected error to be %t; got %v", index, s.expErr, err)
		}
		if level != s.expLevel {
			t.Fatalf("[spec %d] expected level %d; got %d", index, s.expLevel, level)
		}
	}
}
