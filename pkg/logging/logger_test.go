package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"info", InfoLevel},
		{"WARN", WarnLevel},
		{"warn", WarnLevel},
		{"WARNING", WarnLevel},
		{"warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel}, // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		f := String("key", "value")
		if f.Key != "key" || f.Value != "value" {
			t.Errorf("String field = %+v", f)
		}
	})

	t.Run("Int", func(t *testing.T) {
		f := Int("count", 42)
		if f.Key != "count" || f.Value != 42 {
			t.Errorf("Int field = %+v", f)
		}
	})

	t.Run("Error", func(t *testing.T) {
		err := errors.New("boom")
		f := Error(err)
		if f.Key != "error" || f.Value != "boom" {
			t.Errorf("Error field = %+v", f)
		}
	})

	t.Run("Stage", func(t *testing.T) {
		f := Stage("cellnet")
		if f.Key != "stage" || f.Value != "cellnet" {
			t.Errorf("Stage field = %+v", f)
		}
	})

	t.Run("ElementKind", func(t *testing.T) {
		f := ElementKind("beam")
		if f.Key != "kind" || f.Value != "beam" {
			t.Errorf("ElementKind field = %+v", f)
		}
	})
}

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("graph built", Int("vertices", 4), Stage("graph"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %q, want INFO", entry.Level)
	}
	if entry.Message != "graph built" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Fields["stage"] != "graph" {
		t.Errorf("Fields = %v", entry.Fields)
	}
	if entry.Fields["vertices"] != float64(4) {
		t.Errorf("Fields = %v", entry.Fields)
	}
}

func TestJSONLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("Low-level messages leaked: %s", output)
	}
	if !strings.Contains(output, "visible") {
		t.Errorf("Warn message missing: %s", output)
	}
}

func TestJSONLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("pipeline"))
	child.Info("stage done", Stage("elements"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}
	if entry.Fields["component"] != "pipeline" {
		t.Errorf("Pre-set field missing: %v", entry.Fields)
	}
	if entry.Fields["stage"] != "elements" {
		t.Errorf("Call field missing: %v", entry.Fields)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic and must absorb everything.
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
	logger.With(String("k", "v")).Info("e")
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "model built", Stage("pipeline"))
	time.Sleep(time.Millisecond)
	timer.End()

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Errorf("Timed entry missing latency: %v", entry.Fields)
	}
}
