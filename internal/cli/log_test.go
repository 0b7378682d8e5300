package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	// Should contain the message
	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestSearchProgress(t *testing.T) {
	var buf bytes.Buffer
	report := searchProgress(newLogger(&buf, log.DebugLevel))

	for done := 1; done <= 100; done++ {
		report(done, 100)
	}

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	if lines != 10 {
		t.Errorf("got %d progress lines, want 10", lines)
	}
}

func TestSearchProgressSmallTotal(t *testing.T) {
	var buf bytes.Buffer
	report := searchProgress(newLogger(&buf, log.DebugLevel))

	for done := 1; done <= 3; done++ {
		report(done, 3)
	}

	if lines := bytes.Count(buf.Bytes(), []byte("\n")); lines != 3 {
		t.Errorf("got %d progress lines, want 3", lines)
	}
}

func TestSearchProgressQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	searchProgress(newLogger(&buf, log.InfoLevel))(10, 10)
	if buf.Len() != 0 {
		t.Error("progress should only log at debug level")
	}
}
