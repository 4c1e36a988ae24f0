// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(42), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.toSlogLevel(); got != tt.want {
			t.Errorf("toSlogLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  dir,
		Service: "drift-test",
		Quiet:   true,
	})
	logger.Info("run complete", "issues", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected one log file, got %v (err=%v)", entries, err)
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "drift-test_") || !strings.HasSuffix(name, ".log") {
		t.Errorf("Unexpected log file name %q", name)
	}

	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(content), "run complete") {
		t.Errorf("Log file missing message: %s", content)
	}
	if !strings.Contains(string(content), `"service":"drift-test"`) {
		t.Errorf("Log file missing service attribute: %s", content)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{
		Level:    LevelWarn,
		Quiet:    true,
		Service:  "drift-test",
		Exporter: exporter,
	})
	defer logger.Close()

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept", "file", "api.md")
	logger.Error("kept as well")

	// Export is async; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(exporter.Entries()) >= 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	entries := exporter.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 exported entries, got %d", len(entries))
	}
	if entries[0].Message != "kept" || entries[0].Level != LevelWarn {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[0].Attrs["file"] != "api.md" {
		t.Errorf("Expected file attr, got %v", entries[0].Attrs)
	}
}

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{Level: LevelInfo, LogDir: dir, Service: "drift-test", Quiet: true})

	child := logger.With("run_id", "r-1")
	child.Info("child message")
	logger.Info("parent message")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("Expected one log file")
	}
	content, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	text := string(content)

	childLine := ""
	parentLine := ""
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "child message") {
			childLine = line
		}
		if strings.Contains(line, "parent message") {
			parentLine = line
		}
	}
	if !strings.Contains(childLine, `"run_id":"r-1"`) {
		t.Errorf("Child entry missing run_id: %s", childLine)
	}
	if strings.Contains(parentLine, "run_id") {
		t.Errorf("Parent entry should not carry child attrs: %s", parentLine)
	}
}

func TestNopExporter(t *testing.T) {
	var exporter NopExporter
	if err := exporter.Export(context.Background(), LogEntry{}); err != nil {
		t.Errorf("Export: %v", err)
	}
	if err := exporter.Flush(context.Background()); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := exporter.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestArgsToMap(t *testing.T) {
	m := argsToMap([]any{"a", 1, "b", "two", 3, "orphan-key-dropped"})
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("Unexpected map: %v", m)
	}
	if len(m) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(m))
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/logs"); got != filepath.Join(home, "logs") {
		t.Errorf("expandPath(~/logs) = %q", got)
	}
	if got := expandPath("/var/log"); got != "/var/log" {
		t.Errorf("expandPath(/var/log) = %q", got)
	}
}
