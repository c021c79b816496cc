// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ObservedLogger returns a debug-level logger and the entries it records.
func ObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// Reasons returns the "reason" field of every entry logged with msg, in
// order. Behaviors log ignored input this way.
func Reasons(logs *observer.ObservedLogs, msg string) []string {
	entries := logs.FilterMessage(msg).All()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprint(e.ContextMap()["reason"]))
	}
	return out
}

// WriteFile writes content to name in a fresh temporary directory and
// returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
