package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("level %q parsed as %v, want %v", name, got, want)
		}
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message passed warn level")
	}
	if !strings.Contains(out, `"message":"shown"`) {
		t.Error("warn message missing from output:", out)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(Config{Level: "debug", Output: &buf}), "tree")
	log.Debug().Msg("loaded")
	if !strings.Contains(buf.String(), `"component":"tree"`) {
		t.Error("component field missing:", buf.String())
	}
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Pretty: true, Output: &buf})
	log.Info().Str("prefix", "REQ").Msg("loaded")
	out := buf.String()
	if strings.HasPrefix(out, "{") || !strings.Contains(out, "loaded") || !strings.Contains(out, "prefix=") {
		t.Error("console output not human readable:", out)
	}
}
