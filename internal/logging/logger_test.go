package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/i474232898/weather-screen/internal/config"
)

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &config.AppConfig{AppEnv: "prod", LogLevel: slog.LevelInfo}, "weather-screen", "1.2.3")

	logger.Debug("hidden")
	logger.Info("hello", "city", "London")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug must be filtered): %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	for k, want := range map[string]string{"msg": "hello", "app": "weather-screen", "version": "1.2.3", "env": "prod", "city": "London"} {
		if rec[k] != want {
			t.Errorf("%s = %v, want %q", k, rec[k], want)
		}
	}
}

func TestNew_DevIsText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &config.AppConfig{AppEnv: "dev", LogLevel: slog.LevelDebug}, "weather-screen", "dev")

	logger.Debug("visible")
	out := buf.String()
	if !strings.Contains(out, "visible") || strings.HasPrefix(out, "{") {
		t.Errorf("unexpected dev output %q", out)
	}
}
