package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerLine(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(logger, "assembler").Info("article generated",
		String(FieldArticle, "best-credit-cards-2025"),
		Int("word_count", 2),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO assembler: article generated") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "article=best-credit-cards-2025") {
		t.Errorf("missing article attr: %q", line)
	}
	if !strings.Contains(line, "word_count=2") {
		t.Errorf("missing word_count attr: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should be inlined, not emitted as attr: %q", line)
	}
}

func TestConsoleHandlerQuoting(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.Warn("platform post failed", String("detail", "rate limited by host"))

	if !strings.Contains(buf.String(), `detail="rate limited by host"`) {
		t.Errorf("value with spaces not quoted: %q", buf.String())
	}
}

func TestJSONHandlerKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, new(slog.LevelVar)))

	logger.Info("cycle complete", Int("published", 1))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"ts", "level", "msg", "published"} {
		if _, ok := entry[key]; !ok {
			t.Errorf("missing key %q in %v", key, entry)
		}
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Errorf("parseLevel(nonsense) = %v", got)
	}
	if got := parseLevel("DEBUG"); got != slog.LevelDebug {
		t.Errorf("parseLevel(DEBUG) = %v", got)
	}
}
