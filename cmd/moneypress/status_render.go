package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// tone classifies a rendered line so the renderer can pick its tag and,
// when writing to a terminal, its color.
type tone int

const (
	toneNeutral tone = iota
	toneGood
	toneCaution
	toneBad
)

const ansiReset = "\x1b[0m"

var toneStyles = [...]struct {
	tag   string
	color string
}{
	toneNeutral: {tag: "INFO", color: "\x1b[34m"},
	toneGood:    {tag: "OK", color: "\x1b[32m"},
	toneCaution: {tag: "WARN", color: "\x1b[33m"},
	toneBad:     {tag: "ERROR", color: "\x1b[31m"},
}

const statusLabelWidth = 20

// statusLine formats one indented "Label: [TAG] detail" row. The label column
// is padded so the tags line up within a section.
func statusLine(label string, t tone, detail string, colorize bool) string {
	if int(t) < 0 || int(t) >= len(toneStyles) {
		t = toneNeutral
	}
	style := toneStyles[t]
	tag := "[" + style.tag + "]"
	if detail != "" {
		tag += " " + detail
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", tag)
	if colorize && style.color != "" {
		return style.color + line + ansiReset
	}
	return line
}

// sectionHeader returns a titled header with an underline rule.
func sectionHeader(title string, colorize bool) []string {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(heading))
	if colorize {
		heading = toneStyles[toneNeutral].color + heading + ansiReset
		rule = toneStyles[toneNeutral].color + rule + ansiReset
	}
	return []string{heading, rule}
}

// shouldColorize reports whether writer is an interactive terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
