package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"takeplan/internal/language"
	"takeplan/internal/planner"
	"takeplan/internal/script"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 14
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func languageLine(detection script.Detection, mismatch bool, colorize bool) string {
	if detection.Code == "" {
		return renderStatusLine("Language", statusInfo, "not detected", colorize)
	}
	message := fmt.Sprintf("%s (%.0f%% of %d lines)", language.DisplayName(detection.Code), detection.Share*100, detection.Samples)
	if mismatch {
		return renderStatusLine("Language", statusWarn, message+", differs from expected", colorize)
	}
	return renderStatusLine("Language", statusOK, message, colorize)
}

func problemLine(count int, colorize bool) string {
	if count == 0 {
		return renderStatusLine("Problems", statusOK, "none", colorize)
	}
	return renderStatusLine("Problems", statusWarn, fmt.Sprintf("%d intervention(s) need attention", count), colorize)
}

func planStatusLines(result *planner.Result, colorize bool) []string {
	stats := result.Report.Stats
	lines := renderSectionHeader("Plan "+shortID(result.RunID), colorize)
	lines = append(lines,
		renderStatusLine("Script", statusInfo, fmt.Sprintf("%s [%s]", result.Script, result.Column), colorize),
		languageLine(result.Language, result.LanguageMismatch, colorize),
		renderStatusLine("Takes", statusOK, fmt.Sprintf("%d across %d scene(s), %d lines", stats.Takes, stats.Scenes-stats.FailedScenes, stats.DetailLines), colorize),
		problemLine(len(result.Problems), colorize),
	)
	if stats.FailedScenes > 0 {
		lines = append(lines, renderStatusLine("Scenes", statusError, fmt.Sprintf("%d could not be segmented", stats.FailedScenes), colorize))
	}
	for _, path := range result.Files {
		lines = append(lines, renderStatusLine("Wrote", statusInfo, path, colorize))
	}
	lines = append(lines, renderStatusLine("History", statusInfo, yesNo(result.Recorded), colorize))
	return lines
}

func checkStatusLines(result *planner.CheckResult, colorize bool) []string {
	lines := renderSectionHeader("Check", colorize)
	return append(lines,
		renderStatusLine("Script", statusInfo, fmt.Sprintf("%s [%s]", result.Script, result.Column), colorize),
		languageLine(result.Language, result.LanguageMismatch, colorize),
		renderStatusLine("Interventions", statusInfo, fmt.Sprintf("%d in %d block(s), %d scene(s)", result.Interventions, result.Blocks, result.Scenes), colorize),
		renderStatusLine("Characters", statusInfo, strings.Join(result.Characters, ", "), colorize),
		problemLine(len(result.Problems), colorize),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
