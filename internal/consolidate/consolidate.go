package consolidate

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"voxscribe/internal/logging"
)

// delimiter separates the structural fields of a transcript line. Only the
// first two occurrences are structural; the text portion may legally contain
// the delimiter itself.
const delimiter = " | "

// Line is one parsed transcript entry.
type Line struct {
	Speaker   string
	Timestamp string
	Text      string
}

// String renders the canonical wire form.
func (l Line) String() string {
	return l.Speaker + delimiter + l.Timestamp + delimiter + l.Text
}

// ParseLine splits a raw transcript line into its three fields. The split
// happens at most twice from the left so text containing " | " survives
// intact. Lines with fewer than three parts are invalid.
func ParseLine(raw string) (Line, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Line{}, false
	}
	parts := strings.SplitN(raw, delimiter, 3)
	if len(parts) < 3 {
		return Line{}, false
	}
	return Line{
		Speaker:   strings.TrimSpace(parts[0]),
		Timestamp: strings.TrimSpace(parts[1]),
		Text:      strings.TrimSpace(parts[2]),
	}, true
}

// Stats summarizes one consolidation pass.
type Stats struct {
	LinesIn  int
	LinesOut int
	Skipped  int
}

// Lines merges maximal runs of consecutive same-speaker entries into single
// entries. Each merged entry keeps the run's first timestamp and the
// space-joined text of all members. The result has strictly alternating
// speakers and the operation is idempotent.
func Lines(lines []Line) []Line {
	var out []Line
	var current *Line
	for _, line := range lines {
		if current != nil && line.Speaker == current.Speaker {
			current.Text += " " + line.Text
			continue
		}
		if current != nil {
			out = append(out, *current)
		}
		next := line
		current = &next
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}

// Raw parses raw transcript lines and consolidates the valid ones in a
// single left-to-right pass. Malformed lines are skipped with a log entry;
// their neighbors merge as if the bad line were absent.
func Raw(raw []string, logger *slog.Logger) ([]Line, Stats) {
	if logger == nil {
		logger = logging.NewNop()
	}
	stats := Stats{LinesIn: len(raw)}

	parsed := make([]Line, 0, len(raw))
	for i, entry := range raw {
		line, ok := ParseLine(entry)
		if !ok {
			if strings.TrimSpace(entry) != "" {
				stats.Skipped++
				logger.Warn("skipping malformed transcript line",
					logging.Int("line", i+1),
					logging.String("content", entry),
				)
			}
			continue
		}
		parsed = append(parsed, line)
	}

	merged := Lines(parsed)
	stats.LinesOut = len(merged)
	return merged, stats
}

// File consolidates a raw transcript file into outputPath, one merged line
// per speaker run.
func File(inputPath, outputPath string, logger *slog.Logger) (Stats, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("read raw transcript: %w", err)
	}

	var raw []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw = append(raw, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Stats{}, fmt.Errorf("scan raw transcript: %w", err)
	}

	merged, stats := Raw(raw, logger)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return stats, fmt.Errorf("ensure transcript dir: %w", err)
	}
	var builder strings.Builder
	for _, line := range merged {
		builder.WriteString(line.String())
		builder.WriteByte('\n')
	}
	if err := os.WriteFile(outputPath, []byte(builder.String()), 0o644); err != nil {
		return stats, fmt.Errorf("write consolidated transcript: %w", err)
	}
	return stats, nil
}
