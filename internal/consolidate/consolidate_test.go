package consolidate

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	line, ok := ParseLine("SPEAKER_00 | 00:00:12 | hello there")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if line.Speaker != "SPEAKER_00" || line.Timestamp != "00:00:12" || line.Text != "hello there" {
		t.Fatalf("unexpected parse result: %+v", line)
	}
}

func TestParseLineTextKeepsDelimiter(t *testing.T) {
	line, ok := ParseLine("alice | 00:01:00 | yes | no | maybe")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if line.Text != "yes | no | maybe" {
		t.Fatalf("text should keep embedded delimiters, got %q", line.Text)
	}
}

func TestParseLineRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"no delimiters at all",
		"alice | 00:00:00",
	}
	for _, raw := range cases {
		if _, ok := ParseLine(raw); ok {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestLinesMergesRuns(t *testing.T) {
	in := []Line{
		{Speaker: "A", Timestamp: "00:00:00", Text: "one"},
		{Speaker: "A", Timestamp: "00:00:05", Text: "two"},
		{Speaker: "B", Timestamp: "00:00:10", Text: "three"},
		{Speaker: "A", Timestamp: "00:00:15", Text: "four"},
	}
	got := Lines(in)
	want := []Line{
		{Speaker: "A", Timestamp: "00:00:00", Text: "one two"},
		{Speaker: "B", Timestamp: "00:00:10", Text: "three"},
		{Speaker: "A", Timestamp: "00:00:15", Text: "four"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLinesIdempotent(t *testing.T) {
	in := []Line{
		{Speaker: "A", Timestamp: "00:00:00", Text: "one"},
		{Speaker: "A", Timestamp: "00:00:05", Text: "two"},
		{Speaker: "B", Timestamp: "00:00:10", Text: "three"},
	}
	once := Lines(in)
	twice := Lines(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("consolidation not idempotent:\nonce  %+v\ntwice %+v", once, twice)
	}
	for i := 1; i < len(once); i++ {
		if once[i].Speaker == once[i-1].Speaker {
			t.Fatalf("adjacent entries share speaker %q", once[i].Speaker)
		}
	}
}

func TestLinesEmpty(t *testing.T) {
	if got := Lines(nil); got != nil {
		t.Fatalf("expected nil output for nil input, got %+v", got)
	}
}

func TestRawSkipsMalformed(t *testing.T) {
	raw := []string{
		"A | 00:00:00 | one",
		"this line is garbage",
		"A | 00:00:05 | two",
		"",
		"B | 00:00:10 | three",
	}
	merged, stats := Raw(raw, nil)
	if stats.LinesIn != 5 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	want := []Line{
		{Speaker: "A", Timestamp: "00:00:00", Text: "one two"},
		{Speaker: "B", Timestamp: "00:00:10", Text: "three"},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merge around malformed line failed:\ngot  %+v\nwant %+v", merged, want)
	}
	if stats.LinesOut != len(want) {
		t.Fatalf("LinesOut = %d, want %d", stats.LinesOut, len(want))
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "meeting.txt")
	output := filepath.Join(dir, "meeting_cleaned.txt")

	content := strings.Join([]string{
		"SPEAKER_00 | 00:00:00 | good morning",
		"SPEAKER_00 | 00:00:04 | everyone",
		"SPEAKER_01 | 00:00:09 | morning",
	}, "\n") + "\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	stats, err := File(input, output, nil)
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if stats.LinesIn != 3 || stats.LinesOut != 2 || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "SPEAKER_00 | 00:00:00 | good morning everyone\nSPEAKER_01 | 00:00:09 | morning\n"
	if string(got) != want {
		t.Fatalf("output mismatch:\ngot  %q\nwant %q", string(got), want)
	}
}

func TestFileMissingInput(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.txt"), filepath.Join(t.TempDir(), "out.txt"), nil); err == nil {
		t.Fatal("expected error for missing input")
	}
}
