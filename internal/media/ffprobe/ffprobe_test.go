package ffprobe

import "testing"

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "duration": "93.5", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "standup.mp4", "duration": "94.012000", "format_name": "mov,mp4,m4a"}
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := result.DurationSeconds(); got != 94.012 {
		t.Fatalf("DurationSeconds = %v, want 94.012", got)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("AudioStreamCount = %d, want 1", got)
	}
}

func TestDurationFallsBackToStream(t *testing.T) {
	result, err := Parse([]byte(`{"streams":[{"codec_type":"audio","duration":"12.25"}],"format":{}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := result.DurationSeconds(); got != 12.25 {
		t.Fatalf("DurationSeconds = %v, want 12.25", got)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
