package summarizer

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Source: SourceInfo{
			Path:       "/videos/clip.mp4",
			FrameRate:  30,
			FrameCount: 300,
			Width:      640,
			Height:     480,
		},
		Selection: Selection{
			Spec:    "points [0 149 299 350] frames",
			Resize:  "none",
			Targets: 3,
		},
		Backend: BackendInfo{Name: "sequential", Threads: 4},
		Output: OutputInfo{
			Dir: "/out/clip_20240115_1030",
			Frames: []Frame{
				{SequenceIndex: 0, FrameIndex: 0, Label: "0f", Path: "/out/frame_000000_0f.png", Size: 1024},
				{SequenceIndex: 1, FrameIndex: 149, Label: "149f", Path: "/out/frame_000001_149f.png", Size: 1024 * 1024},
			},
			Skipped: []Skip{
				{SequenceIndex: 2, FrameIndex: 299, Label: "299f", Reason: "read_failed"},
			},
			ElapsedMs: 850,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Extraction Summary",
		"clip.mp4",
		"640x480",
		"30.000 fps",
		"10.00 s",
		"points [0 149 299 350] frames",
		"sequential (4 threads)",
		"| 1 | 149 | 149f | frame_000001_149f.png | 1.00 MB |",
		"| 2 | 299 | 299f | read_failed |",
		"850 ms",
		"2024-01-15 10:30:00 UTC",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}

	if strings.Contains(result, "Contact Sheet") {
		t.Error("contact sheet line should be omitted when none was written")
	}
	if strings.Contains(result, "(fallback)") {
		t.Error("fallback marker should be omitted")
	}
}

func TestMarkdownFormatter_Format_FallbackAndContactSheet(t *testing.T) {
	s := sampleSummary()
	s.Backend.FellBack = true
	s.Output.ContactSheet = "/out/contact_sheet.png"

	result := NewMarkdownFormatter().Format(s)

	if !strings.Contains(result, "(fallback)") {
		t.Error("expected fallback marker")
	}
	if !strings.Contains(result, "`contact_sheet.png`") {
		t.Error("expected contact sheet file name")
	}
}

func TestMarkdownFormatter_Format_NoFramesOrSkips(t *testing.T) {
	s := sampleSummary()
	s.Output.Frames = nil
	s.Output.Skipped = nil
	s.Source.FrameRate = 0

	result := NewMarkdownFormatter().Format(s)

	if strings.Contains(result, "### Frames") || strings.Contains(result, "### Skipped Frames") {
		t.Error("empty tables should be omitted")
	}
	if !strings.Contains(result, "| Duration | N/A |") {
		t.Errorf("expected N/A duration for unknown frame rate\n%s", result)
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translations := map[string]string{
		"Extraction Summary": "抽出サマリー",
		"read_failed":        "読み込み失敗",
	}
	formatter := NewMarkdownFormatter(WithTranslator(func(s string) string {
		if tr, ok := translations[s]; ok {
			return tr
		}
		return s
	}))

	result := formatter.Format(sampleSummary())

	if !strings.Contains(result, "# 抽出サマリー") {
		t.Error("expected translated heading")
	}
	if !strings.Contains(result, "読み込み失敗") {
		t.Error("expected translated skip reason")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.3")).Format(sampleSummary())
	if !strings.Contains(result, "framesampler v1.2.3") {
		t.Error("expected version in footer")
	}

	result = NewMarkdownFormatter().Format(sampleSummary())
	if strings.Contains(result, "framesampler v") {
		t.Error("expected no version in footer")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.bytes); got != tt.expected {
			t.Errorf("formatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
		}
	}
}
