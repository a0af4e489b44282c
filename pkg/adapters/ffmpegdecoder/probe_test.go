package ffmpegdecoder

import (
	"math"
	"testing"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseRate(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseRate(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestParseProbe(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantRate  float64
		wantCount int
		wantW     int
	}{
		{
			name: "nb_frames present",
			json: `{"streams":[{"codec_type":"video","width":640,"height":480,
				"avg_frame_rate":"30/1","r_frame_rate":"30/1","nb_frames":"300"}],
				"format":{"duration":"10.000000"}}`,
			wantRate: 30, wantCount: 300, wantW: 640,
		},
		{
			name: "count from stream duration",
			json: `{"streams":[{"codec_type":"video","width":320,"height":240,
				"avg_frame_rate":"25/1","duration":"3.99"}],"format":{}}`,
			wantRate: 25, wantCount: 99, wantW: 320,
		},
		{
			name: "count from format duration and r_frame_rate",
			json: `{"streams":[{"codec_type":"video","width":320,"height":240,
				"avg_frame_rate":"0/0","r_frame_rate":"24/1","nb_frames":"N/A"}],
				"format":{"duration":"2.5"}}`,
			wantRate: 24, wantCount: 60, wantW: 320,
		},
		{
			name: "audio stream skipped",
			json: `{"streams":[{"codec_type":"audio"},{"codec_type":"video","width":16,"height":16,
				"avg_frame_rate":"10/1","nb_frames":"5"}]}`,
			wantRate: 10, wantCount: 5, wantW: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := parseProbe(tt.json)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.FrameRate != tt.wantRate {
				t.Errorf("expected %g fps, got %g", tt.wantRate, info.FrameRate)
			}
			if info.FrameCount != tt.wantCount {
				t.Errorf("expected %d frames, got %d", tt.wantCount, info.FrameCount)
			}
			if info.Width != tt.wantW {
				t.Errorf("expected width %d, got %d", tt.wantW, info.Width)
			}
		})
	}
}

func TestParseProbe_Errors(t *testing.T) {
	if _, err := parseProbe(`not json`); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := parseProbe(`{"streams":[{"codec_type":"audio"}]}`); err == nil {
		t.Error("expected error without a video stream")
	}
}
