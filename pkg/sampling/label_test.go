package sampling

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		name       string
		frameIndex int
		frameRate  float64
		unit       Unit
		want       string
	}{
		{"three seconds", 90, 30, Seconds, "0m03s"},
		{"floor of fractional seconds", 185, 30, Seconds, "0m06s"},
		{"two minutes", 3600, 30, Seconds, "2m00s"},
		{"one minute forty two", 3060, 30, Seconds, "1m42s"},
		{"minutes unpadded and unbounded", 30 * 60 * 75, 30, Seconds, "75m00s"},
		{"frame zero", 0, 30, Seconds, "0m00s"},
		{"frames mode", 1424, 30, Frames, "1424f"},
		{"frames mode ignores rate", 7, 0, Frames, "7f"},
		{"no rate in seconds mode", 10, 0, Seconds, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.frameIndex, tt.frameRate, tt.unit); got != tt.want {
				t.Errorf("Label(%d, %g, %s) = %q, want %q", tt.frameIndex, tt.frameRate, tt.unit, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(3, "1m42s"); got != "frame_000003_1m42s.png" {
		t.Errorf("unexpected name %q", got)
	}
	if got := FileName(4, "0m08s"); got != "frame_000004_0m08s.png" {
		t.Errorf("unexpected name %q", got)
	}
	if got := FileName(12, ""); got != "frame_000012.png" {
		t.Errorf("unexpected name %q", got)
	}
}
