package ffmpegdecoder

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/user/framesampler/pkg/ports"
)

// probeOutput is the subset of `ffprobe -of json -show_streams -show_format` we read.
type probeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseProbe reads VideoInfo from ffprobe JSON output.
// The frame count falls back to duration x rate, truncated, when the
// container does not record it.
func parseProbe(data string) (ports.VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}

		info := ports.VideoInfo{Width: s.Width, Height: s.Height}
		info.FrameRate = parseRate(s.AvgFrameRate)
		if info.FrameRate <= 0 {
			info.FrameRate = parseRate(s.RFrameRate)
		}

		if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
			info.FrameCount = n
		} else {
			duration := parseFloat(s.Duration)
			if duration <= 0 {
				duration = parseFloat(out.Format.Duration)
			}
			info.FrameCount = int(math.Trunc(duration * info.FrameRate))
		}
		return info, nil
	}

	return ports.VideoInfo{}, fmt.Errorf("no video stream")
}

// parseRate parses "30000/1001" or "25". Invalid or zero rates yield 0.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	n := parseFloat(num)
	if !ok {
		return n
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
