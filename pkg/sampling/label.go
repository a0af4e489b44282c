package sampling

import (
	"fmt"
	"math"
)

// Label formats a frame position as "1m42s" (Seconds) or "1424f" (Frames).
// A non-positive frame rate in Seconds mode yields an empty label.
func Label(frameIndex int, frameRate float64, unit Unit) string {
	if unit == Frames {
		return fmt.Sprintf("%df", frameIndex)
	}
	if frameRate <= 0 {
		return ""
	}
	total := float64(frameIndex) / frameRate
	minutes := int(math.Floor(total / 60))
	seconds := int(math.Floor(math.Mod(total, 60)))
	return fmt.Sprintf("%dm%02ds", minutes, seconds)
}

// FileName returns the output file name for a sequence index.
// The label part is omitted when no timing context is available.
func FileName(sequenceIndex int, label string) string {
	if label == "" {
		return fmt.Sprintf("frame_%06d.png", sequenceIndex)
	}
	return fmt.Sprintf("frame_%06d_%s.png", sequenceIndex, label)
}
