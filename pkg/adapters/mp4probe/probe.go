// Package mp4probe reads frame rate, frame count and resolution from MP4
// metadata without decoding any samples.
package mp4probe

import (
	"errors"
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framesampler/pkg/ports"
)

// ErrNoVideoTrack is returned when the file has no usable video track.
var ErrNoVideoTrack = errors.New("no video track found")

// ProbeFile reads the video track metadata of the MP4 file at path.
// Media data is skipped, so memory use does not grow with the file size.
func ProbeFile(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	return Probe(mp4File)
}

// Probe extracts VideoInfo from a parsed MP4 file.
func Probe(mp4File *mp4.File) (ports.VideoInfo, error) {
	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	if mp4File.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrack(mp4File.Moov)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	return probeProgressive(trak)
}

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func probeProgressive(trak *mp4.TrakBox) (ports.VideoInfo, error) {
	if trak.Mdia.Mdhd == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stts == nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: incomplete sample table", ErrNoVideoTrack)
	}

	stts := trak.Mdia.Minf.Stbl.Stts
	var count int
	var duration uint64
	for i, n := range stts.SampleCount {
		count += int(n)
		duration += uint64(n) * uint64(stts.SampleTimeDelta[i])
	}

	info := ports.VideoInfo{
		FrameCount: count,
		FrameRate:  frameRate(count, duration, trak.Mdia.Mdhd.Timescale),
	}
	info.Width, info.Height = dimensions(trak)
	return info, nil
}

func probeFragmented(mp4File *mp4.File) (ports.VideoInfo, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrack(mp4File.Init.Moov)
	if trak == nil || trak.Mdia.Mdhd == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if mvex := mp4File.Init.Moov.Mvex; mvex != nil {
		for _, t := range mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var count int
	var duration uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					for _, sample := range trun.Samples {
						count++
						duration += uint64(sampleDuration(sample, trun, traf.Tfhd, trex))
					}
				}
			}
		}
	}

	info := ports.VideoInfo{
		FrameCount: count,
		FrameRate:  frameRate(count, duration, trak.Mdia.Mdhd.Timescale),
	}
	info.Width, info.Height = dimensions(trak)
	return info, nil
}

// sampleDuration resolves a run's sample duration from the trun entry, then
// the tfhd default, then the trex default.
func sampleDuration(sample mp4.Sample, trun *mp4.TrunBox, tfhd *mp4.TfhdBox, trex *mp4.TrexBox) uint32 {
	switch {
	case trun.HasSampleDuration():
		return sample.Dur
	case tfhd.HasDefaultSampleDuration():
		return tfhd.DefaultSampleDuration
	case trex != nil:
		return trex.DefaultSampleDuration
	default:
		return 0
	}
}

// frameRate is the average rate over the whole track.
func frameRate(count int, duration uint64, timescale uint32) float64 {
	if count == 0 || duration == 0 || timescale == 0 {
		return 0
	}
	return float64(count) * float64(timescale) / float64(duration)
}

// dimensions prefers the sample entry's coded size over the track header.
func dimensions(trak *mp4.TrakBox) (int, int) {
	if minf := trak.Mdia.Minf; minf != nil && minf.Stbl != nil && minf.Stbl.Stsd != nil {
		for _, child := range minf.Stbl.Stsd.Children {
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok && vse.Width > 0 && vse.Height > 0 {
				return int(vse.Width), int(vse.Height)
			}
		}
	}
	if trak.Tkhd != nil {
		return int(uint32(trak.Tkhd.Width) >> 16), int(uint32(trak.Tkhd.Height) >> 16)
	}
	return 0, 0
}
