package anim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scene2css/internal/logger"
)

// ErrBadFrameRange is returned when a sampler's range is inverted.
var ErrBadFrameRange = errors.New("invalid frame range")

// Sampler walks the half-open frame range [Start, End) once and captures
// a pose for every track that cares about the current frame.
type Sampler struct {
	Start int
	End   int
	// Bake samples every frame inside a track's window, forcing linear
	// interpolation, instead of only its significant frames.
	Bake bool
}

// Run clears each track's keyframes and resamples them. It returns the
// number of keyframes captured across all tracks.
func (s Sampler) Run(tracks []*Track) (int, error) {
	if s.End < s.Start {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrBadFrameRange, s.Start, s.End)
	}

	for _, t := range tracks {
		t.Keyframes = t.Keyframes[:0]
	}

	total := 0
	for frame := s.Start; frame < s.End; frame++ {
		for _, t := range tracks {
			if !t.Significant(frame) && !(s.Bake && t.Encompasses(frame)) {
				continue
			}
			if t.owner == nil {
				continue
			}
			interp := t.TransformInterpolation()
			if s.Bake {
				interp = Linear
			}
			t.Keyframes = append(t.Keyframes, Keyframe{
				Frame:         frame,
				Transform:     t.owner.Pose(frame),
				Interpolation: interp,
			})
			total++
		}
	}

	for _, t := range tracks {
		logger.Debug("sampled track",
			zap.String("track", t.ID),
			zap.Int("start", t.Start),
			zap.Int("length", t.Length),
			zap.Int("keyframes", len(t.Keyframes)),
			zap.Bool("bake", s.Bake))
	}
	return total, nil
}
