package anim

import (
	"fmt"
	"sort"

	"github.com/Faultbox/scene2css/internal/transform"
	"github.com/Faultbox/scene2css/pkg/bitvec"
)

// GroupTransform is the property group covering all nine transform curves.
const GroupTransform = "TRANSFORM"

// IDSuffix is appended to an object name to form its track identifier.
const IDSuffix = "-anim"

// Poser captures an object's pose at an explicit frame.
type Poser interface {
	Pose(frame int) transform.Transform
}

// Keyframe is one sampled pose.
type Keyframe struct {
	Frame         int
	Transform     transform.Transform
	Interpolation Interpolation
}

// Track aggregates the significant frames of one object's curves.
//
// The window [Start, Start+Length) bounds every bit set in Frames. Bit 0
// is never set from curve data; timelines are 1-based.
type Track struct {
	ID            string
	Frames        *bitvec.Vector
	Start         int
	Length        int
	Interpolation map[string]Interpolation
	Keyframes     []Keyframe

	owner Poser
}

// NewTrack builds a track from an object's curves. It returns false when
// no transform channel carries data.
func NewTrack(name string, owner Poser, channels Channels) (*Track, bool) {
	var present []*Curve
	for _, ch := range TransformChannels {
		if c, ok := channels.Curve(ch); ok {
			present = append(present, c)
		}
	}
	earliest, latest, ok := FrameTimeBounds(present...)
	if !ok {
		return nil, false
	}

	t := NewEmptyTrack(name, owner, latest+1)
	t.Start = earliest
	t.Length = latest + 1 - earliest

	merged := make(map[string]int)
	for _, c := range present {
		ft, _ := frameTimesOf(c)
		combineFrameTimes(ft, earliest, latest, merged)
	}
	for _, fid := range sortedFrames(merged) {
		if fid > 0 {
			t.Frames.Set(fid, true)
		}
	}

	if c, ok := channels.Curve(LocX); ok {
		t.Interpolation[GroupTransform] = c.Interpolation.Kind()
	}
	return t, true
}

// NewEmptyTrack creates a track with no window and an empty frame set of
// the given size.
func NewEmptyTrack(name string, owner Poser, size int) *Track {
	return &Track{
		ID:            name + IDSuffix,
		Frames:        bitvec.New(size),
		Interpolation: make(map[string]Interpolation),
		owner:         owner,
	}
}

// combineFrameTimes keys each sample by its position within the overall
// window. Samples landing on an existing key are dropped.
func combineFrameTimes(ft frameTimes, start, end int, out map[string]int) {
	for _, fid := range ft.frames {
		key := PercentKey(percentOf(fid, start, end-start))
		if _, ok := out[key]; !ok {
			out[key] = fid
		}
	}
}

func sortedFrames(m map[string]int) []int {
	frames := make([]int, 0, len(m))
	for _, fid := range m {
		frames = append(frames, fid)
	}
	sort.Ints(frames)
	return frames
}

// percentOf returns (fid-start)/span as a percentage; a zero span maps
// everything to 0%.
func percentOf(fid, start, span int) float64 {
	if span <= 0 {
		return 0
	}
	return float64(fid-start) / float64(span) * 100
}

// PercentKey formats a percentage the way keyframe selectors are written.
// Positions closer than 0.01% share a key.
func PercentKey(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// Owner returns the poser sampled for this track.
func (t *Track) Owner() Poser {
	return t.owner
}

// End returns the exclusive end of the window.
func (t *Track) End() int {
	return t.Start + t.Length
}

// Encompasses reports whether fid lies inside the window.
func (t *Track) Encompasses(fid int) bool {
	return fid >= t.Start && fid < t.End()
}

// Significant reports whether fid carries an authored sample.
func (t *Track) Significant(fid int) bool {
	return t.Frames.Get(fid)
}

// TransformInterpolation returns the interpolation recorded for the
// transform group, or linear when none was recorded.
func (t *Track) TransformInterpolation() Interpolation {
	if i, ok := t.Interpolation[GroupTransform]; ok {
		return i
	}
	return Linear
}

// Percent returns the keyframe position of fid relative to this track's
// own window, with the first frame at 0% and the last at 100%.
func (t *Track) Percent(fid int) float64 {
	return percentOf(fid, t.Start, t.Length-1)
}

// CombineFrom merges other into t: frame sets are unioned, the window is
// grown to cover both, and interpolation entries missing from t are
// adopted. An empty window (Length 0) adopts other's window outright.
func (t *Track) CombineFrom(other *Track) {
	t.Frames = t.Frames.Union(other.Frames, 0)

	if other.Length > 0 {
		if t.Length == 0 {
			t.Start, t.Length = other.Start, other.Length
		} else {
			if other.Start < t.Start {
				t.Length += t.Start - other.Start
				t.Start = other.Start
			}
			if end := other.End(); end > t.End() {
				t.Length += end - t.End()
			}
		}
	}

	for key, kind := range other.Interpolation {
		if _, ok := t.Interpolation[key]; !ok {
			t.Interpolation[key] = kind
		}
	}
}

// Inherit merges parent into child for collapsed hierarchies. A nil child
// is replaced by a fresh empty track named after name; created reports
// whether that happened.
func Inherit(child, parent *Track, name string, owner Poser) (merged *Track, created bool) {
	if child == nil {
		child = NewEmptyTrack(name, owner, parent.Frames.Size())
		created = true
	}
	child.CombineFrom(parent)
	return child, created
}
