// Package anim aggregates keyframed curves into animation tracks and
// samples those tracks across a scene's frame range.
package anim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChannel is returned when a channel name is not recognised.
var ErrUnknownChannel = errors.New("unknown animation channel")

// ErrUnknownInterpolation is returned when an interpolation name is not recognised.
var ErrUnknownInterpolation = errors.New("unknown interpolation")

// Channel identifies one transform component driven by a curve.
type Channel int

const (
	LocX Channel = iota
	LocY
	LocZ
	RotX
	RotY
	RotZ
	SclX
	SclY
	SclZ
)

// TransformChannels lists the channels inspected when building a track,
// in the order their samples are coalesced.
var TransformChannels = []Channel{LocX, LocY, LocZ, SclX, SclY, SclZ, RotX, RotY, RotZ}

var channelNames = [...]string{"LocX", "LocY", "LocZ", "RotX", "RotY", "RotZ", "ScaleX", "ScaleY", "ScaleZ"}

// String returns the channel name.
func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel parses a channel name, case-insensitively.
// "SclX" is accepted as an alias of "ScaleX".
func ParseChannel(s string) (Channel, error) {
	name := strings.ToLower(s)
	name = strings.Replace(name, "scl", "scale", 1)
	for i, n := range channelNames {
		if strings.ToLower(n) == name {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// Interpolation is how a curve moves between its control points.
type Interpolation int

const (
	Linear Interpolation = iota
	Constant
	Bezier
)

// String returns the interpolation name.
func (i Interpolation) String() string {
	switch i {
	case Constant:
		return "constant"
	case Bezier:
		return "bezier"
	default:
		return "linear"
	}
}

// Kind collapses constant into linear; output only distinguishes linear
// and bezier keys.
func (i Interpolation) Kind() Interpolation {
	if i == Bezier {
		return Bezier
	}
	return Linear
}

// TimingFunction returns the CSS timing function for the interpolation kind.
func (i Interpolation) TimingFunction() string {
	if i.Kind() == Bezier {
		return "ease-in-out"
	}
	return "linear"
}

// ParseInterpolation parses an interpolation name. An empty name means linear.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "", "linear", "lin":
		return Linear, nil
	case "constant", "const":
		return Constant, nil
	case "bezier":
		return Bezier, nil
	}
	return Linear, fmt.Errorf("%w: %q", ErrUnknownInterpolation, s)
}

// Point is a curve control point.
type Point struct {
	Frame float64
	Value float64
}

// Curve is one keyframed channel. Points are ordered by frame.
type Curve struct {
	Interpolation Interpolation
	Points        []Point
}

// Empty reports whether the curve carries no control points.
func (c *Curve) Empty() bool {
	return c == nil || len(c.Points) == 0
}

// Channels is the optional-channel view of an object's curves. A missing
// channel and an empty curve both report ok == false.
type Channels interface {
	Curve(ch Channel) (c *Curve, ok bool)
}

// CurveSet is a map-backed Channels.
type CurveSet map[Channel]*Curve

// Curve implements Channels.
func (s CurveSet) Curve(ch Channel) (*Curve, bool) {
	c, ok := s[ch]
	if !ok || c.Empty() {
		return nil, false
	}
	return c, true
}

// Len returns the number of non-empty curves.
func (s CurveSet) Len() int {
	n := 0
	for _, c := range s {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// frameTimes is the explicit sample list and extent of one curve.
type frameTimes struct {
	frames     []int
	start, end int
}

func frameTimesOf(c *Curve) (frameTimes, bool) {
	if c.Empty() {
		return frameTimes{}, false
	}
	ft := frameTimes{frames: make([]int, len(c.Points))}
	for i, p := range c.Points {
		ft.frames[i] = int(p.Frame)
	}
	ft.start = ft.frames[0]
	ft.end = ft.frames[len(ft.frames)-1]
	return ft, true
}

// FrameTimeBounds returns the earliest start and latest end across the
// given curves. Absent curves are skipped; ok is false when none remain.
func FrameTimeBounds(curves ...*Curve) (earliest, latest int, ok bool) {
	for _, c := range curves {
		ft, present := frameTimesOf(c)
		if !present {
			continue
		}
		if !ok || ft.start < earliest {
			earliest = ft.start
		}
		if !ok || ft.end > latest {
			latest = ft.end
		}
		ok = true
	}
	return earliest, latest, ok
}
