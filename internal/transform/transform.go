// Package transform models a sampled object pose and renders it as a
// minimal CSS transform-function list.
//
// Scale defaults to 1, not 0: a pose at unit scale flags no scale channel
// and emits no scale() function, so a static unrotated object renders as
// "none" rather than "scale(1.000000, 1.000000)".
package transform

import (
	"fmt"
	"strings"
)

// Vec3 holds one location, rotation or scale triple.
type Vec3 struct {
	X, Y, Z float64
}

// Matters records which of the nine channels were explicitly set to a
// value other than their default. Only flagged channels are rendered.
type Matters struct {
	LocX, LocY, LocZ bool
	RotX, RotY, RotZ bool
	SclX, SclY, SclZ bool
}

// Loc2D reports whether both X and Y location matter.
func (m Matters) Loc2D() bool { return m.LocX && m.LocY }

// Loc3D reports whether all three location axes matter.
func (m Matters) Loc3D() bool { return m.LocX && m.LocY && m.LocZ }

// Scl2D reports whether both X and Y scale matter.
func (m Matters) Scl2D() bool { return m.SclX && m.SclY }

// Scl3D reports whether all three scale axes matter.
func (m Matters) Scl3D() bool { return m.SclX && m.SclY && m.SclZ }

// Any reports whether any channel matters.
func (m Matters) Any() bool {
	return m != Matters{}
}

// Mode selects which axes take part in rendering.
type Mode struct {
	// ThreeD enables Z translation, X/Y rotation and Z scale.
	ThreeD bool
}

// Transform is a single pose. Build it with New and the Set methods; it is
// treated as immutable once placed in a keyframe list.
type Transform struct {
	Location Vec3
	Rotation Vec3 // degrees
	Scale    Vec3
	Matters  Matters
}

// New returns the identity pose with no channel flagged.
func New() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// setAxis stores v into dst and flags it when v is present and differs
// from the current value.
func setAxis(dst *float64, flag *bool, v *float64) {
	if v == nil || *v == *dst {
		return
	}
	*dst = *v
	*flag = true
}

// SetLocation sets location axes; nil leaves an axis untouched.
func (t *Transform) SetLocation(x, y, z *float64) {
	setAxis(&t.Location.X, &t.Matters.LocX, x)
	setAxis(&t.Location.Y, &t.Matters.LocY, y)
	setAxis(&t.Location.Z, &t.Matters.LocZ, z)
}

// SetRotation sets rotation axes in degrees; nil leaves an axis untouched.
func (t *Transform) SetRotation(x, y, z *float64) {
	setAxis(&t.Rotation.X, &t.Matters.RotX, x)
	setAxis(&t.Rotation.Y, &t.Matters.RotY, y)
	setAxis(&t.Rotation.Z, &t.Matters.RotZ, z)
}

// SetScale sets scale axes; nil leaves an axis untouched.
func (t *Transform) SetScale(x, y, z *float64) {
	setAxis(&t.Scale.X, &t.Matters.SclX, x)
	setAxis(&t.Scale.Y, &t.Matters.SclY, y)
	setAxis(&t.Scale.Z, &t.Matters.SclZ, z)
}

// Functions returns the CSS transform functions for t, ordered translate,
// rotate, scale. Rotations are negated since the scene rotates
// counter-clockwise while CSS rotates clockwise.
func (t Transform) Functions(mode Mode) []string {
	var fns []string
	m := t.Matters
	loc, rot, scl := t.Location, t.Rotation, t.Scale

	switch {
	case mode.ThreeD && m.Loc3D():
		fns = append(fns, fmt.Sprintf("translate3d(%fpx, %fpx, %fpx)", loc.X, loc.Y, loc.Z))
	case m.Loc2D():
		fns = append(fns, fmt.Sprintf("translate(%fpx, %fpx)", loc.X, loc.Y))
	default:
		if m.LocX {
			fns = append(fns, fmt.Sprintf("translateX(%fpx)", loc.X))
		}
		if m.LocY {
			fns = append(fns, fmt.Sprintf("translateY(%fpx)", loc.Y))
		}
		if mode.ThreeD && m.LocZ {
			fns = append(fns, fmt.Sprintf("translateZ(%fpx)", loc.Z))
		}
	}

	if mode.ThreeD {
		if m.RotX {
			fns = append(fns, fmt.Sprintf("rotateX(%fdeg)", -rot.X))
		}
		if m.RotY {
			fns = append(fns, fmt.Sprintf("rotateY(%fdeg)", -rot.Y))
		}
		if m.RotZ {
			fns = append(fns, fmt.Sprintf("rotateZ(%fdeg)", -rot.Z))
		}
	} else if m.RotZ {
		fns = append(fns, fmt.Sprintf("rotate(%fdeg)", -rot.Z))
	}

	switch {
	case mode.ThreeD && m.Scl3D():
		fns = append(fns, fmt.Sprintf("scale3d(%f, %f, %f)", scl.X, scl.Y, scl.Z))
	case m.Scl2D():
		fns = append(fns, fmt.Sprintf("scale(%f, %f)", scl.X, scl.Y))
	default:
		if m.SclX {
			fns = append(fns, fmt.Sprintf("scaleX(%f)", scl.X))
		}
		if m.SclY {
			fns = append(fns, fmt.Sprintf("scaleY(%f)", scl.Y))
		}
		if mode.ThreeD && m.SclZ {
			fns = append(fns, fmt.Sprintf("scaleZ(%f)", scl.Z))
		}
	}
	return fns
}

// CSS renders t as a transform property value. A pose with nothing to
// render yields "none".
func (t Transform) CSS(mode Mode) string {
	fns := t.Functions(mode)
	if len(fns) == 0 {
		return "none"
	}
	return strings.Join(fns, " ")
}
