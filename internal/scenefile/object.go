package scenefile

import (
	"github.com/Faultbox/scene2css/internal/anim"
	"github.com/Faultbox/scene2css/internal/scene"
	"github.com/Faultbox/scene2css/pkg/math"
)

// Scene is a parsed scene file. It implements scene.Source.
type Scene struct {
	path       string
	fps        float64
	start, end int
	roots      []*Object
	order      []*Object
	byName     map[string]*Object
}

// Path implements scene.Source.
func (s *Scene) Path() string { return s.path }

// FrameRange implements scene.Source; end is exclusive.
func (s *Scene) FrameRange() (start, end int) { return s.start, s.end }

// FPS implements scene.Source.
func (s *Scene) FPS() float64 { return s.fps }

// Roots implements scene.Source.
func (s *Scene) Roots() []scene.Object {
	out := make([]scene.Object, len(s.roots))
	for i, r := range s.roots {
		out[i] = r
	}
	return out
}

// Object returns the named object.
func (s *Scene) Object(name string) (*Object, bool) {
	o, ok := s.byName[name]
	return o, ok
}

// Object is one scene file object. It implements scene.Object.
type Object struct {
	name       string
	kind       scene.Kind
	parentName string
	parent     *Object
	children   []*Object

	location, rotation, scale math.Vec3
	mesh                      *scene.Mesh
	material                  *scene.Material
	curves                    anim.CurveSet
}

// Name implements scene.Object.
func (o *Object) Name() string { return o.name }

// Kind implements scene.Object.
func (o *Object) Kind() scene.Kind { return o.kind }

// Children implements scene.Object.
func (o *Object) Children() []scene.Object {
	out := make([]scene.Object, len(o.children))
	for i, c := range o.children {
		out[i] = c
	}
	return out
}

// Curves implements scene.Object.
func (o *Object) Curves() anim.Channels {
	if len(o.curves) == 0 {
		return nil
	}
	return o.curves
}

// Mesh implements scene.Object.
func (o *Object) Mesh() (*scene.Mesh, bool) { return o.mesh, o.mesh != nil }

// Material implements scene.Object.
func (o *Object) Material() (*scene.Material, bool) { return o.material, o.material != nil }

// Matrix implements scene.Object.
func (o *Object) Matrix(frame int, space scene.Space) math.Mat4 {
	m := o.local(float64(frame))
	if space == scene.WorldSpace {
		for p := o.parent; p != nil; p = p.parent {
			m = p.local(float64(frame)).Mul(m)
		}
	}
	return m
}

// local evaluates the object's own transform at frame, letting each curve
// override its channel of the rest pose.
func (o *Object) local(frame float64) math.Mat4 {
	loc, rot, scl := o.location, o.rotation, o.scale
	targets := [...]*float64{
		anim.LocX: &loc.X, anim.LocY: &loc.Y, anim.LocZ: &loc.Z,
		anim.RotX: &rot.X, anim.RotY: &rot.Y, anim.RotZ: &rot.Z,
		anim.SclX: &scl.X, anim.SclY: &scl.Y, anim.SclZ: &scl.Z,
	}
	for ch, c := range o.curves {
		*targets[ch] = Evaluate(c, frame)
	}
	return math.Compose(loc, rot, scl)
}

// Evaluate returns the curve's value at frame. Values are held flat
// before the first and after the last control point.
func Evaluate(c *anim.Curve, frame float64) float64 {
	pts := c.Points
	if len(pts) == 0 {
		return 0
	}
	if frame <= pts[0].Frame {
		return pts[0].Value
	}
	last := pts[len(pts)-1]
	if frame >= last.Frame {
		return last.Value
	}

	i := 1
	for pts[i].Frame <= frame {
		i++
	}
	a, b := pts[i-1], pts[i]
	if c.Interpolation == anim.Constant || b.Frame == a.Frame {
		return a.Value
	}
	t := (frame - a.Frame) / (b.Frame - a.Frame)
	if c.Interpolation == anim.Bezier {
		// flat handles at both keys
		t = t * t * (3 - 2*t)
	}
	return a.Value + t*(b.Value-a.Value)
}
