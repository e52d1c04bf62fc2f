package scene

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	xtransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/scene2css/internal/anim"
	"github.com/Faultbox/scene2css/internal/logger"
	"github.com/Faultbox/scene2css/internal/transform"
	"github.com/Faultbox/scene2css/pkg/math"
)

// Options control how nodes are posed.
type Options struct {
	// GlobalScale converts scene units to pixels.
	GlobalScale float64
	// SwitchAxis swaps Y and Z before export.
	SwitchAxis bool
	// Collapse poses nodes in world space rather than parent-relative.
	Collapse bool
}

// Node is one exported object. The tree owns its children; Parent is a
// back-reference only.
type Node struct {
	Name     string
	Object   Object
	Parent   *Node
	Children []*Node
	Track    *anim.Track

	Mesh     *Mesh
	Material *Material
	// BoundsMin and BoundsMax are object-space bounds scaled to pixels.
	BoundsMin, BoundsMax math.Vec3

	// Center and TransformOrigin are filled by the layout pass.
	Center          math.Vec3
	TransformOrigin *[2]float64

	opts *Options
}

// HasMesh reports whether the node carries geometry.
func (n *Node) HasMesh() bool {
	return n.Mesh != nil
}

// Size returns the pixel width and height of the node's box.
func (n *Node) Size() (w, h float64) {
	return n.BoundsMax.X - n.BoundsMin.X, n.BoundsMax.Y - n.BoundsMin.Y
}

// WorldCenter sums the centers of n and all its ancestors.
func (n *Node) WorldCenter() math.Vec3 {
	var c math.Vec3
	for p := n; p != nil; p = p.Parent {
		c = c.Add(p.Center)
	}
	return c
}

// Pose samples the node's transform at frame. It implements anim.Poser.
func (n *Node) Pose(frame int) transform.Transform {
	space := LocalSpace
	if n.opts.Collapse {
		space = WorldSpace
	}
	loc, rot, scl := n.Object.Matrix(frame, space).Decompose()
	loc = loc.Scale(n.opts.GlobalScale)

	tr := transform.New()
	if n.opts.SwitchAxis {
		tr.SetLocation(ptr(loc.X), ptr(-loc.Z), ptr(loc.Y))
		tr.SetRotation(ptr(rot.X), ptr(rot.Z), ptr(rot.Y))
		tr.SetScale(ptr(scl.X), ptr(scl.Z), ptr(scl.Y))
	} else {
		tr.SetLocation(ptr(loc.X), ptr(-loc.Y), ptr(loc.Z))
		tr.SetRotation(ptr(rot.X), ptr(rot.Y), ptr(rot.Z))
		tr.SetScale(ptr(scl.X), ptr(scl.Y), ptr(scl.Z))
	}
	return tr
}

func ptr(v float64) *float64 { return &v }

// Tree is the exported hierarchy.
type Tree struct {
	Roots []*Node
	// Nodes lists every node, parents before children.
	Nodes []*Node
	// Tracks lists every animation track, in node order.
	Tracks []*anim.Track

	opts Options
	// names holds the last suffix handed out per base name; used holds
	// every emitted name.
	names map[string]int
	used  map[string]bool
}

// Build walks the host hierarchy, keeping meshes and empties. An object of
// any other kind is dropped together with its subtree.
func Build(src Source, opts Options) *Tree {
	t := &Tree{opts: opts, names: make(map[string]int), used: make(map[string]bool)}
	for _, obj := range src.Roots() {
		if n := t.build(obj, nil); n != nil {
			t.Roots = append(t.Roots, n)
		}
	}
	logger.Debug("built scene tree",
		zap.String("scene", src.Path()),
		zap.Int("nodes", len(t.Nodes)),
		zap.Int("tracks", len(t.Tracks)))
	return t
}

func (t *Tree) build(obj Object, parent *Node) *Node {
	if k := obj.Kind(); k != KindMesh && k != KindEmpty {
		logger.Debug("skipping object", zap.String("object", obj.Name()), zap.Stringer("kind", k))
		return nil
	}

	n := &Node{
		Name:   t.uniqueName(Sanitize(obj.Name())),
		Object: obj,
		Parent: parent,
		opts:   &t.opts,
	}
	if m, ok := obj.Mesh(); ok {
		n.Mesh = m
		if minP, maxP, ok := m.Bounds(); ok {
			n.BoundsMin = minP.Scale(t.opts.GlobalScale)
			n.BoundsMax = maxP.Scale(t.opts.GlobalScale)
		}
		if mat, ok := obj.Material(); ok {
			n.Material = mat
		}
	}
	if ch := obj.Curves(); ch != nil {
		if tr, ok := anim.NewTrack(n.Name, n, ch); ok {
			n.Track = tr
			t.Tracks = append(t.Tracks, tr)
		}
	}
	t.Nodes = append(t.Nodes, n)

	for _, child := range obj.Children() {
		if c := t.build(child, n); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// MergeTracks gives every descendant of an animated node a track at least
// as large as its ancestors'. Used when transforms are collapsed to world
// space. It returns the number of synthesized tracks.
func (t *Tree) MergeTracks() int {
	created := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if p := n.Parent; p != nil && p.Track != nil {
			tr, isNew := anim.Inherit(n.Track, p.Track, n.Name, n)
			n.Track = tr
			if isNew {
				t.Tracks = append(t.Tracks, tr)
				created++
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range t.Roots {
		walk(r)
	}
	logger.Debug("merged hierarchy tracks", zap.Int("synthesized", created))
	return created
}

// uniqueName returns name, or name with the next free "_N" suffix (N >= 2)
// when an earlier node already holds it. Generated names are reserved
// too, so a later object literally named "A_2" cannot collide.
func (t *Tree) uniqueName(name string) string {
	candidate := name
	n := t.names[name]
	for t.used[candidate] {
		n = max(n+1, 2)
		candidate = name + "_" + strconv.Itoa(n)
	}
	t.names[name] = n
	t.used[candidate] = true
	return candidate
}

var stripMarks = xtransform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize turns an object name into a CSS identifier: accents are
// stripped, "." becomes "__" and any other rune outside [A-Za-z0-9_-]
// becomes "_". Names starting with a digit or a hyphen get a leading "_".
func Sanitize(name string) string {
	if s, _, err := xtransform.String(stripMarks, name); err == nil {
		name = s
	}
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == '.':
			sb.WriteString("__")
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'):
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	out := sb.String()
	if out == "" || unicode.IsDigit(rune(out[0])) || out[0] == '-' {
		out = "_" + out
	}
	return out
}
