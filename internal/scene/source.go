// Package scene builds the exportable node tree from a host scene and
// poses its nodes at explicit frames.
package scene

import (
	"github.com/Faultbox/scene2css/internal/anim"
	"github.com/Faultbox/scene2css/pkg/math"
)

// Kind classifies host objects. Only meshes and empties are exported.
type Kind int

const (
	KindOther Kind = iota
	KindMesh
	KindEmpty
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindEmpty:
		return "empty"
	default:
		return "other"
	}
}

// Space selects the reference frame of a sampled matrix.
type Space int

const (
	LocalSpace Space = iota
	WorldSpace
)

// Source is a host scene: its hierarchy, timeline and file identity.
type Source interface {
	// Path is the file the scene was loaded from.
	Path() string
	FrameRange() (start, end int)
	FPS() float64
	Roots() []Object
}

// Object is one host object. Matrix is evaluated at the given frame; the
// host keeps no cursor of its own.
type Object interface {
	Name() string
	Kind() Kind
	Children() []Object
	// Curves returns nil when the object has no animation data.
	Curves() anim.Channels
	Mesh() (*Mesh, bool)
	Material() (*Material, bool)
	Matrix(frame int, space Space) math.Mat4
}

// Mesh is the geometry needed for layout.
type Mesh struct {
	Vertices []math.Vec3
	// UVs holds every face-corner texture coordinate; nil when the mesh has
	// no UV map.
	UVs [][2]float64
}

// Bounds returns the object-space bounding box of the vertices.
func (m *Mesh) Bounds() (minP, maxP math.Vec3, ok bool) {
	if m == nil || len(m.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}
	minP, maxP = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		minP = minP.Min(v)
		maxP = maxP.Max(v)
	}
	return minP, maxP, true
}

// UVBounds returns the rectangle covered by the UV map, or the unit square
// when there is none.
func (m *Mesh) UVBounds() (minUV, maxUV [2]float64) {
	if m == nil || len(m.UVs) == 0 {
		return [2]float64{0, 0}, [2]float64{1, 1}
	}
	minUV, maxUV = m.UVs[0], m.UVs[0]
	for _, uv := range m.UVs[1:] {
		for i := 0; i < 2; i++ {
			if uv[i] < minUV[i] {
				minUV[i] = uv[i]
			}
			if uv[i] > maxUV[i] {
				maxUV[i] = uv[i]
			}
		}
	}
	return minUV, maxUV
}

// Material is the first material slot of a mesh.
type Material struct {
	Color [3]float64 // 0..1
	Alpha float64
	// TexFace means colour comes from the texture, not Color.
	TexFace bool
	// Texture is the first texture slot's image, if any.
	Texture *Texture
}

// Texture is an image referenced by a material.
type Texture struct {
	Image string
	// Width and Height are zero when the image could not be inspected.
	Width, Height int
}
