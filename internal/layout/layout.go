// Package layout converts node bounding boxes into absolutely positioned
// CSS boxes.
package layout

import (
	gomath "math"

	"github.com/Faultbox/scene2css/internal/scene"
	"github.com/Faultbox/scene2css/pkg/math"
)

// Compose fills Center and TransformOrigin for every node, parents before
// children. When collapsed is false each center is re-expressed relative
// to the parent's accumulated world center, matching nested DOM boxes.
//
// Example: bounds (0,0)..(64,64) give a bound origin of (32,-32) after the
// Y flip, a center of (0,-64) and a transform-origin of (0,64).
func Compose(roots []*scene.Node, collapsed bool) {
	for _, n := range roots {
		compose(n, collapsed)
	}
}

func compose(n *scene.Node, collapsed bool) {
	n.Center, n.TransformOrigin = boxCenter(n)

	if !collapsed && n.Parent != nil {
		parentWorld := n.WorldCenter().Sub(n.Center)
		n.Center.X -= parentWorld.X
		n.Center.Y -= parentWorld.Y
	}

	for _, c := range n.Children {
		compose(c, collapsed)
	}
}

// boxCenter computes the top-left corner of a mesh node's box in layout
// space (Y down) and the transform-origin that puts rotation and scaling
// back on the object's pivot. Nodes without a mesh sit at the origin with
// no transform-origin.
func boxCenter(n *scene.Node) (math.Vec3, *[2]float64) {
	if !n.HasMesh() {
		return math.Vec3{}, nil
	}
	half := n.BoundsMin.Half(n.BoundsMax)
	origin := half.Add(n.BoundsMin)
	origin.Y = -origin.Y

	center := origin.Sub(half)
	return center, &[2]float64{-center.X, -center.Y}
}

// Background describes how a texture is placed inside a box.
type Background struct {
	// PosX and PosY are the background-position percentages.
	PosX, PosY int
	// Size is the background-size override in percent; nil keeps the
	// browser's default tiling.
	Size *[2]float64
}

// PlaceBackground positions an image using the mesh's UV rectangle.
// imgW and imgH are the image's pixel size, boxW and boxH the box's. An
// override is emitted when the image is not drawn one pixel per pixel; an
// unknown image size or an empty box never produces one.
func PlaceBackground(uvMin, uvMax [2]float64, imgW, imgH int, boxW, boxH float64) Background {
	bg := Background{
		PosX: int(uvMin[0] * 100),
		PosY: int(uvMin[1] * 100),
	}
	if imgW <= 0 || imgH <= 0 || boxW == 0 || boxH == 0 {
		return bg
	}

	ratioW := float64(imgW) / boxW
	ratioH := float64(imgH) / boxH
	if ratioW != 1 || ratioH != 1 {
		bg.Size = &[2]float64{
			round2((uvMax[0] - uvMin[0]) * 100),
			round2((uvMax[1] - uvMin[1]) * 100),
		}
	}
	return bg
}

func round2(v float64) float64 {
	return gomath.Round(v*100) / 100
}
