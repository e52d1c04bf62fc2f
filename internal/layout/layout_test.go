package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scene2css/internal/scene"
	"github.com/Faultbox/scene2css/pkg/math"
)

func meshNode(name string, minP, maxP math.Vec3) *scene.Node {
	return &scene.Node{
		Name:      name,
		Mesh:      &scene.Mesh{Vertices: []math.Vec3{minP, maxP}},
		BoundsMin: minP,
		BoundsMax: maxP,
	}
}

func adopt(parent *scene.Node, children ...*scene.Node) {
	for _, c := range children {
		c.Parent = parent
		parent.Children = append(parent.Children, c)
	}
}

func TestComposeCenteredCube(t *testing.T) {
	n := meshNode("Cube", math.Vec3{X: -10, Y: -10, Z: -10}, math.Vec3{X: 10, Y: 10, Z: 10})
	Compose([]*scene.Node{n}, false)

	assert.Equal(t, math.Vec3{X: -10, Y: -10, Z: -10}, n.Center)
	require.NotNil(t, n.TransformOrigin)
	assert.Equal(t, [2]float64{10, 10}, *n.TransformOrigin)
}

func TestComposeFlipsY(t *testing.T) {
	n := meshNode("Plane", math.Vec3{}, math.Vec3{X: 64, Y: 64})
	Compose([]*scene.Node{n}, false)

	assert.Equal(t, 0.0, n.Center.X)
	assert.Equal(t, -64.0, n.Center.Y)
	require.NotNil(t, n.TransformOrigin)
	assert.Equal(t, [2]float64{0, 64}, *n.TransformOrigin)
}

func TestComposeNoMesh(t *testing.T) {
	n := &scene.Node{Name: "Empty", Center: math.Vec3{X: 99}}
	Compose([]*scene.Node{n}, false)

	assert.Equal(t, math.Vec3{}, n.Center)
	assert.Nil(t, n.TransformOrigin)
}

func TestComposeParentRelative(t *testing.T) {
	parent := meshNode("Parent", math.Vec3{X: 0, Y: 0}, math.Vec3{X: 40, Y: 20})
	child := meshNode("Child", math.Vec3{X: 10, Y: 0}, math.Vec3{X: 20, Y: 10})
	grandchild := meshNode("Grandchild", math.Vec3{X: -4, Y: -4}, math.Vec3{X: 4, Y: 4})
	adopt(parent, child)
	adopt(child, grandchild)

	Compose([]*scene.Node{parent}, false)

	// parent: origin (20,-10), half (20,10) -> center (0,-20)
	assert.Equal(t, 0.0, parent.Center.X)
	assert.Equal(t, -20.0, parent.Center.Y)
	// child absolute (10,-10) minus parent world (0,-20)
	assert.Equal(t, 10.0, child.Center.X)
	assert.Equal(t, 10.0, child.Center.Y)
	// grandchild absolute (-4,-4) minus child world (10,-10)
	assert.Equal(t, -14.0, grandchild.Center.X)
	assert.Equal(t, 6.0, grandchild.Center.Y)

	// Nested boxes add back up to the absolute placement.
	assert.Equal(t, -4.0, grandchild.WorldCenter().X)
	assert.Equal(t, -4.0, grandchild.WorldCenter().Y)

	// transform-origin stays in the node's own frame
	assert.Equal(t, [2]float64{4, 4}, *grandchild.TransformOrigin)
}

func TestComposeCollapsedKeepsAbsolute(t *testing.T) {
	parent := meshNode("Parent", math.Vec3{X: 0, Y: 0}, math.Vec3{X: 40, Y: 20})
	child := meshNode("Child", math.Vec3{X: 10, Y: 0}, math.Vec3{X: 20, Y: 10})
	adopt(parent, child)

	Compose([]*scene.Node{parent}, true)

	assert.Equal(t, 10.0, child.Center.X)
	assert.Equal(t, -10.0, child.Center.Y)
}

func TestComposeEmptyParent(t *testing.T) {
	parent := &scene.Node{Name: "Pivot"}
	child := meshNode("Blade", math.Vec3{X: -5, Y: -1}, math.Vec3{X: 5, Y: 1})
	adopt(parent, child)

	Compose([]*scene.Node{parent}, false)

	assert.Equal(t, -5.0, child.Center.X)
	assert.Equal(t, -1.0, child.Center.Y)
}

func TestPlaceBackground(t *testing.T) {
	tests := []struct {
		name       string
		uvMin      [2]float64
		uvMax      [2]float64
		imgW, imgH int
		boxW, boxH float64
		wantPos    [2]int
		wantSize   *[2]float64
	}{
		{
			name:    "pixel perfect",
			uvMin:   [2]float64{0, 0},
			uvMax:   [2]float64{1, 1},
			imgW:    64,
			imgH:    64,
			boxW:    64,
			boxH:    64,
			wantPos: [2]int{0, 0},
		},
		{
			name:     "image larger than box",
			uvMin:    [2]float64{0.25, 0.5},
			uvMax:    [2]float64{0.75, 1},
			imgW:     128,
			imgH:     64,
			boxW:     64,
			boxH:     64,
			wantPos:  [2]int{25, 50},
			wantSize: &[2]float64{50, 50},
		},
		{
			name:     "rounded to two places",
			uvMin:    [2]float64{0, 0},
			uvMax:    [2]float64{1.0 / 3, 2.0 / 3},
			imgW:     32,
			imgH:     32,
			boxW:     20,
			boxH:     20,
			wantSize: &[2]float64{33.33, 66.67},
		},
		{
			name:  "unknown image size",
			uvMin: [2]float64{0, 0},
			uvMax: [2]float64{0.5, 0.5},
			boxW:  20,
			boxH:  20,
		},
		{
			name:  "empty box",
			uvMin: [2]float64{0, 0},
			uvMax: [2]float64{1, 1},
			imgW:  32,
			imgH:  32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := PlaceBackground(tt.uvMin, tt.uvMax, tt.imgW, tt.imgH, tt.boxW, tt.boxH)
			assert.Equal(t, tt.wantPos, [2]int{bg.PosX, bg.PosY})
			if tt.wantSize == nil {
				assert.Nil(t, bg.Size)
				return
			}
			require.NotNil(t, bg.Size)
			assert.InDelta(t, tt.wantSize[0], bg.Size[0], 1e-9)
			assert.InDelta(t, tt.wantSize[1], bg.Size[1], 1e-9)
		})
	}
}
