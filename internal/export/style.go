package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aymerick/douceur/css"
	"go.uber.org/zap"

	"github.com/Faultbox/scene2css/internal/anim"
	"github.com/Faultbox/scene2css/internal/config"
	"github.com/Faultbox/scene2css/internal/layout"
	"github.com/Faultbox/scene2css/internal/logger"
	"github.com/Faultbox/scene2css/internal/scene"
	"github.com/Faultbox/scene2css/internal/texture"
	"github.com/Faultbox/scene2css/internal/transform"
)

// Vendor prefixes emitted ahead of each standard property.
var vendorPrefixes = []string{"-webkit-", "-moz-", ""}

const rootBackground = "#eeeeee"

type writer struct {
	cfg   config.ExportConfig
	fps   float64
	start int
}

func (w *writer) mode() transform.Mode {
	return transform.Mode{ThreeD: w.cfg.Export3D}
}

// block collects the declarations of one rule.
type block struct {
	decls []*css.Declaration
}

func (b *block) add(property, value string) {
	b.decls = append(b.decls, &css.Declaration{Property: property, Value: value})
}

// prefixed adds property once per vendor prefix.
func (b *block) prefixed(property, value string) {
	for _, p := range vendorPrefixes {
		b.add(p+property, value)
	}
}

func qualified(selector string, b *block) *css.Rule {
	r := css.NewRule(css.QualifiedRule)
	r.Prelude = selector
	r.Selectors = []string{selector}
	r.Declarations = b.decls
	return r
}

func (w *writer) stylesheet(t *scene.Tree) *css.Stylesheet {
	sheet := css.NewStylesheet()
	sheet.Rules = append(sheet.Rules, w.rootRules()...)

	for _, n := range t.Nodes {
		sheet.Rules = append(sheet.Rules, w.nodeRule(n))
	}
	for _, tr := range t.Tracks {
		if r := w.keyframesRule(tr); r != nil {
			sheet.Rules = append(sheet.Rules, r)
		}
	}
	return sheet
}

func (w *writer) rootRules() []*css.Rule {
	divs := &block{}
	divs.add("position", "absolute")

	root := &block{}
	root.add("background-color", rootBackground)
	root.add("position", "absolute")
	root.add("width", fmt.Sprintf("%dpx", w.cfg.Width))
	root.add("height", fmt.Sprintf("%dpx", w.cfg.Height))
	if w.cfg.Export3D {
		root.prefixed("perspective", fmt.Sprintf("%gpx", w.cfg.Perspective))
		root.prefixed("perspective-origin", fmt.Sprintf("center %dpx", w.cfg.Height/2))
	}

	return []*css.Rule{
		qualified("#"+RootID+" div", divs),
		qualified("#"+RootID, root),
	}
}

// nodeRule renders the box, pose, material and animation of one node.
// The static transform is the pose at the first frame of the scene.
func (w *writer) nodeRule(n *scene.Node) *css.Rule {
	b := &block{}
	b.prefixed("transform", n.Pose(w.start).CSS(w.mode()))

	if n.HasMesh() {
		width, height := n.Size()
		b.add("width", fmt.Sprintf("%dpx", int(width)))
		b.add("height", fmt.Sprintf("%dpx", int(height)))
	}
	b.add("left", fmt.Sprintf("%dpx", int(n.Center.X)))
	b.add("top", fmt.Sprintf("%dpx", int(n.Center.Y)))
	if o := n.TransformOrigin; o != nil {
		b.prefixed("transform-origin", fmt.Sprintf("%dpx %dpx", int(o[0]), int(o[1])))
	}
	if w.cfg.Export3D {
		b.prefixed("transform-style", "preserve-3d")
	}

	if n.Material != nil {
		w.material(b, n)
	}
	if tr := n.Track; tr != nil && len(tr.Keyframes) > 0 {
		w.animation(b, tr)
	}
	return qualified("#"+n.Name, b)
}

func (w *writer) material(b *block, n *scene.Node) {
	mat := n.Material
	if !mat.TexFace {
		b.add("background-color", fmt.Sprintf("rgb(%d,%d,%d)",
			int(mat.Color[0]*255), int(mat.Color[1]*255), int(mat.Color[2]*255)))
	}
	if mat.Alpha < 1 {
		b.add("opacity", fmt.Sprintf("%f", mat.Alpha))
	}

	tex := mat.Texture
	if tex == nil || tex.Image == "" {
		return
	}
	b.add("background-image", fmt.Sprintf("url(%q)", imageURL(tex.Image)))

	var uvMin, uvMax [2]float64
	if n.Mesh != nil {
		uvMin, uvMax = n.Mesh.UVBounds()
	} else {
		uvMax = [2]float64{1, 1}
	}
	boxW, boxH := n.Size()
	bg := layout.PlaceBackground(uvMin, uvMax, tex.Width, tex.Height, boxW, boxH)
	b.add("background-position", fmt.Sprintf("%d%% %d%%", bg.PosX, bg.PosY))
	if bg.Size != nil {
		b.prefixed("background-size", fmt.Sprintf("%.2f%% %.2f%%", bg.Size[0], bg.Size[1]))
	}
}

// imageURL maps an image reference to the PNG the document links to,
// relative to the document's directory.
func imageURL(image string) string {
	image = strings.TrimPrefix(image, "//")
	return filepath.ToSlash(texture.PNGName(image))
}

func (w *writer) animation(b *block, tr *anim.Track) {
	duration := float64(tr.Length) / w.fps
	delay := float64(tr.Start-1) / w.fps

	b.prefixed("animation-name", tr.ID)
	b.prefixed("animation-duration", fmt.Sprintf("%fs", duration))
	b.prefixed("animation-delay", fmt.Sprintf("%fs", delay))
	if w.cfg.AnimLoop {
		b.prefixed("animation-iteration-count", "infinite")
	}
	if w.cfg.AnimBake {
		b.prefixed("animation-timing-function", anim.Linear.TimingFunction())
	}
}

// keyframesRule renders a track's samples as an @keyframes block. Samples
// that format to the same percentage keep the first one. Tracks without
// samples produce no block.
func (w *writer) keyframesRule(tr *anim.Track) *css.Rule {
	if len(tr.Keyframes) == 0 {
		logger.Debug("track has no samples in the scene range", zap.String("track", tr.ID))
		return nil
	}

	r := css.NewRule(css.AtRule)
	r.Name = "@keyframes"
	r.Prelude = tr.ID

	seen := make(map[string]bool, len(tr.Keyframes))
	for _, kf := range tr.Keyframes {
		key := anim.PercentKey(tr.Percent(kf.Frame))
		if seen[key] {
			continue
		}
		seen[key] = true

		b := &block{}
		b.prefixed("transform", kf.Transform.CSS(w.mode()))
		if !w.cfg.AnimBake {
			b.prefixed("animation-timing-function", kf.Interpolation.TimingFunction())
		}
		step := qualified(key, b)
		step.EmbedLevel = 1
		r.Rules = append(r.Rules, step)
	}
	return r
}
