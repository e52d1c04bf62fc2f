// Package scenefile loads scene descriptions from YAML or TOML files and
// exposes them as a scene.Source.
//
// A scene file lists objects flatly; hierarchy comes from each object's
// parent name:
//
//	fps: 25
//	frames: {start: 1, end: 41}
//	objects:
//	  - name: Cube
//	    type: mesh
//	    location: [0, 0, 0]
//	    mesh:
//	      vertices: [[-1, -1, -1], [1, 1, 1]]
//	    curves:
//	      LocX: {interpolation: bezier, points: [[1, 0], [40, 3]]}
package scenefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scene2css/internal/anim"
	"github.com/Faultbox/scene2css/internal/logger"
	"github.com/Faultbox/scene2css/internal/scene"
	"github.com/Faultbox/scene2css/internal/texture"
	"github.com/Faultbox/scene2css/pkg/math"
)

// Scene file errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported scene file format")
	ErrDuplicateObject   = errors.New("duplicate object name")
	ErrUnknownParent     = errors.New("unknown parent object")
	ErrParentCycle       = errors.New("parent cycle")
	ErrUnknownType       = errors.New("unknown object type")
)

// DefaultFPS is used when a scene file does not name its frame rate.
const DefaultFPS = 25

// Format is a scene file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

type fileDoc struct {
	FPS    float64     `yaml:"fps" toml:"fps"`
	Frames framesDoc   `yaml:"frames" toml:"frames"`
	Object []objectDoc `yaml:"objects" toml:"objects"`
}

type framesDoc struct {
	Start int `yaml:"start" toml:"start"`
	End   int `yaml:"end" toml:"end"`
}

type objectDoc struct {
	Name     string              `yaml:"name" toml:"name"`
	Type     string              `yaml:"type" toml:"type"`
	Parent   string              `yaml:"parent" toml:"parent"`
	Location [3]float64          `yaml:"location" toml:"location"`
	Rotation [3]float64          `yaml:"rotation" toml:"rotation"`
	Scale    *[3]float64         `yaml:"scale" toml:"scale"`
	Mesh     *meshDoc            `yaml:"mesh" toml:"mesh"`
	Material *materialDoc        `yaml:"material" toml:"material"`
	Curves   map[string]curveDoc `yaml:"curves" toml:"curves"`
}

type meshDoc struct {
	Vertices [][3]float64 `yaml:"vertices" toml:"vertices"`
	UVs      [][2]float64 `yaml:"uvs" toml:"uvs"`
}

type materialDoc struct {
	Color   [3]float64  `yaml:"color" toml:"color"`
	Alpha   *float64    `yaml:"alpha" toml:"alpha"`
	TexFace bool        `yaml:"texface" toml:"texface"`
	Texture *textureDoc `yaml:"texture" toml:"texture"`
}

type textureDoc struct {
	Image  string `yaml:"image" toml:"image"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

type curveDoc struct {
	Interpolation string       `yaml:"interpolation" toml:"interpolation"`
	Points        [][2]float64 `yaml:"points" toml:"points"`
}

// Load reads and parses a scene file. "~" is expanded.
func Load(path string) (*Scene, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from encoded data. path identifies the scene and
// anchors relative texture paths.
func Parse(data []byte, format Format, path string) (*Scene, error) {
	var doc fileDoc
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, err
	}
	return build(&doc, path)
}

func build(doc *fileDoc, path string) (*Scene, error) {
	s := &Scene{
		path:   path,
		fps:    doc.FPS,
		start:  doc.Frames.Start,
		end:    doc.Frames.End,
		byName: make(map[string]*Object, len(doc.Object)),
	}
	if s.fps <= 0 {
		s.fps = DefaultFPS
	}
	if s.start == 0 {
		s.start = 1
	}

	lastKey := 0
	for i := range doc.Object {
		od := &doc.Object[i]
		if _, dup := s.byName[od.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateObject, od.Name)
		}
		obj, err := newObject(od, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", od.Name, err)
		}
		for _, c := range obj.curves {
			if last := int(c.Points[len(c.Points)-1].Frame); last > lastKey {
				lastKey = last
			}
		}
		s.byName[od.Name] = obj
		s.order = append(s.order, obj)
	}

	for _, obj := range s.order {
		if obj.parentName == "" {
			s.roots = append(s.roots, obj)
			continue
		}
		parent, ok := s.byName[obj.parentName]
		if !ok {
			return nil, fmt.Errorf("%w: %q (child %q)", ErrUnknownParent, obj.parentName, obj.name)
		}
		obj.parent = parent
		parent.children = append(parent.children, obj)
	}
	for _, obj := range s.order {
		if err := checkCycle(obj); err != nil {
			return nil, err
		}
	}

	// No explicit end: sample through the last authored key.
	if s.end == 0 {
		s.end = max(lastKey+1, s.start+1)
	}
	return s, nil
}

func checkCycle(obj *Object) error {
	seen := map[*Object]bool{}
	for p := obj; p != nil; p = p.parent {
		if seen[p] {
			return fmt.Errorf("%w: through %q", ErrParentCycle, obj.name)
		}
		seen[p] = true
	}
	return nil
}

func newObject(od *objectDoc, dir string) (*Object, error) {
	kind, err := parseKind(od.Type)
	if err != nil {
		return nil, err
	}
	obj := &Object{
		name:       od.Name,
		kind:       kind,
		parentName: od.Parent,
		location:   math.V3(od.Location),
		rotation:   math.V3(od.Rotation),
		scale:      math.Vec3{X: 1, Y: 1, Z: 1},
	}
	if od.Scale != nil {
		obj.scale = math.V3(*od.Scale)
	}

	if md := od.Mesh; md != nil {
		obj.mesh = &scene.Mesh{UVs: md.UVs}
		for _, v := range md.Vertices {
			obj.mesh.Vertices = append(obj.mesh.Vertices, math.V3(v))
		}
	}
	if md := od.Material; md != nil {
		obj.material = newMaterial(md, dir)
	}

	if len(od.Curves) > 0 {
		obj.curves = make(anim.CurveSet, len(od.Curves))
	}
	for name, cd := range od.Curves {
		ch, err := anim.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		interp, err := anim.ParseInterpolation(cd.Interpolation)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", name, err)
		}
		if len(cd.Points) == 0 {
			// present but empty counts as absent
			continue
		}
		c := &anim.Curve{Interpolation: interp}
		for _, p := range cd.Points {
			c.Points = append(c.Points, anim.Point{Frame: p[0], Value: p[1]})
		}
		sort.SliceStable(c.Points, func(i, j int) bool { return c.Points[i].Frame < c.Points[j].Frame })
		obj.curves[ch] = c
	}
	return obj, nil
}

func parseKind(s string) (scene.Kind, error) {
	switch strings.ToLower(s) {
	case "mesh":
		return scene.KindMesh, nil
	case "empty", "":
		return scene.KindEmpty, nil
	case "camera", "lamp", "light", "curve", "armature", "text":
		return scene.KindOther, nil
	}
	return scene.KindOther, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func newMaterial(md *materialDoc, dir string) *scene.Material {
	mat := &scene.Material{Color: md.Color, Alpha: 1, TexFace: md.TexFace}
	if md.Alpha != nil {
		mat.Alpha = *md.Alpha
	}
	td := md.Texture
	if td == nil || td.Image == "" {
		return mat
	}
	tex := &scene.Texture{Image: td.Image, Width: td.Width, Height: td.Height}
	if tex.Width == 0 || tex.Height == 0 {
		w, h, err := texture.Size(resolveImage(td.Image, dir))
		if err != nil {
			logger.Warn("texture size unknown, background-size left to the browser",
				zap.String("image", td.Image), zap.Error(err))
		} else {
			tex.Width, tex.Height = w, h
		}
	}
	mat.Texture = tex
	return mat
}

// resolveImage maps an image reference to a file: "//" marks a path
// relative to the scene file, "~" is the home directory.
func resolveImage(image, dir string) string {
	if rel, ok := strings.CutPrefix(image, "//"); ok {
		return filepath.Join(dir, rel)
	}
	if p, err := homedir.Expand(image); err == nil {
		image = p
	}
	if filepath.IsAbs(image) {
		return image
	}
	return filepath.Join(dir, image)
}
