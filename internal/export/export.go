// Package export turns a scene into a standalone HTML document whose
// inline stylesheet positions and animates one div per object.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/Faultbox/scene2css/internal/anim"
	"github.com/Faultbox/scene2css/internal/config"
	"github.com/Faultbox/scene2css/internal/layout"
	"github.com/Faultbox/scene2css/internal/logger"
	"github.com/Faultbox/scene2css/internal/scene"
)

// Document is a rendered-ready export.
type Document struct {
	Title string
	Sheet *css.Stylesheet
	// Root is the div#root element holding the object divs.
	Root *html.Node

	// Stats
	Nodes     int
	Tracks    int
	Keyframes int
}

// Build runs the whole pipeline on src: the node tree is built, tracks
// are merged down the hierarchy when transforms are collapsed, every
// track is sampled over the scene's frame range and the boxes are laid
// out.
func Build(src scene.Source, cfg config.ExportConfig) (*Document, error) {
	fps := src.FPS()
	if cfg.FPS != nil {
		fps = *cfg.FPS
	}
	if fps <= 0 {
		return nil, fmt.Errorf("scene %s: fps must be positive, got %v", src.Path(), fps)
	}

	tree := scene.Build(src, scene.Options{
		GlobalScale: cfg.Scale,
		SwitchAxis:  cfg.SwitchAxis,
		Collapse:    cfg.CollapseTransforms,
	})
	if cfg.CollapseTransforms {
		tree.MergeTracks()
	}

	start, end := src.FrameRange()
	sampler := anim.Sampler{Start: start, End: end, Bake: cfg.AnimBake}
	keyframes, err := sampler.Run(tree.Tracks)
	if err != nil {
		return nil, fmt.Errorf("sampling %s: %w", src.Path(), err)
	}

	layout.Compose(tree.Roots, cfg.CollapseTransforms)

	w := &writer{cfg: cfg, fps: fps, start: start}
	doc := &Document{
		Title:     Title(src.Path()),
		Sheet:     w.stylesheet(tree),
		Root:      w.dom(tree),
		Nodes:     len(tree.Nodes),
		Tracks:    len(tree.Tracks),
		Keyframes: keyframes,
	}
	return doc, nil
}

// Render writes the complete HTML document to out.
func (d *Document) Render(out io.Writer) error {
	if p := d.Root.Parent; p != nil {
		p.RemoveChild(d.Root)
	}
	return html.Render(out, page(d.Title, d.Sheet.String(), d.Root))
}

// Title derives the document title from a scene path: the base name
// with its last extension removed.
func Title(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// OutputPath returns where the document for scenePath is written. An
// explicit override wins; otherwise it is "<scene dir>/<title>.html".
func OutputPath(scenePath, override string) (string, error) {
	if override != "" {
		return homedir.Expand(override)
	}
	return filepath.Join(filepath.Dir(scenePath), Title(scenePath)+".html"), nil
}

// Run builds src and writes the document. It returns the written path.
func Run(src scene.Source, cfg config.ExportConfig) (string, error) {
	doc, err := Build(src, cfg)
	if err != nil {
		return "", err
	}

	path, err := OutputPath(src.Path(), cfg.Output)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}

	logger.Info("exported scene",
		zap.String("scene", src.Path()),
		zap.String("output", path),
		zap.Int("nodes", doc.Nodes),
		zap.Int("tracks", doc.Tracks),
		zap.Int("keyframes", doc.Keyframes))
	return path, nil
}

// writeFile replaces path with data through a temporary file in the same
// directory, so readers never observe a partial document.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
