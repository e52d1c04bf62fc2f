// Package texture inspects texture images referenced by scene materials.
package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Formats understood by image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedTGA is returned for TGA variants that carry no usable
// true-colour image.
var ErrUnsupportedTGA = errors.New("unsupported TGA image")

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// Size returns the pixel dimensions of the image at path without decoding
// its pixels.
func Size(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, err := DecodeConfig(f, filepath.Ext(path))
	if err != nil {
		return 0, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// DecodeConfig reads an image header. TGA has no magic number, so it is
// selected by extension; everything else is sniffed.
func DecodeConfig(r io.Reader, ext string) (image.Config, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGAConfig(r)
	}
	cfg, _, err := image.DecodeConfig(r)
	return cfg, err
}

// DecodeTGAConfig reads the dimensions from a TGA header.
// Only uncompressed (type 2) and RLE (type 10) true-colour images at 24 or
// 32 bits per pixel are accepted.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	var hdr [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return image.Config{}, fmt.Errorf("TGA header: %w", err)
	}

	colorMapType := hdr[1]
	imageType := hdr[2]
	width := int(hdr[12]) | int(hdr[13])<<8
	height := int(hdr[14]) | int(hdr[15])<<8
	bpp := int(hdr[16])

	if colorMapType != 0 {
		return image.Config{}, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return image.Config{}, fmt.Errorf("%w: type %d", ErrUnsupportedTGA, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return image.Config{}, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, bpp)
	}

	return image.Config{Width: width, Height: height}, nil
}

// PNGName returns the file name the exported document references for an
// image: its path with the extension replaced by ".png".
func PNGName(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return name + ".png"
	}
	return strings.TrimSuffix(name, ext) + ".png"
}
