package rasterdraw

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// Format is an image output format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("rasterdraw: unsupported image extension %q", filepath.Ext(path))
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatWebP {
		return "image/webp"
	}
	return "image/png"
}

// Encode writes img in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("rasterdraw: encode png: %w", err)
		}
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("rasterdraw: encode webp: %w", err)
		}
	default:
		return fmt.Errorf("rasterdraw: unknown format %q", f)
	}
	return nil
}

// EncodeICO wraps a PNG-encoded img in a single-entry ICO container.
func EncodeICO(img image.Image) ([]byte, error) {
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, img); err != nil {
		return nil, fmt.Errorf("rasterdraw: encode icon: %w", err)
	}
	b := img.Bounds()
	dim := func(v int) uint8 {
		if v >= 256 {
			return 0
		}
		return uint8(v)
	}

	var out bytes.Buffer
	header := struct {
		Reserved, Type, Count uint16
	}{0, 1, 1}
	entry := struct {
		Width, Height, Colors, Reserved uint8
		Planes, BitCount                uint16
		Size, Offset                    uint32
	}{dim(b.Dx()), dim(b.Dy()), 0, 0, 1, 32, uint32(pngData.Len()), 6 + 16}
	if err := binary.Write(&out, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	if err := binary.Write(&out, binary.LittleEndian, entry); err != nil {
		return nil, err
	}
	out.Write(pngData.Bytes())
	return out.Bytes(), nil
}
