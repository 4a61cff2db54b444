package tray

import (
	"bytes"
	"runtime"

	"github.com/soar/mapview/internal/diagram"
	"github.com/soar/mapview/internal/rasterdraw"
)

const iconSize = 32

// GetIcon renders the tray icon in the accent colour of the first preset. Windows gets an
// ICO container, other platforms a PNG.
func GetIcon() []byte {
	return iconFor(runtime.GOOS)
}

func iconFor(goos string) []byte {
	accent := diagram.AccentPalette[0]
	if goos == "windows" {
		data, err := rasterdraw.IconICO(iconSize, accent)
		if err != nil {
			return nil
		}
		return data
	}
	img, err := rasterdraw.Icon(iconSize, accent)
	if err != nil {
		return nil
	}
	var buf bytes.Buffer
	if err := rasterdraw.Encode(&buf, img, rasterdraw.FormatPNG); err != nil {
		return nil
	}
	return buf.Bytes()
}
