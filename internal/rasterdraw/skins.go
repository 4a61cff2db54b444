package rasterdraw

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"

	"github.com/soar/mapview/internal/diagram"
)

// Skins holds optional face textures. A face without a texture is drawn procedurally.
type Skins struct {
	front image.Image
	back  image.Image
}

// LoadSkins decodes the texture files for each face. Empty paths are skipped.
func LoadSkins(frontPath, backPath string) (*Skins, error) {
	s := &Skins{}
	var err error
	if frontPath != "" {
		if s.front, err = loadImage(frontPath); err != nil {
			return nil, err
		}
	}
	if backPath != "" {
		if s.back, err = loadImage(backPath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("skin: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("skin: decode %s: %w", path, err)
	}
	return img, nil
}

// Empty reports whether no face has a texture.
func (s *Skins) Empty() bool {
	return s == nil || (s.front == nil && s.back == nil)
}

// Texture implements diagram.Textures.
func (s *Skins) Texture(face diagram.ViewMode) (image.Image, bool) {
	if s == nil {
		return nil, false
	}
	switch face {
	case diagram.ViewFront:
		return s.front, s.front != nil
	case diagram.ViewBack:
		return s.back, s.back != nil
	}
	return nil, false
}
