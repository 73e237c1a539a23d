package preview

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes timestamped captures into a directory.
type Screenshots struct {
	Dir    string
	Prefix string
	Ext    string // ".png" or ".bmp"

	now func() time.Time
}

// NewScreenshots creates a capture writer producing PNG files.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, Ext: ".png", now: time.Now}
}

// Filename returns the path the next capture would be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s%s", s.Prefix, s.now().Format("2006-01-02_15-04-05"), s.Ext)
	if s.Dir != "" {
		name = filepath.Join(s.Dir, name)
	}
	return name
}

// SavePixels converts bottom-up RGBA rows, as glReadPixels returns them, and
// saves the image. It returns the written path.
func (s *Screenshots) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromBottomUp(pixels, width, height)
	if err != nil {
		return "", err
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := s.Filename()
	if err := Save(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// FromBottomUp copies RGBA rows stored bottom row first into an image.
func FromBottomUp(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d with %d bytes", width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
