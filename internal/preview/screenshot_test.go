package preview

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromBottomUp(t *testing.T) {
	// 1x2 image: bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromBottomUp(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if top := img.RGBAAt(0, 0); top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom.R != 255 || bottom.B != 0 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}

	if _, err := FromBottomUp(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestScreenshotsSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "terrain")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	want := filepath.Join(dir, "terrain_2024-05-01_12-30-00.png")
	if got := s.Filename(); got != want {
		t.Errorf("Filename() = %s, want %s", got, want)
	}

	path, err := s.SavePixels(make([]byte, 4*3*2), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}
