// Package snapshot saves rendered frames as PNG files.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
)

// Saver writes frames into a directory under timestamped names.
type Saver struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a saver. An empty dir means the working directory.
func New(dir, prefix string) *Saver {
	return &Saver{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next frame would be written to.
func (s *Saver) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}
	return name
}

// Image converts bottom-up RGBA rows, as read back from OpenGL, into a
// top-down image.
func Image(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d frame, %d bytes", width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Save writes the frame and returns its path.
func (s *Saver) Save(pixels []byte, width, height int) (path string, err error) {
	img, err := Image(pixels, width, height)
	if err != nil {
		return "", err
	}
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path = s.Filename()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			os.Remove(path)
			path = ""
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return path, fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}
