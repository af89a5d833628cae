// Package debug saves frames rendered by the viewer for inspection.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Format selects the image encoding of captures.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// Screenshots writes timestamped captures into a directory.
type Screenshots struct {
	dir    string
	prefix string
	format Format
	now    func() time.Time
}

// NewScreenshots creates a capture writer. An empty dir writes to the working directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, format: FormatPNG, now: time.Now}
}

// SetFormat switches the encoding of later captures. Unknown formats fall back to PNG.
func (s *Screenshots) SetFormat(f Format) {
	if f != FormatBMP {
		f = FormatPNG
	}
	s.format = f
}

// Filename returns the path the next capture would be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.%s", s.prefix, s.now().Format("2006-01-02_15-04-05"), s.format)
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}
	return name
}

// SavePixels writes bottom-up RGBA rows as read back from OpenGL.
func (s *Screenshots) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}
	return s.Save(img)
}

// Save encodes img in the configured format.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := s.encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", s.format, err)
	}
	return filename, nil
}

func (s *Screenshots) encode(w io.Writer, img image.Image) error {
	if s.format == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// FlipRGBA converts bottom-up RGBA rows into a top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
