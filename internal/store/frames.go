// Package store keeps rendered frames and their annotated composites on disk.
package store

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ErrFrameMissing means a frame that should exist on disk does not.
var ErrFrameMissing = errors.New("frame missing")

// FrameStore lays frames out as <dir>/frame_00001.<ext>, one file per sample.
type FrameStore struct {
	RenderedDir  string
	CompositeDir string
}

func NewFrameStore(renderedDir, compositeDir string) (*FrameStore, error) {
	for _, d := range []string{renderedDir, compositeDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, err
		}
	}
	return &FrameStore{RenderedDir: renderedDir, CompositeDir: compositeDir}, nil
}

func frameName(index int, ext string) string {
	return fmt.Sprintf("frame_%05d%s", index, ext)
}

func (s *FrameStore) RenderedPath(index int, ext string) string {
	return filepath.Join(s.RenderedDir, frameName(index, ext))
}

func (s *FrameStore) CompositePath(index int) string {
	return filepath.Join(s.CompositeDir, frameName(index, ".png"))
}

// SaveRendered writes the renderer's bytes unchanged.
func (s *FrameStore) SaveRendered(index int, ext string, data []byte) (string, error) {
	path := s.RenderedPath(index, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// LoadRendered decodes the rendered frame for index, whatever its extension.
func (s *FrameStore) LoadRendered(index int) (image.Image, error) {
	matches, err := filepath.Glob(filepath.Join(s.RenderedDir, frameName(index, ".*")))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFrameMissing, s.RenderedPath(index, ".*"))
	}

	f, err := os.Open(matches[0])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFrameMissing, matches[0])
		}
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", matches[0], err)
	}
	return img, nil
}

// SaveComposite encodes img as PNG.
func (s *FrameStore) SaveComposite(index int, img image.Image) (string, error) {
	path := s.CompositePath(index)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Composites returns the composite paths for frames 1..count in order.
// A gap in the sequence is reported as ErrFrameMissing.
func (s *FrameStore) Composites(count int) ([]string, error) {
	entries, err := os.ReadDir(s.CompositeDir)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			present[entry.Name()] = true
		}
	}

	paths := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		name := frameName(i, ".png")
		if !present[name] {
			return nil, fmt.Errorf("%w: composite %d of %d (%s)", ErrFrameMissing, i, count, name)
		}
		paths = append(paths, filepath.Join(s.CompositeDir, name))
	}
	return paths, nil
}

// Clean removes both frame directories.
func (s *FrameStore) Clean() error {
	return errors.Join(os.RemoveAll(s.RenderedDir), os.RemoveAll(s.CompositeDir))
}
