package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UTCLayout is how instants are passed to the renderer.
const UTCLayout = "2006/01/02 15:04:05"

// Renderer produces a raster image of the solar system at an instant.
type Renderer interface {
	Render(ctx context.Context, at time.Time) (Frame, error)
}

// Frame is an encoded image as returned by a renderer.
type Frame struct {
	Data   []byte
	Format string // gif, png, jpeg
	Width  int
	Height int
}

// Ext is the file extension matching the frame's format.
func (f Frame) Ext() string {
	if f.Format == "jpeg" {
		return ".jpg"
	}
	return "." + f.Format
}

// SolarRenderer fetches frames from a Solar System Live style CGI endpoint.
type SolarRenderer struct {
	BaseURL   string
	ImageSize int
	Client    *http.Client
}

func NewSolarRenderer(baseURL string, imageSize int, timeout time.Duration) *SolarRenderer {
	return &SolarRenderer{
		BaseURL:   baseURL,
		ImageSize: imageSize,
		Client:    &http.Client{Timeout: timeout},
	}
}

// URL returns the request URL for an instant. The query is fixed apart from
// the utc parameter, so equal instants always map to equal URLs.
func (r *SolarRenderer) URL(at time.Time) string {
	utc := strings.ReplaceAll(at.Format(UTCLayout), " ", "+")

	var b strings.Builder
	b.WriteString(r.BaseURL)
	if strings.Contains(r.BaseURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	fmt.Fprintf(&b, "date=1&utc=%s&img=-k1&sys=-Sf&imgsize=%d&dynimg=y", utc, r.ImageSize)
	return b.String()
}

func (r *SolarRenderer) Render(ctx context.Context, at time.Time) (Frame, error) {
	u := r.URL(at)
	if _, err := url.Parse(u); err != nil {
		return Frame{}, fmt.Errorf("renderer url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Frame{}, err
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Frame{}, fmt.Errorf("renderer request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Frame{}, fmt.Errorf("renderer response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Frame{}, fmt.Errorf("renderer returned %s: %s", resp.Status, snippet(body))
	}

	return Decode(body)
}

// Decode checks that data is a supported image and records its size.
func Decode(data []byte) (Frame, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Frame{}, fmt.Errorf("renderer returned no image (%s): %w", snippet(data), err)
	}
	return Frame{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

func snippet(b []byte) string {
	const max = 120
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
