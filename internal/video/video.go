package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type VideoEncoder interface {
	Encode(ctx context.Context, framePaths []string, finalPath string) error
}

// Profile is the single encoding profile used for every run.
type Profile struct {
	FPS    int
	CRF    int
	Preset string
	Codec  string
	Filter string
}

func DefaultProfile() Profile {
	return Profile{
		FPS:    30,
		CRF:    18,
		Preset: "slow",
		Codec:  "libx264",
		Filter: "format=yuv420p",
	}
}

type FFmpegEncoder struct {
	Binary  string
	Profile Profile
	TmpDir  string
}

func NewFFmpegEncoder(p Profile, tmpDir string) *FFmpegEncoder {
	return &FFmpegEncoder{Binary: "ffmpeg", Profile: p, TmpDir: tmpDir}
}

// Encode assembles frames, already in display order, into one video.
// Frames are fed through the concat demuxer so no copy of them is made.
func (e *FFmpegEncoder) Encode(ctx context.Context, framePaths []string, finalPath string) error {
	if len(framePaths) == 0 {
		return errors.New("no frames to encode")
	}

	concatFilePath, err := e.writeConcatFile(framePaths)
	if err != nil {
		return err
	}
	defer os.Remove(concatFilePath)

	if dir := filepath.Dir(finalPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, bin, e.buildFFmpegArgs(concatFilePath, finalPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg encode error: %v, output: %s", err, tail(string(out), 2000))
	}
	return nil
}

func (e *FFmpegEncoder) writeConcatFile(framePaths []string) (string, error) {
	tmpDir := e.TmpDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	f, err := os.CreateTemp(tmpDir, "frames_list_*.txt")
	if err != nil {
		return "", err
	}

	for _, p := range framePaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			f.Close()
			return "", err
		}
		// Single quotes inside a concat entry are written as '\''.
		fmt.Fprintf(f, "file '%s'\n", strings.ReplaceAll(absPath, "'", `'\''`))
	}
	return f.Name(), f.Close()
}

func (e *FFmpegEncoder) buildFFmpegArgs(concatFilePath, finalPath string) []string {
	p := e.Profile
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-r", fmt.Sprintf("%d", p.FPS),
		"-i", concatFilePath,
		"-vf", p.Filter,
		"-c:v", p.Codec,
		"-crf", fmt.Sprintf("%d", p.CRF),
		"-preset", p.Preset,
		finalPath,
	}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
