package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/solar2video/internal/annotation"
	"github.com/ivlev/solar2video/internal/config"
	"github.com/ivlev/solar2video/internal/source"
	"github.com/ivlev/solar2video/internal/store"
	"github.com/ivlev/solar2video/internal/system"
	"github.com/ivlev/solar2video/internal/timeline"
	"github.com/ivlev/solar2video/internal/video"
)

// Compositor overlays an annotation onto a rendered frame.
type Compositor interface {
	Compose(src image.Image, a annotation.FrameAnnotation) (*image.RGBA, error)
}

// FrameStore keeps rendered frames and composites between stages.
// *store.FrameStore is the on-disk implementation.
type FrameStore interface {
	SaveRendered(index int, ext string, data []byte) (string, error)
	LoadRendered(index int) (image.Image, error)
	SaveComposite(index int, img image.Image) (string, error)
	Composites(count int) ([]string, error)
	Clean() error
}

type VideoProject struct {
	Config   *config.Config
	Range    timeline.DateRange
	Builder  *annotation.Builder
	Renderer source.Renderer
	Store    FrameStore
	Overlay  Compositor
	Encoder  video.VideoEncoder
	Out      io.Writer

	stats stats
}

type stats struct {
	render, overlay, encode time.Duration
}

func NewVideoProject(cfg *config.Config, r timeline.DateRange, b *annotation.Builder, rnd source.Renderer, st FrameStore, ov Compositor, ve video.VideoEncoder) *VideoProject {
	return &VideoProject{
		Config:   cfg,
		Range:    r,
		Builder:  b,
		Renderer: rnd,
		Store:    st,
		Overlay:  ov,
		Encoder:  ve,
		Out:      os.Stdout,
	}
}

func (p *VideoProject) printf(format string, args ...any) {
	if p.Out != nil {
		fmt.Fprintf(p.Out, format, args...)
	}
}

// Run renders, annotates and stores every sample in order, then encodes the
// video and writes the metadata summary. The first failure stops the run;
// frames already written stay on disk.
func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()
	total := timeline.Count(p.Range)

	p.printf("--- [SOLAR TIME-LAPSE] ---\n")
	p.printf("[*] From %s to %s (step %d days) | Frames: %d\n",
		p.Range.Start.Format(timeline.DateLayout), p.Range.End.Format(timeline.DateLayout), p.Range.StepDays, total)
	p.printf("-----------------------------\n")

	produced, err := p.generate(ctx, total)
	if err != nil {
		return err
	}
	if produced != total {
		return fmt.Errorf("produced %d frames, expected %d", produced, total)
	}

	paths, err := p.Store.Composites(total)
	if err != nil {
		return &FrameError{Stage: StageStore, Err: err}
	}

	p.printf("[*] Building video: %s\n", p.Config.Output)
	encodeStart := time.Now()
	if err := p.Encoder.Encode(ctx, paths, p.Config.Output); err != nil {
		return &FrameError{Stage: StageEncode, Err: err}
	}
	p.stats.encode = time.Since(encodeStart)

	summaryPath := p.Config.Path("frames_metadata.json")
	if err := store.WriteSummary(summaryPath, p.summary(total)); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	p.printf("[*] Metadata written to: %s\n", summaryPath)

	if !p.Config.KeepFrames {
		if err := p.Store.Clean(); err != nil {
			p.printf("[!] Could not remove frame directories: %v\n", err)
		}
	}

	if p.Config.ShowStats {
		p.report(total, time.Since(startTime))
	}
	return nil
}

// generate runs the two-stage pipeline: the sequencer feeds samples into an
// unbuffered channel and a single worker takes each one through render,
// overlay and store before accepting the next. Any error cancels the
// sequencer.
func (p *VideoProject) generate(ctx context.Context, total int) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	samples := make(chan timeline.SampleInstant)

	g.Go(func() error {
		defer close(samples)
		timeline.Walk(p.Range, func(s timeline.SampleInstant) bool {
			select {
			case samples <- s:
				return true
			case <-ctx.Done():
				return false
			}
		})
		return nil
	})

	produced := 0
	g.Go(func() error {
		for s := range samples {
			if err := p.processSample(ctx, s, total); err != nil {
				return err
			}
			produced++
			if produced%100 == 0 {
				p.printf("[>] Processed %d/%d frames...\n", produced, total)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return produced, err
	}
	return produced, nil
}

func (p *VideoProject) processSample(ctx context.Context, s timeline.SampleInstant, total int) error {
	fail := func(stage string, err error) error {
		return &FrameError{Stage: stage, Index: s.Index, Instant: s.Date, Err: err}
	}

	renderStart := time.Now()
	frame, err := p.Renderer.Render(ctx, s.Date)
	if err != nil {
		return fail(StageRender, err)
	}
	renderedPath, err := p.Store.SaveRendered(s.Index, frame.Ext(), frame.Data)
	if err != nil {
		return fail(StageStore, err)
	}
	p.stats.render += time.Since(renderStart)

	suffix := ""
	if s.Final {
		suffix = " (final frame at end date)"
	}
	p.printf("[%d/%d] %s -> %s (%dx%d)%s\n", s.Index, total, s.Date.Format(source.UTCLayout), filepath.Base(renderedPath), frame.Width, frame.Height, suffix)

	overlayStart := time.Now()
	img, err := p.Store.LoadRendered(s.Index)
	if err != nil {
		return fail(StageOverlay, err)
	}

	a := p.Builder.Build(s)
	composite, err := p.Overlay.Compose(img, a)
	if err != nil {
		return fail(StageOverlay, err)
	}
	_, err = p.Store.SaveComposite(s.Index, composite)
	system.PutImage(composite)
	if err != nil {
		return fail(StageStore, err)
	}
	p.stats.overlay += time.Since(overlayStart)
	return nil
}

func (p *VideoProject) summary(total int) store.Summary {
	return store.Summary{
		StartDate:   p.Range.Start.Format(timeline.DateLayout),
		EndDate:     p.Range.End.Format(timeline.DateLayout),
		StepDays:    p.Range.StepDays,
		TotalFrames: total,
		Name:        p.Builder.Name,
		BirthDate:   p.Builder.Start.Format(timeline.DateLayout),
		Output:      p.Config.Output,
	}
}

func (p *VideoProject) report(total int, totalTime time.Duration) {
	fps := float64(total) / totalTime.Seconds()
	p.printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (HTTP): %.2fs\n"+
			"Overlay: %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), p.stats.render.Seconds(), p.stats.overlay.Seconds(), p.stats.encode.Seconds(), fps,
	)

	// One line per run in benchmark.log
	logEntry := fmt.Sprintf("[%s] Build: %s | Range: %s..%s | Step: %d | Frames: %d | Total: %.2fs | Render: %.2fs | Overlay: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Range.Start.Format(timeline.DateLayout),
		p.Range.End.Format(timeline.DateLayout),
		p.Range.StepDays,
		total,
		totalTime.Seconds(),
		p.stats.render.Seconds(),
		p.stats.overlay.Seconds(),
		p.stats.encode.Seconds(),
		fps,
	)

	f, err := os.OpenFile(p.Config.Path("benchmark.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		p.printf("[!] Could not write benchmark.log: %v\n", err)
	}
}
