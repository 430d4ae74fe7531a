package engine

import (
	"fmt"
	"time"

	"github.com/ivlev/solar2video/internal/source"
)

// Pipeline stages, as reported in FrameError.
const (
	StageRender  = "render"
	StageOverlay = "overlay"
	StageStore   = "store"
	StageEncode  = "encode"
)

// FrameError is a fatal collaborator failure. Index and Instant identify the
// sample; Index is 0 for failures that concern the whole run.
type FrameError struct {
	Stage   string
	Index   int
	Instant time.Time
	Err     error
}

func (e *FrameError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed for frame %d at %s: %v", e.Stage, e.Index, e.Instant.Format(source.UTCLayout), e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
