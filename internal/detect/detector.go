// Package detect runs the detectors over an environment snapshot and merges
// their partial results into a single schema.Result.
package detect

import (
	"github.com/technicalpickles/envsense/internal/schema"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// Detection is one detector's partial result. A traits patch entry either
// carries a nested object for a whole trait group ("terminal" -> {...}) or a
// flat legacy key ("is_tty_stdin" -> true); the merger accepts both, with
// nested taking precedence.
type Detection struct {
	ContextsAdd []string
	TraitsPatch map[string]any
	FacetsPatch map[string]any
	Evidence    []schema.Evidence
	Confidence  float64
}

// NewDetection returns an empty partial result with allocated patch maps.
func NewDetection() Detection {
	return Detection{
		TraitsPatch: map[string]any{},
		FacetsPatch: map[string]any{},
	}
}

// Detector produces a partial detection from a snapshot. Detectors never
// fail: missing signals are absence, not errors.
type Detector interface {
	Name() string
	Detect(snap *snapshot.Snapshot) Detection
}

// Logger receives best-effort warnings about malformed patches and unknown
// legacy keys. The zero value of detection never requires one; callers that
// pass nil get a no-op.
type Logger interface {
	Warn(msg string)
}

type nopLogger struct{}

func (nopLogger) Warn(string) {}
