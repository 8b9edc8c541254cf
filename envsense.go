// Package envsense detects where the current process is running - inside a
// coding agent, an IDE, a CI system, and what kind of terminal is attached -
// and reports it as a stable, versioned result document with evidence for
// each conclusion.
//
// The implementation lives under internal/; this package is the supported
// library surface.
package envsense

import (
	"github.com/technicalpickles/envsense/internal/check"
	"github.com/technicalpickles/envsense/internal/detect"
	"github.com/technicalpickles/envsense/internal/schema"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// Result types, re-exported for consumers.
type (
	Result         = schema.Result
	Traits         = schema.Traits
	AgentTraits    = schema.AgentTraits
	IDETraits      = schema.IDETraits
	CITraits       = schema.CITraits
	TerminalTraits = schema.TerminalTraits
	StreamInfo     = schema.StreamInfo
	Evidence       = schema.Evidence
	Signal         = schema.Signal
	ColorLevel     = schema.ColorLevel
	LegacyResult   = schema.LegacyResult
)

// Predicate types, re-exported for consumers.
type (
	ParsedCheck = check.ParsedCheck
	CheckResult = check.CheckResult
)

// Snapshot and capability types, re-exported for consumers that inject
// their own TTY or probe implementations.
type (
	Snapshot       = snapshot.Snapshot
	TTY            = snapshot.TTY
	MockTTY        = snapshot.MockTTY
	Detector       = detect.Detector
	Detection      = detect.Detection
	ColorProbe     = detect.ColorProbe
	HyperlinkProbe = detect.HyperlinkProbe
	Logger         = detect.Logger
)

const (
	ColorNone      = schema.ColorNone
	ColorAnsi16    = schema.ColorAnsi16
	ColorAnsi256   = schema.ColorAnsi256
	ColorTruecolor = schema.ColorTruecolor
)

// SchemaVersion is the version stamped on every Result.
const SchemaVersion = schema.Version

// Options parameterize DetectWith.
type Options struct {
	// TTY substitutes the TTY capability; nil uses the real one.
	TTY snapshot.TTY
	// Color and Hyperlinks are optional host probes consulted before the
	// env heuristics.
	Color      detect.ColorProbe
	Hyperlinks detect.HyperlinkProbe
	// Extra detectors run after the builtin ones (process-ancestry
	// scanners and other opt-in hooks).
	Extra []detect.Detector
	// Logger receives best-effort merge warnings.
	Logger detect.Logger
}

// Detect runs one detection cycle against the real environment.
func Detect() Result {
	return DetectWith(Options{})
}

// DetectWith runs one detection cycle with injected capabilities.
func DetectWith(opts Options) Result {
	detectors := detect.DefaultDetectors(opts.Color, opts.Hyperlinks)
	detectors = append(detectors, opts.Extra...)
	engine := detect.NewEngine(detectors, opts.Logger)
	return engine.Detect(snapshot.Current(opts.TTY))
}

// DetectSnapshot runs one detection cycle against a pre-built snapshot.
// Tests combine this with snapshot.WithMock-style inputs via NewSnapshot.
func DetectSnapshot(snap *Snapshot, opts Options) Result {
	detectors := detect.DefaultDetectors(opts.Color, opts.Hyperlinks)
	detectors = append(detectors, opts.Extra...)
	engine := detect.NewEngine(detectors, opts.Logger)
	return engine.Detect(snap)
}

// NewSnapshot builds a hermetic snapshot from fixed env and TTY bits.
func NewSnapshot(env map[string]string, stdinTTY, stdoutTTY, stderrTTY bool) *Snapshot {
	return snapshot.WithMock(env, stdinTTY, stdoutTTY, stderrTTY)
}

// ParseCheck parses a predicate expression.
func ParseCheck(input string) (ParsedCheck, error) {
	return check.Parse(input)
}

// EvaluateString parses and evaluates a predicate against a result.
func EvaluateString(input string, result *Result) (CheckResult, error) {
	parsed, err := check.Parse(input)
	if err != nil {
		return CheckResult{}, err
	}
	return check.Evaluate(parsed, result, check.Options{})
}

// ToLegacy and FromLegacy convert between the nested and the flat 0.2.0
// result shapes.
func ToLegacy(r Result) LegacyResult   { return schema.ToLegacy(r) }
func FromLegacy(l LegacyResult) Result { return schema.FromLegacy(l) }

// CanConvertSchema reports whether a document at the given schema version
// converts to or from the current shape.
func CanConvertSchema(version string) bool { return schema.CanConvert(version) }
