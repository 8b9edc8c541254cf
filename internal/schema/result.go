// Package schema defines the nested detection result document, its evidence
// records, and the bidirectional conversion to the legacy flat shape.
//
// Field names on the wire are snake_case and contract-stable. Renames gain
// input aliases; removals require a major schema bump.
package schema

import "encoding/json"

// Signal identifies the source of an evidence observation.
type Signal string

const (
	SignalEnv  Signal = "env"
	SignalTTY  Signal = "tty"
	SignalProc Signal = "proc"
	SignalFS   Signal = "fs"
)

// ColorLevel is the detected color capability of the attached terminal.
type ColorLevel string

const (
	ColorNone      ColorLevel = "none"
	ColorAnsi16    ColorLevel = "ansi16"
	ColorAnsi256   ColorLevel = "ansi256"
	ColorTruecolor ColorLevel = "truecolor"
)

// Evidence is a traceable justification for a claim in the result.
type Evidence struct {
	Signal     Signal   `json:"signal"`
	Key        string   `json:"key"`
	Value      *string  `json:"value,omitempty"`
	Supports   []string `json:"supports"`
	Confidence float64  `json:"confidence"`
}

// EnvEvidence builds an env-signal evidence record for key=value.
func EnvEvidence(key, value string, supports []string, confidence float64) Evidence {
	v := value
	return Evidence{
		Signal:     SignalEnv,
		Key:        key,
		Value:      &v,
		Supports:   supports,
		Confidence: confidence,
	}
}

// EnvPresenceEvidence builds an env-signal evidence record for a variable
// whose presence (not value) supports a claim.
func EnvPresenceEvidence(key string, supports []string, confidence float64) Evidence {
	return Evidence{
		Signal:     SignalEnv,
		Key:        key,
		Supports:   supports,
		Confidence: confidence,
	}
}

// TTYEvidence builds a tty-signal evidence record for one stream.
func TTYEvidence(key string, value bool, supports []string) Evidence {
	v := "false"
	if value {
		v = "true"
	}
	return Evidence{
		Signal:     SignalTTY,
		Key:        key,
		Value:      &v,
		Supports:   supports,
		Confidence: ConfidenceTerminal,
	}
}

// Confidence constants shared by detectors and evidence records.
// Terminal TTY facts are deterministic, hence full confidence.
const (
	ConfidenceHigh     = 1.0
	ConfidenceMedium   = 0.8
	ConfidenceLow      = 0.6
	ConfidenceTerminal = 1.0
)

// AgentTraits describes a detected coding agent.
type AgentTraits struct {
	ID *string `json:"id"`
}

// IDETraits describes a detected IDE host.
type IDETraits struct {
	ID *string `json:"id"`
}

// CITraits describes a detected CI system.
type CITraits struct {
	ID     *string `json:"id"`
	Vendor *string `json:"vendor"`
	Name   *string `json:"name"`
	IsPR   *bool   `json:"is_pr"`
	Branch *string `json:"branch"`
}

// StreamInfo describes one standard stream. Piped is always the negation
// of TTY; both are carried on the wire for consumer convenience.
type StreamInfo struct {
	TTY   bool `json:"tty"`
	Piped bool `json:"piped"`
}

// Stream builds a StreamInfo from a tty bit, maintaining piped == !tty.
func Stream(tty bool) StreamInfo {
	return StreamInfo{TTY: tty, Piped: !tty}
}

// TerminalTraits describes the attached terminal.
type TerminalTraits struct {
	Interactive        bool       `json:"interactive"`
	ColorLevel         ColorLevel `json:"color_level"`
	Stdin              StreamInfo `json:"stdin"`
	Stdout             StreamInfo `json:"stdout"`
	Stderr             StreamInfo `json:"stderr"`
	SupportsHyperlinks bool       `json:"supports_hyperlinks"`
}

// Traits is the nested trait document grouped by context.
type Traits struct {
	Agent    AgentTraits    `json:"agent"`
	IDE      IDETraits      `json:"ide"`
	CI       CITraits       `json:"ci"`
	Terminal TerminalTraits `json:"terminal"`
}

// Result is the authoritative detection document.
type Result struct {
	Contexts []string   `json:"contexts"`
	Traits   Traits     `json:"traits"`
	Evidence []Evidence `json:"evidence"`
	Version  string     `json:"version"`
}

// NewResult returns a Result with documented defaults and the current
// schema version. Contexts and evidence are empty but non-nil so the JSON
// document always carries arrays.
func NewResult() Result {
	return Result{
		Contexts: []string{},
		Traits: Traits{
			Terminal: TerminalTraits{
				ColorLevel: ColorNone,
				Stdin:      Stream(false),
				Stdout:     Stream(false),
				Stderr:     Stream(false),
			},
		},
		Evidence: []Evidence{},
		Version:  Version,
	}
}

// HasContext reports whether the context tag is present.
func (r *Result) HasContext(name string) bool {
	for _, c := range r.Contexts {
		if c == name {
			return true
		}
	}
	return false
}

// AddContext appends a context tag, preserving first-insertion order and
// dropping duplicates.
func (r *Result) AddContext(name string) {
	if !r.HasContext(name) {
		r.Contexts = append(r.Contexts, name)
	}
}

// MarshalIndent renders the canonical JSON document.
func (r *Result) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalJSON accepts renamed-field aliases alongside canonical names.
// color_level was briefly published as colour_level; both parse, the
// canonical name wins when both are present.
func (t *TerminalTraits) UnmarshalJSON(data []byte) error {
	type plain TerminalTraits
	aux := struct {
		*plain
		ColorLevelAlias *ColorLevel `json:"colour_level"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ColorLevel == "" && aux.ColorLevelAlias != nil {
		t.ColorLevel = *aux.ColorLevelAlias
	}
	if t.ColorLevel == "" {
		t.ColorLevel = ColorNone
	}
	return nil
}
