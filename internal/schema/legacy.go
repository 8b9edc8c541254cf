package schema

// LegacyResult is the flat 0.2.0 document: boolean contexts plus flat facet
// and trait records. It remains on the wire for consumers that have not
// migrated; conversion to and from Result is total and lossless for the
// fields both shapes define.
type LegacyResult struct {
	// Contexts as booleans.
	IsAgent bool `json:"is_agent"`
	IsIDE   bool `json:"is_ide"`
	IsCI    bool `json:"is_ci"`

	// Facets: flat identifier fields.
	AgentID  *string `json:"agent_id"`
	IDEID    *string `json:"ide_id"`
	CIID     *string `json:"ci_id"`
	CIVendor *string `json:"ci_vendor"`
	CIBranch *string `json:"ci_branch"`
	CIIsPR   *bool   `json:"ci_is_pr"`

	// Traits: flat terminal facts.
	IsInteractive      bool       `json:"is_interactive"`
	IsTTYStdin         bool       `json:"is_tty_stdin"`
	IsTTYStdout        bool       `json:"is_tty_stdout"`
	IsTTYStderr        bool       `json:"is_tty_stderr"`
	IsPipedStdin       bool       `json:"is_piped_stdin"`
	IsPipedStdout      bool       `json:"is_piped_stdout"`
	IsPipedStderr      bool       `json:"is_piped_stderr"`
	ColorLevel         ColorLevel `json:"color_level"`
	SupportsHyperlinks bool       `json:"supports_hyperlinks"`

	Evidence []Evidence `json:"evidence"`
	Version  string     `json:"version"`
}

// ToLegacy projects a Result onto the flat 0.2.0 shape. Fields the legacy
// shape never defined (ci.name) are dropped.
func ToLegacy(r Result) LegacyResult {
	term := r.Traits.Terminal
	return LegacyResult{
		IsAgent: r.HasContext("agent"),
		IsIDE:   r.HasContext("ide"),
		IsCI:    r.HasContext("ci"),

		AgentID:  r.Traits.Agent.ID,
		IDEID:    r.Traits.IDE.ID,
		CIID:     r.Traits.CI.ID,
		CIVendor: r.Traits.CI.Vendor,
		CIBranch: r.Traits.CI.Branch,
		CIIsPR:   r.Traits.CI.IsPR,

		IsInteractive:      term.Interactive,
		IsTTYStdin:         term.Stdin.TTY,
		IsTTYStdout:        term.Stdout.TTY,
		IsTTYStderr:        term.Stderr.TTY,
		IsPipedStdin:       term.Stdin.Piped,
		IsPipedStdout:      term.Stdout.Piped,
		IsPipedStderr:      term.Stderr.Piped,
		ColorLevel:         term.ColorLevel,
		SupportsHyperlinks: term.SupportsHyperlinks,

		Evidence: r.Evidence,
		Version:  LegacyVersion,
	}
}

// FromLegacy lifts a flat 0.2.0 document into the nested shape. Fields the
// legacy shape never carried (ci.name) take their defaults. Contexts are
// reconstructed in the fixed agent, ide, ci order the legacy booleans imply.
func FromLegacy(l LegacyResult) Result {
	r := NewResult()
	if l.IsAgent {
		r.AddContext("agent")
	}
	if l.IsIDE {
		r.AddContext("ide")
	}
	if l.IsCI {
		r.AddContext("ci")
	}

	r.Traits.Agent.ID = l.AgentID
	r.Traits.IDE.ID = l.IDEID
	r.Traits.CI.ID = l.CIID
	r.Traits.CI.Vendor = l.CIVendor
	r.Traits.CI.Branch = l.CIBranch
	r.Traits.CI.IsPR = l.CIIsPR

	level := l.ColorLevel
	if level == "" {
		level = ColorNone
	}
	r.Traits.Terminal = TerminalTraits{
		Interactive:        l.IsInteractive,
		ColorLevel:         level,
		Stdin:              Stream(l.IsTTYStdin),
		Stdout:             Stream(l.IsTTYStdout),
		Stderr:             Stream(l.IsTTYStderr),
		SupportsHyperlinks: l.SupportsHyperlinks,
	}

	if l.Evidence != nil {
		r.Evidence = l.Evidence
	}
	return r
}
