package detect

import (
	"strings"

	"github.com/technicalpickles/envsense/internal/schema"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// ColorProbe is an optional host capability that knows the terminal's color
// level better than the env heuristic (a terminfo query, a host API).
type ColorProbe interface {
	QueryColorLevel() (schema.ColorLevel, bool)
}

// HyperlinkProbe is an optional host capability answering whether the
// terminal renders OSC 8 hyperlinks.
type HyperlinkProbe interface {
	QuerySupportsHyperlinks() bool
}

// TerminalDetector reads TTY state from the snapshot (never from env) and
// resolves color and hyperlink capability: probe first, env heuristic
// second, none last.
type TerminalDetector struct {
	Color      ColorProbe
	Hyperlinks HyperlinkProbe
}

func (d *TerminalDetector) Name() string { return "terminal" }

func (d *TerminalDetector) Detect(snap *snapshot.Snapshot) Detection {
	det := NewDetection()

	stdin := snap.IsTTYStdin()
	stdout := snap.IsTTYStdout()
	stderr := snap.IsTTYStderr()
	interactive := stdin && stdout

	level, hasProbe := schema.ColorLevel(""), false
	if d.Color != nil {
		level, hasProbe = d.Color.QueryColorLevel()
	}
	if !hasProbe {
		level = colorLevelFromEnv(snap, stdout)
	}

	hyperlinks := false
	if d.Hyperlinks != nil {
		hyperlinks = d.Hyperlinks.QuerySupportsHyperlinks()
	}

	// Nested form is authoritative; the flat keys ride along for legacy
	// consumers of the patch.
	det.TraitsPatch["terminal"] = map[string]any{
		"interactive":         interactive,
		"color_level":         string(level),
		"stdin":               map[string]any{"tty": stdin, "piped": !stdin},
		"stdout":              map[string]any{"tty": stdout, "piped": !stdout},
		"stderr":              map[string]any{"tty": stderr, "piped": !stderr},
		"supports_hyperlinks": hyperlinks,
	}
	det.TraitsPatch["is_interactive"] = interactive
	det.TraitsPatch["is_tty_stdin"] = stdin
	det.TraitsPatch["is_tty_stdout"] = stdout
	det.TraitsPatch["is_tty_stderr"] = stderr

	det.Evidence = append(det.Evidence,
		schema.TTYEvidence("stdin", stdin, []string{"terminal.stdin.tty"}),
		schema.TTYEvidence("stdout", stdout, []string{"terminal.stdout.tty"}),
		schema.TTYEvidence("stderr", stderr, []string{"terminal.stderr.tty"}),
	)
	det.Confidence = schema.ConfidenceTerminal
	return det
}

// colorLevelFromEnv resolves the color level from the conventional
// variables. NO_COLOR always wins; FORCE_COLOR then asserts a level even
// without a TTY; otherwise a non-TTY stdout gets none and COLORTERM/TERM
// decide the rest.
func colorLevelFromEnv(snap *snapshot.Snapshot, stdoutTTY bool) schema.ColorLevel {
	if _, set := snap.Get("NO_COLOR"); set {
		return schema.ColorNone
	}
	if force, set := snap.Get("FORCE_COLOR"); set {
		switch force {
		case "0", "false":
			return schema.ColorNone
		case "2":
			return schema.ColorAnsi256
		case "3":
			return schema.ColorTruecolor
		default:
			return schema.ColorAnsi16
		}
	}
	if !stdoutTTY {
		return schema.ColorNone
	}
	if colorterm, set := snap.Get("COLORTERM"); set {
		if colorterm == "truecolor" || colorterm == "24bit" {
			return schema.ColorTruecolor
		}
	}
	term, set := snap.Get("TERM")
	if !set || term == "" || term == "dumb" {
		return schema.ColorNone
	}
	if strings.Contains(term, "256color") {
		return schema.ColorAnsi256
	}
	return schema.ColorAnsi16
}
