package detect

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/technicalpickles/envsense/internal/schema"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

type recordingLogger struct{ msgs []string }

func (l *recordingLogger) Warn(msg string) { l.msgs = append(l.msgs, msg) }

func defaultEngine(logger Logger) *Engine {
	return NewEngine(DefaultDetectors(nil, nil), logger)
}

func TestMergeEmptyDetectionIsIdentity(t *testing.T) {
	engine := NewEngine(nil, nil)
	result := schema.NewResult()
	before := result

	engine.Merge(&result, NewDetection())
	if diff := cmp.Diff(before, result); diff != "" {
		t.Errorf("empty detection changed the result:\n%s", diff)
	}
}

func TestMergeContextsDedupPreservesOrder(t *testing.T) {
	engine := NewEngine(nil, nil)
	result := schema.NewResult()

	for _, contexts := range [][]string{{"agent", "ide"}, {"ide", "ci"}, {"agent"}} {
		det := NewDetection()
		det.ContextsAdd = contexts
		engine.Merge(&result, det)
	}

	want := []string{"agent", "ide", "ci"}
	if diff := cmp.Diff(want, result.Contexts); diff != "" {
		t.Errorf("contexts:\n%s", diff)
	}
}

func TestMergeNestedPatchWinsOverFlat(t *testing.T) {
	engine := NewEngine(nil, nil)
	result := schema.NewResult()

	det := NewDetection()
	det.TraitsPatch["is_tty_stdin"] = false
	det.TraitsPatch["terminal"] = map[string]any{
		"stdin": map[string]any{"tty": true},
	}
	engine.Merge(&result, det)

	if !result.Traits.Terminal.Stdin.TTY {
		t.Error("nested patch should win over the flat key in the same detection")
	}
	if result.Traits.Terminal.Stdin.Piped {
		t.Error("piped must stay the negation of tty")
	}
}

func TestMergeFlatKeyRouting(t *testing.T) {
	engine := NewEngine(nil, nil)
	result := schema.NewResult()

	det := NewDetection()
	det.TraitsPatch["is_interactive"] = true
	det.TraitsPatch["is_tty_stdout"] = true
	det.TraitsPatch["is_piped_stderr"] = false
	det.TraitsPatch["color_level"] = "ansi256"
	det.TraitsPatch["supports_hyperlinks"] = true
	det.FacetsPatch["agent_id"] = "cursor"
	det.FacetsPatch["ci_branch"] = "main"
	engine.Merge(&result, det)

	term := result.Traits.Terminal
	if !term.Interactive || !term.Stdout.TTY || term.Stdout.Piped {
		t.Errorf("terminal flat routing wrong: %+v", term)
	}
	if !term.Stderr.TTY {
		t.Error("is_piped_stderr=false should set stderr.tty=true")
	}
	if term.ColorLevel != schema.ColorAnsi256 || !term.SupportsHyperlinks {
		t.Errorf("terminal scalar routing wrong: %+v", term)
	}
	if result.Traits.Agent.ID == nil || *result.Traits.Agent.ID != "cursor" {
		t.Error("agent_id facet not routed")
	}
	if result.Traits.CI.Branch == nil || *result.Traits.CI.Branch != "main" {
		t.Error("ci_branch facet not routed")
	}
}

func TestMergeLaterDetectorWinsAtLeaf(t *testing.T) {
	engine := NewEngine(nil, nil)
	result := schema.NewResult()

	first := NewDetection()
	first.TraitsPatch["agent"] = map[string]any{"id": "first"}
	second := NewDetection()
	second.TraitsPatch["agent"] = map[string]any{"id": "second"}

	engine.Merge(&result, first)
	engine.Merge(&result, second)
	if *result.Traits.Agent.ID != "second" {
		t.Errorf("agent.id = %q, want second", *result.Traits.Agent.ID)
	}
}

func TestMergeMalformedPatchWarnsAndContinues(t *testing.T) {
	logger := &recordingLogger{}
	engine := NewEngine(nil, logger)
	result := schema.NewResult()

	det := NewDetection()
	det.TraitsPatch["terminal"] = map[string]any{
		"interactive": "not-a-bool",
		"color_level": "ansi16",
	}
	det.TraitsPatch["mystery_key"] = true
	engine.Merge(&result, det)

	if result.Traits.Terminal.ColorLevel != schema.ColorAnsi16 {
		t.Error("well-formed sibling entries must still apply")
	}
	if result.Traits.Terminal.Interactive {
		t.Error("malformed entry must be dropped")
	}
	if len(logger.msgs) != 2 {
		t.Errorf("warnings = %v, want 2 (malformed field, unknown key)", logger.msgs)
	}
}

func TestDetectEmptyEnvironment(t *testing.T) {
	result := defaultEngine(nil).Detect(snapshot.WithMock(nil, false, false, false))

	if len(result.Contexts) != 0 {
		t.Errorf("contexts = %v, want empty", result.Contexts)
	}
	if result.Traits.Agent.ID != nil || result.Traits.IDE.ID != nil || result.Traits.CI.ID != nil {
		t.Error("ids must be absent in an empty environment")
	}
	term := result.Traits.Terminal
	if term.Interactive || term.ColorLevel != schema.ColorNone {
		t.Errorf("terminal = %+v, want non-interactive, no color", term)
	}
	if result.Version != schema.Version {
		t.Errorf("version = %q, want %q", result.Version, schema.Version)
	}
}

func TestDetectPipedScript(t *testing.T) {
	result := defaultEngine(nil).Detect(snapshot.WithMock(nil, true, false, false))

	term := result.Traits.Terminal
	if term.Interactive {
		t.Error("stdout piped means not interactive")
	}
	if !term.Stdout.Piped || !term.Stdin.TTY {
		t.Errorf("streams = %+v", term)
	}
	if term.ColorLevel != schema.ColorNone {
		t.Errorf("color = %q, want none", term.ColorLevel)
	}
	if result.Traits.CI.ID != nil {
		t.Error("ci.id must stay absent")
	}
}

func TestDetectCursorIDEAndAgent(t *testing.T) {
	result := defaultEngine(nil).Detect(snapshot.WithMock(map[string]string{
		"TERM_PROGRAM":    "vscode",
		"CURSOR_TRACE_ID": "abc",
		"CURSOR_AGENT":    "1",
	}, true, true, true))

	if !result.HasContext("agent") || !result.HasContext("ide") {
		t.Errorf("contexts = %v, want agent and ide", result.Contexts)
	}
	if result.Traits.Agent.ID == nil || *result.Traits.Agent.ID != "cursor" {
		t.Error("agent.id should be cursor")
	}
	if result.Traits.IDE.ID == nil || *result.Traits.IDE.ID != "cursor" {
		t.Error("ide.id should be cursor (outranks vscode)")
	}
	if !result.Traits.Terminal.Interactive {
		t.Error("all TTYs means interactive")
	}
}

func TestDetectGitHubActionsPR(t *testing.T) {
	result := defaultEngine(nil).Detect(snapshot.WithMock(map[string]string{
		"GITHUB_ACTIONS":    "true",
		"GITHUB_EVENT_NAME": "pull_request",
		"GITHUB_REF_NAME":   "feature/x",
		"CI":                "true",
	}, false, false, false))

	if !result.HasContext("ci") {
		t.Errorf("contexts = %v, want ci", result.Contexts)
	}
	ci := result.Traits.CI
	if ci.ID == nil || *ci.ID != "github_actions" {
		t.Error("ci.id should be github_actions")
	}
	if ci.Vendor == nil || *ci.Vendor != "github_actions" {
		t.Error("ci.vendor should be github_actions")
	}
	if ci.IsPR == nil || !*ci.IsPR {
		t.Error("ci.is_pr should be true")
	}
	if ci.Branch == nil || *ci.Branch != "feature/x" {
		t.Error("ci.branch should be feature/x")
	}
}

func TestDetectOverrideDisablesAgent(t *testing.T) {
	result := defaultEngine(nil).Detect(snapshot.WithMock(map[string]string{
		"CURSOR_AGENT":          "1",
		"ENVSENSE_ASSUME_HUMAN": "1",
	}, false, false, false))

	if result.HasContext("agent") {
		t.Error("agent context must be suppressed")
	}
	if result.Traits.Agent.ID != nil {
		t.Error("agent.id must stay absent")
	}
}

func TestDetectDeterministic(t *testing.T) {
	env := map[string]string{
		"TERM_PROGRAM": "vscode",
		"CI":           "true",
		"CURSOR_AGENT": "1",
	}
	first := defaultEngine(nil).Detect(snapshot.WithMock(env, true, true, false))
	second := defaultEngine(nil).Detect(snapshot.WithMock(env, true, true, false))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("detection is not deterministic:\n%s", diff)
	}
}

func TestEveryClaimHasSupportingEvidence(t *testing.T) {
	result := defaultEngine(nil).Detect(snapshot.WithMock(map[string]string{
		"CURSOR_AGENT":   "1",
		"TERM_PROGRAM":   "vscode",
		"GITHUB_ACTIONS": "true",
	}, true, true, true))

	supported := map[string]bool{}
	for _, e := range result.Evidence {
		for _, path := range e.Supports {
			supported[path] = true
		}
	}
	for _, claim := range []string{"agent.id", "ide.id", "ci.id", "terminal.stdin.tty"} {
		if !supported[claim] {
			t.Errorf("claim %s has no supporting evidence", claim)
		}
	}
}
