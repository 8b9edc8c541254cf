package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sptr(s string) *string { return &s }
func bptr(b bool) *bool     { return &b }

func sampleResult() Result {
	r := NewResult()
	r.AddContext("agent")
	r.AddContext("ci")
	r.Traits.Agent.ID = sptr("cursor")
	r.Traits.CI.ID = sptr("github_actions")
	r.Traits.CI.Vendor = sptr("github_actions")
	r.Traits.CI.Branch = sptr("main")
	r.Traits.CI.IsPR = bptr(true)
	r.Traits.Terminal = TerminalTraits{
		Interactive:        true,
		ColorLevel:         ColorTruecolor,
		Stdin:              Stream(true),
		Stdout:             Stream(true),
		Stderr:             Stream(false),
		SupportsHyperlinks: true,
	}
	r.Evidence = append(r.Evidence, EnvEvidence("CURSOR_AGENT", "1", []string{"agent.id"}, ConfidenceHigh))
	return r
}

func TestToLegacy(t *testing.T) {
	legacy := ToLegacy(sampleResult())

	assert.True(t, legacy.IsAgent)
	assert.False(t, legacy.IsIDE)
	assert.True(t, legacy.IsCI)
	require.NotNil(t, legacy.AgentID)
	assert.Equal(t, "cursor", *legacy.AgentID)
	require.NotNil(t, legacy.CIBranch)
	assert.Equal(t, "main", *legacy.CIBranch)
	assert.True(t, legacy.IsInteractive)
	assert.True(t, legacy.IsTTYStdin)
	assert.False(t, legacy.IsPipedStdin)
	assert.True(t, legacy.IsPipedStderr)
	assert.Equal(t, ColorTruecolor, legacy.ColorLevel)
	assert.Equal(t, LegacyVersion, legacy.Version)
	assert.Len(t, legacy.Evidence, 1)
}

func TestLegacyRoundTrip(t *testing.T) {
	original := sampleResult()

	restored := FromLegacy(ToLegacy(original))

	// ci.name is not representable in the legacy shape; everything else
	// round-trips bit-exactly.
	if diff := cmp.Diff(original, restored); diff != "" {
		t.Errorf("round trip lost data:\n%s", diff)
	}
}

func TestFromLegacyDefaults(t *testing.T) {
	restored := FromLegacy(LegacyResult{})

	assert.Empty(t, restored.Contexts)
	assert.Nil(t, restored.Traits.Agent.ID)
	assert.Nil(t, restored.Traits.CI.Name, "field unknown to legacy takes its default")
	assert.Equal(t, ColorNone, restored.Traits.Terminal.ColorLevel)
	assert.Equal(t, Version, restored.Version)
	assert.NotNil(t, restored.Evidence)
	assert.True(t, restored.Traits.Terminal.Stdin.Piped, "piped stays the negation of tty")
}

func TestFromLegacyDropsUnrepresentableName(t *testing.T) {
	r := sampleResult()
	r.Traits.CI.Name = sptr("GitHub Actions")

	restored := FromLegacy(ToLegacy(r))
	assert.Nil(t, restored.Traits.CI.Name)
}
