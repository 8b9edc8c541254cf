package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultDefaults(t *testing.T) {
	r := NewResult()

	assert.Equal(t, Version, r.Version)
	assert.NotNil(t, r.Contexts)
	assert.NotNil(t, r.Evidence)
	assert.Equal(t, ColorNone, r.Traits.Terminal.ColorLevel)
	for _, stream := range []StreamInfo{r.Traits.Terminal.Stdin, r.Traits.Terminal.Stdout, r.Traits.Terminal.Stderr} {
		assert.False(t, stream.TTY)
		assert.True(t, stream.Piped)
	}
}

func TestAddContext(t *testing.T) {
	r := NewResult()
	r.AddContext("agent")
	r.AddContext("ci")
	r.AddContext("agent")

	assert.Equal(t, []string{"agent", "ci"}, r.Contexts)
	assert.True(t, r.HasContext("ci"))
	assert.False(t, r.HasContext("ide"))
}

func TestResultJSONShape(t *testing.T) {
	r := NewResult()
	r.AddContext("ci")
	r.Traits.CI.ID = sptr("github_actions")
	r.Evidence = append(r.Evidence, EnvEvidence("GITHUB_ACTIONS", "true", []string{"ci.id"}, ConfidenceHigh))

	data, err := json.Marshal(&r)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	// Top-level shape and snake_case key names are contract-stable.
	assert.ElementsMatch(t, []string{"contexts", "traits", "evidence", "version"}, keys(doc))

	traits := doc["traits"].(map[string]any)
	assert.ElementsMatch(t, []string{"agent", "ide", "ci", "terminal"}, keys(traits))

	terminal := traits["terminal"].(map[string]any)
	assert.Contains(t, terminal, "color_level")
	assert.Contains(t, terminal, "supports_hyperlinks")
	stdin := terminal["stdin"].(map[string]any)
	assert.ElementsMatch(t, []string{"tty", "piped"}, keys(stdin))

	// Absent optional ids serialize as explicit nulls.
	agent := traits["agent"].(map[string]any)
	assert.Nil(t, agent["id"])

	evidence := doc["evidence"].([]any)
	require.Len(t, evidence, 1)
	first := evidence[0].(map[string]any)
	assert.Equal(t, "env", first["signal"])
	assert.Equal(t, "GITHUB_ACTIONS", first["key"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestTerminalTraitsAlias(t *testing.T) {
	var traits TerminalTraits
	require.NoError(t, json.Unmarshal([]byte(`{"colour_level": "ansi256"}`), &traits))
	assert.Equal(t, ColorAnsi256, traits.ColorLevel)

	// The canonical name wins when both are present.
	require.NoError(t, json.Unmarshal([]byte(`{"color_level": "truecolor", "colour_level": "ansi16"}`), &traits))
	assert.Equal(t, ColorTruecolor, traits.ColorLevel)
}

func TestCanConvert(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{version: "0.3.0", want: true},
		{version: "0.2.0", want: true},
		{version: "0.2.5", want: true},
		{version: "0.1.0", want: false},
		{version: "0.4.0", want: false},
		{version: "garbage", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, CanConvert(tt.version))
		})
	}
}

func TestStream(t *testing.T) {
	assert.Equal(t, StreamInfo{TTY: true, Piped: false}, Stream(true))
	assert.Equal(t, StreamInfo{TTY: false, Piped: true}, Stream(false))
}
