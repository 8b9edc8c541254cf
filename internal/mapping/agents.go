package mapping

import (
	"strings"

	"github.com/technicalpickles/envsense/internal/schema"
)

// Agents returns the builtin agent mapping table. Selection is
// confidence-based: agent indicators rarely overlap, so the strongest
// single signal wins.
func Agents() []Mapping {
	return []Mapping{
		{
			ID:         "cursor",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "CURSOR_AGENT", Mode: MatchPresent},
			},
			ContextsAdd: []string{"agent"},
		},
		{
			ID:         "claude-code",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "CLAUDECODE", Mode: MatchEquals, Value: "1"},
				{Key: "CLAUDE_CODE_ENTRYPOINT", Mode: MatchPresent},
			},
			ContextsAdd: []string{"agent"},
		},
		{
			ID:         "aider",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "AIDER_MODEL", Mode: MatchPresent},
				{Key: "AIDER_CHAT_HISTORY_FILE", Mode: MatchPresent},
			},
			ContextsAdd: []string{"agent"},
		},
		{
			ID:         "cline",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "CLINE_ACTIVE", Mode: MatchPresent},
			},
			ContextsAdd: []string{"agent"},
		},
		{
			ID:         "replit",
			Confidence: schema.ConfidenceMedium,
			Indicators: []EnvIndicator{
				{Key: "REPL_ID", Mode: MatchPresent},
				{Key: "REPLIT_USER", Mode: MatchPresent},
			},
			ContextsAdd: []string{"agent"},
		},
		{
			ID:         "openhands",
			Confidence: schema.ConfidenceMedium,
			Indicators: []EnvIndicator{
				{Key: "OPENHANDS_WORKSPACE_BASE", Mode: MatchPresent},
			},
			ContextsAdd: []string{"agent"},
		},
		{
			// Generic escape hatch: some hosts advertise themselves through a
			// plain AGENT variable. Weakest signal; the id is the lowercased
			// variable value.
			ID:         "agent-var",
			Confidence: schema.ConfidenceLow,
			Indicators: []EnvIndicator{
				{Key: "AGENT", Mode: MatchPredicate, Predicate: func(v string) bool {
					return strings.TrimSpace(v) != ""
				}},
			},
			ValueMappings: []ValueMapping{
				{
					TargetKey:  "id",
					SourceKeys: []string{"AGENT"},
					Transform:  Transform{Kind: TransformLowercase},
					Validation: []Validation{{Kind: ValidationNonEmpty}},
				},
			},
			ContextsAdd: []string{"agent"},
		},
	}
}
