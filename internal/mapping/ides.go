package mapping

import (
	"strings"

	"github.com/technicalpickles/envsense/internal/schema"
)

// IDEs returns the builtin IDE mapping table. Selection is priority-based:
// VS Code forks set TERM_PROGRAM=vscode too, so the more specific mapping
// must outrank the plain one explicitly.
func IDEs() []Mapping {
	return []Mapping{
		{
			ID:         "cursor",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "TERM_PROGRAM", Mode: MatchEquals, Value: "vscode", Required: true, Priority: 12},
				{Key: "CURSOR_TRACE_ID", Mode: MatchPresent, Priority: 12},
			},
			ContextsAdd: []string{"ide"},
		},
		{
			ID:         "vscode-insiders",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "TERM_PROGRAM", Mode: MatchEquals, Value: "vscode", Required: true, Priority: 11},
				{Key: "VSCODE_GIT_ASKPASS_MAIN", Mode: MatchPredicate, Priority: 11, Predicate: func(v string) bool {
					return strings.Contains(v, "Insiders")
				}},
			},
			ContextsAdd: []string{"ide"},
		},
		{
			ID:         "vscode",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "TERM_PROGRAM", Mode: MatchEquals, Value: "vscode", Priority: 10},
			},
			ContextsAdd: []string{"ide"},
		},
		{
			ID:         "jetbrains",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "TERMINAL_EMULATOR", Mode: MatchPrefix, Value: "JetBrains", Priority: 10},
			},
			ContextsAdd: []string{"ide"},
		},
		{
			ID:         "zed",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "TERM_PROGRAM", Mode: MatchEquals, Value: "zed", Priority: 10},
			},
			ContextsAdd: []string{"ide"},
		},
	}
}
