package mapping

import "github.com/technicalpickles/envsense/internal/schema"

// GenericCIID is the id of the fallback mapping selected when CI=true is
// set but no vendor-specific mapping matches.
const GenericCIID = "generic"

// CIs returns the builtin CI mapping table. Selection is priority-based:
// most vendors also set CI=true, so the generic fallback must lose to every
// vendor mapping. Vendor mappings carry vendor and name as facet literals
// and derive branch and is_pr through value mappings.
func CIs() []Mapping {
	return []Mapping{
		{
			ID:         "github_actions",
			Confidence: schema.ConfidenceHigh,
			Indicators: []EnvIndicator{
				{Key: "GITHUB_ACTIONS", Mode: MatchEquals, Value: "true", Priority: 10},
			},
			Facets: map[string]string{"vendor": "github_actions", "name": "GitHub Actions"},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"GITHUB_HEAD_REF", "GITHUB_REF_NAME"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{TargetKey: "is_pr", SourceKeys: []string{"GITHUB_EVENT_NAME"}, Transform: Transform{Kind: TransformEquals, Operand: "pull_request"}},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "gitlab_ci",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "gitlab_ci", "name": "GitLab CI"},
			Indicators: []EnvIndicator{
				{Key: "GITLAB_CI", Mode: MatchPresent, Priority: 10},
			},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"CI_COMMIT_REF_NAME"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{
					TargetKey:  "is_pr",
					SourceKeys: []string{"CI_MERGE_REQUEST_ID"},
					Transform:  Transform{Kind: TransformNotEquals, Operand: ""},
					Condition:  &Condition{Kind: ConditionExists, Key: "CI_MERGE_REQUEST_ID"},
				},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "circleci",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "circleci", "name": "CircleCI"},
			Indicators: []EnvIndicator{
				{Key: "CIRCLECI", Mode: MatchEquals, Value: "true", Priority: 10},
			},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"CIRCLE_BRANCH"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{
					TargetKey:  "is_pr",
					SourceKeys: []string{"CIRCLE_PULL_REQUEST"},
					Transform:  Transform{Kind: TransformNotEquals, Operand: ""},
					Condition:  &Condition{Kind: ConditionExists, Key: "CIRCLE_PULL_REQUEST"},
				},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "jenkins",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "jenkins", "name": "Jenkins"},
			Indicators: []EnvIndicator{
				{Key: "JENKINS_URL", Mode: MatchPresent, Priority: 10},
				{Key: "BUILD_NUMBER", Mode: MatchPresent, Priority: 8},
			},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"BRANCH_NAME", "GIT_BRANCH"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{
					TargetKey:  "is_pr",
					SourceKeys: []string{"CHANGE_ID"},
					Transform:  Transform{Kind: TransformNotEquals, Operand: ""},
					Condition:  &Condition{Kind: ConditionExists, Key: "CHANGE_ID"},
				},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "travis",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "travis", "name": "Travis CI"},
			Indicators: []EnvIndicator{
				{Key: "TRAVIS", Mode: MatchEquals, Value: "true", Priority: 10},
			},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"TRAVIS_BRANCH"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{TargetKey: "is_pr", SourceKeys: []string{"TRAVIS_PULL_REQUEST"}, Transform: Transform{Kind: TransformNotEquals, Operand: "false"}},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "buildkite",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "buildkite", "name": "Buildkite"},
			Indicators: []EnvIndicator{
				{Key: "BUILDKITE", Mode: MatchEquals, Value: "true", Priority: 10},
			},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"BUILDKITE_BRANCH"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{TargetKey: "is_pr", SourceKeys: []string{"BUILDKITE_PULL_REQUEST"}, Transform: Transform{Kind: TransformNotEquals, Operand: "false"}},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "azure_pipelines",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "azure_pipelines", "name": "Azure Pipelines"},
			Indicators: []EnvIndicator{
				{Key: "TF_BUILD", Mode: MatchEquals, Value: "True", Priority: 10},
			},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"BUILD_SOURCEBRANCHNAME"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{
					TargetKey:  "is_pr",
					SourceKeys: []string{"SYSTEM_PULLREQUEST_PULLREQUESTID"},
					Transform:  Transform{Kind: TransformNotEquals, Operand: ""},
					Condition:  &Condition{Kind: ConditionExists, Key: "SYSTEM_PULLREQUEST_PULLREQUESTID"},
				},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "teamcity",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "teamcity", "name": "TeamCity"},
			Indicators: []EnvIndicator{
				{Key: "TEAMCITY_VERSION", Mode: MatchPresent, Priority: 10},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         "drone",
			Confidence: schema.ConfidenceHigh,
			Facets:     map[string]string{"vendor": "drone", "name": "Drone"},
			Indicators: []EnvIndicator{
				{Key: "DRONE", Mode: MatchEquals, Value: "true", Priority: 10},
			},
			ValueMappings: []ValueMapping{
				{TargetKey: "branch", SourceKeys: []string{"DRONE_BRANCH"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
				{TargetKey: "is_pr", SourceKeys: []string{"DRONE_BUILD_EVENT"}, Transform: Transform{Kind: TransformEquals, Operand: "pull_request"}},
			},
			ContextsAdd: []string{"ci"},
		},
		{
			ID:         GenericCIID,
			Confidence: schema.ConfidenceLow,
			Indicators: []EnvIndicator{
				{Key: "CI", Mode: MatchEquals, Value: "true", Priority: 1},
			},
			ContextsAdd: []string{"ci"},
		},
	}
}
