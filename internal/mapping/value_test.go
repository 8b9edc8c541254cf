package mapping

import (
	"reflect"
	"testing"
)

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name   string
		tr     Transform
		raw    string
		want   any
		wantOK bool
	}{
		{name: "identity", tr: Transform{Kind: TransformIdentity}, raw: "x", want: "x", wantOK: true},
		{name: "zero value is identity", tr: Transform{}, raw: "x", want: "x", wantOK: true},
		{name: "lowercase", tr: Transform{Kind: TransformLowercase}, raw: "Amp", want: "amp", wantOK: true},
		{name: "uppercase", tr: Transform{Kind: TransformUppercase}, raw: "ok", want: "OK", wantOK: true},
		{name: "parse_bool true", tr: Transform{Kind: TransformParseBool}, raw: "true", want: true, wantOK: true},
		{name: "parse_bool 1", tr: Transform{Kind: TransformParseBool}, raw: "1", want: true, wantOK: true},
		{name: "parse_bool garbage", tr: Transform{Kind: TransformParseBool}, raw: "maybe", want: nil, wantOK: false},
		{name: "parse_int", tr: Transform{Kind: TransformParseInt}, raw: " 17 ", want: 17, wantOK: true},
		{name: "parse_int garbage", tr: Transform{Kind: TransformParseInt}, raw: "x", want: nil, wantOK: false},
		{name: "equals hit", tr: Transform{Kind: TransformEquals, Operand: "pull_request"}, raw: "pull_request", want: true, wantOK: true},
		{name: "equals miss", tr: Transform{Kind: TransformEquals, Operand: "pull_request"}, raw: "push", want: false, wantOK: true},
		{name: "not_equals", tr: Transform{Kind: TransformNotEquals, Operand: "false"}, raw: "123", want: true, wantOK: true},
		{name: "unknown kind", tr: Transform{Kind: "nope"}, raw: "x", want: nil, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.tr.Apply(tt.raw)
			if ok != tt.wantOK || !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestConditionSatisfied(t *testing.T) {
	env := envMap{"A": "1", "B": "two"}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{name: "exists", cond: Condition{Kind: ConditionExists, Key: "A"}, want: true},
		{name: "exists missing", cond: Condition{Kind: ConditionExists, Key: "Z"}, want: false},
		{name: "negated exists", cond: Condition{Kind: ConditionExists, Key: "Z", Not: true}, want: true},
		{name: "equals", cond: Condition{Kind: ConditionEquals, Key: "B", Value: "two"}, want: true},
		{name: "equals wrong", cond: Condition{Kind: ConditionEquals, Key: "B", Value: "three"}, want: false},
		{name: "any_of", cond: Condition{Kind: ConditionAnyOf, Keys: []string{"Z", "A"}}, want: true},
		{name: "any_of none", cond: Condition{Kind: ConditionAnyOf, Keys: []string{"Z", "Y"}}, want: false},
		{name: "all_of", cond: Condition{Kind: ConditionAllOf, Keys: []string{"A", "B"}}, want: true},
		{name: "all_of partial", cond: Condition{Kind: ConditionAllOf, Keys: []string{"A", "Z"}}, want: false},
		{name: "all_of empty keys", cond: Condition{Kind: ConditionAllOf}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.Satisfied(env); got != tt.want {
				t.Errorf("Satisfied = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationPasses(t *testing.T) {
	tests := []struct {
		name  string
		v     Validation
		value any
		want  bool
	}{
		{name: "non_empty passes", v: Validation{Kind: ValidationNonEmpty}, value: "x", want: true},
		{name: "non_empty rejects empty", v: Validation{Kind: ValidationNonEmpty}, value: "", want: false},
		{name: "non_empty ignores bools", v: Validation{Kind: ValidationNonEmpty}, value: false, want: true},
		{name: "regex passes", v: Validation{Kind: ValidationMatchesRegex, Pattern: `^[a-z]+$`}, value: "main", want: true},
		{name: "regex rejects", v: Validation{Kind: ValidationMatchesRegex, Pattern: `^[a-z]+$`}, value: "Main", want: false},
		{name: "in_set passes", v: Validation{Kind: ValidationInSet, Set: []string{"a", "b"}}, value: "b", want: true},
		{name: "in_set rejects", v: Validation{Kind: ValidationInSet, Set: []string{"a", "b"}}, value: "c", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Passes(tt.value); got != tt.want {
				t.Errorf("Passes(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestExtractValues(t *testing.T) {
	m := Mapping{
		ID:         "vm",
		Confidence: 1.0,
		Indicators: []EnvIndicator{{Key: "ON", Mode: MatchPresent}},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKeys: []string{"PRIMARY", "FALLBACK"}, Validation: []Validation{{Kind: ValidationNonEmpty}}},
			{TargetKey: "is_pr", SourceKeys: []string{"EVENT"}, Transform: Transform{Kind: TransformEquals, Operand: "pr"}},
			{
				TargetKey:  "gated",
				SourceKeys: []string{"GATED"},
				Condition:  &Condition{Kind: ConditionExists, Key: "GATE"},
			},
			// Second producer for branch must not overwrite the first.
			{TargetKey: "branch", SourceKeys: []string{"OTHER"}},
		},
	}

	t.Run("full extraction", func(t *testing.T) {
		env := envMap{"ON": "1", "FALLBACK": "main", "EVENT": "pr", "OTHER": "ignored"}
		got := m.ExtractValues(env)
		want := map[string]any{"branch": "main", "is_pr": true}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractValues = %v, want %v", got, want)
		}
	})

	t.Run("condition gates value", func(t *testing.T) {
		env := envMap{"ON": "1", "GATED": "x"}
		if _, ok := m.ExtractValues(env)["gated"]; ok {
			t.Error("gated value extracted without its gate variable")
		}
		env["GATE"] = "1"
		if _, ok := m.ExtractValues(env)["gated"]; !ok {
			t.Error("gated value missing with gate variable set")
		}
	})

	t.Run("validation failure drops value", func(t *testing.T) {
		env := envMap{"ON": "1", "PRIMARY": ""}
		if _, ok := m.ExtractValues(env)["branch"]; ok {
			t.Error("empty branch should be dropped by non_empty validation")
		}
	})

	t.Run("non-matching mapping extracts nothing", func(t *testing.T) {
		got := m.ExtractValues(envMap{"FALLBACK": "main"})
		if len(got) != 0 {
			t.Errorf("ExtractValues on non-match = %v, want empty", got)
		}
	})
}
