package detect

import (
	"strings"

	"github.com/technicalpickles/envsense/internal/mapping"
)

// OverrideKind classifies the user's ENVSENSE_* override for a detector.
type OverrideKind int

const (
	// OverrideNone means no override variable applies; run normal detection.
	OverrideNone OverrideKind = iota
	// OverrideDisable suppresses the detector entirely: no id, no context,
	// confidence zero.
	OverrideDisable
	// OverrideForce pins the detector's id to the user-supplied value at
	// full confidence.
	OverrideForce
)

// OverrideResult is the resolved override for one detector type.
type OverrideResult struct {
	Kind  OverrideKind
	Value string
}

// assumeAlias maps a detector type to the ENVSENSE_ASSUME_* variable that
// disables it: assuming a human rules out an agent, a plain terminal rules
// out an IDE, a local run rules out CI.
var assumeAlias = map[string]string{
	"agent": "HUMAN",
	"ide":   "TERMINAL",
	"ci":    "LOCAL",
}

// CheckDetectorOverrides resolves ENVSENSE_{TYPE} and ENVSENSE_ASSUME_{alias}
// for a detector type. Disabling forms win over forcing forms.
func CheckDetectorOverrides(env mapping.Env, detectorType string) OverrideResult {
	typeVar := "ENVSENSE_" + strings.ToUpper(detectorType)
	value, hasTypeVar := env.Get(typeVar)

	if hasTypeVar && value == "none" {
		return OverrideResult{Kind: OverrideDisable}
	}
	if alias, ok := assumeAlias[detectorType]; ok {
		if v, present := env.Get("ENVSENSE_ASSUME_" + alias); present && v == "1" {
			return OverrideResult{Kind: OverrideDisable}
		}
	}
	if hasTypeVar && value != "" {
		return OverrideResult{Kind: OverrideForce, Value: value}
	}
	return OverrideResult{Kind: OverrideNone}
}

// OverrideVar returns the ENVSENSE_* variable name consulted for a detector
// type, for evidence records.
func OverrideVar(detectorType string) string {
	return "ENVSENSE_" + strings.ToUpper(detectorType)
}
