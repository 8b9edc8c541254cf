package detect

import (
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// CIDetector recognizes CI systems. It selects by priority: nearly every
// vendor also exports CI=true, so the generic fallback must lose to any
// vendor-specific mapping. Winning mappings publish vendor, name, branch,
// and is_pr when their facets and value mappings produce them.
type CIDetector struct {
	Mappings []mapping.Mapping
}

// NewCIDetector builds the detector over the builtin table plus any extra
// pack mappings.
func NewCIDetector(extra ...mapping.Mapping) *CIDetector {
	return &CIDetector{Mappings: append(mapping.CIs(), extra...)}
}

func (d *CIDetector) Name() string { return "ci" }

func (d *CIDetector) Detect(snap *snapshot.Snapshot) Detection {
	det := NewDetection()

	switch o := CheckDetectorOverrides(snap, "ci"); o.Kind {
	case OverrideDisable:
		return det
	case OverrideForce:
		applyForcedID(&det, "ci", o.Value)
		return det
	}

	outcome, ok := runDeclarative(d.Mappings, snap, declarativeOptions{
		context:      "ci",
		emitEvidence: true,
		supports:     []string{"ci.id"},
	}, StrategyPriority)
	if !ok {
		return det
	}

	ci := map[string]any{"id": outcome.id}
	if vendor, ok := outcome.facets["vendor"]; ok {
		ci["vendor"] = vendor
		det.FacetsPatch["ci_vendor"] = vendor
	}
	if name, ok := outcome.facets["name"]; ok {
		ci["name"] = name
	}
	if branch, ok := outcome.values["branch"].(string); ok {
		ci["branch"] = branch
		det.FacetsPatch["ci_branch"] = branch
	}
	if isPR, ok := outcome.values["is_pr"].(bool); ok {
		ci["is_pr"] = isPR
	}

	det.ContextsAdd = outcome.contexts
	det.TraitsPatch["ci"] = ci
	det.FacetsPatch["ci_id"] = outcome.id
	det.Evidence = outcome.evidence
	det.Confidence = outcome.confidence
	return det
}

var _ Detector = (*CIDetector)(nil)
