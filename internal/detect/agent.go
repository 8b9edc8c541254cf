package detect

import (
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/schema"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// AgentDetector recognizes coding-agent hosts. It selects by confidence:
// agent indicator variables are vendor-unique and almost never co-occur, so
// the strongest single signal is the right winner and priority tie-breaking
// would add nothing.
type AgentDetector struct {
	Mappings []mapping.Mapping
}

// NewAgentDetector builds the detector over the builtin table plus any
// extra pack mappings.
func NewAgentDetector(extra ...mapping.Mapping) *AgentDetector {
	return &AgentDetector{Mappings: append(mapping.Agents(), extra...)}
}

func (d *AgentDetector) Name() string { return "agent" }

func (d *AgentDetector) Detect(snap *snapshot.Snapshot) Detection {
	det := NewDetection()

	switch o := CheckDetectorOverrides(snap, "agent"); o.Kind {
	case OverrideDisable:
		return det
	case OverrideForce:
		applyForcedID(&det, "agent", o.Value)
		return det
	}

	outcome, ok := runDeclarative(d.Mappings, snap, declarativeOptions{
		context:      "agent",
		emitEvidence: true,
		supports:     []string{"agent.id"},
	}, StrategyConfidence)
	if !ok {
		return det
	}

	det.ContextsAdd = outcome.contexts
	det.TraitsPatch["agent"] = map[string]any{"id": outcome.id}
	det.FacetsPatch["agent_id"] = outcome.id
	det.Evidence = outcome.evidence
	det.Confidence = outcome.confidence
	return det
}

// applyForcedID fills a detection for an ENVSENSE_* forced id: context,
// nested id, legacy facet, and one high-confidence env evidence record.
func applyForcedID(det *Detection, detectorType, id string) {
	det.ContextsAdd = []string{detectorType}
	det.TraitsPatch[detectorType] = map[string]any{"id": id}
	det.FacetsPatch[detectorType+"_id"] = id
	det.Evidence = append(det.Evidence, schema.EnvEvidence(
		OverrideVar(detectorType), id,
		[]string{detectorType + ".id"},
		schema.ConfidenceHigh,
	))
	det.Confidence = schema.ConfidenceHigh
}

var _ Detector = (*AgentDetector)(nil)
var _ Detector = (*TerminalDetector)(nil)
