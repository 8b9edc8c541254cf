package detect

import (
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// IDEDetector recognizes IDE hosts. It selects by priority: VS Code forks
// all export TERM_PROGRAM=vscode, so overlapping matches need explicit
// tie-breaking (Cursor outranks plain VS Code).
type IDEDetector struct {
	Mappings []mapping.Mapping
}

// NewIDEDetector builds the detector over the builtin table plus any extra
// pack mappings.
func NewIDEDetector(extra ...mapping.Mapping) *IDEDetector {
	return &IDEDetector{Mappings: append(mapping.IDEs(), extra...)}
}

func (d *IDEDetector) Name() string { return "ide" }

func (d *IDEDetector) Detect(snap *snapshot.Snapshot) Detection {
	det := NewDetection()

	switch o := CheckDetectorOverrides(snap, "ide"); o.Kind {
	case OverrideDisable:
		return det
	case OverrideForce:
		applyForcedID(&det, "ide", o.Value)
		return det
	}

	outcome, ok := runDeclarative(d.Mappings, snap, declarativeOptions{
		context:      "ide",
		emitEvidence: true,
		supports:     []string{"ide.id"},
	}, StrategyPriority)
	if !ok {
		return det
	}

	det.ContextsAdd = outcome.contexts
	det.TraitsPatch["ide"] = map[string]any{"id": outcome.id}
	det.FacetsPatch["ide_id"] = outcome.id
	det.Evidence = outcome.evidence
	det.Confidence = outcome.confidence
	return det
}

var _ Detector = (*IDEDetector)(nil)
