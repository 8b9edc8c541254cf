package detect

import (
	"fmt"
	"sort"

	"github.com/technicalpickles/envsense/internal/schema"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

// Engine runs its detectors in registration order and folds their partial
// detections into a fresh Result. Detection never fails; malformed patch
// entries are warned about and dropped.
type Engine struct {
	detectors []Detector
	logger    Logger
}

// NewEngine builds an engine over the given detectors. A nil logger is
// replaced with a no-op.
func NewEngine(detectors []Detector, logger Logger) *Engine {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Engine{detectors: detectors, logger: logger}
}

// DefaultDetectors is the standard registration order. Each builtin
// detector writes only its own trait group, so the order changes no trait
// value; it does set the order of contexts and evidence, and this order
// lists terminal facts first.
func DefaultDetectors(color ColorProbe, hyperlinks HyperlinkProbe) []Detector {
	return []Detector{
		&TerminalDetector{Color: color, Hyperlinks: hyperlinks},
		NewAgentDetector(),
		NewIDEDetector(),
		NewCIDetector(),
	}
}

// Detectors returns the registered detectors, for inspection and tests.
func (e *Engine) Detectors() []Detector { return e.detectors }

// Detect runs one detection cycle against the snapshot.
func (e *Engine) Detect(snap *snapshot.Snapshot) schema.Result {
	result := schema.NewResult()
	for _, d := range e.detectors {
		e.Merge(&result, d.Detect(snap))
	}
	return result
}

// Merge folds one partial detection into the result. Legacy facet and flat
// trait keys are routed first, nested group objects second, so the nested
// form wins whenever one detection carries both.
func (e *Engine) Merge(result *schema.Result, det Detection) {
	for _, c := range det.ContextsAdd {
		result.AddContext(c)
	}

	for _, key := range sortedKeys(det.FacetsPatch) {
		if !e.routeFlatKey(result, key, det.FacetsPatch[key]) {
			e.logger.Warn(fmt.Sprintf("dropping unknown legacy facet %q", key))
		}
	}
	for _, key := range sortedKeys(det.TraitsPatch) {
		value := det.TraitsPatch[key]
		if _, isGroup := value.(map[string]any); isGroup && isGroupKey(key) {
			continue
		}
		if !e.routeFlatKey(result, key, value) {
			e.logger.Warn(fmt.Sprintf("dropping unknown legacy trait %q", key))
		}
	}
	for _, key := range sortedKeys(det.TraitsPatch) {
		obj, isGroup := det.TraitsPatch[key].(map[string]any)
		if !isGroup || !isGroupKey(key) {
			continue
		}
		e.applyGroupPatch(result, key, obj)
	}

	result.Evidence = append(result.Evidence, det.Evidence...)
}

// sortedKeys orders patch keys so merge behavior does not depend on map
// iteration order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isGroupKey(key string) bool {
	switch key {
	case "agent", "ide", "ci", "terminal":
		return true
	}
	return false
}

// applyGroupPatch deep-merges a nested trait-group object: scalar fields
// overwrite, stream sub-objects merge field-by-field.
func (e *Engine) applyGroupPatch(result *schema.Result, group string, obj map[string]any) {
	for _, field := range sortedKeys(obj) {
		value := obj[field]
		var ok bool
		switch group {
		case "agent":
			ok = e.applyIDField(&result.Traits.Agent.ID, field, value)
		case "ide":
			ok = e.applyIDField(&result.Traits.IDE.ID, field, value)
		case "ci":
			ok = e.applyCIField(&result.Traits.CI, field, value)
		case "terminal":
			ok = e.applyTerminalField(&result.Traits.Terminal, field, value)
		}
		if !ok {
			e.logger.Warn(fmt.Sprintf("dropping malformed patch entry %s.%s", group, field))
		}
	}
}

func (e *Engine) applyIDField(target **string, field string, value any) bool {
	if field != "id" {
		return false
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	*target = &s
	return true
}

func (e *Engine) applyCIField(ci *schema.CITraits, field string, value any) bool {
	switch field {
	case "id", "vendor", "name", "branch":
		s, ok := value.(string)
		if !ok {
			return false
		}
		switch field {
		case "id":
			ci.ID = &s
		case "vendor":
			ci.Vendor = &s
		case "name":
			ci.Name = &s
		case "branch":
			ci.Branch = &s
		}
		return true
	case "is_pr":
		b, ok := value.(bool)
		if !ok {
			return false
		}
		ci.IsPR = &b
		return true
	}
	return false
}

func (e *Engine) applyTerminalField(term *schema.TerminalTraits, field string, value any) bool {
	switch field {
	case "interactive":
		b, ok := value.(bool)
		if ok {
			term.Interactive = b
		}
		return ok
	case "color_level":
		s, ok := value.(string)
		if ok {
			term.ColorLevel = schema.ColorLevel(s)
		}
		return ok
	case "supports_hyperlinks":
		b, ok := value.(bool)
		if ok {
			term.SupportsHyperlinks = b
		}
		return ok
	case "stdin":
		return applyStreamPatch(&term.Stdin, value)
	case "stdout":
		return applyStreamPatch(&term.Stdout, value)
	case "stderr":
		return applyStreamPatch(&term.Stderr, value)
	}
	return false
}

// applyStreamPatch merges a stream sub-object while keeping piped == !tty:
// a tty bit is authoritative, a lone piped bit implies its negation.
func applyStreamPatch(stream *schema.StreamInfo, value any) bool {
	obj, ok := value.(map[string]any)
	if !ok {
		return false
	}
	if tty, present := obj["tty"].(bool); present {
		*stream = schema.Stream(tty)
		return true
	}
	if piped, present := obj["piped"].(bool); present {
		*stream = schema.Stream(!piped)
		return true
	}
	return false
}

// flatRoutes maps the closed set of legacy flat keys onto the nested shape.
var flatRoutes = map[string]func(*schema.Result, any) bool{
	"agent_id": func(r *schema.Result, v any) bool {
		return setString(&r.Traits.Agent.ID, v)
	},
	"ide_id": func(r *schema.Result, v any) bool {
		return setString(&r.Traits.IDE.ID, v)
	},
	"ci_id": func(r *schema.Result, v any) bool {
		return setString(&r.Traits.CI.ID, v)
	},
	"ci_vendor": func(r *schema.Result, v any) bool {
		return setString(&r.Traits.CI.Vendor, v)
	},
	"ci_branch": func(r *schema.Result, v any) bool {
		return setString(&r.Traits.CI.Branch, v)
	},
	"ci_is_pr": func(r *schema.Result, v any) bool {
		b, ok := v.(bool)
		if ok {
			r.Traits.CI.IsPR = &b
		}
		return ok
	},
	"is_interactive": func(r *schema.Result, v any) bool {
		b, ok := v.(bool)
		if ok {
			r.Traits.Terminal.Interactive = b
		}
		return ok
	},
	"is_tty_stdin": func(r *schema.Result, v any) bool {
		return setStream(&r.Traits.Terminal.Stdin, v, false)
	},
	"is_tty_stdout": func(r *schema.Result, v any) bool {
		return setStream(&r.Traits.Terminal.Stdout, v, false)
	},
	"is_tty_stderr": func(r *schema.Result, v any) bool {
		return setStream(&r.Traits.Terminal.Stderr, v, false)
	},
	"is_piped_stdin": func(r *schema.Result, v any) bool {
		return setStream(&r.Traits.Terminal.Stdin, v, true)
	},
	"is_piped_stdout": func(r *schema.Result, v any) bool {
		return setStream(&r.Traits.Terminal.Stdout, v, true)
	},
	"is_piped_stderr": func(r *schema.Result, v any) bool {
		return setStream(&r.Traits.Terminal.Stderr, v, true)
	},
	"color_level": func(r *schema.Result, v any) bool {
		s, ok := v.(string)
		if ok {
			r.Traits.Terminal.ColorLevel = schema.ColorLevel(s)
		}
		return ok
	},
	"supports_hyperlinks": func(r *schema.Result, v any) bool {
		b, ok := v.(bool)
		if ok {
			r.Traits.Terminal.SupportsHyperlinks = b
		}
		return ok
	},
}

func (e *Engine) routeFlatKey(result *schema.Result, key string, value any) bool {
	route, ok := flatRoutes[key]
	if !ok {
		return false
	}
	return route(result, value)
}

func setString(target **string, v any) bool {
	s, ok := v.(string)
	if ok {
		*target = &s
	}
	return ok
}

func setStream(stream *schema.StreamInfo, v any, inverted bool) bool {
	b, ok := v.(bool)
	if !ok {
		return false
	}
	if inverted {
		b = !b
	}
	*stream = schema.Stream(b)
	return true
}
