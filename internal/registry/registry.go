// Package registry is the canonical table of addressable result paths:
// their types, descriptions, and owning contexts. Built once, never
// mutated.
package registry

import (
	"sort"
	"strings"
	"sync"
)

// FieldType classifies what a registered path resolves to.
type FieldType string

const (
	TypeBool           FieldType = "bool"
	TypeString         FieldType = "string"
	TypeOptionalString FieldType = "optional_string"
	TypeColorLevel     FieldType = "color_level"
	TypeStreamInfo     FieldType = "stream_info"
)

// FieldInfo describes one addressable result path.
type FieldInfo struct {
	Path        []string
	Type        FieldType
	Description string
	Context     string
}

// Dotted returns the path in dot notation.
func (f FieldInfo) Dotted() string {
	return strings.Join(f.Path, ".")
}

var (
	buildOnce sync.Once
	fields    map[string]FieldInfo
)

func table() map[string]FieldInfo {
	buildOnce.Do(func() {
		entries := []FieldInfo{
			{Path: []string{"agent", "id"}, Type: TypeOptionalString, Context: "agent",
				Description: "Identifier of the detected coding agent"},

			{Path: []string{"ide", "id"}, Type: TypeOptionalString, Context: "ide",
				Description: "Identifier of the detected IDE host"},

			{Path: []string{"ci", "id"}, Type: TypeOptionalString, Context: "ci",
				Description: "Identifier of the detected CI system"},
			{Path: []string{"ci", "vendor"}, Type: TypeOptionalString, Context: "ci",
				Description: "CI vendor identifier"},
			{Path: []string{"ci", "name"}, Type: TypeOptionalString, Context: "ci",
				Description: "Human-readable CI product name"},
			{Path: []string{"ci", "is_pr"}, Type: TypeBool, Context: "ci",
				Description: "Whether the build runs for a pull request"},
			{Path: []string{"ci", "branch"}, Type: TypeOptionalString, Context: "ci",
				Description: "Branch the build runs against"},

			{Path: []string{"terminal", "interactive"}, Type: TypeBool, Context: "terminal",
				Description: "Whether stdin and stdout are both terminals"},
			{Path: []string{"terminal", "color_level"}, Type: TypeColorLevel, Context: "terminal",
				Description: "Detected color capability"},
			{Path: []string{"terminal", "supports_hyperlinks"}, Type: TypeBool, Context: "terminal",
				Description: "Whether the terminal renders OSC 8 hyperlinks"},
			{Path: []string{"terminal", "stdin"}, Type: TypeStreamInfo, Context: "terminal",
				Description: "Stdin stream state"},
			{Path: []string{"terminal", "stdin", "tty"}, Type: TypeBool, Context: "terminal",
				Description: "Whether stdin is a terminal"},
			{Path: []string{"terminal", "stdin", "piped"}, Type: TypeBool, Context: "terminal",
				Description: "Whether stdin is piped"},
			{Path: []string{"terminal", "stdout"}, Type: TypeStreamInfo, Context: "terminal",
				Description: "Stdout stream state"},
			{Path: []string{"terminal", "stdout", "tty"}, Type: TypeBool, Context: "terminal",
				Description: "Whether stdout is a terminal"},
			{Path: []string{"terminal", "stdout", "piped"}, Type: TypeBool, Context: "terminal",
				Description: "Whether stdout is piped"},
			{Path: []string{"terminal", "stderr"}, Type: TypeStreamInfo, Context: "terminal",
				Description: "Stderr stream state"},
			{Path: []string{"terminal", "stderr", "tty"}, Type: TypeBool, Context: "terminal",
				Description: "Whether stderr is a terminal"},
			{Path: []string{"terminal", "stderr", "piped"}, Type: TypeBool, Context: "terminal",
				Description: "Whether stderr is piped"},
		}
		fields = make(map[string]FieldInfo, len(entries))
		for _, f := range entries {
			fields[f.Dotted()] = f
		}
	})
	return fields
}

// Resolve looks a path up by its parts.
func Resolve(path []string) (FieldInfo, bool) {
	f, ok := table()[strings.Join(path, ".")]
	return f, ok
}

// HasField reports whether a dotted path is registered.
func HasField(dotted string) bool {
	_, ok := table()[dotted]
	return ok
}

// Lookup looks a path up in dot notation.
func Lookup(dotted string) (FieldInfo, bool) {
	f, ok := table()[dotted]
	return f, ok
}

// Contexts returns the known context names, sorted.
func Contexts() []string {
	seen := map[string]bool{}
	for _, f := range table() {
		seen[f.Context] = true
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// IsContext reports whether a name is a known context.
func IsContext(name string) bool {
	for _, c := range Contexts() {
		if c == name {
			return true
		}
	}
	return false
}

// FieldsOf returns the registered fields of one context, sorted by dotted
// path.
func FieldsOf(context string) []FieldInfo {
	var out []FieldInfo
	for _, f := range table() {
		if f.Context == context {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Dotted() < out[j].Dotted()
	})
	return out
}
