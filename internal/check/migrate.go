package check

// facetMigrations maps deprecated facet keys onto nested field paths. The
// comparison value carries over.
var facetMigrations = map[string][]string{
	"agent_id":  {"agent", "id"},
	"ide_id":    {"ide", "id"},
	"ci_id":     {"ci", "id"},
	"ci_branch": {"ci", "branch"},
}

// traitMigrations maps deprecated trait keys onto nested field paths.
var traitMigrations = map[string][]string{
	"is_interactive":      {"terminal", "interactive"},
	"is_tty_stdin":        {"terminal", "stdin", "tty"},
	"is_tty_stdout":       {"terminal", "stdout", "tty"},
	"is_tty_stderr":       {"terminal", "stderr", "tty"},
	"is_piped_stdin":      {"terminal", "stdin", "piped"},
	"is_piped_stdout":     {"terminal", "stdout", "piped"},
	"is_piped_stderr":     {"terminal", "stderr", "piped"},
	"supports_hyperlinks": {"terminal", "supports_hyperlinks"},
}

// migrateLegacy rewrites a legacy check into its nested-field equivalent.
// The closed migration tables cover every key the legacy forms ever
// defined; anything else reports false.
func migrateLegacy(c Check) (Check, bool) {
	switch c.Kind {
	case KindLegacyFacet:
		path, ok := facetMigrations[c.LegacyKey]
		if !ok {
			return Check{}, false
		}
		value := c.LegacyValue
		return Check{Kind: KindNestedField, Path: path, Value: &value}, true
	case KindLegacyTrait:
		path, ok := traitMigrations[c.LegacyKey]
		if !ok {
			return Check{}, false
		}
		return Check{Kind: KindNestedField, Path: path}, true
	}
	return Check{}, false
}
