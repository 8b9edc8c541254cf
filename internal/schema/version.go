package schema

import goversion "github.com/hashicorp/go-version"

// Version is the schema version stamped on every Result.
const Version = "0.3.0"

// LegacyVersion is the last flat-shape schema version, still representable
// via LegacyResult.
const LegacyVersion = "0.2.0"

// CanConvert reports whether a document at the given schema version can be
// converted to or from the current shape: anything at or above
// LegacyVersion and at or below Version converts; unparseable versions do
// not.
func CanConvert(v string) bool {
	parsed, err := goversion.NewVersion(v)
	if err != nil {
		return false
	}
	low := goversion.Must(goversion.NewVersion(LegacyVersion))
	high := goversion.Must(goversion.NewVersion(Version))
	return parsed.GreaterThanOrEqual(low) && parsed.LessThanOrEqual(high)
}
