package manifest

import (
	"github.com/Masterminds/semver/v3"
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the manifest keys this module reads.
// Additional properties are allowed, matching [Parse].
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}

	s := r.Reflect(&Manifest{})
	s.Title = "package.json"
	s.Description = "Extension manifest consulted for version resolution."

	return s
}

// SemverInfo describes how a version string reads as a semantic version.
// It is informational only; resolution never rejects a version on this basis.
type SemverInfo struct {
	Prerelease string `json:"prerelease,omitempty"`
	Metadata   string `json:"metadata,omitempty"`
	Major      uint64 `json:"major"`
	Minor      uint64 `json:"minor"`
	Patch      uint64 `json:"patch"`
	Valid      bool   `json:"valid"`
}

// ParseSemver inspects v as a strict semantic version.
func ParseSemver(v string) SemverInfo {
	sv, err := semver.StrictNewVersion(v)
	if err != nil {
		return SemverInfo{}
	}

	return SemverInfo{
		Valid:      true,
		Major:      sv.Major(),
		Minor:      sv.Minor(),
		Patch:      sv.Patch(),
		Prerelease: sv.Prerelease(),
		Metadata:   sv.Metadata(),
	}
}
