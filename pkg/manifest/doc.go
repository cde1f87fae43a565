// Package manifest reads the extension's package.json manifest.
//
// Only a handful of keys are interpreted; everything else is kept verbatim
// and otherwise ignored, so newer manifests continue to parse. The "version"
// key is the only one with strict requirements, and those are enforced
// lazily by [Manifest.VersionString] rather than at parse time.
package manifest
