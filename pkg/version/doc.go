// Package version resolves the extension's version string.
//
// The version comes from the first [Supplier] that has one. By default that
// is the build-time artifact in internal/buildinfo, and failing that the
// "version" key of the package.json two directories above this package's
// source. Only a missing artifact ([pkmerrors.ErrArtifactNotFound]) moves
// resolution on to the next supplier; a missing, malformed or incomplete
// manifest is fatal.
//
// [Get] resolves once per process and returns the same result thereafter.
package version
