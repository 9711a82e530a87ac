// Package release drives Helm releases for training jobs.
//
// A job maps to exactly one release keyed by its full name. Deploy
// enforces that by uninstalling any same-named release before
// installing, and CleanupMatching sweeps stale debug releases without
// failing on individual uninstall errors.
package release
