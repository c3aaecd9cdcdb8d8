// Package metadata writes the JSON sidecar that describes each generated
// artifact: what was asked for, which strategy produced it, and whether the
// result is degraded.
package metadata
