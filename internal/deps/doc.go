// Package deps detects the optional external tools the strategy chain can
// delegate to.
//
// CheckBinaries answers "is this binary on PATH" for status output, while
// Probe performs the per-request capability check: a bounded version query
// against each tool whose failure is always treated as capability-absent,
// never as an error. The resulting CapabilitySet is immutable for the rest of
// the request.
package deps
