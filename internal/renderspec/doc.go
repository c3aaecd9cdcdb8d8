// Package renderspec turns a theme profile plus request geometry into
// concrete filter-graph instructions for whichever strategy executes them.
//
// Build owns two guarantees the strategies rely on: the video filter chain
// always ends with an explicit scale to the target resolution, and no spec
// ever leaves the builder with an empty video or audio graph — malformed
// profiles are repaired to the default test-pattern graph and the repair is
// recorded so metadata can surface it.
package renderspec
