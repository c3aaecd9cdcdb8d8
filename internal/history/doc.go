// Package history keeps a local SQLite ledger of completed generations so
// users can audit which strategy produced what. The ledger is advisory;
// failures to record never fail a request.
package history
