// Package strategy implements the ordered fallback chain that turns a
// generation request into an artifact on disk. Strategies are attempted in
// decreasing order of richness; a missing capability skips a strategy, a
// runtime failure advances past it, and only an unwritable output target
// terminates the request.
package strategy
