// Package theme maps prompt text to rendering parameters through an ordered,
// data-driven rule table.
//
// Two independent tables drive classification: visual rules pick exactly one
// pattern/color/tone bundle (first match wins, priority is part of the public
// contract), while audio rules append ambient cue sets for every match. The
// result is deterministic for a given prompt and never consults external
// state.
package theme
