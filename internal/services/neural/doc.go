// Package neural wraps the optional inference helper that turns a prompt into
// a still image and a still image into motion frames.
//
// The helper is a heavyweight external dependency that is frequently not
// installed; every failure mode here (missing binary, runtime error, missing
// accelerator) must be treated by callers as recoverable, never fatal.
package neural
