// Package ffmpeg wraps the external media-encoding engine behind a small
// client interface.
//
// The engine is always invoked as a subprocess with explicit arguments:
// lavfi inputs for procedural renders, an image-sequence input for locally
// synthesized frames, and a fixed test pattern for the terminal fallback.
// Output files are always overwritten, success is the process exit status,
// and stderr is captured so failures carry the encoder's own diagnostics.
package ffmpeg
