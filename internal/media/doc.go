// Package media implements the fully local synthesis paths: decoding a still
// image, animating it with a deterministic sinusoidal zoom, and muxing the
// resulting frames into a self-contained motion-JPEG AVI container.
//
// Nothing here shells out. These are the pieces that let the strategy chain
// keep producing a playable file after both the neural stack and the external
// encoder have dropped away, down to the minimal placeholder container.
package media
