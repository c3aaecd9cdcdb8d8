package media

import (
	"image"
	"image/color"
	"math"
)

// WarpParams describes the deterministic parametric transform used to animate
// a still image without any model inference.
type WarpParams struct {
	// ZoomAmplitude is the peak zoom deviation from 1.0 (0.05 = ±5%).
	ZoomAmplitude float64
	// PeriodSeconds is the length of one full zoom oscillation.
	PeriodSeconds float64
}

// DefaultWarp returns the sinusoidal zoom used by the animation fallback.
func DefaultWarp() WarpParams {
	return WarpParams{ZoomAmplitude: 0.05, PeriodSeconds: 4}
}

// ZoomFrame renders one output frame by sampling the still image through a
// time-varying center zoom. elapsed is the frame's timestamp in seconds.
// Sampling is nearest-neighbor through the inverse mapping, so the same
// inputs always produce byte-identical frames.
func ZoomFrame(still image.Image, width, height int, elapsed float64, params WarpParams) *image.RGBA {
	if params.PeriodSeconds <= 0 {
		params = DefaultWarp()
	}
	zoom := 1 + params.ZoomAmplitude*math.Sin(2*math.Pi*elapsed/params.PeriodSeconds)

	bounds := still.Bounds()
	srcW := float64(bounds.Dx())
	srcH := float64(bounds.Dy())
	centerX := srcW / 2
	centerY := srcH / 2

	// Scale source onto the target geometry first, then apply the zoom around
	// the image center.
	scaleX := srcW / float64(width)
	scaleY := srcH / float64(height)

	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			srcX := centerX + (float64(x)*scaleX-centerX)/zoom
			srcY := centerY + (float64(y)*scaleY-centerY)/zoom

			ix := bounds.Min.X + int(srcX)
			iy := bounds.Min.Y + int(srcY)
			if ix < bounds.Min.X || ix >= bounds.Max.X || iy < bounds.Min.Y || iy >= bounds.Max.Y {
				frame.Set(x, y, color.Black)
				continue
			}
			frame.Set(x, y, still.At(ix, iy))
		}
	}
	return frame
}
