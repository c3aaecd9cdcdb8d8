package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
)

const jpegQuality = 85

// JPEGFramePattern is the printf-style name used for locally synthesized
// frame sequences.
const JPEGFramePattern = "frame_%05d.jpg"

// WriteZoomSequence renders frameCount zoom-warped frames from the still
// image into dir as a JPEG sequence and returns the full frame pattern,
// ready for an external muxer.
func WriteZoomSequence(still image.Image, dir string, width, height, frameCount, fps int, params WarpParams) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create frame directory: %w", err)
	}
	for i := 0; i < frameCount; i++ {
		frame := ZoomFrame(still, width, height, float64(i)/float64(fps), params)
		name := filepath.Join(dir, fmt.Sprintf(JPEGFramePattern, i))
		if err := writeJPEG(name, frame); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, JPEGFramePattern), nil
}

// WriteZoomAVI renders the same zoom sequence directly into a self-contained
// MJPEG AVI at outputPath, returning the bytes written. Used when no external
// encoder is available.
func WriteZoomAVI(still image.Image, outputPath string, width, height, frameCount, fps int, params WarpParams) (int64, error) {
	writer, err := NewAVIWriter(outputPath, width, height, fps)
	if err != nil {
		return 0, err
	}
	for i := 0; i < frameCount; i++ {
		frame := ZoomFrame(still, width, height, float64(i)/float64(fps), params)
		data, err := encodeJPEG(frame)
		if err != nil {
			_, _ = writer.Close()
			return 0, err
		}
		if err := writer.AddFrame(data); err != nil {
			_, _ = writer.Close()
			return 0, err
		}
	}
	return writer.Close()
}

// FramesToAVI re-encodes an on-disk frame sequence (any decodable format)
// into an MJPEG AVI at outputPath. Frames are taken in lexical order.
func FramesToAVI(frameDir, outputPath string, width, height, fps int) (int64, error) {
	entries, err := os.ReadDir(frameDir)
	if err != nil {
		return 0, fmt.Errorf("read frame directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return 0, fmt.Errorf("no frames in %s", frameDir)
	}
	sort.Strings(names)

	writer, err := NewAVIWriter(outputPath, width, height, fps)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		img, err := LoadStill(filepath.Join(frameDir, name))
		if err != nil {
			_, _ = writer.Close()
			return 0, err
		}
		data, err := encodeJPEG(img)
		if err != nil {
			_, _ = writer.Close()
			return 0, err
		}
		if err := writer.AddFrame(data); err != nil {
			_, _ = writer.Close()
			return 0, err
		}
	}
	return writer.Close()
}

func writeJPEG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return file.Close()
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
