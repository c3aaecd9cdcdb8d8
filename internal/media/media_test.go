package media

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testStill(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestZoomFrameDeterministic(t *testing.T) {
	still := testStill(64, 48)
	first := ZoomFrame(still, 32, 24, 0.5, DefaultWarp())
	second := ZoomFrame(still, 32, 24, 0.5, DefaultWarp())
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatal("zoom frame rendering must be deterministic")
	}

	bounds := first.Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 24 {
		t.Fatalf("unexpected frame geometry: %v", bounds)
	}
}

func TestZoomFrameVariesOverTime(t *testing.T) {
	still := testStill(64, 48)
	early := ZoomFrame(still, 32, 24, 0.3, DefaultWarp())
	late := ZoomFrame(still, 32, 24, 1.3, DefaultWarp())
	if bytes.Equal(early.Pix, late.Pix) {
		t.Fatal("expected different frames at different timestamps")
	}
}

func TestWriteZoomSequence(t *testing.T) {
	dir := t.TempDir()
	pattern, err := WriteZoomSequence(testStill(64, 48), dir, 32, 24, 5, 25, DefaultWarp())
	if err != nil {
		t.Fatalf("WriteZoomSequence: %v", err)
	}
	if pattern != filepath.Join(dir, "frame_%05d.jpg") {
		t.Fatalf("unexpected pattern: %q", pattern)
	}
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "frame_0000"+string(rune('0'+i))+".jpg")
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected frame %d: %v", i, err)
		}
		if info.Size() == 0 {
			t.Fatalf("frame %d is empty", i)
		}
	}
}

func TestWriteZoomAVIProducesValidContainer(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.avi")

	written, err := WriteZoomAVI(testStill(64, 48), output, 32, 24, 10, 25, DefaultWarp())
	if err != nil {
		t.Fatalf("WriteZoomAVI: %v", err)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read avi: %v", err)
	}
	if int64(len(raw)) != written {
		t.Fatalf("reported %d bytes, file has %d", written, len(raw))
	}

	if string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "AVI " {
		t.Fatalf("bad RIFF signature: %q %q", raw[0:4], raw[8:12])
	}
	if got := binary.LittleEndian.Uint32(raw[4:8]); got != uint32(len(raw)-8) {
		t.Fatalf("riff size %d does not match file size %d", got, len(raw)-8)
	}
	if got := binary.LittleEndian.Uint32(raw[offTotalFrames:]); got != 10 {
		t.Fatalf("expected 10 total frames, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(raw[offStreamLen:]); got != 10 {
		t.Fatalf("expected stream length 10, got %d", got)
	}
	if string(raw[112:116]) != "MJPG" {
		t.Fatalf("expected MJPG handler, got %q", raw[112:116])
	}
	if string(raw[220:224]) != "movi" {
		t.Fatalf("expected movi list, got %q", raw[220:224])
	}
	if !bytes.Contains(raw, []byte("idx1")) {
		t.Fatal("expected idx1 index chunk")
	}
	// First frame chunk sits right after the movi fourcc.
	if string(raw[224:228]) != "00dc" {
		t.Fatalf("expected first frame chunk, got %q", raw[224:228])
	}
}

func TestAVIWriterRejectsUseAfterClose(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewAVIWriter(filepath.Join(dir, "out.avi"), 32, 24, 25)
	if err != nil {
		t.Fatalf("NewAVIWriter: %v", err)
	}
	if err := writer.AddFrame([]byte{0xFF, 0xD8, 0xFF, 0xD9}); err != nil {
		t.Fatalf("AddFrame: %v", err)
	}
	if _, err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := writer.AddFrame([]byte{0xFF}); err == nil {
		t.Fatal("expected error adding frame after close")
	}
	if _, err := writer.Close(); err == nil {
		t.Fatal("expected error closing twice")
	}
}

func TestFramesToAVI(t *testing.T) {
	frameDir := t.TempDir()
	for i := 0; i < 3; i++ {
		var buf bytes.Buffer
		if err := png.Encode(&buf, testStill(32, 24)); err != nil {
			t.Fatalf("encode png: %v", err)
		}
		name := filepath.Join(frameDir, "frame_0000"+string(rune('0'+i))+".png")
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}

	output := filepath.Join(t.TempDir(), "out.avi")
	written, err := FramesToAVI(frameDir, output, 32, 24, 25)
	if err != nil {
		t.Fatalf("FramesToAVI: %v", err)
	}
	if written == 0 {
		t.Fatal("expected bytes written")
	}
	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read avi: %v", err)
	}
	if got := binary.LittleEndian.Uint32(raw[offTotalFrames:]); got != 3 {
		t.Fatalf("expected 3 frames, got %d", got)
	}
}

func TestWritePlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholder.mp4")
	written, err := WritePlaceholder(path)
	if err != nil {
		t.Fatalf("WritePlaceholder: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read placeholder: %v", err)
	}
	if int64(len(raw)) != written || written == 0 {
		t.Fatalf("size mismatch: reported %d, file %d", written, len(raw))
	}
	if !bytes.Contains(raw, []byte("ftyp")) {
		t.Fatal("placeholder must declare an ftyp box")
	}
}

func TestWritePlaceholderFailsOnUnwritableTarget(t *testing.T) {
	dir := t.TempDir()
	if _, err := WritePlaceholder(filepath.Join(dir, "missing", "placeholder.mp4")); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}
