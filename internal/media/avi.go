package media

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// AVIWriter streams JPEG frames into a motion-JPEG AVI container. The
// container is self-contained: no external encoder is needed to produce or
// play it, which is what makes the local fallback strategies possible.
//
// Size and frame-count fields in the headers are unknown until the last frame
// arrives, so the writer records their offsets and patches them in Close.
type AVIWriter struct {
	file   *os.File
	width  int
	height int
	fps    int

	frames   uint32
	maxChunk uint32
	moviData uint32
	index    []indexEntry
	closed   bool
}

type indexEntry struct {
	offset uint32
	size   uint32
}

// Header field offsets that Close patches once the stream is complete.
const (
	offRIFFSize    = 4
	offTotalFrames = 48
	offSugBuffer   = 60
	offStreamLen   = 140
	offMoviSize    = 216
	headerSize     = 224
)

// NewAVIWriter creates path (truncating it) and writes the container headers.
func NewAVIWriter(path string, width, height, fps int) (*AVIWriter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid geometry %dx%d", width, height)
	}
	if fps <= 0 {
		fps = 25
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create avi: %w", err)
	}

	w := &AVIWriter{file: file, width: width, height: height, fps: fps}
	if err := w.writeHeaders(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

// AddFrame appends one JPEG-encoded frame.
func (w *AVIWriter) AddFrame(jpegData []byte) error {
	if w.closed {
		return fmt.Errorf("avi writer already closed")
	}
	if len(jpegData) == 0 {
		return fmt.Errorf("empty frame data")
	}

	size := uint32(len(jpegData))
	// Index offsets are relative to the "movi" fourcc.
	w.index = append(w.index, indexEntry{offset: 4 + w.moviData, size: size})

	var chunk [8]byte
	copy(chunk[:4], "00dc")
	binary.LittleEndian.PutUint32(chunk[4:], size)
	if _, err := w.file.Write(chunk[:]); err != nil {
		return fmt.Errorf("write frame chunk: %w", err)
	}
	if _, err := w.file.Write(jpegData); err != nil {
		return fmt.Errorf("write frame data: %w", err)
	}

	written := size
	if size%2 == 1 {
		// RIFF chunks are word aligned.
		if _, err := w.file.Write([]byte{0}); err != nil {
			return fmt.Errorf("write frame padding: %w", err)
		}
		written++
	}

	w.moviData += 8 + written
	w.frames++
	if size > w.maxChunk {
		w.maxChunk = size
	}
	return nil
}

// Close writes the index, patches the deferred header fields, and closes the
// file. The writer is unusable afterwards.
func (w *AVIWriter) Close() (int64, error) {
	if w.closed {
		return 0, fmt.Errorf("avi writer already closed")
	}
	w.closed = true

	if err := w.writeIndex(); err != nil {
		_ = w.file.Close()
		return 0, err
	}

	end, err := w.file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = w.file.Close()
		return 0, fmt.Errorf("seek end: %w", err)
	}

	patches := []struct {
		offset int64
		value  uint32
	}{
		{offRIFFSize, uint32(end - 8)},
		{offTotalFrames, w.frames},
		{offSugBuffer, w.maxChunk},
		{offStreamLen, w.frames},
		{offMoviSize, 4 + w.moviData},
	}
	for _, patch := range patches {
		if err := w.patchUint32(patch.offset, patch.value); err != nil {
			_ = w.file.Close()
			return 0, err
		}
	}

	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return 0, fmt.Errorf("sync avi: %w", err)
	}
	return end, w.file.Close()
}

func (w *AVIWriter) writeHeaders() error {
	buf := make([]byte, headerSize)
	le := binary.LittleEndian

	copy(buf[0:], "RIFF")
	// buf[4:8] riff size, patched on close
	copy(buf[8:], "AVI ")

	copy(buf[12:], "LIST")
	le.PutUint32(buf[16:], 192)
	copy(buf[20:], "hdrl")

	copy(buf[24:], "avih")
	le.PutUint32(buf[28:], 56)
	le.PutUint32(buf[32:], uint32(1_000_000/w.fps)) // microseconds per frame
	// buf[36:40] max bytes per second, left zero
	// buf[40:44] padding granularity
	le.PutUint32(buf[44:], 0x10) // AVIF_HASINDEX
	// buf[48:52] total frames, patched on close
	// buf[52:56] initial frames
	le.PutUint32(buf[56:], 1) // stream count
	// buf[60:64] suggested buffer size, patched on close
	le.PutUint32(buf[64:], uint32(w.width))
	le.PutUint32(buf[68:], uint32(w.height))
	// buf[72:88] reserved

	copy(buf[88:], "LIST")
	le.PutUint32(buf[92:], 116)
	copy(buf[96:], "strl")

	copy(buf[100:], "strh")
	le.PutUint32(buf[104:], 56)
	copy(buf[108:], "vids")
	copy(buf[112:], "MJPG")
	// buf[116:128] flags, priority/language, initial frames
	le.PutUint32(buf[128:], 1)              // scale
	le.PutUint32(buf[132:], uint32(w.fps))  // rate
	// buf[136:140] start
	// buf[140:144] stream length in frames, patched on close
	// buf[144:148] suggested buffer size
	le.PutUint32(buf[148:], 0xFFFF_FFFF) // quality: driver default
	// buf[152:156] sample size (0 for video)
	le.PutUint16(buf[160:], uint16(w.width))  // rcFrame right
	le.PutUint16(buf[162:], uint16(w.height)) // rcFrame bottom

	copy(buf[164:], "strf")
	le.PutUint32(buf[168:], 40)
	le.PutUint32(buf[172:], 40) // biSize
	le.PutUint32(buf[176:], uint32(w.width))
	le.PutUint32(buf[180:], uint32(w.height))
	le.PutUint16(buf[184:], 1)  // biPlanes
	le.PutUint16(buf[186:], 24) // biBitCount
	copy(buf[188:], "MJPG")
	le.PutUint32(buf[192:], uint32(w.width*w.height*3)) // biSizeImage
	// buf[196:212] pels-per-meter and palette fields, left zero

	copy(buf[212:], "LIST")
	// buf[216:220] movi list size, patched on close
	copy(buf[220:], "movi")

	if _, err := w.file.Write(buf); err != nil {
		return fmt.Errorf("write avi headers: %w", err)
	}
	return nil
}

func (w *AVIWriter) writeIndex() error {
	buf := make([]byte, 8+16*len(w.index))
	le := binary.LittleEndian

	copy(buf[0:], "idx1")
	le.PutUint32(buf[4:], uint32(16*len(w.index)))
	for i, entry := range w.index {
		base := 8 + 16*i
		copy(buf[base:], "00dc")
		le.PutUint32(buf[base+4:], 0x10) // AVIIF_KEYFRAME
		le.PutUint32(buf[base+8:], entry.offset)
		le.PutUint32(buf[base+12:], entry.size)
	}

	if _, err := w.file.Write(buf); err != nil {
		return fmt.Errorf("write avi index: %w", err)
	}
	return nil
}

func (w *AVIWriter) patchUint32(offset int64, value uint32) error {
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], value)
	if _, err := w.file.WriteAt(raw[:], offset); err != nil {
		return fmt.Errorf("patch header at %d: %w", offset, err)
	}
	return nil
}
