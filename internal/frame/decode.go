package frame

import (
	"bytes"
	"errors"
	"fmt"

	"UCLA-Rocket-Project/turretctl/internal/globals"
)

var (
	// ErrShortFrame indicates fewer bytes than an empty frame.
	ErrShortFrame = errors.New("short frame")
	// ErrBadSentinel indicates a missing START or END byte.
	ErrBadSentinel = errors.New("bad frame sentinel")
	// ErrLengthMismatch indicates the length byte disagrees with the frame size.
	ErrLengthMismatch = errors.New("frame length mismatch")
	// ErrChecksumMismatch indicates a corrupted header or payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Frame is a decoded command frame.
type Frame struct {
	CommandID byte
	Payload   []byte
}

// Bytes re-encodes the frame.
func (f Frame) Bytes() ([]byte, error) {
	return Encode(f.CommandID, f.Payload)
}

// Decode parses exactly one frame from b. The returned payload does not alias b.
func Decode(b []byte) (Frame, error) {
	if len(b) < OVERHEAD {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(b))
	}
	if b[0] != globals.FRAME_START || b[len(b)-1] != globals.FRAME_END {
		return Frame{}, ErrBadSentinel
	}

	length := int(b[2])
	if length+OVERHEAD != len(b) {
		return Frame{}, fmt.Errorf("%w: length byte %d, frame %d bytes", ErrLengthMismatch, length, len(b))
	}

	body := HEADER_SIZE + length
	if expected := Checksum(b[:body]); b[body] != expected {
		return Frame{}, fmt.Errorf("%w: got 0x%02X, expected 0x%02X", ErrChecksumMismatch, b[body], expected)
	}

	payload := make([]byte, length)
	copy(payload, b[HEADER_SIZE:body])
	return Frame{CommandID: b[1], Payload: payload}, nil
}

// ScanFrames is a bufio.SplitFunc that yields raw frame candidates delimited by
// the START sentinel and the length byte. Bytes before a START are discarded,
// as is an incomplete candidate once a valid frame starts after it.
// Tokens are not validated; pass them to Decode.
func ScanFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := bytes.IndexByte(data, globals.FRAME_START)
	if start < 0 {
		return len(data), nil, nil
	}

	if len(data)-start >= HEADER_SIZE {
		end := start + int(data[start+2]) + OVERHEAD
		if end <= len(data) {
			return end, data[start:end], nil
		}
	}

	// a stray START with a large length byte would otherwise hold back every
	// frame behind it
	if next := resync(data, start); next > start {
		return next, nil, nil
	}

	if atEOF {
		// a truncated frame can never complete
		return len(data), nil, nil
	}
	return start, nil, nil
}

// resync returns the offset of the first later START that begins a complete,
// valid frame, or start when there is none.
func resync(data []byte, start int) int {
	for i := start + 1; i+HEADER_SIZE <= len(data); i++ {
		if data[i] != globals.FRAME_START {
			continue
		}
		end := i + int(data[i+2]) + OVERHEAD
		if end > len(data) {
			continue
		}
		if _, err := Decode(data[i:end]); err == nil {
			return i
		}
	}
	return start
}
