// Package frame encodes and decodes positioner command frames.
//
// A frame on the wire is
//
//	[START, command id, payload length, payload..., checksum, END]
//
// where checksum is the XOR of every byte from START through the last payload
// byte. END is not covered by the checksum.
package frame

import (
	"errors"
	"fmt"

	"UCLA-Rocket-Project/turretctl/internal/globals"
)

// HEADER_SIZE is START, command id and length.
const HEADER_SIZE = 3

// OVERHEAD is the number of bytes a frame adds around its payload.
const OVERHEAD = HEADER_SIZE + 2

// MAX_PAYLOAD_SIZE is bounded by the single length byte.
const MAX_PAYLOAD_SIZE = 0xFF

// ErrInvalidPayload is returned when a payload does not fit the length byte.
var ErrInvalidPayload = errors.New("invalid payload")

// Checksum XOR-folds data starting from zero.
func Checksum(data []byte) byte {
	var checksum byte
	for _, b := range data {
		checksum ^= b
	}
	return checksum
}

// Encode builds a complete frame for commandID carrying payload. The payload
// is copied; the caller's slice is never modified.
func Encode(commandID byte, payload []byte) ([]byte, error) {
	if len(payload) > MAX_PAYLOAD_SIZE {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidPayload, len(payload), MAX_PAYLOAD_SIZE)
	}

	b := make([]byte, len(payload)+OVERHEAD)
	b[0], b[1], b[2] = globals.FRAME_START, commandID, byte(len(payload))
	copy(b[HEADER_SIZE:], payload)

	body := HEADER_SIZE + len(payload)
	b[body] = Checksum(b[:body])
	b[body+1] = globals.FRAME_END
	return b, nil
}

// MustEncode is Encode for payloads known to fit, it panics otherwise.
func MustEncode(commandID byte, payload []byte) []byte {
	b, err := Encode(commandID, payload)
	if err != nil {
		panic(err)
	}
	return b
}
