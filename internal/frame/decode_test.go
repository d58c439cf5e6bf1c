package frame

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	f, err := Decode([]byte{0x02, 0x01, 0x04, 0x00, 0x5A, 0x00, 0x2D, 0x7E, 0x03})
	require.NoError(t, err)
	require.Equal(t, byte(0x01), f.CommandID)
	require.Equal(t, []byte{0x00, 0x5A, 0x00, 0x2D}, f.Payload)

	b, err := f.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x01, 0x04, 0x00, 0x5A, 0x00, 0x2D, 0x7E, 0x03}, b)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  []byte
		expect error
	}{
		{"empty", nil, ErrShortFrame},
		{"truncated", []byte{0x02, 0x03, 0x00, 0x01}, ErrShortFrame},
		{"missing start", []byte{0x00, 0x03, 0x00, 0x01, 0x03}, ErrBadSentinel},
		{"missing end", []byte{0x02, 0x03, 0x00, 0x01, 0x04}, ErrBadSentinel},
		{"length too long", []byte{0x02, 0x06, 0x02, 0x00, 0x05, 0x03}, ErrLengthMismatch},
		{"length too short", []byte{0x02, 0x06, 0x00, 0x00, 0x05, 0x03}, ErrLengthMismatch},
		{"bad checksum", []byte{0x02, 0x06, 0x01, 0x00, 0x06, 0x03}, ErrChecksumMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			require.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for size := 0; size <= MAX_PAYLOAD_SIZE; size += 17 {
		payload := bytes.Repeat([]byte{0x03}, size)
		b := MustEncode(0x42, payload)
		f, err := Decode(b)
		require.NoError(t, err)
		require.Equal(t, byte(0x42), f.CommandID)
		require.Equal(t, payload, f.Payload)
	}
}

func TestScanFrames(t *testing.T) {
	var stream []byte
	stream = append(stream, 0xFF, 0x00) // line noise before the first frame
	stream = append(stream, MustEncode(0x03, nil)...)
	stream = append(stream, MustEncode(0x06, []byte{0x01})...)
	stream = append(stream, 0x02, 0x01, 0x04, 0x00) // truncated tail

	scanner := bufio.NewScanner(bytes.NewReader(stream))
	scanner.Split(ScanFrames)

	var frames []Frame
	for scanner.Scan() {
		f, err := Decode(scanner.Bytes())
		require.NoError(t, err)
		frames = append(frames, f)
	}
	require.NoError(t, scanner.Err())
	require.Equal(t, []Frame{
		{CommandID: 0x03, Payload: []byte{}},
		{CommandID: 0x06, Payload: []byte{0x01}},
	}, frames)
}

func TestScanFramesSkipsStrayStart(t *testing.T) {
	setMode := MustEncode(0x06, []byte{0x01})
	readPos := MustEncode(0x03, nil)

	tests := []struct {
		name  string
		atEOF bool
	}{
		{"streaming", false},
		{"at EOF", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// START followed by a length byte that no write will ever satisfy
			data := append([]byte{0x02, 0x09, 0xFF}, setMode...)

			advance, token, err := ScanFrames(data, tt.atEOF)
			require.NoError(t, err)
			require.Nil(t, token)
			require.Equal(t, 3, advance)

			advance, token, err = ScanFrames(data[advance:], tt.atEOF)
			require.NoError(t, err)
			require.Equal(t, len(setMode), advance)
			require.Equal(t, setMode, token)
		})
	}

	t.Run("scanner", func(t *testing.T) {
		var stream []byte
		stream = append(stream, 0x02, 0x09, 0xFF)
		stream = append(stream, setMode...)
		stream = append(stream, readPos...)

		scanner := bufio.NewScanner(bytes.NewReader(stream))
		scanner.Split(ScanFrames)

		var tokens [][]byte
		for scanner.Scan() {
			tokens = append(tokens, append([]byte(nil), scanner.Bytes()...))
		}
		require.NoError(t, scanner.Err())
		require.Equal(t, [][]byte{setMode, readPos}, tokens)
	})
}

func TestScanFramesWaitsForLongFrame(t *testing.T) {
	// a genuine long frame whose head has arrived must not be skipped
	full := MustEncode(0x01, []byte{0x00, 0x5A, 0x00, 0x2D})

	advance, token, err := ScanFrames(full[:5], false)
	require.NoError(t, err)
	require.Nil(t, token)
	require.Zero(t, advance)
}
