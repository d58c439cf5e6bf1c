/**
In-memory stand-in for the positioner firmware.

The device side of the link:
1. Reassembles frames from whatever the host writes
2. Applies motion, speed and mode commands to its azimuth/elevation state
3. Queues a reply frame for every accepted command
*/

package simulator

import (
	"encoding/binary"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"UCLA-Rocket-Project/turretctl/internal/frame"
	"UCLA-Rocket-Project/turretctl/internal/globals"
)

const FULL_TURN = 360

var ErrUnknownCommand = errors.New("unknown command")
var ErrBadPayload = errors.New("bad payload for command")

type State struct {
	Azimuth   uint16
	Elevation uint16
	Speed     uint16
	Mode      byte
	Moving    bool
}

type Device struct {
	State

	logger   *zap.Logger
	pending  []byte
	outbox   []byte
	received []frame.Frame
	rejected int
}

func NewDevice(logger *zap.Logger) *Device {
	return &Device{logger: logger}
}

// WriteFrame accepts raw bytes from the host. Partial frames are held until
// the rest arrives.
func (d *Device) WriteFrame(b []byte) (int, error) {
	d.pending = append(d.pending, b...)

	for {
		advance, token, _ := frame.ScanFrames(d.pending, false)
		if advance == 0 {
			break
		}
		d.pending = d.pending[advance:]
		if token == nil {
			continue
		}

		f, err := frame.Decode(token)
		if err != nil {
			d.rejected++
			d.logger.Warn("Dropping malformed frame", zap.Error(err), zap.Binary("frame", token))
			continue
		}
		d.handle(f)
	}

	return len(b), nil
}

// ReadAvailable returns and clears every reply queued so far.
func (d *Device) ReadAvailable() ([]byte, error) {
	out := d.outbox
	d.outbox = nil
	return out, nil
}

// Received returns the frames accepted so far, oldest first.
func (d *Device) Received() []frame.Frame {
	return d.received
}

// Rejected counts frames that failed to decode or apply.
func (d *Device) Rejected() int {
	return d.rejected
}

func (d *Device) handle(f frame.Frame) {
	reply, err := d.apply(f)
	if err != nil {
		d.rejected++
		d.logger.Warn("Rejected command", zap.Uint8("commandID", f.CommandID), zap.Error(err))
		return
	}

	d.received = append(d.received, f)
	d.outbox = append(d.outbox, frame.MustEncode(f.CommandID, reply)...)
	d.logger.Debug("Applied command",
		zap.String("command", globals.CommandNames[f.CommandID]),
		zap.Uint16("azimuth", d.Azimuth), zap.Uint16("elevation", d.Elevation),
		zap.Uint16("speed", d.Speed), zap.Uint8("mode", d.Mode), zap.Bool("moving", d.Moving),
	)
}

// apply updates the state and returns the reply payload.
func (d *Device) apply(f frame.Frame) ([]byte, error) {
	p := f.Payload

	switch f.CommandID {
	case globals.CMD_MOVE_TO_POSITION:
		if len(p) != 4 {
			return nil, badPayload(f)
		}
		d.Azimuth = wrapDegrees(int(binary.BigEndian.Uint16(p[0:2])))
		d.Elevation = wrapDegrees(int(binary.BigEndian.Uint16(p[2:4])))
		d.Moving = true
		return nil, nil
	case globals.CMD_MOVE_BY_INCREMENT:
		if len(p) != 4 {
			return nil, badPayload(f)
		}
		d.Azimuth = wrapDegrees(int(d.Azimuth) + int(int16(binary.BigEndian.Uint16(p[0:2]))))
		d.Elevation = wrapDegrees(int(d.Elevation) + int(int16(binary.BigEndian.Uint16(p[2:4]))))
		d.Moving = true
		return nil, nil
	case globals.CMD_READ_POSITION:
		if len(p) != 0 {
			return nil, badPayload(f)
		}
		reply := binary.BigEndian.AppendUint16(nil, d.Azimuth)
		return binary.BigEndian.AppendUint16(reply, d.Elevation), nil
	case globals.CMD_SET_SPEED:
		if len(p) != 2 {
			return nil, badPayload(f)
		}
		d.Speed = binary.BigEndian.Uint16(p)
		return nil, nil
	case globals.CMD_STOP:
		if len(p) != 0 {
			return nil, badPayload(f)
		}
		d.Moving = false
		return nil, nil
	case globals.CMD_SET_MODE:
		if len(p) != 1 {
			return nil, badPayload(f)
		}
		d.Mode = p[0]
		return nil, nil
	case globals.CMD_REQUEST_STATUS:
		if len(p) != 0 {
			return nil, badPayload(f)
		}
		var moving byte
		if d.Moving {
			moving = 1
		}
		return binary.BigEndian.AppendUint16([]byte{d.Mode, moving}, d.Speed), nil
	}

	return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownCommand, f.CommandID)
}

func badPayload(f frame.Frame) error {
	return fmt.Errorf("%w 0x%02X: %d bytes", ErrBadPayload, f.CommandID, len(f.Payload))
}

// wrapDegrees folds any angle into [0, 360).
func wrapDegrees(deg int) uint16 {
	return uint16((deg%FULL_TURN + FULL_TURN) % FULL_TURN)
}
