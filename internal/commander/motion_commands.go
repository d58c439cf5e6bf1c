package commander

import (
	"encoding/binary"

	"UCLA-Rocket-Project/turretctl/internal/globals"
)

// MoveToPosition points the turret at an absolute azimuth and elevation.
func MoveToPosition(azimuth, elevation uint16) Command {
	payload := make([]byte, 0, 4)
	payload = binary.BigEndian.AppendUint16(payload, azimuth)
	payload = binary.BigEndian.AppendUint16(payload, elevation)
	return newCommand(globals.CMD_MOVE_TO_POSITION, payload)
}

// MoveByIncrement moves both axes relative to the current position.
// Negative deltas are sent as two's complement.
func MoveByIncrement(deltaAzimuth, deltaElevation int16) Command {
	payload := make([]byte, 0, 4)
	payload = binary.BigEndian.AppendUint16(payload, uint16(deltaAzimuth))
	payload = binary.BigEndian.AppendUint16(payload, uint16(deltaElevation))
	return newCommand(globals.CMD_MOVE_BY_INCREMENT, payload)
}

func SetSpeed(speed uint16) Command {
	return newCommand(globals.CMD_SET_SPEED, binary.BigEndian.AppendUint16(nil, speed))
}

func Stop() Command {
	return newCommand(globals.CMD_STOP, nil)
}
