package commander

import "UCLA-Rocket-Project/turretctl/internal/globals"

func SetMode(mode byte) Command {
	return newCommand(globals.CMD_SET_MODE, []byte{mode})
}

// SequenceParams holds the arguments used by the repeating command cycle.
type SequenceParams struct {
	Azimuth        uint16
	Elevation      uint16
	DeltaAzimuth   int16
	DeltaElevation int16
	Speed          uint16
	Mode           byte
}

func DefaultSequenceParams() SequenceParams {
	return SequenceParams{
		Azimuth:        90,
		Elevation:      45,
		DeltaAzimuth:   -10,
		DeltaElevation: 5,
		Speed:          500,
		Mode:           globals.MODE_MANUAL,
	}
}

// DefaultSequence returns one pass of the cycle, ordered by command id.
func DefaultSequence(p SequenceParams) []Command {
	return []Command{
		MoveToPosition(p.Azimuth, p.Elevation),
		MoveByIncrement(p.DeltaAzimuth, p.DeltaElevation),
		ReadPosition(),
		SetSpeed(p.Speed),
		Stop(),
		SetMode(p.Mode),
		RequestStatus(),
	}
}
