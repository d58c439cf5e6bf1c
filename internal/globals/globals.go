package globals

// frame sentinels
const (
	FRAME_START = 0x02
	FRAME_END   = 0x03
)

// all possible command ids
const (
	CMD_MOVE_TO_POSITION  = 0x01
	CMD_MOVE_BY_INCREMENT = 0x02
	CMD_READ_POSITION     = 0x03
	CMD_SET_SPEED         = 0x04
	CMD_STOP              = 0x05
	CMD_SET_MODE          = 0x06
	CMD_REQUEST_STATUS    = 0x07
)

// operating modes accepted by CMD_SET_MODE
const (
	MODE_MANUAL = 0x00
	MODE_AUTO   = 0x01
)

var CommandNames = map[byte]string{
	CMD_MOVE_TO_POSITION:  "Move to Specific Position",
	CMD_MOVE_BY_INCREMENT: "Move by Increment",
	CMD_READ_POSITION:     "Read Current Position",
	CMD_SET_SPEED:         "Set Speed",
	CMD_STOP:              "Stop Motion",
	CMD_SET_MODE:          "Set Mode",
	CMD_REQUEST_STATUS:    "Request Status",
}
