package commander

import "UCLA-Rocket-Project/turretctl/internal/globals"

// queries carry no payload, whatever the device sends back is logged as-is

func ReadPosition() Command {
	return newCommand(globals.CMD_READ_POSITION, nil)
}

func RequestStatus() Command {
	return newCommand(globals.CMD_REQUEST_STATUS, nil)
}
