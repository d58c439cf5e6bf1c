package commander

import (
	"context"
	"time"

	"UCLA-Rocket-Project/turretctl/internal/frame"
	"UCLA-Rocket-Project/turretctl/internal/globals"
)

const DEFAULT_SETTLE_DELAY = 100 * time.Millisecond
const DEFAULT_COMMAND_INTERVAL = 500 * time.Millisecond

type SerialReaderWriter interface {
	WriteFrame(frame []byte) (int, error)
	ReadAvailable() ([]byte, error)
}

// Command is one positioner command ready to be framed.
type Command struct {
	ID      byte
	Name    string
	Payload []byte
}

func newCommand(id byte, payload []byte) Command {
	return Command{
		ID:      id,
		Name:    globals.CommandNames[id],
		Payload: payload,
	}
}

// Frame encodes the command for the wire. A fresh slice is built on every call.
func (c Command) Frame() ([]byte, error) {
	return frame.Encode(c.ID, c.Payload)
}

// wait sleeps for d unless ctx is done first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
