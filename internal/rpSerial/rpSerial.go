/**
Wrapper around the regular serial package to simplify the interface

This wrapper should:
1. Be able to list all the open ports and connect to one
2. Send command frames through the serial port
3. Drain whatever the positioner sent back without blocking on it
*/

package rpSerial

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

const TEMP_BUF_SIZE = 256
const MAX_DRAIN_SIZE = 4096

// poll timeout used while draining, a read that returns nothing within it ends the drain
const DRAIN_POLL = 20 * time.Millisecond

// Port is the part of serial.Port the wrapper relies on.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

type RpSerial struct {
	port Port

	logger      *zap.Logger
	portName    string
	readTimeout time.Duration
}

// Open opens portName in 8N1 mode at baudrate.
func Open(portName string, baudrate int, readTimeout time.Duration, logger *zap.Logger) (*RpSerial, error) {
	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}

	r, err := newRPSerial(port, portName, readTimeout, logger)
	if err != nil {
		port.Close()
		return nil, err
	}

	logger.Info("Opened serial port", zap.String("portName", portName), zap.Int("baudRate", baudrate), zap.Duration("readTimeout", readTimeout))
	return r, nil
}

func newRPSerial(port Port, portName string, readTimeout time.Duration, logger *zap.Logger) (*RpSerial, error) {
	if err := port.SetReadTimeout(readTimeout); err != nil {
		return nil, fmt.Errorf("set read timeout on %s: %w", portName, err)
	}

	return &RpSerial{
		port:        port,
		logger:      logger,
		portName:    portName,
		readTimeout: readTimeout,
	}, nil
}

func (r *RpSerial) WriteFrame(frame []byte) (int, error) {
	n, err := r.port.Write(frame)
	if err != nil {
		return n, err
	}
	if n != len(frame) {
		return n, io.ErrShortWrite
	}

	r.logger.Debug("Wrote frame to serial port", zap.Int("bytesWritten", n), zap.Binary("frame", frame))
	return n, nil
}

// ReadAvailable returns whatever is already buffered on the port. It polls with
// a short timeout so an idle device costs at most DRAIN_POLL, then restores the
// configured read timeout.
func (r *RpSerial) ReadAvailable() ([]byte, error) {
	if err := r.port.SetReadTimeout(DRAIN_POLL); err != nil {
		return nil, err
	}
	defer func() {
		if err := r.port.SetReadTimeout(r.readTimeout); err != nil {
			r.logger.Warn("Error restoring read timeout", zap.Error(err), zap.String("portName", r.portName))
		}
	}()

	var out []byte
	tempBuf := [TEMP_BUF_SIZE]byte{}

	for len(out) < MAX_DRAIN_SIZE {
		n, err := r.port.Read(tempBuf[:])
		out = append(out, tempBuf[:n]...)
		if err != nil {
			return out, err
		}
		if n == 0 {
			break
		}
	}

	if len(out) >= MAX_DRAIN_SIZE {
		r.logger.Warn("Response exceeded drain limit, remaining bytes left on the port", zap.Int("limit", MAX_DRAIN_SIZE))
	}
	return out, nil
}

func (r *RpSerial) Close() error {
	r.logger.Info("Closing serial port", zap.String("portName", r.portName))
	return r.port.Close()
}

func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}
