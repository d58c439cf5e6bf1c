package commander

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"UCLA-Rocket-Project/turretctl/internal/metrics"
)

// ErrEmptySequence is returned by Run when there is nothing to send.
var ErrEmptySequence = errors.New("empty command sequence")

// Commander sends commands one at a time over a serial link. It keeps no
// device state between sends and must not be shared between goroutines.
type Commander struct {
	conn    SerialReaderWriter
	logger  *zap.Logger
	metrics *metrics.LinkMetrics

	settleDelay time.Duration
	interval    time.Duration
}

type Option func(*Commander)

// WithSettleDelay sets how long to wait after a write before draining the response.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Commander) { c.settleDelay = d }
}

// WithInterval sets the pause between consecutive commands of a cycle.
func WithInterval(d time.Duration) Option {
	return func(c *Commander) { c.interval = d }
}

func WithMetrics(m *metrics.LinkMetrics) Option {
	return func(c *Commander) { c.metrics = m }
}

func New(conn SerialReaderWriter, logger *zap.Logger, opts ...Option) *Commander {
	c := &Commander{
		conn:        conn,
		logger:      logger,
		settleDelay: DEFAULT_SETTLE_DELAY,
		interval:    DEFAULT_COMMAND_INTERVAL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send writes cmd, waits for the settle delay and returns whatever bytes the
// device sent back. The response is never interpreted.
func (c *Commander) Send(ctx context.Context, cmd Command) ([]byte, error) {
	b, err := cmd.Frame()
	if err != nil {
		c.metrics.ObserveError(cmd.Name)
		return nil, fmt.Errorf("encode %s: %w", cmd.Name, err)
	}

	n, err := c.conn.WriteFrame(b)
	if err != nil {
		c.metrics.ObserveError(cmd.Name)
		c.logger.Error("Error while trying to send command", zap.String("command", cmd.Name), zap.Error(err))
		return nil, fmt.Errorf("write %s: %w", cmd.Name, err)
	}
	c.metrics.ObserveSent(cmd.Name, n)
	c.logger.Info(fmt.Sprintf("Sent %s: %s", cmd.Name, hex.EncodeToString(b)), zap.Int("bytesWritten", n))

	if err := wait(ctx, c.settleDelay); err != nil {
		return nil, err
	}

	res, err := c.conn.ReadAvailable()
	if err != nil {
		// keep whatever arrived before the error
		c.logger.Warn("Error while draining response", zap.String("command", cmd.Name), zap.Error(err))
	}
	if len(res) > 0 {
		c.metrics.ObserveReceived(len(res))
		c.logger.Info(fmt.Sprintf("Received response: %s", hex.EncodeToString(res)), zap.String("command", cmd.Name))
	}

	return res, nil
}

// RunOnce sends every command of seq in order, pausing for the interval after each.
func (c *Commander) RunOnce(ctx context.Context, seq []Command) error {
	for _, cmd := range seq {
		if _, err := c.Send(ctx, cmd); err != nil {
			return err
		}
		if err := wait(ctx, c.interval); err != nil {
			return err
		}
	}
	return nil
}

// Run repeats seq until ctx is cancelled or a command cannot be written.
func (c *Commander) Run(ctx context.Context, seq []Command) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}

	c.logger.Info("Starting command cycle", zap.Int("commands", len(seq)),
		zap.Duration("settleDelay", c.settleDelay), zap.Duration("interval", c.interval))

	for cycle := 1; ; cycle++ {
		if err := c.RunOnce(ctx, seq); err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("Exiting command cycle", zap.Int("cycle", cycle))
			}
			return err
		}
		c.logger.Debug("Completed command cycle", zap.Int("cycle", cycle))
	}
}
