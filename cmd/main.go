package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"UCLA-Rocket-Project/turretctl/internal/commander"
	"UCLA-Rocket-Project/turretctl/internal/config"
	"UCLA-Rocket-Project/turretctl/internal/logger"
	"UCLA-Rocket-Project/turretctl/internal/metrics"
	"UCLA-Rocket-Project/turretctl/internal/rpSerial"
	"UCLA-Rocket-Project/turretctl/internal/simulator"
	"UCLA-Rocket-Project/turretctl/internal/terminal"
)

type options struct {
	once     bool
	loopback bool
}

func main() {
	configPath := flag.String("config", "", "path to a YAML, TOML or JSON config file")
	port := flag.String("port", "", "serial port, overrides serial.port")
	once := flag.Bool("once", false, "send the command cycle a single time and exit")
	loopback := flag.Bool("loopback", false, "talk to the built-in positioner simulator instead of a serial port")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if *port != "" {
		cfg.Serial.Port = *port
	}

	log, err := logger.NewLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, options{once: *once, loopback: *loopback}, log)
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("Exiting...")
	case err != nil:
		log.Fatal("Command cycle failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, log *zap.Logger) (err error) {
	reg := metrics.NewRegistry()
	linkMetrics := metrics.NewLinkMetrics(reg)

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, reg, log); err != nil {
				log.Error("Metrics listener stopped", zap.Error(err))
			}
		}()
	}

	conn, closeConn, err := openLink(cfg, opts.loopback, log)
	if err != nil {
		return err
	}
	// the link is released on every exit path, including interrupts
	defer func() {
		err = multierr.Append(err, closeConn())
	}()

	cmdr := commander.New(conn, log,
		commander.WithSettleDelay(cfg.Cycle.SettleDelay),
		commander.WithInterval(cfg.Cycle.Interval),
		commander.WithMetrics(linkMetrics),
	)

	seq := commander.DefaultSequence(commander.SequenceParams{
		Azimuth:        cfg.Command.Azimuth,
		Elevation:      cfg.Command.Elevation,
		DeltaAzimuth:   cfg.Command.DeltaAzimuth,
		DeltaElevation: cfg.Command.DeltaElevation,
		Speed:          cfg.Command.Speed,
		Mode:           cfg.Command.Mode,
	})

	if opts.once {
		return cmdr.RunOnce(ctx, seq)
	}
	return cmdr.Run(ctx, seq)
}

// openLink returns the link the cycle talks to and the func that releases it.
var openLink = func(cfg *config.Config, loopback bool, log *zap.Logger) (commander.SerialReaderWriter, func() error, error) {
	if loopback {
		log.Info("Using built-in positioner simulator")
		return simulator.NewDevice(log.Named("simulator")), func() error { return nil }, nil
	}

	portName := cfg.Serial.Port
	if portName == "" {
		var err error
		portName, err = terminal.PickPort(rpSerial.ListPorts, os.Stdin, os.Stdout, log)
		if err != nil {
			return nil, nil, err
		}
	}

	link, err := rpSerial.Open(portName, cfg.Serial.Baud, cfg.Serial.ReadTimeout, log)
	if err != nil {
		return nil, nil, err
	}
	return link, link.Close, nil
}
