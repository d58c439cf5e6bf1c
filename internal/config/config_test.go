package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "", cfg.Serial.Port)
	require.Equal(t, 115200, cfg.Serial.Baud)
	require.Equal(t, time.Second, cfg.Serial.ReadTimeout)
	require.Equal(t, 100*time.Millisecond, cfg.Cycle.SettleDelay)
	require.Equal(t, 500*time.Millisecond, cfg.Cycle.Interval)
	require.Equal(t, CommandConfig{
		Azimuth:        90,
		Elevation:      45,
		DeltaAzimuth:   -10,
		DeltaElevation: 5,
		Speed:          500,
		Mode:           0,
	}, cfg.Command)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "", cfg.Metrics.Addr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turret.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
serial:
  port: /dev/serial0
  baud: 9600
cycle:
  interval: 2s
command:
  azimuth: 180
  deltaAzimuth: -45
metrics:
  addr: ":9100"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/dev/serial0", cfg.Serial.Port)
	require.Equal(t, 9600, cfg.Serial.Baud)
	require.Equal(t, 2*time.Second, cfg.Cycle.Interval)
	require.Equal(t, 100*time.Millisecond, cfg.Cycle.SettleDelay)
	require.Equal(t, uint16(180), cfg.Command.Azimuth)
	require.Equal(t, int16(-45), cfg.Command.DeltaAzimuth)
	require.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TURRET_SERIAL_PORT", "/dev/ttyUSB3")
	t.Setenv("TURRET_CYCLE_SETTLEDELAY", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB3", cfg.Serial.Port)
	require.Equal(t, 250*time.Millisecond, cfg.Cycle.SettleDelay)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadBaud(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turret.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial:\n  baud: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsOutOfRangeCommand(t *testing.T) {
	tests := []struct {
		key   string
		value int
	}{
		{"azimuth", 70000},
		{"azimuth", -1},
		{"elevation", -1},
		{"elevation", 65536},
		{"deltaAzimuth", 40000},
		{"deltaElevation", -32769},
		{"speed", 65536},
		{"mode", 300},
		{"mode", -1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s=%d", tt.key, tt.value), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "turret.yaml")
			body := fmt.Sprintf("command:\n  %s: %d\n", tt.key, tt.value)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := Load(path)
			require.ErrorContains(t, err, "command."+tt.key)
		})
	}
}

func TestLoadAcceptsCommandLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turret.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
command:
  azimuth: 65535
  elevation: 0
  deltaAzimuth: -32768
  deltaElevation: 32767
  speed: 65535
  mode: 255
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, CommandConfig{
		Azimuth:        65535,
		Elevation:      0,
		DeltaAzimuth:   -32768,
		DeltaElevation: 32767,
		Speed:          65535,
		Mode:           255,
	}, cfg.Command)
}
