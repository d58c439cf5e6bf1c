package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "TURRET"

type SerialConfig struct {
	Port        string        `mapstructure:"port"`
	Baud        int           `mapstructure:"baud"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`
}

// CycleConfig controls the timing of the repeating command cycle.
type CycleConfig struct {
	SettleDelay time.Duration `mapstructure:"settleDelay"`
	Interval    time.Duration `mapstructure:"interval"`
}

// CommandConfig holds the arguments sent with each command of the cycle.
type CommandConfig struct {
	Azimuth        uint16 `mapstructure:"azimuth"`
	Elevation      uint16 `mapstructure:"elevation"`
	DeltaAzimuth   int16  `mapstructure:"deltaAzimuth"`
	DeltaElevation int16  `mapstructure:"deltaElevation"`
	Speed          uint16 `mapstructure:"speed"`
	Mode           uint8  `mapstructure:"mode"`
}

type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

type LoggingConfig struct {
	Level string           `mapstructure:"level"`
	File  LumberjackConfig `mapstructure:"file"`
}

// MetricsConfig leaves the listener off when Addr is empty.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	Serial  SerialConfig  `mapstructure:"serial"`
	Cycle   CycleConfig   `mapstructure:"cycle"`
	Command CommandConfig `mapstructure:"command"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Load reads path (YAML/TOML/JSON) when given, otherwise ./turretctl.yaml if
// present, then applies TURRET_* environment overrides, e.g.
// TURRET_SERIAL_PORT=/dev/ttyUSB0.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("turretctl")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// running without a config file is fine, defaults and env cover everything
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// the decoder wraps out-of-range integers silently, so check the widths first
	if err := checkCommandRanges(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("invalid serial.baud %d", c.Serial.Baud)
	}
	if c.Serial.ReadTimeout < 0 || c.Cycle.SettleDelay < 0 || c.Cycle.Interval < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

var commandRanges = []struct {
	key      string
	min, max int
}{
	{"command.azimuth", 0, math.MaxUint16},
	{"command.elevation", 0, math.MaxUint16},
	{"command.deltaAzimuth", math.MinInt16, math.MaxInt16},
	{"command.deltaElevation", math.MinInt16, math.MaxInt16},
	{"command.speed", 0, math.MaxUint16},
	{"command.mode", 0, math.MaxUint8},
}

func checkCommandRanges(v *viper.Viper) error {
	for _, r := range commandRanges {
		if n := v.GetInt(r.key); n < r.min || n > r.max {
			return fmt.Errorf("invalid %s %d: must be within [%d, %d]", r.key, n, r.min, r.max)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.port", "")
	v.SetDefault("serial.baud", 115200)
	v.SetDefault("serial.readTimeout", "1s")

	v.SetDefault("cycle.settleDelay", "100ms")
	v.SetDefault("cycle.interval", "500ms")

	v.SetDefault("command.azimuth", 90)
	v.SetDefault("command.elevation", 45)
	v.SetDefault("command.deltaAzimuth", -10)
	v.SetDefault("command.deltaElevation", 5)
	v.SetDefault("command.speed", 500)
	v.SetDefault("command.mode", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file.filename", "turretctl.logs")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 7)
	v.SetDefault("logging.file.compress", false)

	v.SetDefault("metrics.addr", "")
}
