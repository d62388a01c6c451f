// Package config loads and validates matrixscan configuration.
package config

import (
	"fmt"
	"time"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/scanner"
)

// Scanner modes.
const (
	ModeActive  = "active"
	ModePassive = "passive"
)

// Boards.
const (
	BoardSim   = "sim"
	BoardEvdev = "evdev"
)

// Config holds the complete configuration.
type Config struct {
	// Mode selects the active or passive scanner.
	Mode string `toml:"mode" yaml:"mode"`

	// Board selects the HAL: a simulated board, or one fed by evdev.
	Board string `toml:"board" yaml:"board"`

	// Device is the input device path for the evdev board. Empty picks the
	// first keyboard.
	Device string `toml:"device" yaml:"device"`

	Scanner ScannerConfig `toml:"scanner" yaml:"scanner"`
	Keymap  KeymapConfig  `toml:"keymap" yaml:"keymap"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// ScannerConfig tunes scanning and polling.
type ScannerConfig struct {
	// Debounce is the number of identical passes before the active scanner
	// trusts the matrix.
	Debounce int `toml:"debounce" yaml:"debounce"`

	// Settle is the wait between driving a row and reading it.
	Settle time.Duration `toml:"settle" yaml:"settle"`

	// PollInterval is the time between scans.
	PollInterval time.Duration `toml:"poll_interval" yaml:"poll_interval"`

	// HostInterval is the time between passes of the simulated host in
	// passive mode.
	HostInterval time.Duration `toml:"host_interval" yaml:"host_interval"`
}

// KeymapConfig selects the key mapping.
type KeymapConfig struct {
	// Layout is auto, positional or symbolic. Auto reads the C= key at
	// start-up.
	Layout string `toml:"layout" yaml:"layout"`

	// Euro reports the pound key as the euro sign.
	Euro bool `toml:"euro" yaml:"euro"`
}

// LoggingConfig controls the package logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Mode:  ModeActive,
		Board: BoardSim,
		Scanner: ScannerConfig{
			Debounce:     scanner.DefaultDebounce,
			Settle:       scanner.DefaultSettle,
			PollInterval: scanner.DefaultPollInterval,
			HostInterval: 20 * time.Millisecond,
		},
		Keymap: KeymapConfig{
			Layout: keymap.ModeAuto.String(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: pkg.LogFormatText.String(),
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// ActiveConfig returns the active scanner settings.
func (c *Config) ActiveConfig() scanner.ActiveConfig {
	return scanner.ActiveConfig{
		Debounce: c.Scanner.Debounce,
		Settle:   c.Scanner.Settle,
	}
}

// PollerConfig returns the poller settings.
func (c *Config) PollerConfig() scanner.PollerConfig {
	return scanner.PollerConfig{Interval: c.Scanner.PollInterval}
}

// MapperOptions returns the mapper options for the keymap settings.
func (c *Config) MapperOptions() ([]keymap.MapperOption, error) {
	mode, err := keymap.ParseMode(c.Keymap.Layout)
	if err != nil {
		return nil, err
	}
	return []keymap.MapperOption{keymap.WithMode(mode), keymap.WithEuro(c.Keymap.Euro)}, nil
}

// ApplyLogging sets the package log level and format.
func (c *Config) ApplyLogging() error {
	level, err := pkg.ParseLogLevel(c.Logging.Level)
	if err != nil {
		return err
	}
	format, err := pkg.ParseLogFormat(c.Logging.Format)
	if err != nil {
		return err
	}
	pkg.SetLogFormat(format)
	pkg.SetLogLevel(level)
	return nil
}

// String summarizes the configuration for log output.
func (c *Config) String() string {
	return fmt.Sprintf("mode=%s board=%s layout=%s debounce=%d poll=%v",
		c.Mode, c.Board, c.Keymap.Layout, c.Scanner.Debounce, c.Scanner.PollInterval)
}
