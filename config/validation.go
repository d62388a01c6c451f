package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/pkg"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for i := range e {
		msgs = append(msgs, e[i].Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match pkg.ErrInvalidParameter.
func (e ValidationErrors) Unwrap() error {
	if len(e) == 0 {
		return nil
	}
	return pkg.ErrInvalidParameter
}

// Validate checks every field and returns ValidationErrors if any is
// invalid.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch c.Mode {
	case ModeActive, ModePassive:
	default:
		add("mode", "must be %q or %q, got %q", ModeActive, ModePassive, c.Mode)
	}

	switch c.Board {
	case BoardSim:
	case BoardEvdev:
		if c.Mode == ModePassive {
			add("board", "evdev board supports active mode only")
		}
	default:
		add("board", "must be %q or %q, got %q", BoardSim, BoardEvdev, c.Board)
	}

	errs = append(errs, validateScanner(&c.Scanner)...)

	if _, err := keymap.ParseMode(c.Keymap.Layout); err != nil {
		add("keymap.layout", "must be auto, positional or symbolic, got %q", c.Keymap.Layout)
	}
	if _, err := pkg.ParseLogLevel(c.Logging.Level); err != nil {
		add("logging.level", "unknown level %q", c.Logging.Level)
	}
	if _, err := pkg.ParseLogFormat(c.Logging.Format); err != nil {
		add("logging.format", "unknown format %q", c.Logging.Format)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateScanner(s *ScannerConfig) ValidationErrors {
	var errs ValidationErrors
	if s.Debounce < 1 || s.Debounce > 1000 {
		errs = append(errs, ValidationError{
			Field:   "scanner.debounce",
			Message: fmt.Sprintf("must be between 1 and 1000, got %d", s.Debounce),
		})
	}
	if s.Settle < 0 || s.Settle > time.Millisecond {
		errs = append(errs, ValidationError{
			Field:   "scanner.settle",
			Message: fmt.Sprintf("must be between 0 and 1ms, got %v", s.Settle),
		})
	}
	if s.PollInterval < time.Millisecond || s.PollInterval > time.Second {
		errs = append(errs, ValidationError{
			Field:   "scanner.poll_interval",
			Message: fmt.Sprintf("must be between 1ms and 1s, got %v", s.PollInterval),
		})
	}
	if s.HostInterval < time.Millisecond {
		errs = append(errs, ValidationError{
			Field:   "scanner.host_interval",
			Message: fmt.Sprintf("must be at least 1ms, got %v", s.HostInterval),
		})
	}
	return errs
}
