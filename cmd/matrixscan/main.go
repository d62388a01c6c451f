// Command matrixscan runs a keyboard matrix scanner over a simulated or
// evdev-backed board and prints the key events it produces.
//
// Usage:
//
//	matrixscan [options]
//
// Options:
//
//	-c, --config path        TOML or YAML configuration file
//	-w, --watch              Reload the configuration file when it changes
//	-m, --mode string        Scanner mode: active or passive
//	-b, --board string       Board: sim or evdev
//	-d, --device path        Input device for the evdev board
//	    --debounce int       Identical passes before the matrix is trusted
//	    --layout string      Keymap: auto, positional or symbolic
//	    --euro               Report the pound key as the euro sign
//	-t, --type text          Type text on the simulated board, then exit
//	    --duration duration  Stop after this long (0 runs until interrupted)
//	-v, --verbose            Enable debug logging
//	    --json               Use JSON log format
//	    --profile dir        Write CPU and heap profiles (needs -tags profile)
//
// Flags override values read from the configuration file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ardnew/softmatrix/config"
	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/pkg/prof"
	"github.com/ardnew/softmatrix/scanner"
	"github.com/ardnew/softmatrix/scanner/hal/evdev"
	"github.com/ardnew/softmatrix/scanner/hal/sim"
)

// component identifies this executable for structured logging.
const component = pkg.ComponentCLI

// options holds the parsed command line.
type options struct {
	configPath string
	watch      bool
	text       string
	duration   time.Duration
	verbose    bool
	json       bool
	profile    string

	flags *flag.FlagSet
	mode  string
	board string
	dev   string
	deb   int
	lay   string
	euro  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	f := flag.NewFlagSet("matrixscan", flag.ContinueOnError)
	f.SetOutput(stderr)
	f.StringVarP(&o.configPath, "config", "c", os.Getenv("MATRIXSCAN_CONFIG"), "TOML or YAML configuration file")
	f.BoolVarP(&o.watch, "watch", "w", false, "reload the configuration file when it changes")
	f.StringVarP(&o.mode, "mode", "m", config.ModeActive, "scanner mode: active or passive")
	f.StringVarP(&o.board, "board", "b", config.BoardSim, "board: sim or evdev")
	f.StringVarP(&o.dev, "device", "d", "", "input device for the evdev board")
	f.IntVar(&o.deb, "debounce", scanner.DefaultDebounce, "identical passes before the matrix is trusted")
	f.StringVar(&o.lay, "layout", keymap.ModeAuto.String(), "keymap: auto, positional or symbolic")
	f.BoolVar(&o.euro, "euro", false, "report the pound key as the euro sign")
	f.StringVarP(&o.text, "type", "t", "", "type text on the simulated board, then exit")
	f.DurationVar(&o.duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&o.json, "json", false, "use JSON log format")
	f.StringVar(&o.profile, "profile", "", "write CPU and heap profiles to `dir` (needs -tags profile)")
	if err := f.Parse(args); err != nil {
		return nil, err
	}
	if f.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", pkg.ErrInvalidParameter, f.Arg(0))
	}
	o.flags = f
	return o, nil
}

// override copies the flags given on the command line into cfg.
func (o *options) override(cfg *config.Config) {
	if o.flags.Changed("mode") {
		cfg.Mode = o.mode
	}
	if o.flags.Changed("board") {
		cfg.Board = o.board
	}
	if o.flags.Changed("device") {
		cfg.Device = o.dev
	}
	if o.flags.Changed("debounce") {
		cfg.Scanner.Debounce = o.deb
	}
	if o.flags.Changed("layout") {
		cfg.Keymap.Layout = o.lay
	}
	if o.flags.Changed("euro") {
		cfg.Keymap.Euro = o.euro
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if o.json {
		cfg.Logging.Format = pkg.LogFormatJSON.String()
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		pkg.LogError(component, "matrixscan failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	pkg.SetLogOutput(stderr)

	loader := config.NewLoader(o.configPath)
	defer loader.Close()
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	o.override(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ApplyLogging(); err != nil {
		return err
	}

	if o.profile != "" {
		if !prof.Enabled() {
			pkg.LogWarn(component, "profiling not compiled in, rebuild with -tags profile")
		}
		capture, err := prof.Start(o.profile)
		if err != nil {
			return err
		}
		defer func() {
			if err := capture.Stop(); err != nil {
				pkg.LogWarn(component, "profile incomplete", "error", err)
			}
		}()
	}

	session := uuid.New()
	pkg.LogInfo(component, "starting", "session", session, "config", cfg)

	if o.watch {
		loader.OnChange(func(next *config.Config) {
			o.override(next)
			if err := next.ApplyLogging(); err != nil {
				pkg.LogWarn(component, "ignoring logging settings", "error", err)
				return
			}
			pkg.LogInfo(component, "logging reconfigured", "session", session,
				"level", next.Logging.Level, "format", next.Logging.Format)
		})
		if err := loader.Watch(); err != nil {
			return err
		}
	}

	opts, err := cfg.MapperOptions()
	if err != nil {
		return err
	}
	mapper := keymap.NewMapper(keymap.C16, opts...)

	if o.duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, o.duration)
		defer stop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	board := sim.NewBoard()
	s, err := build(ctx, cfg, board, mapper)
	if err != nil {
		return err
	}
	if err := s.Begin(); err != nil {
		return err
	}
	defer s.End()

	out := newPrinter(stdout, isTerminal(stdout))
	out.header(session, cfg, mapper.Mode())
	poller := scanner.NewPoller(s, out, cfg.PollerConfig())

	if o.text != "" {
		if cfg.Board != config.BoardSim {
			return fmt.Errorf("%w: --type needs the sim board", pkg.ErrInvalidParameter)
		}
		go func() {
			defer cancel()
			settle := time.Duration(cfg.Scanner.Debounce+2)*scanner.DefaultLoopInterval +
				2*cfg.Scanner.PollInterval
			if cfg.Mode == config.ModePassive {
				settle += 4 * cfg.Scanner.HostInterval
			}
			if err := typeText(ctx, board, o.text, settle); err != nil && !errors.Is(err, context.Canceled) {
				pkg.LogWarn(component, "typing stopped", "error", err)
			}
			// Let the poller report the final release.
			sleep(ctx, settle)
		}()
	}

	err = poller.Run(ctx)
	st := poller.Stats()
	pkg.LogInfo(component, "stopped", "session", session,
		"presses", st.Presses, "releases", st.Releases, "scans", st.Complete)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// build returns the scanner for cfg, starting any goroutines that feed the
// board.
func build(ctx context.Context, cfg *config.Config, board *sim.Board, mapper *keymap.Mapper) (scanner.Scanner, error) {
	if cfg.Board == config.BoardEvdev {
		src, err := evdev.Open(cfg.Device, board, keymap.C16.Positional)
		if err != nil {
			return nil, err
		}
		go func() {
			if err := src.Run(ctx); err != nil && ctx.Err() == nil {
				pkg.LogError(component, "input device failed", "error", err)
			}
		}()
	}

	switch cfg.Mode {
	case config.ModePassive:
		host := sim.NewHost(board)
		go func() { _ = host.Run(ctx, cfg.Scanner.HostInterval) }()
		return scanner.NewPassive(host.RowPort(), host.ColPort(), host.Interrupt(), mapper), nil
	default:
		return scanner.NewActive(board.RowPort(), board.ColPort(), mapper, cfg.ActiveConfig()), nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
