// sand is a falling-sand toy for the terminal.
//
// Usage:
//
//	sand [mode...]          - Run a mode (sand, saver, crawl, noise; default sand)
//	sand list               - List available modes
//	sand history [mode]     - Browse, export or plot recorded runs
//	sand serve              - Start SSH server, one sand box per connection
//
// Global flags:
//
//	--config <path>    - Simulation constants YAML
//	--db <path>        - Run history database (default: ~/.sand/history.db)
//	--interval <dur>   - Override the refresh interval (e.g. 16ms)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/logging"
	"github.com/vovakirdan/tui-sand/internal/platform/term"
	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/session"
	"github.com/vovakirdan/tui-sand/internal/storage"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-sand/internal/modes/crawl"
	_ "github.com/vovakirdan/tui-sand/internal/modes/noise"
	_ "github.com/vovakirdan/tui-sand/internal/modes/sand"
	_ "github.com/vovakirdan/tui-sand/internal/modes/saver"
)

const defaultMode = "sand"

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagInterval time.Duration
	flagLogLevel string

	// Root flags
	flagSurface   string
	flagNoHistory bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sand [mode...]",
	Short: "Falling sand in your terminal",
	Long: `sand drops grains of sand down the terminal and lets them pile up.

Modes:
  sand   - Falling sand (default)
  saver  - Bouncing screen saver
  crawl  - One crawler per row
  noise  - Random glyph draw test

When several modes are given the last one wins; unknown words are ignored.

Keys:
  Space     - Falling sand
  S C N     - Saver, crawler, draw test
  Esc       - Stop
  R         - Reseed the current mode
  F         - Fill the grid (diagnostic)
  ?         - Help
  Q/Ctrl+C  - Quit

Examples:
  sand
  sand saver
  sand --interval 16ms --surface tcell
  sand history --plot
  sand serve --ssh :2222`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSand,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation constants YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().DurationVar(&flagInterval, "interval", 0, "Refresh interval override (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringVar(&flagSurface, "surface", "tea", "Terminal surface: tea or tcell")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record runs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// pickMode returns the last registered mode named in args and the words it
// did not recognize.
func pickMode(args []string) (mode string, unknown []string) {
	mode = defaultMode
	for _, a := range args {
		if registry.Exists(a) {
			mode = a
			continue
		}
		unknown = append(unknown, a)
	}
	return mode, unknown
}

// loadConfig reads the simulation constants and applies --interval.
func loadConfig() (config.SandConfig, error) {
	cfg, err := config.LoadSand(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagInterval > 0 {
		cfg.Timing.RefreshInterval = flagInterval
	}
	return cfg, cfg.Validate()
}

// openLog opens ~/.sand/sand.log. Logging is best effort: a session runs
// without it when the file cannot be opened.
func openLog() (*log.Logger, io.Closer) {
	dir, err := config.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	logger, closer, err := logging.OpenFile(filepath.Join(dir, "sand.log"), "sand")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}

// terminalSize falls back to 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	w, h, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

func runSand(_ *cobra.Command, args []string) error {
	if flagSurface != "tea" && flagSurface != "tcell" {
		return fmt.Errorf("unknown surface %q (want tea or tcell)", flagSurface)
	}

	logger, logCloser := openLog()
	defer logCloser.Close()
	if err := logging.SetLevel(logger, flagLogLevel); err != nil {
		return err
	}

	mode, unknown := pickMode(args)
	for _, a := range unknown {
		logger.Warn("ignoring unknown argument", "arg", a)
		fmt.Fprintf(os.Stderr, "Warning: ignoring unknown argument %q\n", a)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := session.Options{
		Config: cfg,
		Origin: "local",
		Logger: logger,
	}
	opts.Width, opts.Height = terminalSize()

	if !flagNoHistory {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open run history", "error", err)
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	sess, err := session.New(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	if flagSurface == "tcell" {
		surface, err := term.New(sess, logger)
		if err != nil {
			return fmt.Errorf("cannot open terminal: %w", err)
		}
		// tcell may report a different size than x/term before the first
		// resize event.
		sess.Resize(surface.Size())
		if err := sess.Switch(mode); err != nil {
			return err
		}
		return surface.Run()
	}

	if err := sess.Switch(mode); err != nil {
		return err
	}
	return tui.Run(sess)
}
