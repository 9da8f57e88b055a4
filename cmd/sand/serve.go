package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/logging"
	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagStartMode   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sand SSH server",
	Long: `Start an SSH server that gives every connection its own sand box.

Each connection runs its own grid sized to the client's terminal.
Finished runs are recorded in the shared history database, tagged
with the ssh user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sand/host_key

Examples:
  sand serve                           # Listen on :23234 with auto-generated key
  sand serve --ssh :2222               # Listen on port 2222
  sand serve --mode saver              # Start clients on the screen saver
  sand serve --mode ""                 # Start clients idle

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagStartMode, "mode", defaultMode, "Mode each connection starts in")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := logging.New(os.Stderr, "sand-ssh")
	if err := logging.SetLevel(logger, flagLogLevel); err != nil {
		return err
	}

	if flagStartMode != "" && !registry.Exists(flagStartMode) {
		return fmt.Errorf("unknown mode %q; run 'sand list' to see available modes", flagStartMode)
	}

	sandCfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Sand:        sandCfg,
		StartMode:   flagStartMode,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting sand SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
