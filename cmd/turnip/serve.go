package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-turnip/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the turnip SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Progress is kept per SSH user
under the profile "ssh:<user>" on the configured backend.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.turnip/host_key

Examples:
  turnip serve                           # Listen on :23234 with auto-generated key
  turnip serve --ssh :2222               # Listen on port 2222
  turnip serve --host-key ./my_host_key  # Use specific host key
  turnip serve --backend redis --redis-addr localhost:6379

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	env, err := loadEnv(logToStderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	if env.cfg.SSH.Address != "" {
		cfg.Address = env.cfg.SSH.Address
	}
	if env.cfg.SSH.IdleTimeout > 0 {
		cfg.IdleTimeout = env.cfg.SSH.IdleTimeout
	}
	cfg.HostKeyPath = env.cfg.SSH.HostKeyPath
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	cfg.Factory = env.factory()
	cfg.Runtime = env.runtimeConfig(0, 0)
	cfg.Logger = env.logger.WithPrefix("turnip-ssh")
	cfg.OnClose = env.Close

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		env.Close()
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting turnip SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
