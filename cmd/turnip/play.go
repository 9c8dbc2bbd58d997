package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-turnip/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal. Progress is saved for the current profile.

Controls:
  ←/→ or h/l   - Select a character
  Enter        - Drop into the first empty slot
  1-9          - Place into that slot
  Space/P      - Pull the turnip
  Esc          - Back to menu
  Q/Ctrl+C     - Quit

Examples:
  turnip play
  turnip play --profile alice --lang hy
  turnip play --backend memory`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	env, err := loadEnv(logToFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runErr := tui.Run(ctx, env.factory(), env.profile(), env.runtimeConfig(width, height))

	// Close storage before potential exit
	if err := env.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
