// turnip is a terminal puzzle game after the folk tale of the giant turnip.
//
// Usage:
//
//	turnip play              - Play in this terminal
//	turnip serve             - Start SSH server for remote play
//	turnip levels            - List the campaign levels
//	turnip progress          - Show or reset a profile's progress
//	turnip stats             - Show pull attempt history
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.turnip, ./configs, embedded)
//	--db <path>         - SQLite database path
//	--backend <name>    - Progress backend: sqlite, redis or memory
//	--redis-addr <addr> - Redis address for the redis backend
//	--profile <name>    - Player profile
//	--lang <code>       - UI language
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagBackend   string
	flagRedisAddr string
	flagProfile   string
	flagLang      string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "turnip",
	Short: "The Grandfather and the Turnip - a terminal puzzle",
	Long: `Help the grandfather pull the giant turnip. Line up the family and
their animals in the right order until the team is strong enough.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  levels    - List the campaign levels
  progress  - Show or reset progress
  stats     - Show pull attempt history

Examples:
  turnip play
  turnip play --lang ru
  turnip serve --ssh :2222
  turnip progress --profile alice --reset
  turnip stats --level 3`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Progress backend: sqlite, redis, memory")
	rootCmd.PersistentFlags().StringVar(&flagRedisAddr, "redis-addr", "", "Redis address (host:port)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Player profile")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "UI language code (en, ru, hy)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(statsCmd)
}
