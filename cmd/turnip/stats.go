package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagStatsLevel int
	flagStatsLimit int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pull attempt history",
	Long: `Display per-level pull statistics and the most recent attempts of the
profile. Attempts are only recorded by the sqlite backend.

Examples:
  turnip stats
  turnip stats --level 4
  turnip stats --profile ssh:alice --limit 50`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLevel, "level", 0, "Only show attempts on this level")
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 20, "Number of recent attempts to show")
}

func runStats(_ *cobra.Command, _ []string) {
	env, err := loadEnv(logToStderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	if env.sqlite == nil {
		fmt.Fprintf(os.Stderr, "Error: attempt history needs the sqlite backend (current: %s)\n", env.cfg.Storage.Backend)
		return
	}

	ctx := context.Background()
	profile := env.profile()

	stats, err := env.sqlite.LevelStatsFor(ctx, profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Printf("Pull statistics - %s\n\n", profile)
	if len(stats) == 0 {
		fmt.Println("No attempts recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-8s  %-9s  %-10s  %s\n", "Level", "Attempts", "Successes", "Best total", "Last played")
	fmt.Printf("  %-5s  %-8s  %-9s  %-10s  %s\n", "-----", "--------", "---------", "----------", "-----------")
	for _, s := range stats {
		if flagStatsLevel > 0 && s.LevelID != flagStatsLevel {
			continue
		}
		fmt.Printf("  %-5d  %-8d  %-9d  %-10d  %s\n",
			s.LevelID, s.Attempts, s.Successes, s.BestTotal, s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	attempts, err := env.sqlite.RecentAttempts(ctx, profile, flagStatsLevel, flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving attempts: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Recent attempts:")
	fmt.Println()
	fmt.Printf("  %-16s  %-5s  %-6s  %-8s  %s\n", "Date", "Level", "Placed", "Strength", "Outcome")
	fmt.Printf("  %-16s  %-5s  %-6s  %-8s  %s\n", "----", "-----", "------", "--------", "-------")
	for _, a := range attempts {
		fmt.Printf("  %-16s  %-5d  %-6d  %-8s  %s\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04"), a.LevelID, a.Placed,
			fmt.Sprintf("%d/%d", a.Total, a.Required), a.Outcome)
	}
}
