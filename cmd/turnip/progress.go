package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-turnip/internal/progress"
)

var (
	flagReset bool
	flagList  bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset a profile's progress",
	Long: `Display the stored progress of the profile: language, current level,
unlocked levels and whether the intro was seen.

With --reset the record is deleted, so the next game starts from the
intro on level 1. On the sqlite backend the attempt history is cleared too.

With --list every profile with saved progress is printed instead. This
needs the sqlite backend.

Examples:
  turnip progress
  turnip progress --profile ssh:alice
  turnip progress --reset
  turnip progress --list`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the profile's progress")
	progressCmd.Flags().BoolVar(&flagList, "list", false, "List every profile with saved progress")
	progressCmd.MarkFlagsMutuallyExclusive("reset", "list")
}

func runProgress(_ *cobra.Command, _ []string) {
	env, err := loadEnv(logToStderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	ctx := context.Background()
	profile := env.profile()

	if flagList {
		profiles, err := listProfiles(ctx, env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if len(profiles) == 0 {
			fmt.Println("No progress recorded yet.")
			return
		}
		for _, p := range profiles {
			fmt.Println(p)
		}
		return
	}

	if flagReset {
		if err := resetProgress(ctx, env, profile); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			return
		}
		fmt.Printf("Progress of %q reset.\n", profile)
		return
	}

	store := progress.NewStore(env.backend, profile, env.logger)
	p := store.Load(ctx)

	fmt.Printf("Progress - %s\n\n", profile)
	if !store.Found() {
		fmt.Println("No progress recorded yet.")
		fmt.Println()
		fmt.Println("Play 'turnip play' to start!")
		return
	}

	blob, err := progress.Encode(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding progress: %v\n", err)
		return
	}

	fmt.Printf("  %-16s %s\n", "Language", env.locales.Resolve(p.Language))
	fmt.Printf("  %-16s %d\n", "Current level", p.CurrentLevel)
	fmt.Printf("  %-16s %v\n", "Unlocked", p.UnlockedLevels)
	fmt.Printf("  %-16s %d / %d\n", "Highest", p.HighestUnlocked(), env.levels.Last().ID)
	fmt.Printf("  %-16s %t\n", "Intro viewed", p.IntroViewed)
	fmt.Println()
	fmt.Printf("Stored record: %s\n", blob)
}

func resetProgress(ctx context.Context, env *appEnv, profile string) error {
	store := progress.NewStore(env.backend, profile, env.logger)
	if err := store.Reset(ctx); err != nil {
		return err
	}
	if env.sqlite != nil {
		return env.sqlite.ClearAttempts(ctx, profile)
	}
	return nil
}

// listProfiles returns the profiles stored in the sqlite database.
func listProfiles(ctx context.Context, env *appEnv) ([]string, error) {
	if env.sqlite == nil {
		return nil, errors.New("listing profiles needs the sqlite backend")
	}
	return env.sqlite.Profiles(ctx)
}
