package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows every level with its source, placement mechanic, characters and
required strength, and whether the current profile has unlocked it.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) {
	env, err := loadEnv(logToStderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	ctrl, _, err := env.newController(context.Background(), env.profile(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	p := ctrl.Progress()

	// Calculate column widths
	titleW := 5 // "Title" header
	for _, l := range env.levels.All() {
		titleW = max(titleW, len([]rune(ctrl.T(l.TitleKey()))))
	}

	fmt.Printf("Levels for profile %q:\n\n", env.profile())
	fmt.Printf("  %-3s  %-*s  %-11s  %-11s  %-6s  %-8s  %s\n", "ID", titleW, "Title", "Source", "Mechanic", "Team", "Required", "Unlocked")
	fmt.Printf("  %-3s  %-*s  %-11s  %-11s  %-6s  %-8s  %s\n", "--", titleW, "-----", "------", "--------", "----", "--------", "--------")

	for _, l := range env.levels.All() {
		var team strings.Builder
		for _, ch := range env.chars.Resolve(l.RequiredCharacterIDs) {
			team.WriteRune(ch.Glyph)
		}
		unlocked := "no"
		if p.IsUnlocked(l.ID) {
			unlocked = "yes"
		}
		if l.ID == p.CurrentLevel {
			unlocked += " (current)"
		}
		title := ctrl.T(l.TitleKey())
		pad := titleW - len([]rune(title))
		fmt.Printf("  %-3d  %s%s  %-11s  %-11s  %-6s  %-8d  %s\n",
			l.ID, title, strings.Repeat(" ", pad), l.SourceType, l.Mechanic, team.String(),
			ctrl.RequiredStrength(l.ID), unlocked)
	}

	fmt.Println()
	fmt.Println("Run 'turnip play' to continue.")
}
