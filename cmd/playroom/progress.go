package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/registry"
	"github.com/vovakirdan/playroom/internal/storage"
)

var (
	flagReset    bool
	flagSessions int
)

var progressCmd = &cobra.Command{
	Use:   "progress [game]",
	Short: "Show stored progress",
	Long: `Display the furthest level and recent sessions of one game, or a
summary of every game.

Examples:
  playroom progress
  playroom progress story
  playroom progress shadow --sessions 20
  playroom progress shadow --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the stored progress of the game")
	progressCmd.Flags().IntVar(&flagSessions, "sessions", 10, "Number of recent sessions to show")
}

func runProgress(cmd *cobra.Command, args []string) {
	logger := cliLogger()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening progress database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagReset {
			exitf("--reset needs a game")
		}
		printSummary(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'playroom list' to see available games.")
		os.Exit(1)
	}

	if flagReset {
		if err := store.ClearProgress(gameID); err != nil {
			exitf("%v", err)
		}
		logger.Info("progress cleared", "game", gameID)
		return
	}

	printGame(store, gameID)
}

func printSummary(store *storage.Store) {
	all, err := store.AllProgress()
	if err != nil {
		exitf("%v", err)
	}

	fmt.Println("Progress")
	fmt.Println()
	fmt.Printf("  %-14s  %-8s  %-8s  %s\n", "Game", "Furthest", "Sessions", "Finished")
	fmt.Printf("  %-14s  %-8s  %-8s  %s\n", "----", "--------", "--------", "--------")

	for _, g := range registry.List() {
		p, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-14s  %-8s  %-8d  %d\n", g.Title, "-", 0, 0)
			continue
		}
		fmt.Printf("  %-14s  %-8s  %-8d  %d\n", g.Title,
			fmt.Sprintf("%d/%d", p.Furthest, puzzle.MaxLevel), p.Sessions, p.Completions)
	}
}

func printGame(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		exitf("creating game: %v", err)
	}

	p, err := store.Progress(gameID)
	if err != nil {
		exitf("%v", err)
	}

	fmt.Printf("Progress - %s\n", game.Title())
	fmt.Println()

	if p.Sessions == 0 {
		fmt.Println("Not played yet.")
		fmt.Println()
		fmt.Printf("Play 'playroom play %s' to start!\n", gameID)
		return
	}

	fmt.Printf("Furthest level: %d/%d\n", p.Furthest, puzzle.MaxLevel)
	fmt.Printf("Levels cleared: %d\n", p.LevelsCleared)
	fmt.Printf("Sessions:       %d (%d finished)\n", p.Sessions, p.Completions)
	if !p.LastPlayed.IsZero() {
		fmt.Printf("Last played:    %s\n", p.LastPlayed.Format("2006-01-02 15:04"))
	}

	sessions, err := store.RecentSessions(gameID, flagSessions)
	if err != nil {
		exitf("%v", err)
	}

	fmt.Println()
	fmt.Printf("  %-12s  %-4s  %-7s  %-4s  %s\n", "Player", "From", "Reached", "Done", "Date")
	fmt.Printf("  %-12s  %-4s  %-7s  %-4s  %s\n", "------", "----", "-------", "----", "----")
	for _, s := range sessions {
		player := s.Player
		if player == "" {
			player = "-"
		}
		done := ""
		if s.Completed {
			done = "yes"
		}
		fmt.Printf("  %-12s  %-4d  %-7d  %-4s  %s\n",
			player, s.StartLevel, s.Furthest, done, s.StartedAt.Format("2006-01-02 15:04"))
	}
}
