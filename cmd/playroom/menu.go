package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/platform/tui"
	"github.com/vovakirdan/playroom/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the playroom with a game picker menu",
	Long: `Start the playroom in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, then choose
where to start. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Progress board
  Q            - Quit

Examples:
  playroom menu
  playroom menu --pace relaxed
  playroom menu --db ./playroom.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s, err := setup("", "", true)
	if err != nil {
		exitf("%v", err)
	}
	defer s.Close()

	cfg := s.runtimeConfig()
	player := playerName()

	for {
		menuResult, err := tui.RunMenu(s.store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsProgress {
			goBack, pbErr := tui.RunProgress(s.store, cfg.ScreenW, cfg.ScreenH)
			if pbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", pbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from progress board
		}

		if menuResult.GameID == "" {
			break
		}

		level, quit, selErr := tui.RunLevelSelect(menuResult.Title, menuResult.Furthest, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		if quit {
			break
		}
		if level == 0 {
			continue // Back to menu
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// New layout and deal for each game
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		cfg.StartLevel = level

		tracker := tui.NewTracker(s.store, s.logger, menuResult.GameID, player)
		if err := tui.Run(game, cfg, tracker, s.logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
