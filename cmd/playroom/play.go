package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/platform/tui"
	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/registry"
)

var (
	flagLevel int
	flagPack  string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Without --level a picker offers to continue after the furthest level reached.

Controls:
  Mouse drag      - Carry a piece and drop it
  Left/Right/Tab  - Select a piece
  Enter/Space     - Pick up / drop the selected piece
  Up/Down         - Move the carried piece between targets
  C               - Check the story (when every slot is full)
  Esc/B           - Put the carried piece back / back to menu
  P               - Pause
  R               - Restart the level (or the session once finished)
  Q/Ctrl+C        - Quit

Examples:
  playroom play shadow
  playroom play story --level 15
  playroom play story --pack ./bedtime.yml
  playroom play shadow --seed 42 --log shadow.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, fmt.Sprintf("Start level 1-%d (0 = ask)", puzzle.MaxLevel))
	playCmd.Flags().StringVar(&flagPack, "pack", "", "Level pack file or ID replacing the built-in levels")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'playroom list' to see available games.")
		os.Exit(1)
	}
	if flagLevel < 0 || flagLevel > puzzle.MaxLevel {
		exitf("level must be between 1 and %d", puzzle.MaxLevel)
	}

	s, err := setup(gameID, flagPack, true)
	if err != nil {
		exitf("%v", err)
	}

	cfg := s.runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		s.Close()
		exitf("creating game: %v", err)
	}

	cfg.StartLevel = flagLevel
	if cfg.StartLevel == 0 {
		furthest := 0
		if s.store != nil {
			furthest, _ = s.store.Furthest(gameID)
		}
		level, quit, selErr := tui.RunLevelSelect(game.Title(), furthest, cfg)
		if selErr != nil {
			s.Close()
			exitf("%v", selErr)
		}
		// User pressed back or quit
		if quit || level == 0 {
			s.Close()
			return
		}
		cfg.StartLevel = level
	}

	tracker := tui.NewTracker(s.store, s.logger, gameID, playerName())
	runErr := tui.Run(game, cfg, tracker, s.logger)

	// Close store before potential exit
	s.Close()

	if runErr != nil {
		exitf("running game: %v", runErr)
	}
}
