// playroom is a terminal playroom of drag-and-drop puzzles for young children.
//
// Usage:
//
//	playroom list                 - List available games
//	playroom play <game>          - Play a game
//	playroom menu                 - Start menu to pick games interactively
//	playroom serve                - Start SSH server for remote play
//	playroom progress [game]      - Show stored progress
//	playroom levels <game>        - Show the levels of a game
//	playroom validate <file>      - Check a level pack file
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: from config, 30)
//	--seed <value>  - Set RNG seed for reproducible layouts and deals
//	--db <path>     - Set database path (default: ~/.playroom/playroom.db)
//	--log <path>    - Write a session log to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/playroom/internal/games/shadow"
	_ "github.com/vovakirdan/playroom/internal/games/story"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagConfig  string
	flagPace    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "playroom",
	Short: "Playroom - drag-and-drop puzzles in your terminal",
	Long: `Playroom is a set of small puzzles for young children, played with
the mouse (or the keyboard) right in the terminal.

Games:
  shadow   - Drag each animal onto its shadow
  story    - Put the picture cards in the order the story happens

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  progress  - Show how far each game got
  levels    - Show the levels of a game
  validate  - Check a custom level pack

Examples:
  playroom list
  playroom play story
  playroom play shadow --level 6
  playroom menu --pace relaxed
  playroom serve --ssh :2222
  playroom progress story`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.playroom/playroom.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a session log to this file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to playroom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Pace preset: relaxed, normal, brisk")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
}
