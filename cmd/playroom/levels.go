package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/games/shadow"
	"github.com/vovakirdan/playroom/internal/games/story"
	"github.com/vovakirdan/playroom/internal/levels"
	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/puzzle/matching"
	"github.com/vovakirdan/playroom/internal/puzzle/ordering"
)

var flagLevelsPack string

var levelsCmd = &cobra.Command{
	Use:   "levels <game>",
	Short: "Show the levels of a game",
	Long: `List the levels a game will play: the built-in ones, or those of a
level pack. Packs found in ~/.playroom/levels are listed too.

Examples:
  playroom levels story
  playroom levels shadow --seed 42
  playroom levels story --pack bedtime`,
	Args: cobra.ExactArgs(1),
	Run:  runLevels,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a level pack file",
	Long: `Parse a level pack and check every level, reporting the first
problem found.

Examples:
  playroom validate ./bedtime.yml`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsPack, "pack", "", "Level pack file or ID to show instead of the built-in levels")
}

func runLevels(cmd *cobra.Command, args []string) {
	logger := cliLogger()
	gameID := args[0]

	var pack *levels.Pack
	if flagLevelsPack != "" {
		p, err := loadPack(flagLevelsPack)
		if err != nil {
			exitf("%v", err)
		}
		pack = &p
	}

	switch gameID {
	case shadow.ID:
		catalog := matching.DefaultCatalog(flagSeed)
		if pack != nil {
			c, err := pack.ShadowCatalog()
			if err != nil {
				exitf("%v", err)
			}
			catalog = c
		}
		printShadowLevels(catalog)
	case story.ID:
		catalog := ordering.DefaultCatalog()
		if pack != nil {
			c, err := pack.StoryCatalog()
			if err != nil {
				exitf("%v", err)
			}
			catalog = c
		}
		printStoryLevels(catalog)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'playroom list' to see available games.")
		os.Exit(1)
	}

	packs, err := levels.NewLoader(levelsDir()).LoadAll()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("cannot list level packs", "dir", levelsDir(), "err", err)
		}
		return
	}
	var ids []string
	for _, p := range packs {
		if p.Game == gameID {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) > 0 {
		fmt.Println()
		fmt.Printf("Packs in %s: %s\n", levelsDir(), strings.Join(ids, ", "))
	}
}

func printShadowLevels(c *matching.Catalog) {
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "Level", "Pieces", "Decoys", "Animals")
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "-----", "------", "------", "-------")
	for n := 1; n <= c.Len(); n++ {
		lvl, _ := c.Level(n)
		animals := make([]string, len(lvl.Pieces))
		for i, p := range lvl.Pieces {
			animals[i] = p.Identity
		}
		fmt.Printf("  %-5d  %-6d  %-6d  %s\n", n, lvl.ItemCount, lvl.DistractorCount, strings.Join(animals, ", "))
	}
}

func printStoryLevels(c *ordering.Catalog) {
	fmt.Printf("  %-5s  %-5s  %s\n", "Level", "Cards", "Story")
	fmt.Printf("  %-5s  %-5s  %s\n", "-----", "-----", "-----")
	for n := 1; n <= c.Len(); n++ {
		lvl, _ := c.Level(n)
		fmt.Printf("  %-5d  %-5d  %s\n", n, lvl.CardCount(), lvl.Theme)
	}
}

func runValidate(cmd *cobra.Command, args []string) {
	logger := cliLogger()
	path := args[0]

	pack, err := levels.NewLoader(levelsDir()).LoadFile(path)
	if err != nil {
		exitf("%v", err)
	}

	if err := pack.Validate(); err != nil {
		var cfgErr *puzzle.ConfigError
		if errors.As(err, &cfgErr) {
			logger.Error("invalid level", "pack", pack.ID, "level", cfgErr.Level, "reason", cfgErr.Reason)
		}
		exitf("%v", err)
	}

	switch {
	case pack.Len() < puzzle.MaxLevel:
		logger.Warn("pack is shorter than a full session",
			"pack", pack.ID, "levels", pack.Len(), "session", puzzle.MaxLevel)
	case pack.Len() > puzzle.MaxLevel:
		logger.Warn("pack is longer than a session, extra levels are never played",
			"pack", pack.ID, "levels", pack.Len(), "session", puzzle.MaxLevel)
	}
	fmt.Printf("%s: %s pack %q with %d levels is valid\n", path, pack.Game, pack.ID, pack.Len())
}
