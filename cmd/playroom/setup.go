package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/games/shadow"
	"github.com/vovakirdan/playroom/internal/games/story"
	"github.com/vovakirdan/playroom/internal/levels"
	"github.com/vovakirdan/playroom/internal/storage"
)

// session is what the interactive commands share: the loaded config, the
// optional log file and the optional progress store.
type session struct {
	cfg     config.PlayroomConfig
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
}

// setup loads the config, points the games at it and opens the log and,
// with withStore, the progress store. pack, when set, replaces the levels of
// gameID.
func setup(gameID, pack string, withStore bool) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagPace != "" {
		preset := config.PacePreset(flagPace)
		if !preset.Valid() {
			return nil, fmt.Errorf("unknown pace %q, expected relaxed, normal or brisk", flagPace)
		}
		config.ApplyPacePreset(&cfg, preset)
	}

	s := &session{cfg: cfg}

	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		s.logFile = f
		s.logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "playroom",
			Level:           log.DebugLevel,
		})
	}

	shadow.SetConfig(cfg)
	story.SetConfig(cfg)
	shadow.SetLogger(s.logger)
	story.SetLogger(s.logger)

	shadowRef, storyRef := cfg.Shadow.LevelsFile, cfg.Story.LevelsFile
	switch gameID {
	case shadow.ID:
		if pack != "" {
			shadowRef = pack
		}
	case story.ID:
		if pack != "" {
			storyRef = pack
		}
	}
	if err := applyPacks(shadowRef, storyRef); err != nil {
		s.Close()
		return nil, err
	}

	if !withStore {
		return s, nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - games still work
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		s.warn("could not open progress database", err)
	} else {
		s.store = store
	}

	return s, nil
}

// applyPacks installs custom level packs, or the built-in levels for an
// empty reference.
func applyPacks(shadowRef, storyRef string) error {
	shadow.SetCatalog(nil)
	story.SetCatalog(nil)

	if shadowRef != "" {
		p, err := loadPack(shadowRef)
		if err != nil {
			return err
		}
		c, err := p.ShadowCatalog()
		if err != nil {
			return err
		}
		shadow.SetCatalog(c)
	}

	if storyRef != "" {
		p, err := loadPack(storyRef)
		if err != nil {
			return err
		}
		c, err := p.StoryCatalog()
		if err != nil {
			return err
		}
		story.SetCatalog(c)
	}
	return nil
}

// loadPack resolves a pack file path or ID and checks every level.
func loadPack(ref string) (levels.Pack, error) {
	p, err := levels.NewLoader(levelsDir()).Resolve(ref)
	if err != nil {
		return levels.Pack{}, fmt.Errorf("levels: %w", err)
	}
	if err := p.Validate(); err != nil {
		return levels.Pack{}, fmt.Errorf("levels: pack %s: %w", p.ID, err)
	}
	return p, nil
}

// levelsDir is where packs are looked up by ID.
func levelsDir() string {
	if dir := config.Dir(); dir != "" {
		return filepath.Join(dir, "levels")
	}
	return "levels"
}

// runtimeConfig builds the game config for the current terminal.
func (s *session) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = s.cfg.Timing.TickRate
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   tickRate,
		Seed:       seed,
		StartLevel: 1,
	}
}

func (s *session) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, "err", err)
	}
}

// Close releases the store and the log file.
func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// playerName names the local player in the progress store.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// exitf prints an error and exits, the way every command reports failure.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// cliLogger is the stderr logger of the commands that do not take over the
// terminal.
func cliLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "playroom",
	})
}
