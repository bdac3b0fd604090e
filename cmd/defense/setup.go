package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/advisor"
	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

// setup is the configuration every command shares. cfg is kept unscaled;
// preset is applied when a session is built.
type setup struct {
	cfg     config.DefenseConfig
	preset  config.DifficultyPreset
	cat     *catalog.Catalog
	logger  *log.Logger
	logFile *os.File
}

// loadSetup resolves config, difficulty, catalog and logger from the global
// flags. Interactive commands log nowhere unless --log-file is given, since
// the terminal belongs to the UI.
func loadSetup(interactive bool) (*setup, error) {
	cfg, err := config.LoadDefense(flagConfig)
	if err != nil {
		return nil, err
	}
	preset := cfg.Difficulty.Preset
	if flagDifficulty != "" {
		if preset, err = config.ParsePreset(flagDifficulty); err != nil {
			return nil, err
		}
	}
	if flagFPS > 0 {
		cfg.Sim.FrameRate = flagFPS
	}

	cat := catalog.Default()
	if flagCatalog != "" {
		if cat, err = catalog.LoadFile(flagCatalog); err != nil {
			return nil, err
		}
	}

	s := &setup{cfg: cfg, preset: preset, cat: cat}
	if err := s.scaledConfig().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		s.logFile = f
		out = f
	case interactive:
		out = io.Discard
	}
	s.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "defense",
	})
	if flagVerbose {
		s.logger.SetLevel(log.DebugLevel)
	}
	return s, nil
}

func (s *setup) close() {
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// advisor prefers the configured remote service and falls back to the
// local heuristic.
func (s *setup) advisor(endpoint string) advisor.Advisor {
	local := advisor.Local{Catalog: s.cat}
	if endpoint == "" {
		endpoint = s.cfg.Advisor.Endpoint
	}
	if endpoint == "" {
		return local
	}
	remote := advisor.NewHTTP(endpoint, s.cfg.Advisor.Timeout, advisor.WithLogger(s.logger))
	return advisor.Fallback{remote, local}
}

// scaledConfig is the config with the difficulty preset applied.
func (s *setup) scaledConfig() config.DefenseConfig {
	cfg := s.cfg
	config.ApplyDefensePreset(&cfg, s.preset)
	return cfg
}

// sessionOptions carries the unscaled config for tui.NewSessionFactory.
func (s *setup) sessionOptions() defense.Options {
	cfg := s.cfg
	cfg.Difficulty.Preset = s.preset
	return defense.Options{
		Config:  cfg,
		Catalog: s.cat,
		Advisor: s.advisor(""),
		Logger:  s.logger,
		Seed:    flagSeed,
	}
}

// openStore opens the database, or returns nil with a warning so the game
// still runs without persistence.
func (s *setup) openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}
