package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/platform/tui"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start a game on the given level (default 1).

The game starts paused. Build a few towers, then press P to play.

Controls:
  Arrows/WASD  - Move the build cursor
  Enter/Space  - Build the selected tower
  Tab / [ ]    - Cycle towers
  G            - Start the next wave now
  P            - Pause / resume
  S / L        - Save / load
  N            - Next level (after a level is complete)
  ?            - Ask for tower advice
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Examples:
  defense play
  defense play 3
  defense play --difficulty hard --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	level := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: level must be a number, got %q\n", args[0])
			os.Exit(1)
		}
		level = n
	}

	s, err := loadSetup(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	if s.cat.LevelByNumber(level) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", level)
		fmt.Fprintln(os.Stderr, "Run 'defense list' to see available levels.")
		os.Exit(1)
	}

	store := s.openStore()
	cfg := runtimeConfig(s)
	factory := tui.NewSessionFactory(s.sessionOptions(), store, s.logger)

	runErr := playLevel(factory, store, cfg, level, s.preset, s)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func playLevel(factory tui.SessionFactory, store *storage.Store, cfg core.RuntimeConfig, level int, preset config.DifficultyPreset, s *setup) error {
	sess, err := factory(level, preset, playerName())
	if err != nil {
		return err
	}
	return tui.Run(defense.NewGame(sess), store, cfg, playerName(), s.logger)
}

// runtimeConfig sizes the UI to the current terminal.
func runtimeConfig(s *setup) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.FrameRate = s.cfg.Sim.FrameRate
	cfg.Seed = flagSeed
	return cfg
}

// playerName names local scores and save slots after the OS user.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
