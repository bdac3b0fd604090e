package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a map picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a map, Left/Right for the difficulty,
Enter to play it, Tab for the scoreboard. After a game ends you return to the menu.

Examples:
  defense menu
  defense menu --difficulty easy
  defense menu --db postgres://arcade@localhost/defense`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s, err := loadSetup(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	store := s.openStore()
	cfg := runtimeConfig(s)
	factory := tui.NewSessionFactory(s.sessionOptions(), store, s.logger)

	preset := s.preset
	for {
		result, err := tui.RunMenu(s.cat, store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = result.Config
		preset = result.Difficulty

		if result.Quit {
			break
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if err := playLevel(factory, store, cfg, result.Level, preset, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
