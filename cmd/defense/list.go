package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

var listCmd = &cobra.Command{
	Use:       "list [levels|towers|enemies]",
	Short:     "List levels, towers and enemies",
	Long:      `Shows the maps, tower archetypes and enemy archetypes of the catalog.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"levels", "towers", "enemies"},
	Run:       runList,
}

func runList(_ *cobra.Command, args []string) {
	s, err := loadSetup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	what := ""
	if len(args) == 1 {
		what = args[0]
	}
	switch what {
	case "":
		listLevels(s)
		fmt.Println()
		listTowers(s)
		fmt.Println()
		listEnemies(s)
	case "levels":
		listLevels(s)
	case "towers":
		listTowers(s)
	case "enemies":
		listEnemies(s)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown list %q (levels, towers, enemies)\n", what)
		os.Exit(1)
	}
}

func listLevels(s *setup) {
	fmt.Printf("Levels (%d):\n", s.cat.LevelCount())
	fmt.Println()
	fmt.Printf("  %-3s  %-20s  %s\n", "#", "Name", "Path")
	fmt.Printf("  %-3s  %-20s  %s\n", "-", "----", "----")
	for _, l := range s.cat.Levels() {
		fmt.Printf("  %-3d  %-20s  %d cells\n", l.Number, l.Name, len(l.Path))
	}
	fmt.Println()
	fmt.Println("Run 'defense play <#>' to play a level.")
}

func listTowers(s *setup) {
	towers := s.cat.Towers()
	maxID := 2 // "ID" header
	for _, t := range towers {
		if len(t.ID) > maxID {
			maxID = len(t.ID)
		}
	}
	fmt.Println("Towers:")
	fmt.Println()
	fmt.Printf("  %-*s  %-22s  %6s  %6s  %7s  %5s  %s\n", maxID, "ID", "Name", "Cost", "Range", "Damage", "Rate", "Splash")
	for _, t := range towers {
		splash := ""
		if t.HasSplash() {
			splash = fmt.Sprintf("%.0f", t.Splash)
		}
		fmt.Printf("  %-*s  %-22s  %6d  %6.0f  %7.0f  %5d  %s\n", maxID, t.ID, t.Name, t.Cost, t.Range, t.Damage, t.Rate, splash)
	}
}

func listEnemies(s *setup) {
	enemies := s.cat.Enemies()
	maxID := 2
	for _, e := range enemies {
		if len(e.ID) > maxID {
			maxID = len(e.ID)
		}
	}
	fmt.Println("Enemies:")
	fmt.Println()
	fmt.Printf("  %-*s  %-22s  %5s  %6s  %6s  %s\n", maxID, "ID", "Name", "Speed", "BaseHP", "HPx", "Air")
	for _, e := range enemies {
		air := ""
		if e.Flying {
			air = "yes"
		}
		fmt.Printf("  %-*s  %-22s  %5.1f  %6.0f  %6.1f  %s\n", maxID, e.ID, e.Name, e.Speed, e.BaseHP, e.HPMultiplier, air)
	}
	fmt.Println()
	fmt.Println(rosterNote(s.cat))
}

// rosterNote tells how far the wave rosters reach.
func rosterNote(cat *catalog.Catalog) string {
	last := cat.FinalWave()
	if last == 0 {
		return "No wave rosters defined; waves spawn nothing."
	}
	return fmt.Sprintf("Wave rosters run through wave %d; later waves spawn nothing.", last)
}
