// defense is a tower defense game for the terminal.
//
// Usage:
//
//	defense play [level]     - Play a level
//	defense menu             - Start the map picker menu
//	defense sim              - Run a headless simulation
//	defense serve            - Start SSH server for remote play
//	defense scores           - Show high scores
//	defense saves            - List or delete save slots
//	defense advise           - Ask for tower advice for a wave
//	defense list             - List levels, towers and enemies
//	defense config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Render rate (default: from config)
//	--seed <value>        - Scenery seed for reproducible maps
//	--db <path|dsn>       - Scores and saves database (SQLite path or postgres:// DSN)
//	--config <path>       - Custom config YAML
//	--catalog <path>      - Custom towers, enemies, levels and waves YAML
//	--difficulty <name>   - easy, normal or hard
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagCatalog    string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "defense",
	Short: "TUI Defense - hold the line in your terminal",
	Long: `TUI Defense is a tower defense game played in the terminal.

Enemies walk a fixed path toward your base. Build towers beside the path,
earn money for every kill and survive twenty waves per map.

Available commands:
  play     - Play a level directly
  menu     - Interactive map picker
  sim      - Headless simulation, optionally streamed over WebSocket
  serve    - Start SSH server for remote play
  scores   - View high scores
  saves    - Manage save slots
  advise   - Ask which towers fit a wave
  list     - Show levels, towers and enemies
  config   - Print the default configuration

Examples:
  defense play
  defense play 2 --difficulty hard
  defense menu
  defense sim --ticks 3600 --auto
  defense serve --ssh :2222
  defense scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Render rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Scenery seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/defense.db", "Scores and saves database path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}
