package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/games/defense/advisor"
)

// ioGrace lets the advisor's own timeout fire before the command gives up.
const ioGrace = 2 * time.Second

var (
	flagAdviseWave     int
	flagAdviseEndpoint string
	flagAdviseLocal    bool
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Ask which towers fit a wave",
	Long: `Query the advisory service for the towers to build against a wave.

The endpoint comes from --endpoint or the advisor section of the config.
Without one, or with --local, a built-in heuristic answers instead.

Examples:
  defense advise --wave 7
  defense advise --wave 12 --endpoint http://localhost:9000/advise
  defense advise --local`,
	Args: cobra.NoArgs,
	Run:  runAdvise,
}

func init() {
	adviseCmd.Flags().IntVar(&flagAdviseWave, "wave", 1, "Wave number to ask about")
	adviseCmd.Flags().StringVar(&flagAdviseEndpoint, "endpoint", "", "Advisory service URL (overrides config)")
	adviseCmd.Flags().BoolVar(&flagAdviseLocal, "local", false, "Use the built-in heuristic only")
}

func runAdvise(_ *cobra.Command, _ []string) {
	s, err := loadSetup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	var adv advisor.Advisor = advisor.Local{Catalog: s.cat}
	if !flagAdviseLocal {
		adv = s.advisor(flagAdviseEndpoint)
	}

	req := advisor.Request{
		WaveNumber:      flagAdviseWave,
		EnemyTypes:      s.cat.RosterForWave(flagAdviseWave),
		AvailableTowers: s.cat.TowerNames(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Advisor.Timeout+ioGrace)
	defer cancel()

	resp, err := adv.Advise(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wave %d: %s\n", req.WaveNumber, describeRoster(req.EnemyTypes))
	fmt.Println()
	fmt.Println("Recommended towers:")
	for i, name := range resp.RecommendedTowers {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

// describeRoster collapses a roster into "5x troop, 2x jeep".
func describeRoster(ids []string) string {
	if len(ids) == 0 {
		return "no enemies"
	}
	var order []string
	counts := make(map[string]int)
	for _, id := range ids {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}
	parts := make([]string, 0, len(order))
	for _, id := range order {
		parts = append(parts, fmt.Sprintf("%dx %s", counts[id], id))
	}
	return strings.Join(parts, ", ")
}
