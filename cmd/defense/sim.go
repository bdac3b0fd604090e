package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
	"github.com/vovakirdan/tui-defense/internal/platform/web"
)

var (
	flagSimLevel int
	flagSimTicks int
	flagSimAuto  bool
	flagSimPlace []string
	flagSimWS    string
	flagSimSave  bool
	flagSimJSON  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run a game without a terminal UI.

Towers are placed with --place id@x,y before the first tick. By default the
run is as fast as the CPU allows and stops after --ticks fixed steps or at
game over. With --auto the next wave starts as soon as the board is clear
and completed levels continue to the next map.

With --ws the game runs in real time and spectators can follow it over
WebSocket at ws://<addr>/ws until Ctrl+C.

Examples:
  defense sim --ticks 3600
  defense sim --auto --place turret@5,5 --place blaster@8,2 --json
  defense sim --auto --ws :8080`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Starting level")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Fixed steps to run (headless mode)")
	simCmd.Flags().BoolVar(&flagSimAuto, "auto", false, "Start waves and levels without waiting")
	simCmd.Flags().StringArrayVar(&flagSimPlace, "place", nil, "Build a tower, id@x,y (repeatable)")
	simCmd.Flags().StringVar(&flagSimWS, "ws", "", "Serve spectators on this address and run in real time")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the final state to the database")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the final summary as JSON")
}

func runSim(_ *cobra.Command, _ []string) {
	s, err := loadSetup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	opts := s.sessionOptions()
	opts.Config = s.scaledConfig()
	opts.Level = flagSimLevel
	if flagSimSave {
		if store := s.openStore(); store != nil {
			defer store.Close()
			opts.Store = store
		}
	}
	sess, err := defense.NewSession(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, arg := range flagSimPlace {
		id, x, y, err := parsePlacement(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := sess.PlaceTower(id, x, y); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot build %s at %d,%d: %v\n", id, x, y, err)
			os.Exit(1)
		}
	}
	sess.TogglePause()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagSimWS != "" {
		err = simRealtime(ctx, sess, s)
	} else {
		simHeadless(ctx, sess, time.Second/time.Duration(s.cfg.Sim.TickRate))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagSimSave {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sess.Save(saveCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	printSummary(sess.Summary())
}

// simHeadless steps through Advance so the wave countdown runs exactly as it
// does in an interactive game.
func simHeadless(ctx context.Context, sess *defense.Session, tick time.Duration) {
	for i := 0; i < flagSimTicks; i++ {
		if ctx.Err() != nil {
			return
		}
		if !autopilot(sess) {
			return
		}
		sess.Advance(tick)
	}
}

// autopilot reports whether the run can continue.
func autopilot(sess *defense.Session) bool {
	sum := sess.Summary()
	switch sum.Status {
	case core.StatusGameOver:
		return false
	case core.StatusLevelComplete:
		return flagSimAuto && sess.AdvanceLevel()
	}
	if flagSimAuto && sum.Enemies == 0 {
		sess.StartWave()
	}
	return true
}

func simRealtime(ctx context.Context, sess *defense.Session, s *setup) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := web.NewHub(s.logger)
	go hub.Run(ctx)
	interval := time.Second / time.Duration(s.cfg.Sim.FrameRate)
	go hub.Stream(ctx, sess, interval, true)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: flagSimWS, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("spectator server error", "error", err)
			cancel()
		}
	}()
	s.logger.Info("spectators welcome", "url", "ws://"+flagSimWS+"/ws")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !autopilot(sess) {
					cancel()
					return
				}
			}
		}
	}()

	err := sess.RunRealtime(ctx, s.cfg.Sim.FrameRate)

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	//nolint:errcheck // best-effort shutdown
	srv.Shutdown(shutdownCtx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// parsePlacement reads "id@x,y".
func parsePlacement(arg string) (string, int, int, error) {
	id, at, ok := strings.Cut(arg, "@")
	if !ok || id == "" {
		return "", 0, 0, fmt.Errorf("placement %q: expected id@x,y", arg)
	}
	xs, ys, ok := strings.Cut(at, ",")
	if !ok {
		return "", 0, 0, fmt.Errorf("placement %q: expected id@x,y", arg)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return "", 0, 0, fmt.Errorf("placement %q: bad x: %w", arg, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return "", 0, 0, fmt.Errorf("placement %q: bad y: %w", arg, err)
	}
	return id, x, y, nil
}

func printSummary(sum core.Summary) {
	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		//nolint:errcheck // stdout
		enc.Encode(sum)
		return
	}
	fmt.Printf("Status:  %s\n", sum.Status)
	fmt.Printf("Level:   %d\n", sum.Level)
	fmt.Printf("Wave:    %d\n", sum.Wave)
	fmt.Printf("Tick:    %d\n", sum.Tick)
	fmt.Printf("Lives:   %d\n", sum.Lives)
	fmt.Printf("Money:   %d\n", sum.Money)
	fmt.Printf("Kills:   %d\n", sum.Kills)
	fmt.Printf("Score:   %d\n", sum.Score)
	fmt.Printf("Towers:  %d\n", sum.Towers)
	fmt.Printf("Enemies: %d\n", sum.Enemies)
}
