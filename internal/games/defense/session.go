// Package defense wires the simulation core to its collaborators: the save
// store, the advisory service, the config and the frame clock. A Session is
// the single command surface the TUI, the SSH server and the headless runner
// drive.
package defense

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/games/defense/advisor"
	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = "td_save_realistic"

// ErrPersistenceUnavailable is returned when there is no save store or the
// store fails.
var ErrPersistenceUnavailable = errors.New("persistence unavailable")

// ErrNoSave is returned by Load when the slot holds no saved game.
var ErrNoSave = errors.New("no saved game")

// SaveStore is the external key-value store holding save payloads.
type SaveStore interface {
	Put(ctx context.Context, slot string, data []byte) error
	Get(ctx context.Context, slot string) ([]byte, error)
}

// Options configures a new Session. Zero values fall back to defaults.
type Options struct {
	Config  config.DefenseConfig
	Catalog *catalog.Catalog
	Store   SaveStore
	Advisor advisor.Advisor
	Logger  *log.Logger
	Level   int    // starting level, default 1
	Slot    string // save slot, default DefaultSlot
	Seed    int64  // scenery seed
	NewID   func() string
}

// Session owns one game. All methods are safe for concurrent use; the state
// is replaced wholesale on every command so readers never see a half
// applied tick.
type Session struct {
	mu sync.Mutex

	cat     *catalog.Catalog
	rules   core.Rules
	env     core.Env
	state   core.State
	store   SaveStore
	advisor advisor.Advisor
	logger  *log.Logger

	slot       string
	seed       int64
	decor      int
	startLevel int
	newID      func() string

	acc      time.Duration
	maxFrame time.Duration
	clock    core.WaveClock
	notice   string
}

// RulesFromConfig maps the YAML config onto simulation rules.
func RulesFromConfig(cfg config.DefenseConfig) core.Rules {
	return core.Rules{
		TickRate:        cfg.Sim.TickRate,
		Cols:            cfg.Grid.Cols,
		Rows:            cfg.Grid.Rows,
		CellSize:        cfg.Grid.CellSize,
		StartingLives:   cfg.Economy.StartingLives,
		StartingMoney:   cfg.Economy.StartingMoney,
		WaveTimer:       cfg.Waves.TimerSeconds,
		SpawnSpacing:    cfg.Waves.SpawnSpacing,
		LevelBonus:      cfg.Economy.LevelBonus,
		KillDivisor:     cfg.Economy.KillDivisor,
		WavesPerLevel:   cfg.Waves.PerLevel,
		WaveClearScore:  cfg.Economy.WaveClearScore,
		ProjectileSpeed: cfg.Sim.ProjectileSpeed,
	}
}

// NewTowerID returns a short random tower instance id.
func NewTowerID() string {
	return "t_" + uuid.NewString()[:8]
}

// NewSession creates a paused session on the starting level.
func NewSession(opts Options) (*Session, error) {
	if opts.Config.Sim.TickRate == 0 {
		opts.Config = config.DefaultDefenseConfig()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("defense: %w", err)
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Level == 0 {
		opts.Level = 1
	}
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	if opts.NewID == nil {
		opts.NewID = NewTowerID
	}

	s := &Session{
		cat:        opts.Catalog,
		rules:      RulesFromConfig(opts.Config),
		store:      opts.Store,
		advisor:    opts.Advisor,
		logger:     opts.Logger,
		slot:       opts.Slot,
		seed:       opts.Seed,
		decor:      opts.Config.Sim.Decorations,
		startLevel: opts.Level,
		newID:      opts.NewID,
		maxFrame:   opts.Config.Sim.MaxFrame(),
	}
	env, ok := core.NewEnv(s.cat, opts.Level, s.rules)
	if !ok {
		return nil, fmt.Errorf("defense: unknown level %d", opts.Level)
	}
	s.env = env
	s.state = core.NewState(env, s.decorate(env))
	return s, nil
}

func (s *Session) decorate(env core.Env) []core.Decoration {
	return core.Decorate(env.Level, s.rules, s.decor, s.seed+int64(env.Level.Number))
}

// Restart discards the current game and starts over on the starting level.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	env, _ := core.NewEnv(s.cat, s.startLevel, s.rules)
	s.env = env
	s.state = core.NewState(env, s.decorate(env))
	s.resetClocks()
	s.setNotice("New game")
}

func (s *Session) resetClocks() {
	s.acc = 0
	s.clock.Reset()
}

func (s *Session) setNotice(msg string) {
	s.notice = msg
}

// Notice returns the latest human-readable event.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// StartWave spawns the next wave immediately. It is a no-op unless the game
// is playing with an empty board.
func (s *Session) StartWave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := core.StartWaveNow(s.state, s.env)
	if !ok {
		return false
	}
	s.logger.Info("wave started", "wave", s.state.Wave, "enemies", len(next.Enemies), "manual", true)
	s.setNotice(fmt.Sprintf("Wave %d incoming", s.state.Wave))
	s.state = next
	return true
}

// PlaceTower builds towerID on the grid cell.
func (s *Session) PlaceTower(towerID string, gx, gy int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := core.PlaceTowerByID(s.state, s.env, towerID, gx, gy, s.newID())
	if err != nil {
		s.logger.Debug("placement rejected", "tower", towerID, "x", gx, "y", gy, "error", err)
		if reason, ok := core.RejectionReason(err); ok {
			s.setNotice("Cannot build: " + string(reason))
		}
		return err
	}
	s.state = next
	s.setNotice("Built " + towerID)
	return nil
}

// TogglePause flips between playing and paused. Other statuses are left
// alone. It returns the resulting status.
func (s *Session) TogglePause() core.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.Status {
	case core.StatusPlaying:
		s.state.Status = core.StatusPaused
	case core.StatusPaused:
		s.state.Status = core.StatusPlaying
	}
	s.resetClocks()
	return s.state.Status
}

// AdvanceLevel continues after a completed level. On the last level the map
// repeats.
func (s *Session) AdvanceLevel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	nextLevel := s.state.CurrentLevel + 1
	if nextLevel > s.cat.LastLevel() {
		nextLevel = s.cat.LastLevel()
	}
	env, ok := core.NewEnv(s.cat, nextLevel, s.rules)
	if !ok {
		return false
	}
	next, ok := core.AdvanceLevel(s.state, env, s.decorate(env))
	if !ok {
		return false
	}
	s.env = env
	s.state = next
	s.resetClocks()
	s.logger.Info("level started", "level", nextLevel, "wave", next.Wave, "money", next.Money)
	s.setNotice(fmt.Sprintf("Level %d: %s", nextLevel, env.Level.Name))
	return true
}

// Save writes the current state to the save slot. The state is unchanged.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	snap := s.state.Clone()
	store, slot := s.store, s.slot
	s.mu.Unlock()

	if store == nil {
		return fmt.Errorf("defense: save: %w", ErrPersistenceUnavailable)
	}
	data, err := core.Encode(snap)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, slot, data); err != nil {
		s.logger.Warn("save failed", "slot", slot, "error", err)
		return fmt.Errorf("defense: save %q: %w: %w", slot, ErrPersistenceUnavailable, err)
	}
	s.logger.Info("game saved", "slot", slot, "bytes", len(data))
	s.mu.Lock()
	s.setNotice("Game saved")
	s.mu.Unlock()
	return nil
}

// Load replaces the state with the save slot's contents, paused. On any
// failure the current state is kept.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	store, slot := s.store, s.slot
	s.mu.Unlock()

	if store == nil {
		return fmt.Errorf("defense: load: %w", ErrPersistenceUnavailable)
	}
	data, err := store.Get(ctx, slot)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("nothing to load", "slot", slot)
		s.mu.Lock()
		s.setNotice("No saved game")
		s.mu.Unlock()
		return fmt.Errorf("defense: load %q: %w: %w", slot, ErrNoSave, err)
	}
	if err != nil {
		s.logger.Warn("load failed", "slot", slot, "error", err)
		return fmt.Errorf("defense: load %q: %w: %w", slot, ErrPersistenceUnavailable, err)
	}
	loaded, err := core.Decode(data)
	if err != nil {
		s.logger.Warn("load failed", "slot", slot, "error", err)
		return err
	}
	env, ok := core.NewEnv(s.cat, loaded.CurrentLevel, s.rules)
	if !ok {
		return fmt.Errorf("defense: load: unknown level %d: %w", loaded.CurrentLevel, core.ErrInvalidSave)
	}
	if err := core.CheckFits(loaded, env); err != nil {
		s.logger.Warn("load failed", "slot", slot, "error", err)
		return err
	}
	loaded.Status = core.StatusPaused

	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = env
	s.state = loaded
	s.resetClocks()
	s.logger.Info("game loaded", "slot", slot, "level", loaded.CurrentLevel, "wave", loaded.Wave)
	s.setNotice("Game loaded (paused)")
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() core.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Summary returns a compact view of the current state.
func (s *Session) Summary() core.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.state)
}

// Env returns the environment of the current level.
func (s *Session) Env() core.Env {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env
}

// Catalog returns the static game data.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// AdviceRequest describes the next wave for the advisory service.
func (s *Session) AdviceRequest() advisor.Request {
	s.mu.Lock()
	wave := s.state.Wave
	s.mu.Unlock()
	return advisor.Request{
		WaveNumber:      wave,
		EnemyTypes:      s.cat.RosterForWave(wave),
		AvailableTowers: s.cat.TowerNames(),
	}
}

// Advise queries the advisory service for the next wave. Failures never
// touch the simulation.
func (s *Session) Advise(ctx context.Context) (advisor.Response, error) {
	if s.advisor == nil {
		return advisor.Response{}, fmt.Errorf("defense: no advisor: %w", advisor.ErrAdvisoryUnavailable)
	}
	req := s.AdviceRequest()
	resp, err := s.advisor.Advise(ctx, req)
	if err != nil {
		s.logger.Warn("advisory unavailable", "wave", req.WaveNumber, "error", err)
		return advisor.Response{}, err
	}
	return resp, nil
}
