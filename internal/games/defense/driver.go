package defense

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

// Tick runs exactly one fixed step, regardless of wall time.
func (s *Session) Tick() core.StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

func (s *Session) stepLocked() core.StepResult {
	next, res := core.Step(s.state, s.env)
	s.state = next
	s.report(res)
	return res
}

func (s *Session) report(res core.StepResult) {
	if res.WaveCleared {
		s.logger.Info("wave cleared", "wave", s.state.Wave-1, "money", s.state.Money, "score", s.state.Score)
		s.setNotice(fmt.Sprintf("Wave %d cleared", s.state.Wave-1))
	}
	if res.GameOver {
		s.logger.Info("game over", "wave", s.state.Wave, "level", s.state.CurrentLevel, "score", s.state.Score)
		s.setNotice("Game over")
	}
	if res.LevelComplete {
		s.logger.Info("level complete", "level", s.state.CurrentLevel, "wave", s.state.Wave)
		s.setNotice("Level complete")
	}
}

// Advance feeds elapsed wall time into the fixed-step accumulator and runs
// as many ticks as fit. Elapsed time above the configured frame clamp is
// dropped. The coarse wave clock runs on the same elapsed time, firing at
// most once per call. Returns the number of ticks run.
func (s *Session) Advance(elapsed time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elapsed < 0 {
		elapsed = 0
	}
	if s.maxFrame > 0 && elapsed > s.maxFrame {
		elapsed = s.maxFrame
	}
	if !s.state.Playing() {
		s.resetClocks()
		return 0
	}

	tick := s.rules.Tick()
	s.acc += elapsed
	n := 0
	for s.acc >= tick && s.state.Playing() {
		s.acc -= tick
		s.stepLocked()
		n++
	}

	armed := s.state.Playing() && len(s.state.Enemies) == 0
	if s.clock.Advance(elapsed, armed) {
		wave := s.state.Wave
		if next, ok := core.AutoAdvance(s.state, s.env); ok {
			s.state = next
			s.logger.Info("wave started", "wave", wave, "enemies", len(next.Enemies), "manual", false)
			s.setNotice(fmt.Sprintf("Wave %d incoming", wave))
		}
	}
	return n
}

// Run drives the session from a frame clock until ctx is done or frames is
// closed. The first frame only sets the reference time.
func (s *Session) Run(ctx context.Context, frames <-chan time.Time) error {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			if !last.IsZero() {
				s.Advance(now.Sub(last))
			}
			last = now
		}
	}
}

// RunRealtime drives the session from a wall-clock ticker at fps.
func (s *Session) RunRealtime(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	return s.Run(ctx, ticker.C)
}
