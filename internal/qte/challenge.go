// Package qte implements the reaction-timing challenge that gates the play action.
package qte

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/utils"
)

// Phase is the challenge state. Transitions are idle -> running -> finished.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhaseFinished Phase = "finished"
)

// Result is how a challenge ended
type Result string

const (
	ResultSuccess Result = "success"
	ResultMiss    Result = "miss"
	ResultTimeout Result = "timeout"
)

// Message returns the player-facing text for r
func (r Result) Message() string {
	switch r {
	case ResultSuccess:
		return MsgSuccess
	case ResultMiss:
		return MsgMiss
	default:
		return MsgTimeout
	}
}

// Config holds the challenge timing
type Config struct {
	Duration        time.Duration
	HalfWindow      time.Duration
	ActivationDelay time.Duration
	MinOffset       float64
	MaxOffset       float64
}

// DefaultConfig returns the standard 1500ms challenge with a 200ms window
func DefaultConfig() Config {
	return Config{
		Duration:        DefaultDuration,
		HalfWindow:      DefaultHalfWindow,
		ActivationDelay: DefaultActivationDelay,
		MinOffset:       DefaultMinOffset,
		MaxOffset:       DefaultMaxOffset,
	}
}

// Target returns the centre of the success window for offset
func Target(offset float64, cfg Config) time.Duration {
	return time.Duration(offset * float64(cfg.Duration))
}

// Evaluate reports whether an input at elapsed lands inside the success window. Bounds are inclusive.
func Evaluate(elapsed time.Duration, offset float64, cfg Config) bool {
	target := Target(offset, cfg)
	return elapsed >= target-cfg.HalfWindow && elapsed <= target+cfg.HalfWindow
}

// Resolution describes a finished challenge
type Resolution struct {
	Result  Result        `json:"result"`
	Elapsed time.Duration `json:"elapsed"`
	Target  time.Duration `json:"target"`
}

// PlayFunc performs the remote play action after a successful hit
type PlayFunc func(ctx context.Context) error

// State is a read-only view of a challenge
type State struct {
	Phase     Phase     `json:"phase"`
	Armed     bool      `json:"armed"`
	Offset    float64   `json:"offset"`
	StartedAt time.Time `json:"startedAt,omitempty"`
	Result    Result    `json:"result,omitempty"`
}

// Challenge is a single-shot reaction challenge. It is safe for concurrent use;
// every timer callback checks a generation counter so a cancelled timer never acts.
type Challenge struct {
	mu         sync.Mutex
	cfg        Config
	clock      clock.Clock
	rng        utils.RandomSource
	play       PlayFunc
	onTimeout  func(Resolution)
	phase      Phase
	armed      bool
	offset     float64
	startedAt  time.Time
	result     Result
	generation uint64
	startTimer clock.Timer
	failTimer  clock.Timer
}

// NewChallenge creates an idle challenge. onTimeout runs on the timer goroutine.
func NewChallenge(cfg Config, clk clock.Clock, rng utils.RandomSource, play PlayFunc, onTimeout func(Resolution)) *Challenge {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	return &Challenge{
		cfg:       cfg,
		clock:     clk,
		rng:       rng,
		play:      play,
		onTimeout: onTimeout,
		phase:     PhaseIdle,
	}
}

// Activate arms the challenge; it starts running after the activation delay
func (c *Challenge) Activate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle || c.armed {
		return fmt.Errorf("%w: phase %s", domain.ErrChallengeActive, c.phase)
	}
	c.armed = true
	gen := c.generation
	c.startTimer = c.clock.AfterFunc(c.cfg.ActivationDelay, func() { c.start(gen) })
	slog.Debug(LogMsgChallengeArmed, "delay", c.cfg.ActivationDelay)
	return nil
}

func (c *Challenge) start(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || !c.armed || c.phase != PhaseIdle {
		return
	}
	c.armed = false
	c.phase = PhaseRunning
	c.startedAt = c.clock.Now()
	c.offset = c.cfg.MinOffset + c.rng.Float64()*(c.cfg.MaxOffset-c.cfg.MinOffset)
	c.failTimer = c.clock.AfterFunc(c.cfg.Duration, func() { c.timeout(gen) })
	slog.Debug(LogMsgChallengeRunning, "offset", c.offset)
}

func (c *Challenge) timeout(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseRunning {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseFinished
	c.result = ResultTimeout
	res := Resolution{
		Result:  ResultTimeout,
		Elapsed: c.clock.Now().Sub(c.startedAt),
		Target:  Target(c.offset, c.cfg),
	}
	onTimeout := c.onTimeout
	c.mu.Unlock()

	slog.Debug(LogMsgChallengeResolved, "result", res.Result)
	if onTimeout != nil {
		onTimeout(res)
	}
}

// Hit registers the player's input. A hit inside the window invokes the play callback,
// whose error is returned alongside the resolution. Inputs outside running are rejected.
func (c *Challenge) Hit(ctx context.Context) (Resolution, error) {
	c.mu.Lock()
	if c.phase != PhaseRunning {
		phase := c.phase
		c.mu.Unlock()
		return Resolution{}, fmt.Errorf("%w: phase %s", domain.ErrChallengeNotRunning, phase)
	}
	elapsed := c.clock.Now().Sub(c.startedAt)
	res := Resolution{Elapsed: elapsed, Target: Target(c.offset, c.cfg)}
	if Evaluate(elapsed, c.offset, c.cfg) {
		res.Result = ResultSuccess
	} else {
		res.Result = ResultMiss
	}
	c.phase = PhaseFinished
	c.result = res.Result
	c.generation++
	stopTimer(c.failTimer)
	play := c.play
	c.mu.Unlock()

	slog.Debug(LogMsgChallengeResolved, "result", res.Result, "elapsed", elapsed, "target", res.Target)
	if res.Result == ResultSuccess && play != nil {
		return res, play(ctx)
	}
	return res, nil
}

// Cancel dismisses the challenge: both timers stop and the phase returns to idle.
// It reports whether an armed or running challenge was interrupted.
func (c *Challenge) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	interrupted := c.armed || c.phase == PhaseRunning
	c.generation++
	stopTimer(c.startTimer)
	stopTimer(c.failTimer)
	c.startTimer = nil
	c.failTimer = nil
	c.armed = false
	c.phase = PhaseIdle
	c.result = ""
	c.offset = 0
	c.startedAt = time.Time{}
	if interrupted {
		slog.Debug(LogMsgChallengeCanceled)
	}
	return interrupted
}

// State returns a snapshot of the challenge
func (c *Challenge) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Phase:     c.phase,
		Armed:     c.armed,
		Offset:    c.offset,
		StartedAt: c.startedAt,
		Result:    c.result,
	}
}

func stopTimer(t clock.Timer) {
	if t != nil {
		t.Stop()
	}
}
