// Package pinball adapts the pinball simulation to the arcade platform:
// it maps platform actions to flipper and launch input, converts frame
// events into log lines and rasterizes snapshots into the screen buffer.
package pinball

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/games/pinball/sim"
	"github.com/vovakirdan/tui-pinball/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "pinball"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives frame events; discarded unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger sets the logger used for game events. Nil restores the
// discarding logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// tickerSize is how many recent events the HUD shows.
const tickerSize = 3

// Option configures a Game.
type Option func(*Game)

// WithClock makes the game read frame time from clock instead of the
// wall clock.
func WithClock(clock sim.Clock) Option {
	return func(g *Game) {
		g.clock = clock
	}
}

// WithConfig bypasses config loading and uses cfg directly.
func WithConfig(cfg config.PinballConfig) Option {
	return func(g *Game) {
		g.fixedCfg = &cfg
	}
}

// Game implements the pinball table for the platform.
type Game struct {
	clock    sim.Clock
	fixedCfg *config.PinballConfig

	runtime  core.RuntimeConfig
	cfg      config.PinballConfig
	driver   *sim.Driver
	snap     sim.Snapshot
	seed     int64
	paused   bool
	restarts int
	ticker   []string

	// Set when the table could not be built; shown instead of the playfield.
	loadErr error

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new pinball game.
func New(opts ...Option) *Game {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pinball"
}

// Reset loads the table config and starts a fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.restarts = 0
	g.paused = false
	g.ticker = g.ticker[:0]
	g.loadErr = nil

	g.minScreenW = 40
	g.minScreenH = 16
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	cfg, err := g.loadConfig()
	if err != nil {
		logger.Error("config rejected, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultPinballConfig()
		if difficultyPreset != "" {
			config.ApplyPinballPreset(&cfg, difficultyPreset)
		}
	}
	g.cfg = cfg

	params, err := ParamsFromConfig(cfg)
	if err != nil {
		g.fail(err)
		return
	}
	world, err := sim.NewWorld(params, runtime.Seed)
	if err != nil {
		g.fail(err)
		return
	}
	g.driver = sim.NewDriver(world, g.clock)
	g.snap = g.driver.Snapshot()
	g.seed = runtime.Seed

	logger.Info("table ready",
		"seed", runtime.Seed,
		"goal", params.Rules.Goal,
		"money", params.Rules.StartMoney,
		"time", params.Rules.TotalTime,
	)
}

// Resize follows a terminal resize without restarting the run. The
// table is rescaled on the next render.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

func (g *Game) loadConfig() (config.PinballConfig, error) {
	if g.fixedCfg != nil {
		return *g.fixedCfg, nil
	}
	cfg, err := config.LoadPinball(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		config.ApplyPinballPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

func (g *Game) fail(err error) {
	logger.Error("cannot build table", "err", err)
	g.loadErr = err
	g.driver = nil
}

// restart rebuilds the run with a new layout. Successive restarts use
// successive seeds so the sequence of tables stays reproducible.
func (g *Game) restart() {
	g.restarts++
	g.paused = false
	g.ticker = g.ticker[:0]
	seed := g.runtime.Seed + int64(g.restarts)
	g.seed = seed
	g.driver.Reset(seed)
	g.snap = g.driver.Snapshot()
	logger.Info("table restarted", "seed", seed)
}

// Step advances the table by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.driver == nil {
		return core.StepResult{State: g.State()}
	}

	// Restart is allowed at any time
	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.snap.GameOver {
		g.paused = !g.paused
		if !g.paused {
			g.driver.Resume()
		}
		logger.Debug("pause", "paused", g.paused)
	}

	if g.paused || g.snap.GameOver {
		return core.StepResult{State: g.State()}
	}

	events := g.driver.Frame(sim.Input{
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Launch: in.Has(core.ActionLaunch),
	})
	g.snap = g.driver.Snapshot()

	var lines []string
	for _, e := range events {
		lines = append(lines, g.record(e))
	}

	return core.StepResult{State: g.State(), Events: lines}
}

// record logs an event and pushes it onto the HUD ticker.
func (g *Game) record(e sim.Event) string {
	line := e.String()

	switch e.Kind {
	case sim.EventDied, sim.EventCleared:
		logger.Info("run finished",
			"outcome", g.snap.Status(),
			"reason", e.Reason,
			"money", e.Money,
			"launches", g.snap.Launches,
		)
	case sim.EventFlipperHit, sim.EventGateOpened:
		// Too frequent for the ticker
		logger.Debug(e.Kind.String(), "money", e.Money)
		return line
	default:
		logger.Debug(e.Kind.String(), "money", e.Money, "delta", e.Delta)
	}

	g.ticker = append(g.ticker, line)
	if len(g.ticker) > tickerSize {
		g.ticker = g.ticker[len(g.ticker)-tickerSize:]
	}
	return line
}

// Snapshot returns the last simulated frame.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// Config returns the configuration the current table was built from.
func (g *Game) Config() config.PinballConfig {
	return g.cfg
}

// State returns the current game state. Score is the current money.
func (g *Game) State() core.GameState {
	if g.driver == nil {
		// Nothing to play, and nothing worth recording
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.snap.Money,
		GameOver: g.snap.GameOver,
		Paused:   g.paused,
		Won:      g.snap.Phase == sim.PhaseClear,
		Reason:   g.snap.Reason.String(),
		Launches: g.snap.Launches,
		Seed:     g.seed,
		Played:   g.cfg.Rules.TimeLimit - g.snap.TimeLeft,
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
