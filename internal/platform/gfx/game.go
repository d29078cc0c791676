// Package gfx runs the quiz walk in a desktop window (or a browser through
// WebAssembly) with Ebiten. The canvas is the window's logical size.
package gfx

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/storage"
	"github.com/vovakirdan/quizwalk/internal/world"
)

// Options configures the window frontend.
type Options struct {
	Title    string
	Width    int
	Height   int
	FontPath string // Optional CJK-capable font; the debug font is used otherwise
	FontSize float64
}

// DefaultOptions returns the window settings used when flags are not given.
func DefaultOptions() Options {
	return Options{
		Title:    "Quiz Walk",
		Width:    960,
		Height:   600,
		FontSize: 18,
	}
}

var (
	heldKeys = map[core.Action][]ebiten.Key{
		core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
		core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
		core.ActionUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
		core.ActionDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	}
	digitKeys = []ebiten.Key{
		ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
		ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
		ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	numpadKeys = []ebiten.Key{
		ebiten.KeyNumpad1, ebiten.KeyNumpad2, ebiten.KeyNumpad3,
		ebiten.KeyNumpad4, ebiten.KeyNumpad5, ebiten.KeyNumpad6,
		ebiten.KeyNumpad7, ebiten.KeyNumpad8, ebiten.KeyNumpad9,
	}
)

// Game adapts a world to ebiten.Game.
type Game struct {
	world  *world.World
	store  *storage.Store
	logger *log.Logger
	text   *Typesetter
	config core.RuntimeConfig

	input    core.InputFrame
	state    core.GameState
	width    int
	height   int
	runSaved bool
}

// NewGame creates a window frontend for w. store may be nil.
func NewGame(w *world.World, store *storage.Store, logger *log.Logger, ts *Typesetter, cfg core.RuntimeConfig) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if ts == nil {
		ts = &Typesetter{}
	}
	return &Game{
		world:  w,
		store:  store,
		logger: logger,
		text:   ts,
		config: cfg,
		input:  core.NewInputFrame(),
	}
}

// Update reads the devices and steps the world once.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.saveRun()
		return ebiten.Termination
	}
	if g.state.Completed && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
		return nil
	}

	g.readInput()
	result := g.world.Step(g.input)
	g.state = result.State
	g.input.Clear()

	if g.state.Completed && !g.runSaved {
		g.saveRun()
	}

	g.updateCursorShape()
	return nil
}

// readInput folds this tick's device state into the input frame.
func (g *Game) readInput() {
	for action, keys := range heldKeys {
		down := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		g.input.Hold(action, down)
	}

	for i := range digitKeys {
		if inpututil.IsKeyJustPressed(digitKeys[i]) || inpututil.IsKeyJustPressed(numpadKeys[i]) {
			g.input.SetDigit(i + 1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.input.Set(core.ActionHint)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.input.Set(core.ActionDismiss)
	}

	x, y := ebiten.CursorPosition()
	p := core.Point{X: float64(x), Y: float64(y)}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.input.Click(p)
	} else {
		g.input.MovePointer(p)
	}
}

// updateCursorShape shows a hand over the dialog buttons.
func (g *Game) updateCursorShape() {
	shape := ebiten.CursorShapeDefault
	if d := g.world.Snapshot().Dialog; d != nil && (d.HoverHint || d.HoverClose) {
		shape = ebiten.CursorShapePointer
	}
	ebiten.SetCursorShape(shape)
}

// Layout keeps the canvas at the window's logical size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.config.CanvasW = float64(outsideWidth)
		g.config.CanvasH = float64(outsideHeight)
		g.world.Resize(g.config.CanvasW, g.config.CanvasH)
		g.logger.Debug("resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// restart logs the finished run and starts a fresh one.
func (g *Game) restart() {
	g.saveRun()
	g.config.Seed = 0
	g.world.Reset(g.config)
	g.state = g.world.State()
	g.runSaved = false
	g.input = core.NewInputFrame()
	g.logger.Info("new run", "bank", g.world.Bank().ID)
}

// saveRun logs the current run once. Runs without any answer are skipped.
func (g *Game) saveRun() {
	if g.runSaved {
		return
	}
	g.runSaved = true

	stats := g.world.Stats()
	if g.store == nil || (len(stats.Answers) == 0 && stats.Dismissed == 0) {
		return
	}
	if _, err := g.store.SaveStats(stats); err != nil {
		g.logger.Warn("cannot log run", "err", err)
		return
	}
	g.logger.Info("run logged", "bank", stats.BankID, "correct", stats.Correct, "wrong", stats.Wrong)
}

// Run opens the window and blocks until it is closed.
func Run(w *world.World, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, opts Options) (world.RunStats, error) {
	ts, err := LoadTypesetter(opts.FontPath, opts.FontSize)
	if err != nil {
		return world.RunStats{}, err
	}

	g := NewGame(w, store, logger, ts, cfg)

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return w.Stats(), err
	}
	// Closing the window skips Update, so log here as well.
	g.saveRun()
	return w.Stats(), nil
}
