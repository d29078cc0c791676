package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quizwalk/internal/core"
	"github.com/vovakirdan/quizwalk/internal/storage"
	"github.com/vovakirdan/quizwalk/internal/world"
)

// Rows below the canvas: the HUD row drawn on the screen and the help bar.
const (
	hudRows  = 1
	helpRows = 1
)

// Model is the Bubble Tea model for a quiz walk run.
type Model struct {
	world    *world.World
	screen   *core.Screen
	renderer SceneRenderer
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig

	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	holds      *HoldTracker

	gameState core.GameState
	quitting  bool
	runSaved  bool // Whether the current run has been logged
}

// NewModel creates a new Bubble Tea model driving w.
// store may be nil, in which case runs are not logged.
func NewModel(w *world.World, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	term := w.Config().Terminal

	m := Model{
		world:      w,
		screen:     core.NewScreen(80, 24),
		renderer:   NewSceneRenderer(term.CellW, term.CellH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		holds:      NewHoldTracker(term.HoldTicks),
	}
	m.resize(80, 24)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Shot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Restart) && m.gameState.Completed:
		m.restart()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame, m.holds) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse maps pointer events from cells to canvas pixels.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.renderer.ToCanvas(msg.X, msg.Y)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.Click(p)
		return m, nil
	}
	m.inputFrame.MovePointer(p)
	return m, nil
}

// resize fits the screen and the world's canvas to the terminal.
func (m *Model) resize(width, height int) {
	screenH := max(height-helpRows, hudRows+1)
	m.screen.Resize(width, screenH)

	canvasW, canvasH := m.renderer.CanvasSize(width, screenH-hudRows)
	m.config.CanvasW = canvasW
	m.config.CanvasH = canvasH
	m.world.Resize(canvasW, canvasH)

	m.logger.Debug("resized", "cols", width, "rows", height, "canvas_w", canvasW, "canvas_h", canvasH)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.holds.Apply(&m.inputFrame)

	result := m.world.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.Completed && !m.runSaved {
		m.saveRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// restart logs the finished run and starts a fresh one.
func (m *Model) restart() {
	m.saveRun()
	m.config.Seed = time.Now().UnixNano()
	m.world.Reset(m.config)
	m.gameState = m.world.State()
	m.runSaved = false
	m.holds.Release()
	m.inputFrame.Clear()
	m.logger.Info("new run", "bank", m.world.Bank().ID)
}

// saveRun logs the current run once. Runs without any answer are skipped.
func (m *Model) saveRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	stats := m.world.Stats()
	if len(stats.Answers) == 0 && stats.Dismissed == 0 {
		return
	}
	if m.store == nil {
		return
	}

	id, err := m.store.SaveStats(stats)
	if err != nil {
		m.logger.Warn("cannot log run", "err", err)
		return
	}
	m.logger.Info("run logged",
		"id", id,
		"bank", stats.BankID,
		"correct", stats.Correct,
		"wrong", stats.Wrong,
		"completed", stats.Completed,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderer.Draw(m.screen, m.world.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".quizwalk", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.world.Bank().ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Draw(m.screen, m.world.Snapshot())

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Stats returns the statistics of the current run.
func (m Model) Stats() world.RunStats {
	return m.world.Stats()
}

// Run starts the Bubble Tea program for w and blocks until the player quits.
func Run(w *world.World, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (world.RunStats, error) {
	model := NewModel(w, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Hover and clicks on the dialog buttons
	)

	final, err := p.Run()
	if err != nil {
		return world.RunStats{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Stats(), nil
	}
	return w.Stats(), nil
}
