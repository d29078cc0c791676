package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/quizwalk/internal/storage"
)

const (
	minWidthForAnswers = 100 // Below this the answers replace the table instead of sitting beside it
	answersPaneWidth   = 44
	historyLimit       = 100
)

var (
	historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	historyTabStyle   = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	historyPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	answerOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	answerBadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// HistoryKeyMap defines the key bindings of the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextBank key.Binding
	PrevBank key.Binding
	Answers  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevBank, k.NextBank, k.Answers, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevBank, k.NextBank},
		{k.Answers, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "prev run")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "next run")),
		NextBank: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next bank")),
		PrevBank: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev bank")),
		Answers:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "answers")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HistoryBank is one tab of the history screen.
type HistoryBank struct {
	ID    string
	Title string
}

// HistoryModel browses the run log one bank at a time. The answers of the
// highlighted run are shown beside the table on wide terminals, and on
// request on narrow ones.
type HistoryModel struct {
	store *storage.Store
	banks []HistoryBank
	bank  int

	runs    []storage.Run
	stats   *storage.BankStats
	answers []storage.Answer
	runID   int64 // Run whose answers are loaded

	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	showAnswers bool // Narrow layout only
	quitting    bool
	goingBack   bool
}

// NewHistoryModel creates the history screen. Banks that have logged runs
// but are not in known get a tab too.
func NewHistoryModel(store *storage.Store, known []HistoryBank, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		banks:  historyBanks(store, known),
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.selectBank(0)
	return m
}

// historyBanks merges the known banks with every bank found in the log.
func historyBanks(store *storage.Store, known []HistoryBank) []HistoryBank {
	banks := append([]HistoryBank(nil), known...)
	if store == nil {
		return banks
	}
	all, err := store.GetAllBankStats()
	if err != nil {
		return banks
	}

	seen := make(map[string]bool, len(banks))
	for _, b := range banks {
		seen[b.ID] = true
	}
	var extra []HistoryBank
	for id := range all {
		if !seen[id] {
			extra = append(extra, HistoryBank{ID: id, Title: id})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	return append(banks, extra...)
}

func (m HistoryModel) wide() bool {
	return m.width >= minWidthForAnswers
}

func (m *HistoryModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Correct", Width: 8},
			{Title: "Wrong", Width: 6},
			{Title: "Hints", Width: 6},
			{Title: "Done", Width: 5},
			{Title: "Time", Width: 6},
			{Title: "Date", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selectBank switches to bank i and reloads its runs.
func (m *HistoryModel) selectBank(i int) {
	m.runs, m.stats = nil, nil
	if len(m.banks) == 0 {
		m.table.SetRows(nil)
		m.loadAnswers()
		return
	}
	m.bank = (i%len(m.banks) + len(m.banks)) % len(m.banks)
	id := m.banks[m.bank].ID

	if m.store != nil {
		if runs, err := m.store.RecentRuns(id, historyLimit); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetBankStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for _, r := range m.runs {
		done := ""
		if r.Completed {
			done = "yes"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Correct),
			strconv.Itoa(r.Wrong),
			strconv.Itoa(r.HintsUsed),
			done,
			formatDuration(r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadAnswers()
}

// loadAnswers fetches the answers of the highlighted run if it changed.
func (m *HistoryModel) loadAnswers() {
	run := m.selectedRun()
	if run == nil {
		m.answers, m.runID = nil, 0
		return
	}
	if run.ID == m.runID {
		return
	}
	m.runID = run.ID
	m.answers = nil
	if m.store != nil {
		if answers, err := m.store.RunAnswers(run.ID); err == nil {
			m.answers = answers
		}
	}
}

func (m HistoryModel) selectedRun() *storage.Run {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	return &m.runs[i]
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			if m.showAnswers && !m.wide() {
				m.showAnswers = false
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextBank):
			m.showAnswers = false
			m.selectBank(m.bank + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevBank):
			m.showAnswers = false
			m.selectBank(m.bank - 1)
			return m, nil
		case key.Matches(msg, m.keys.Answers):
			m.showAnswers = !m.showAnswers && m.selectedRun() != nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cursor := m.table.Cursor()
		rows := m.table.Rows()
		m.table = m.newTable()
		m.table.SetRows(rows)
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.loadAnswers()
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(historyTitleStyle.Render("RUN HISTORY"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(historyDimStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	switch {
	case len(m.runs) == 0:
		b.WriteString(centerText(historyDimStyle.Italic(true).Render("No runs logged yet. Finish a run to see it here!"), m.width))
	case m.wide():
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			historyPaneStyle.Render(m.table.View()),
			" ",
			historyPaneStyle.Width(answersPaneWidth).Render(m.answersView(answersPaneWidth-2)),
		))
	case m.showAnswers:
		b.WriteString(historyPaneStyle.Render(m.answersView(max(m.width-6, 20))))
	default:
		b.WriteString(historyPaneStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(historyDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the bank tabs, or just the current one when they do not fit.
func (m HistoryModel) tabs() string {
	if len(m.banks) == 0 {
		return ""
	}
	parts := make([]string, len(m.banks))
	for i, bk := range m.banks {
		name := truncate(bk.Title, 14)
		if i == m.bank {
			parts[i] = historyTabStyle.Render(name)
		} else {
			parts[i] = historyDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("← %s →", historyTabStyle.Render(m.banks[m.bank].Title))
	}
	return line
}

// summary is the aggregate line under the tabs.
func (m HistoryModel) summary() string {
	if m.stats == nil {
		return ""
	}
	return fmt.Sprintf("%d runs, %d completed, best %d correct, avg %.1f",
		m.stats.Runs, m.stats.Completed, m.stats.BestCorrect, m.stats.AvgCorrect)
}

// answersView lists the answers of the highlighted run.
func (m HistoryModel) answersView(width int) string {
	run := m.selectedRun()
	if run == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %d  %.0f%% correct\n", run.ID, run.Accuracy()*100)
	if len(m.answers) == 0 {
		b.WriteString(historyDimStyle.Render("no answers"))
		return b.String()
	}
	for _, a := range m.answers {
		mark := answerOKStyle.Render("✓")
		if !a.Correct {
			mark = answerBadStyle.Render("✗")
		}
		line := fmt.Sprintf("%s %s %d. %s", mark, a.QuestionerID, a.Choice, a.Question)
		b.WriteString("\n")
		b.WriteString(truncate(line, width))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// truncate shortens s to at most n cells.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "…")
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, known []HistoryBank, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, known, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
