// Package terminal is the Bubble Tea presentation adapter: it renders game
// snapshots and turns key presses into answer selections and restarts.
package terminal

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// Options configures the terminal model.
type Options struct {
	AdvanceDelay time.Duration
	NoColor      bool
}

// Model renders one player's game.
type Model struct {
	ctx      context.Context
	game     *app.Game
	delay    time.Duration
	snap     domain.Snapshot
	cursor   int
	spinner  spinner.Model
	progress progress.Model
	styles   styles
}

// NewModel constructs a model; questions are loaded by Init.
func NewModel(ctx context.Context, game *app.Game, opts Options) Model {
	delay := opts.AdvanceDelay
	if delay <= 0 {
		delay = app.DefaultAdvanceDelay
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage())
	if opts.NoColor {
		bar = progress.New(progress.WithSolidFill("7"), progress.WithWidth(40), progress.WithoutPercentage())
	}
	return Model{
		ctx:      ctx,
		game:     game,
		delay:    delay,
		snap:     game.Snapshot(),
		spinner:  sp,
		progress: bar,
		styles:   newStyles(opts.NoColor),
	}
}

// loadedMsg carries a finished load back to the UI loop.
type loadedMsg app.LoadResult

// advanceMsg fires once the feedback delay for a session has elapsed.
type advanceMsg struct {
	sessionID uuid.UUID
}

// Init starts the spinner and the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.snapSessionID()))
}

// Update consumes key presses, load results and advance timers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		width := typed.Width - 4
		if width > 60 {
			width = 60
		}
		if width > 10 {
			m.progress.Width = width
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case loadedMsg:
		m.snap, _ = m.game.Apply(app.LoadResult(typed))
		m.cursor = 0
		return m, nil
	case advanceMsg:
		m.snap, _ = m.game.Advance(typed.sessionID)
		m.cursor = 0
		return m, nil
	case spinner.TickMsg:
		if m.snap.Phase != domain.PhaseLoading || m.snap.Error != "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}

	switch m.snap.Phase {
	case domain.PhaseLoading:
		if m.snap.Error != "" && key.String() == "r" {
			return m.restart()
		}
	case domain.PhaseFinished:
		switch key.String() {
		case "r", "enter":
			return m.restart()
		}
	case domain.PhaseInProgress:
		if m.snap.Answered {
			return m, nil
		}
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "tab":
			if m.cursor < len(m.snap.Answers)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.selectAnswer(m.cursor)
		default:
			if idx, ok := digitIndex(key.String()); ok && idx < len(m.snap.Answers) {
				return m.selectAnswer(idx)
			}
		}
	}
	return m, nil
}

func (m Model) selectAnswer(idx int) (tea.Model, tea.Cmd) {
	m.cursor = idx
	if _, ok := m.game.SelectAnswer(m.snap.Answers[idx]); !ok {
		return m, nil
	}
	m.snap = m.game.Snapshot()
	id := m.snapSessionID()
	return m, tea.Tick(m.delay, func(time.Time) tea.Msg {
		return advanceMsg{sessionID: id}
	})
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	id := m.game.Restart()
	m.snap = m.game.Snapshot()
	m.cursor = 0
	return m, tea.Batch(m.spinner.Tick, m.load(id))
}

// load fetches questions off the UI goroutine for session id.
func (m Model) load(id uuid.UUID) tea.Cmd {
	game, ctx := m.game, m.ctx
	return func() tea.Msg {
		return loadedMsg(game.Fetch(ctx, id))
	}
}

func (m Model) snapSessionID() uuid.UUID {
	id, err := uuid.Parse(m.snap.SessionID)
	if err != nil {
		return m.game.Current().ID()
	}
	return id
}

// View renders the current screen.
func (m Model) View() string {
	switch m.snap.Phase {
	case domain.PhaseInProgress:
		return renderQuiz(m.snap, m.cursor, m.progress, m.styles)
	case domain.PhaseFinished:
		return renderResult(m.snap, m.styles)
	default:
		return renderLoading(m.snap, m.spinner.View(), m.styles)
	}
}

func digitIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

// Run starts the full-screen program and blocks until the player quits.
func Run(ctx context.Context, game *app.Game, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, game, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
