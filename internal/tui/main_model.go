package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeterm/internal/app"
	"codeterm/internal/stream"
	"codeterm/internal/transcript"
)

type chunkMsg stream.Chunk

type sendDoneMsg struct{}

// MainModel is the top-level bubbletea model: one attached session, its
// materialized transcript, an input box, and the status bar.
type MainModel struct {
	theme    Theme
	renderer *BlockRenderer

	session *app.BackgroundSession
	engine  *app.MockEngine

	reducer *transcript.Reducer
	state   transcript.State

	chunks <-chan stream.Chunk
	cancel func()

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	// expanded shows FullContent for every block that has one.
	expanded bool
	// highlightID marks blocks correlated with a selected event.
	highlightID string

	busy bool
}

func NewMainModel(cfg app.Config, session *app.BackgroundSession, engine *app.MockEngine, logger *app.Logger) MainModel {
	theme := NewTheme(cfg.Theme)

	input := textarea.New()
	input.Placeholder = "Message the agent (enter to send, esc to interrupt)"
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.Spinner

	chunks, cancel := session.Subscribe()

	m := MainModel{
		theme:    theme,
		renderer: NewBlockRenderer(theme),
		session:  session,
		engine:   engine,
		reducer: transcript.NewReducer(transcript.Options{
			ProgressWindow: cfg.ProgressWindow,
			DiffCollapse:   cfg.DiffCollapse,
			OutputCollapse: cfg.OutputCollapse,
			FileLine:       app.FileLine,
			FinalizeText:   transcript.ReflowTables,
			Diagnostics:    logger,
		}),
		state:   transcript.NewState(),
		chunks:  chunks,
		cancel:  cancel,
		input:   input,
		spinner: sp,
	}
	// Catch up on anything buffered before we subscribed.
	m.state = m.reducer.ReduceAll(m.state, session.BufferedOutput(0))
	session.Attach()
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.waitForChunk())
}

func (m MainModel) waitForChunk() tea.Cmd {
	return func() tea.Msg {
		c, ok := <-m.chunks
		if !ok {
			return nil
		}
		return chunkMsg(c)
	}
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - m.input.Height() - 4
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.input.SetWidth(m.width - 4)
		m.refreshViewport()
		return m, nil

	case chunkMsg:
		m.state = m.reducer.Reduce(m.state, stream.Chunk(msg))
		if stream.Chunk(msg).EndsTurn() {
			m.busy = false
		}
		m.refreshViewport()
		return m, m.waitForChunk()

	case sendDoneMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			m.session.Detach()
			return m, tea.Quit
		case "esc":
			if m.busy {
				m.session.Interrupt()
			}
			return m, nil
		case "ctrl+o":
			m.expanded = !m.expanded
			m.refreshViewport()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.input.Reset()
			m.busy = true
			engine := m.engine
			return m, func() tea.Msg {
				engine.Send(text)
				return sendDoneMsg{}
			}
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *MainModel) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *MainModel) renderTranscript() string {
	if len(m.state.Blocks) == 0 {
		return m.theme.StatusLine.Render("No conversation yet.")
	}
	parts := make([]string, 0, len(m.state.Blocks))
	for _, b := range m.state.Blocks {
		parts = append(parts, m.renderer.Render(b, m.viewport.Width, m.expanded, m.highlightID))
	}
	return strings.Join(parts, "\n\n")
}

func (m MainModel) View() string {
	if !m.ready {
		return "starting..."
	}

	info := m.session.Info()
	bar := RenderStatusBar(m.theme, StatusBarData{
		SessionName:   info.Name,
		SessionStatus: info.Status.String(),
		Tokens:        m.state.Tokens,
		ContextFill:   m.state.ContextFill,
		CompactionPct: m.state.CompactionPct,
		PendingTools:  m.state.PendingToolCalls(),
	}, m.width)
	if m.busy {
		bar = m.spinner.View() + " " + bar
	}

	inputBox := m.theme.InputBoxF
	if m.busy {
		inputBox = m.theme.InputBox
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		bar,
		inputBox.Render(m.input.View()),
	)
}
