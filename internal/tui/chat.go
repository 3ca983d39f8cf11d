// Package tui renders the interactive chat screen. It follows The Elm
// Architecture: the Model holds state, Update reacts to messages, View
// renders a string.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"parley/internal/engine"
	"parley/internal/script"
	"parley/internal/transcript"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// Model is the chat screen state.
type Model struct {
	eng     *engine.Engine
	scr     *script.Script
	store   *transcript.Store // nil when logging is disabled
	session *transcript.Session

	viewport viewport.Model
	input    textinput.Model
	lines    []string
	ready    bool
	quitting bool
}

// New builds the chat model. The transcript store may be nil.
func New(eng *engine.Engine, scr *script.Script, store *transcript.Store, session *transcript.Session) Model {
	input := textinput.New()
	input.Placeholder = "Say something..."
	input.Prompt = promptStyle.Render("> ")
	input.Focus()
	input.CharLimit = 500

	m := Model{
		eng:     eng,
		scr:     scr,
		store:   store,
		session: session,
		input:   input,
	}
	m.addLine(botStyle.Render("parley: ") + eng.InitialPrompt())
	return m
}

func (m *Model) addLine(line string) {
	m.lines = append(m.lines, line)
}

func (m *Model) record(role, text string) {
	if m.store == nil || m.session == nil {
		return
	}
	// Best effort; the conversation continues even if the log write fails.
	m.store.Append(context.Background(), m.session.ID, role, text, "")
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title line above, input and help lines below
		inputHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	utterance := strings.TrimSpace(m.input.Value())
	if utterance == "" {
		return m, nil
	}
	m.input.Reset()

	m.addLine(userStyle.Render("you: ") + utterance)
	m.record(transcript.RoleUser, utterance)

	if m.scr.IsQuitWord(strings.ToLower(utterance)) {
		farewell := "Goodbye. It was nice talking to you."
		m.addLine(botStyle.Render("parley: ") + farewell)
		m.record(transcript.RoleBot, farewell)
		m.refresh()
		m.quitting = true
		return m, tea.Quit
	}

	reply := m.eng.Respond(utterance)
	m.addLine(botStyle.Render("parley: ") + reply)
	m.record(transcript.RoleBot, reply)
	m.refresh()
	return m, nil
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n\n"))
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("parley"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter to send, esc to leave"))
	return b.String()
}

// Run starts a chat session and blocks until the user leaves. A session
// record is opened in the transcript store when one is provided.
func Run(eng *engine.Engine, scr *script.Script, store *transcript.Store, scriptName string) error {
	var session *transcript.Session
	if store != nil {
		if s, err := store.StartSession(context.Background(), scriptName); err == nil {
			session = s
			defer store.EndSession(context.Background(), s.ID)
		}
	}

	p := tea.NewProgram(New(eng, scr, store, session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
