// Package tui renders the one-time code prompt in a terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
)

const refreshInterval = time.Second

type keyMap struct {
	Submit    key.Binding
	Resend    key.Binding
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Resend, k.Left, k.Right, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Resend}, {k.Left, k.Right, k.Backspace}, {k.Quit}}
}

func defaultKeys() keyMap {
	return keyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "verificar")),
		Resend:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reenviar código")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "anterior")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seguinte")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "apagar")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "sair")),
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	cellStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusStyle   = cellStyle.BorderForeground(lipgloss.Color("212"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type (
	submittedMsg struct{ ok bool }
	resentMsg    struct{ ok bool }
	refreshMsg   time.Time
)

// Model is a bubbletea model driving an otpflow.Flow.
type Model struct {
	ctx     context.Context
	flow    *otpflow.Flow
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	quitting bool
}

// New builds a Model around flow. Remote calls use ctx.
func New(ctx context.Context, flow *otpflow.Flow) *Model {
	return &Model{
		ctx:     ctx,
		flow:    flow,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Verified reports whether the code was accepted.
func (m *Model) Verified() bool {
	return m.flow.State().Verified
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, refresh())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case submittedMsg:
		if msg.ok {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case resentMsg:
		return m, nil
	case refreshMsg:
		return m, refresh()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		m.flow.HandlePaste(string(msg.Runes))
		return m, nil
	}

	st := m.flow.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Resend):
		return m, m.resend()
	case key.Matches(msg, m.keys.Left):
		m.flow.HandleKey(st.Focus, otpflow.KeyArrowLeft)
	case key.Matches(msg, m.keys.Right):
		m.flow.HandleKey(st.Focus, otpflow.KeyArrowRight)
	case key.Matches(msg, m.keys.Backspace):
		if st.Digits[st.Focus] != "" {
			m.flow.SetDigit(st.Focus, "")
		} else {
			m.flow.HandleKey(st.Focus, otpflow.KeyBackspace)
		}
	case msg.Type == tea.KeyRunes:
		if len(msg.Runes) > 1 {
			m.flow.HandlePaste(string(msg.Runes))
		} else {
			m.flow.SetDigit(st.Focus, string(msg.Runes))
		}
	}

	return m, nil
}

func (m *Model) submit() tea.Cmd {
	st := m.flow.State()
	if !st.Complete || st.Sending {
		return nil
	}

	return func() tea.Msg {
		return submittedMsg{ok: m.flow.Submit(m.ctx)}
	}
}

func (m *Model) resend() tea.Cmd {
	if !m.flow.State().CanResend {
		return nil
	}

	return func() tea.Msg {
		return resentMsg{ok: m.flow.Resend(m.ctx)}
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m *Model) View() string {
	st := m.flow.State()

	if m.quitting {
		if st.Verified {
			return successStyle.Render("Código verificado.") + "\n"
		}
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Verificação de email"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Enviámos um código para %s\n\n", otpflow.MaskEmail(m.flow.Identifier()))

	cells := make([]string, 0, st.Length)
	for i, d := range st.Digits {
		if d == "" {
			d = " "
		}
		style := cellStyle
		if i == st.Focus {
			style = focusStyle
		}
		cells = append(cells, style.Render(d))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n\n")

	switch {
	case st.Sending:
		b.WriteString(m.spinner.View() + " A verificar...\n")
	case st.Resending:
		b.WriteString(m.spinner.View() + " A reenviar...\n")
	case st.Cooldown > 0:
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Pode reenviar em %ds", st.Cooldown)) + "\n")
	case st.Resent:
		b.WriteString(mutedStyle.Render("Código reenviado.") + "\n")
	}

	if st.Error != "" {
		b.WriteString(errorStyle.Render(st.Error) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}
