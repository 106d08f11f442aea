// Package chat is the bubbletea chat surface of the assistant: typed or
// spoken commands go in, the executor's result messages come back as
// assistant bubbles.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Responder answers one chat input with a user-facing message
type Responder interface {
	Respond(ctx context.Context, text string) string
}

// Recorder is the voice input collaborator. A nil Recorder disables voice.
type Recorder interface {
	Start(ctx context.Context) error
	StopAndTranscribe(ctx context.Context) (string, error)
	Recording() bool
	AutoStopped() <-chan struct{}
}

// Model is the bubbletea model for the chat window
type Model struct {
	width  int
	height int
	ready  bool

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	messages     []Message
	recording    bool
	transcribing bool

	responder Responder
	recorder  Recorder
	ctx       context.Context
}

// New creates the chat model. recorder may be nil when no microphone is
// available, the chat then works text-only.
func New(ctx context.Context, responder Responder, recorder Recorder) Model {
	ta := textarea.New()
	ta.Placeholder = "Escribe tu instrucción…"
	ta.Prompt = "┃ "
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = micStyle

	return Model{
		textarea:  ta,
		spinner:   sp,
		responder: responder,
		recorder:  recorder,
		ctx:       ctx,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.textarea.SetWidth(msg.Width - 4)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlG:
			return m.toggleRecording()
		case tea.KeyEnter:
			return m.submit(m.textarea.Value())
		}

	case responseMsg:
		m.append(newMessage("assistant", msg.content))
		return m, nil

	case recordStartedMsg:
		if msg.err != nil {
			m.recording = false
			m.append(newMessage("assistant", fmt.Sprintf("Error: %v", msg.err)))
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.waitAutoStop())

	case autoStopMsg:
		if m.recording {
			return m.stopRecording()
		}
		return m, nil

	case transcriptMsg:
		m.transcribing = false
		if msg.err != nil {
			m.append(newMessage("assistant", fmt.Sprintf("Error: %v", msg.err)))
			return m, nil
		}
		return m.submit(msg.text)

	case spinner.TickMsg:
		if m.recording || m.transcribing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// submit sends text through the command pipeline
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" {
		return m, nil
	}
	m.textarea.Reset()
	m.append(newMessage("user", text))

	ctx := m.ctx
	responder := m.responder
	return m, func() tea.Msg {
		return responseMsg{content: responder.Respond(ctx, text)}
	}
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.recorder == nil {
		m.append(newMessage("assistant", "El micrófono no está disponible."))
		return m, nil
	}
	if m.recording {
		return m.stopRecording()
	}
	if m.transcribing {
		return m, nil
	}

	m.recording = true
	ctx := m.ctx
	rec := m.recorder
	return m, func() tea.Msg {
		return recordStartedMsg{err: rec.Start(ctx)}
	}
}

func (m Model) stopRecording() (tea.Model, tea.Cmd) {
	m.recording = false
	m.transcribing = true
	ctx := m.ctx
	rec := m.recorder
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		text, err := rec.StopAndTranscribe(ctx)
		return transcriptMsg{text: text, err: err}
	})
}

// waitAutoStop delivers autoStopMsg once the recorder ends the take itself
func (m Model) waitAutoStop() tea.Cmd {
	ch := m.recorder.AutoStopped()
	return func() tea.Msg {
		<-ch
		return autoStopMsg{}
	}
}

func (m *Model) append(msg Message) {
	m.messages = append(m.messages, msg)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m *Model) renderMessages() string {
	if len(m.messages) == 0 {
		return statusStyle.Render("Escribe una instrucción o pulsa Ctrl+G para dictarla.")
	}

	width := m.viewport.Width
	var b strings.Builder
	for _, msg := range m.messages {
		bubble := answerBubbleStyle
		align := lipgloss.Left
		if msg.Role == "user" {
			bubble = userBubbleStyle
			align = lipgloss.Right
		}
		content := bubble.MaxWidth(width * 3 / 4).Render(msg.Content)
		stamp := timestampStyle.Render(msg.Timestamp.Format("15:04"))
		block := lipgloss.JoinVertical(align, content, stamp)
		b.WriteString(lipgloss.PlaceHorizontal(width, align, block))
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Iniciando…"
	}

	header := headerStyle.Render("asisto") + statusStyle.Render("  ·  categorías por voz y texto")

	var input string
	switch {
	case m.recording:
		input = recordingStyle.Render(m.spinner.View() + " Grabando… (Ctrl+G para terminar)")
	case m.transcribing:
		input = micStyle.Render(m.spinner.View() + " Transcribiendo…")
	default:
		input = m.textarea.View()
	}

	help := helpBarStyle.Render("Enter enviar · Ctrl+G dictar · Esc salir")

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", header, m.viewport.View(), input, help)
}
