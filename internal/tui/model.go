package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/gptmecli/internal/api"
	apierrors "github.com/diogo/gptmecli/internal/errors"
	"github.com/diogo/gptmecli/internal/models"
	"github.com/diogo/gptmecli/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// historyLoadedMsg carries the conversation log fetched at startup
	historyLoadedMsg struct {
		log []models.Message
		err error
	}
	// streamStartedMsg carries a freshly opened generation stream
	streamStartedMsg struct {
		stream *api.ChunkStream
	}
	// chunkMsg is one decoded unit of streaming output
	chunkMsg struct {
		chunk models.ResponseChunk
	}
	// streamDoneMsg signals the stream is exhausted
	streamDoneMsg struct {
		err error
	}
	errMsg struct {
		err error
	}
)

// Model represents the chat TUI state
type Model struct {
	client         api.ClientInterface
	conversationID string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages       []chatMessage
	stream         *api.ChunkStream
	loading        bool
	ready          bool
	err            error
	animationFrame int

	// Dimensions
	width  int
	height int
}

// chatMessage represents a message in the chat
type chatMessage struct {
	role    string
	content string
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client api.ClientInterface, conversationID string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		client:         client,
		conversationID: conversationID,
		textarea:       ta,
		spinner:        s,
		messages:       []chatMessage{},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.loadHistory(),
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Calculate component heights
		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 1 // Status bar
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		// Initialize viewport on first size message
		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.closeStream()
			return m, tea.Quit

		case "esc":
			if m.loading {
				// Abandoning the stream mid-generation closes the connection
				m.closeStream()
				m.loading = false
			} else {
				return m, tea.Quit
			}

		case "enter":
			if !m.loading && strings.TrimSpace(m.textarea.Value()) != "" {
				input := strings.TrimSpace(m.textarea.Value())
				if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
					return m, tea.Quit
				}

				// Add user message
				m.messages = append(m.messages, chatMessage{
					role:    models.RoleUser,
					content: input,
				})
				m.updateViewport()
				m.viewport.GotoBottom()

				// Start loading
				m.loading = true
				m.err = nil
				m.animationFrame = 0
				m.textarea.Reset()

				return m, tea.Batch(
					m.sendAndGenerate(input),
					m.spinner.Tick,
					animationTick(),
				)
			}
		}

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			for _, entry := range msg.log {
				m.messages = append(m.messages, chatMessage{
					role:    entry.Role,
					content: entry.Content,
				})
			}
			m.updateViewport()
			m.viewport.GotoBottom()
		}

	case streamStartedMsg:
		m.stream = msg.stream
		// Seed an empty assistant message that chunks append to
		m.messages = append(m.messages, chatMessage{role: models.RoleAssistant})
		return m, readChunk(msg.stream)

	case chunkMsg:
		if !msg.chunk.Stored && len(m.messages) > 0 {
			last := &m.messages[len(m.messages)-1]
			last.content += msg.chunk.Content
			m.updateViewport()
			m.viewport.GotoBottom()
		}
		if m.stream != nil {
			return m, readChunk(m.stream)
		}

	case streamDoneMsg:
		m.loading = false
		m.stream = nil
		if msg.err != nil {
			m.err = msg.err
		}
		// Drop the placeholder if nothing arrived
		if n := len(m.messages); n > 0 && m.messages[n-1].role == models.RoleAssistant && m.messages[n-1].content == "" {
			m.messages = m.messages[:n-1]
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case errMsg:
		m.loading = false
		m.err = msg.err

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Update child components - only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// closeStream releases an in-flight generation stream, if any
func (m *Model) closeStream() {
	if m.stream != nil {
		_ = m.stream.Close()
		m.stream = nil
	}
}

// loadHistory fetches the existing conversation log
func (m Model) loadHistory() tea.Cmd {
	client := m.client
	id := m.conversationID
	return func() tea.Msg {
		conv, err := client.GetConversation(id)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{log: conv.Log}
	}
}

// sendAndGenerate appends the user message and opens a generation stream
func (m Model) sendAndGenerate(prompt string) tea.Cmd {
	client := m.client
	id := m.conversationID
	return func() tea.Msg {
		if err := client.AddMessage(id, models.RoleUser, prompt, ""); err != nil {
			return errMsg{err: err}
		}
		stream, err := client.GenerateStream(id, nil)
		if err != nil {
			return errMsg{err: err}
		}
		return streamStartedMsg{stream: stream}
	}
}

// readChunk pulls the next chunk from the stream
func readChunk(stream *api.ChunkStream) tea.Cmd {
	return func() tea.Msg {
		if stream.Next() {
			return chunkMsg{chunk: stream.Chunk()}
		}
		return streamDoneMsg{err: stream.Err()}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ gptme"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.conversationID),
	}
	if model := m.client.GetModel(); model != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(model),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Error display
	if m.err != nil {
		sections = append(sections, m.formatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Connected to " + m.client.BaseURL())
	subtitle := welcomeStyle.Width(width).Render("Start a conversation by typing a message below")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	// Center vertically
	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated generation indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	frame := m.animationFrame
	spinIdx := frame % len(chars)
	spin := loadingStyle.Render(chars[spinIdx])

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dots += loadingStyle.Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += hintStyle.Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Generating ")
	return fmt.Sprintf("%s%s%s", spin, text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		switch msg.role {
		case models.RoleUser:
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)

		case models.RoleAssistant:
			label := assistantLabelStyle.Render("✦ Assistant")

			rendered, err := render.MarkdownWithWidth(msg.content, bubbleWidth-4)
			if err != nil {
				rendered = msg.content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)

		default:
			// System prompts and tool output render dimmed
			label := systemLabelStyle.Render(msg.role)
			bubble := systemBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// formatError formats an error with structured error details for display
func (m Model) formatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("⚠ Error: %v", err)))

	detailStyle := lipgloss.NewStyle().Foreground(colorTextDim).PaddingLeft(2)
	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString("\n")
		sb.WriteString(detailStyle.Render(fmt.Sprintf("HTTP Status: %d", status)))
	}

	noteStyle := lipgloss.NewStyle().Foreground(colorPrimary).PaddingLeft(2)
	switch {
	case apierrors.IsAuthError(err):
		sb.WriteString("\n")
		sb.WriteString(noteStyle.Render("💡 Set GPTME_SERVER_TOKEN and restart"))
	case apierrors.IsNetworkError(err):
		sb.WriteString("\n")
		sb.WriteString(noteStyle.Render("💡 Check that the server is running"))
	case apierrors.IsTimeoutError(err):
		sb.WriteString("\n")
		sb.WriteString(noteStyle.Render("💡 Generation timed out. Try again"))
	}

	return sb.String()
}

// RunChat starts the chat TUI
func RunChat(client api.ClientInterface, conversationID string) error {
	m := NewChatModel(client, conversationID)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
