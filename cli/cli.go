// cli/cli.go
// Package cli provides the interactive debate interface for the kurukshetra application.
package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/corpus"
	"github.com/RNAdvani/kurukshetra/internal/logging"
	"github.com/RNAdvani/kurukshetra/internal/persona"
	"github.com/RNAdvani/kurukshetra/internal/providerfactory"
	"github.com/RNAdvani/kurukshetra/internal/providers"
	"github.com/RNAdvani/kurukshetra/internal/retrieval"
)

// Config represents the shared application configuration for the CLI.
type Config = appconfig.Config

// viewState represents the current view or screen of the application.
type viewState int

const (
	// viewPersonaSelector is the state where the user selects a persona.
	viewPersonaSelector viewState = iota
	// viewLoadingDebater is the state where the debate session is being prepared.
	viewLoadingDebater
	// viewDebate is the state where the user is exchanging arguments.
	viewDebate
)

// exchange is a single argument/response pair shown in the transcript.
type exchange struct {
	Role    string
	Content string
}

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx              context.Context
	config           *Config
	provider         providers.Provider
	registry         *persona.Registry
	retriever        *retrieval.Retriever
	debater          *persona.Debater
	state            viewState
	isLoading        bool
	err              error
	personaList      list.Model
	textArea         textarea.Model
	viewport         viewport.Model
	spinner          spinner.Model
	transcript       []exchange
	selectedPersona  string
	width, height    int
	requestStartTime time.Time
}

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *Config, provider providers.Provider, registry *persona.Registry) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Make your argument..."
	ta.Focus()
	ta.Prompt = "Your Argument: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	names := registry.Names()
	personaItems := make([]list.Item, len(names))
	for i, name := range names {
		p, err := registry.Get(name)
		desc := "Select this persona"
		if err == nil && len(p.Profile.RhetoricalStyle) > 0 {
			desc = strings.Join(p.Profile.RhetoricalStyle, ", ")
		}
		personaItems[i] = item{title: name, desc: desc}
	}
	personaList := list.New(personaItems, list.NewDefaultDelegate(), 0, 0)
	personaList.Title = "Select a Persona"

	vp := viewport.New(100, 5)

	return &model{
		ctx:         ctx,
		config:      cfg,
		provider:    provider,
		registry:    registry,
		state:       viewPersonaSelector,
		spinner:     s,
		textArea:    ta,
		personaList: personaList,
		viewport:    vp,
	}
}

// item represents a selectable item in a Bubble Tea list.
type item struct {
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// debaterReadyMsg is a message sent when the debate session has been prepared.
type debaterReadyMsg struct {
	retriever *retrieval.Retriever
	debater   *persona.Debater
}

// debaterReadyErr is a message sent when preparing the debate session fails.
type debaterReadyErr struct{ error }

// replyMsg is a message sent when the persona's response has been generated.
type replyMsg string

// replyErr is a message sent when response generation fails.
type replyErr struct{ error }

// tickMsg is a message sent at regular intervals, used for animations and timed updates.
type tickMsg time.Time

// prepareDebaterCmd creates a Bubble Tea command that loads the corpus index,
// builds the retriever, and constructs a debater for the selected persona.
// The retriever is reused across sessions once built.
func prepareDebaterCmd(ctx context.Context, cfg *Config, provider providers.Provider, registry *persona.Registry, retriever *retrieval.Retriever, name string) tea.Cmd {
	return func() tea.Msg {
		if retriever == nil {
			c, err := corpus.Load(ctx, cfg, provider)
			if err != nil {
				return debaterReadyErr{error: err}
			}
			retriever, err = retrieval.New(cfg, provider, c)
			if err != nil {
				return debaterReadyErr{error: err}
			}
		}

		debater, err := persona.NewDebater(cfg, registry, name, provider, retriever, time.Now().UnixNano())
		if err != nil {
			return debaterReadyErr{error: err}
		}
		return debaterReadyMsg{retriever: retriever, debater: debater}
	}
}

// respondCmd creates a Bubble Tea command that generates the persona's
// response to the user's argument.
func respondCmd(ctx context.Context, debater *persona.Debater, argument string) tea.Cmd {
	return func() tea.Msg {
		log.Printf("[kurukshetra -> %s] Outgoing argument: %q", debater.Persona().Name, argument)
		reply, err := debater.Respond(ctx, argument)
		if err != nil {
			return replyErr{error: err}
		}
		return replyMsg(reply)
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model and returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.state == viewDebate {
				m.state = viewPersonaSelector
				m.debater = nil
				m.transcript = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.personaList.SetSize(msg.Width-2, msg.Height-4)
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 3
		footerHeight := 4
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case debaterReadyMsg:
		m.retriever = msg.retriever
		m.debater = msg.debater
		m.isLoading = false
		m.state = viewDebate
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case debaterReadyErr:
		m.isLoading = false
		m.err = msg.error
		return m, nil

	case replyMsg:
		m.transcript = append(m.transcript, exchange{Role: "persona", Content: string(msg)})
		m.isLoading = false
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case replyErr:
		m.isLoading = false
		m.err = msg.error
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewPersonaSelector:
		m.personaList, cmd = m.personaList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selectedItem, ok := m.personaList.SelectedItem().(item); ok {
				m.selectedPersona = selectedItem.Title()
				m.state = viewLoadingDebater
				m.isLoading = true
				m.requestStartTime = time.Now()
				m.err = nil
				cmds = append(cmds, m.spinner.Tick, prepareDebaterCmd(m.ctx, m.config, m.provider, m.registry, m.retriever, m.selectedPersona), tickCmd())
			}
		}

	case viewDebate:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			argument := strings.TrimSpace(m.textArea.Value())
			if argument != "" && !m.isLoading {
				m.requestStartTime = time.Now()
				m.transcript = append(m.transcript, exchange{Role: "user", Content: argument})
				m.textArea.Reset()
				m.isLoading = true
				m.err = nil

				cmds = append(cmds, m.spinner.Tick, respondCmd(m.ctx, m.debater, argument), tickCmd())
			}
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case viewPersonaSelector:
		listView := m.personaList.View()
		if title := m.personaList.Title; title != "" && !strings.Contains(listView, title) {
			listView = fmt.Sprintf("%s\n\n%s", title, listView)
		}
		return lipgloss.NewStyle().Margin(1, 2).Render(listView)

	case viewLoadingDebater:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Preparing %s... %ss\n", m.spinner.View(), m.selectedPersona, timer)

	case viewDebate:
		return m.debateView()

	default:
		return "Unknown state"
	}
}

// debateView renders the debate interface, including the header, the
// transcript, and the input text area.
func (m *model) debateView() string {
	var builder strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)

	personaName := m.selectedPersona
	if m.debater != nil {
		personaName = m.debater.Persona().DisplayName()
	}

	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Debate:"),
		headerStyle.Render(fmt.Sprintf("Persona: %s", personaName)),
	)
	help := lipgloss.NewStyle().Render(" (tab to change persona, esc to quit)")
	builder.WriteString(status + help + "\n\n")

	var transcriptBuilder strings.Builder
	userStyle := lipgloss.NewStyle().Bold(true)
	personaStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))

	for _, entry := range m.transcript {
		var role string
		if entry.Role == "persona" {
			role = personaStyle.Render(personaName + ": ")
		} else {
			role = userStyle.Render("You: ")
		}
		wrappedContent := lipgloss.NewStyle().Width(m.width - lipgloss.Width(role) - 2).Render(entry.Content)
		transcriptBuilder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, wrappedContent) + "\n")
	}

	m.viewport.SetContent(transcriptBuilder.String())
	builder.WriteString(m.viewport.View())

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" %s is thinking... %ss", personaName, timer))
	} else {
		builder.WriteString("\n" + m.textArea.View())
	}

	return builder.String()
}

// StartGUI initializes and runs the interactive persona debate TUI.
func StartGUI(ctx context.Context, cfg *appconfig.Config, cancel context.CancelFunc) {
	f, err := tea.LogToFile("kurukshetra.log", "debug")
	if err != nil {
		log.Fatalf("could not open log file: %v", err)
	}
	defer f.Close()
	defer func() {
		log.Println("Cancelling all running requests...")
		cancel()
	}()

	if cfg == nil {
		log.Fatalf("Failed to start: configuration is not loaded")
	}

	provider, err := providerfactory.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize provider: %v", err)
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logging.LogEvent("provider shutdown error: %v", err)
		}
	}()

	registry, err := persona.LoadRegistry(cfg.PersonaDir)
	if err != nil {
		log.Fatalf("Failed to load personas: %v", err)
	}

	m := initialModel(ctx, cfg, provider, registry)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
