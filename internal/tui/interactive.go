package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/storage"
	"github.com/san-kum/fieldcalc/internal/study"
	"github.com/san-kum/fieldcalc/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// defaultPreset is listed first and means "no preset".
const defaultPreset = "default"

type state int

const (
	stateMenu state = iota
	statePreset
	stateRunning
	stateResult
)

type model struct {
	ctx      context.Context
	registry *study.Registry
	store    *storage.Store

	state   state
	studies []study.Info
	cursor  int

	presets      []string
	presetCursor int

	cfg    *config.Config
	preset string
	result *study.Result
	err    error
	saved  string

	width  int
	height int
}

type resultMsg struct {
	res *study.Result
	err error
}

// NewInteractiveApp builds the study browser. store may be nil, in which
// case results cannot be saved.
func NewInteractiveApp(ctx context.Context, reg *study.Registry, store *storage.Store) *model {
	return &model{
		ctx:      ctx,
		registry: reg,
		store:    store,
		state:    stateMenu,
		studies:  reg.List(),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		if m.state != stateRunning {
			return m, nil
		}
		m.result, m.err = msg.res, msg.err
		m.state = stateResult
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case statePreset:
		return m.presetKey(msg)
	case stateRunning:
		if msg.String() == "esc" {
			m.state = statePreset
		}
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.studies)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.studies) == 0 {
			return m, nil
		}
		name := m.studies[m.cursor].Name
		m.presets = append([]string{defaultPreset}, config.ListPresets(name)...)
		m.presetCursor = 0
		m.state = statePreset
	}
	return m, nil
}

func (m model) presetKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case "down", "j":
		if m.presetCursor < len(m.presets)-1 {
			m.presetCursor++
		}
	case "enter", " ", "s":
		m.preset = m.presets[m.presetCursor]
		m.cfg = m.selectedConfig()
		return m.start()
	}
	return m, nil
}

func (m model) resultKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = statePreset
		m.result, m.err, m.saved = nil, nil, ""
	case "r":
		return m.start()
	case "w":
		if m.store == nil || m.result == nil {
			return m, nil
		}
		id, err := m.store.Save(m.preset, m.cfg, m.result)
		if err != nil {
			m.err = err
		} else {
			m.saved = id
		}
	}
	return m, nil
}

func (m model) selectedConfig() *config.Config {
	name := m.studies[m.cursor].Name
	if m.preset != defaultPreset {
		if cfg := config.GetPreset(name, m.preset); cfg != nil {
			return cfg
		}
	}
	return config.ForStudy(name)
}

func (m model) start() (model, tea.Cmd) {
	m.state = stateRunning
	m.result, m.err, m.saved = nil, nil, ""
	return m, runStudy(m.ctx, m.registry, m.cfg.Clone())
}

func runStudy(ctx context.Context, reg *study.Registry, cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		res, err := reg.Run(ctx, cfg)
		return resultMsg{res: res, err: err}
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case statePreset:
		return m.viewPreset()
	case stateRunning:
		return m.viewRunning()
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("f i e l d c a l c") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, info := range m.studies {
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-22s", info.Name)) + dim.Render(info.Description) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-22s", info.Name)) + dimmer.Render(info.Description) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter choose   q quit") + "\n")
	return b.String()
}

func (m model) viewPreset() string {
	var b strings.Builder
	info := m.studies[m.cursor]

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(info.Name) + "  " + dim.Render(info.Description) + "\n")
	b.WriteString("      " + viz.Separator(36) + "\n")
	b.WriteString("      " + dim.Render("methods: "+strings.Join(info.Methods, ", ")) + "\n\n")

	for i, name := range m.presets {
		if i == m.presetCursor {
			b.WriteString("      " + cyan.Render("▸ ") + magenta.Render(name) + "\n")
		} else {
			b.WriteString("        " + dim.Render(name) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  enter run  esc back") + "\n")
	return b.String()
}

func (m model) viewRunning() string {
	return "\n      " + viz.Title.Render("running "+m.cfg.Study) +
		dim.Render(fmt.Sprintf("  preset=%s  n=%v", m.preset, m.cfg.Resolutions())) + "\n\n" +
		dim.Render("      esc back") + "\n"
}

func (m model) viewResult() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("      " + red.Render("error: "+m.err.Error()) + "\n")
	}
	if m.result != nil {
		b.WriteString(viz.Report(m.result))
	}
	if m.saved != "" {
		b.WriteString("\n" + green.Render("saved "+m.saved) + "\n")
	}

	help := "r rerun  esc back"
	if m.store != nil {
		help = "r rerun  w save  esc back"
	}
	b.WriteString("\n" + dim.Render(help) + "\n")
	return b.String()
}

// RunInteractive opens the study browser full-screen.
func RunInteractive(ctx context.Context, reg *study.Registry, store *storage.Store) error {
	p := tea.NewProgram(NewInteractiveApp(ctx, reg, store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
