package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-turnip/internal/core"
	"github.com/vovakirdan/tui-turnip/internal/game"
)

// ControllerFactory builds the game controller of one player. The observer
// must be registered on the controller so the app can present its events.
type ControllerFactory func(ctx context.Context, profile string, obs game.Observer) (*game.Controller, error)

type screen int

const (
	screenIntro screen = iota
	screenMenu
	screenLevels
	screenLanguage
	screenLevel
	screenGameOver
)

// App is the top-level Bubble Tea model: intro -> menu -> levels -> game over.
type App struct {
	ctx      context.Context
	ctrl     *game.Controller
	fx       *Effects
	config   core.RuntimeConfig
	theme    Theme
	keys     KeyMap
	help     help.Model
	renderer *screenRenderer
	field    *core.Screen

	screen     screen
	menuCursor int
	langCursor int
	levels     table.Model

	introPart int
	introGen  int

	level    levelState
	quitting bool
}

// NewApp creates the app for an already built controller. fx must be the
// observer registered on ctrl.
func NewApp(ctx context.Context, ctrl *game.Controller, fx *Effects, cfg core.RuntimeConfig) App {
	if fx == nil {
		fx = NewEffects()
	}
	theme := ThemeByName(cfg.Theme)
	fw, fh := cfg.FieldSize()

	h := help.New()
	h.Width = cfg.ScreenW

	m := App{
		ctx:      ctx,
		ctrl:     ctrl,
		fx:       fx,
		config:   cfg,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     h,
		renderer: newScreenRenderer(theme),
		field:    core.NewScreen(fw, fh),
		screen:   screenMenu,
	}
	if !ctrl.Progress().IntroViewed {
		m.screen = screenIntro
	}
	m.levels = m.createLevelsTable()
	return m
}

// NewSessionApp builds the controller for profile through factory and wraps
// it in an app.
func NewSessionApp(ctx context.Context, factory ControllerFactory, profile string, cfg core.RuntimeConfig) (App, error) {
	fx := NewEffects()
	ctrl, err := factory(ctx, profile, fx)
	if err != nil {
		return App{}, fmt.Errorf("create controller for %s: %w", profile, err)
	}
	return NewApp(ctx, ctrl, fx, cfg), nil
}

// Init starts the intro timer when the app opens on the intro.
func (m App) Init() tea.Cmd {
	if m.screen == screenIntro {
		return introTickCmd(m.config.IntroStep, m.introGen)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case introTickMsg:
		if m.screen != screenIntro || msg.gen != m.introGen {
			return m, nil
		}
		cmd := m.advanceIntro()
		return m, cmd

	case advanceMsg:
		cmd := m.handleAdvance(msg)
		return m, cmd

	case tea.KeyMsg:
		in := m.keys.MapKey(msg)
		if in.Action == core.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleInput(in, msg)
	}

	return m, nil
}

func (m App) handleInput(in core.Input, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenIntro:
		cmd = m.updateIntro(in)
	case screenMenu:
		cmd = m.updateMenu(in)
	case screenLevels:
		cmd = m.updateLevels(in, msg)
	case screenLanguage:
		m.updateLanguage(in)
	case screenLevel:
		cmd = m.updateLevel(in)
	case screenGameOver:
		if in.Action == core.ActionConfirm || in.Action == core.ActionBack {
			m.screen = screenMenu
		}
	}
	return m, cmd
}

// resize processes window resize events.
func (m *App) resize(w, h int) {
	m.config.ScreenW = w
	m.config.ScreenH = h
	fw, fh := m.config.FieldSize()
	m.field.Resize(fw, fh)
	m.help.Width = w
	m.levels = m.createLevelsTable()
}

// View renders the current screen.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenIntro:
		body = m.viewIntro()
	case screenMenu:
		body = m.viewMenu()
	case screenLevels:
		body = m.viewLevels()
	case screenLanguage:
		body = m.viewLanguage()
	case screenLevel:
		body = m.viewLevel()
	case screenGameOver:
		body = m.viewGameOver()
	}
	return body
}

// Controller returns the app's game controller.
func (m App) Controller() *game.Controller {
	return m.ctrl
}

// IsQuitting returns true if user requested to quit.
func (m App) IsQuitting() bool {
	return m.quitting
}

// center centers every line of block within the screen width.
func (m App) center(block string) string {
	if m.config.ScreenW <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, block)
}

// helpView renders the help line for the given bindings.
func (m App) helpView(keys helpKeys) string {
	return m.theme.Help.Render(m.help.View(keys))
}

// joinLines joins non-empty parts with blank lines between sections.
func joinLines(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

// Run starts the local Bubble Tea program.
func Run(ctx context.Context, factory ControllerFactory, profile string, cfg core.RuntimeConfig) error {
	app, err := NewSessionApp(ctx, factory, profile, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	return err
}
