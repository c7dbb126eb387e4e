package ui

import (
	"os"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"navtrail/internal/backend"
	"navtrail/internal/engine"
	"navtrail/internal/nav"
	"navtrail/internal/render"
	"navtrail/internal/sched"
	"navtrail/internal/theme"
)

type Mode int

const (
	ModePanel Mode = iota
	ModeFilter
	ModeRename
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options bundles the knobs the panel needs from configuration.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Debounce   time.Duration
	Fast       time.Duration
	Render     render.Config
}

// Model implements the Bubble Tea model for the navigation history panel.
type Model struct {
	opts        Options
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	source    nav.Source
	watcher   *backend.Watcher
	debouncer *sched.Debouncer
	fireCh    chan struct{}

	detector  engine.ChangeDetector
	manager   *engine.Manager
	formatter render.Formatter
	lastCtx   nav.Context

	mode           Mode
	filterInput    textinput.Model
	renameInput    textinput.Model
	filterMatches  int
	viewportOffset int
	errMsg         string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the panel state. The watcher may be nil in tests; the
// debounce fire channel is always armed so explicit refreshes still work.
func NewModel(opts Options, source nav.Source, watcher *backend.Watcher) *Model {
	if opts.Render.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.Render.WorkDir = wd
		}
	}
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter symbols"
	rename := textinput.New()
	rename.Prompt = "rename: "
	m := &Model{
		opts:    opts,
		source:  source,
		watcher: watcher,
		fireCh:  make(chan struct{}, 1),
		manager: engine.NewManager(),
		mode:    ModePanel,

		filterInput:   filter,
		renameInput:   rename,
		filterMatches: -1,
	}
	m.debouncer = sched.New(opts.Debounce, opts.Fast, m.queueFire)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Manager exposes the engine for the host process (auto-show policy keys off
// Manager().HasHistory()).
func (m *Model) Manager() *engine.Manager {
	return m.manager
}

// queueFire marks a debounce expiry; it runs on the timer goroutine, so it
// only signals the channel the event loop drains.
func (m *Model) queueFire() {
	select {
	case m.fireCh <- struct{}{}:
	default:
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForFire(m.fireCh)}
	if m.watcher != nil {
		cmds = append(cmds, waitForWatcherEvent(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleActiveForm(msg); handled {
		return m, cmd
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeFilter:
		return m.handleFilterForm(msg)
	case ModeRename:
		return m.handleRenameForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(watcherEventMsg{}):   m.handleWatcherEventMsg,
		reflect.TypeOf(watcherDoneMsg{}):    m.handleWatcherDoneMsg,
		reflect.TypeOf(debounceFiredMsg{}):  m.handleDebounceFiredMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}
