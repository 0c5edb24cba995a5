package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"qbloch/internal/edit"
	"qbloch/internal/qubit"
	"qbloch/internal/scene"
	"qbloch/internal/session"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusSphere focus = iota
	focusFields
	focusMenu
)

const (
	numMatrixFields = 4
	numFields       = 6
)

// fieldOrder is the tab order over the inputs: the matrix row by row, then
// alpha and beta. Inputs 0..3 are column-major like edit.Fields.Matrix.
var fieldOrder = [numFields]int{0, 2, 1, 3, 4, 5}

// fieldLabels names each input by index.
var fieldLabels = [numFields]string{"u00", "u10", "u01", "u11", "α", "β"}

// Model represents the TUI application state.
type Model struct {
	cfg Config
	log *log.Logger

	sess    *session.Session
	editor  *edit.Editor
	builder *scene.Builder

	scene        scene.Scene
	sceneErr     error
	sceneVersion uint64
	player       player
	camera       scene.Camera

	inputs      [numFields]textinput.Model
	fieldIdx    int // position in fieldOrder
	matrixStyle lipgloss.Style
	stateStyle  lipgloss.Style

	focus    focus
	menuCat  int
	menuItem int

	keys keyMap
	help help.Model

	width     int
	height    int
	statusMsg string // transient status message (e.g. validation errors)
}

func newModel(cfg Config, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g, err := qubit.GateFromName(cfg.Gate)
	if err != nil {
		return Model{}, err
	}
	st, err := qubit.StateFromName(cfg.State)
	if err != nil {
		return Model{}, err
	}

	sess := session.New(session.Config{
		HistorySize: cfg.HistorySize,
		Gate:        g,
		State:       st,
		Logger:      logger,
	})

	m := Model{
		cfg:         cfg,
		log:         logger.WithPrefix("ui"),
		sess:        sess,
		editor:      edit.NewEditor(sess, logger),
		builder:     scene.NewBuilder(sess, cfg.sceneConfig()),
		player:      newPlayer(cfg.Duration, cfg.Pause),
		camera:      scene.DefaultCamera(),
		matrixStyle: fieldValidStyle,
		stateStyle:  fieldValidStyle,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0"
		ti.Width = fieldW
		ti.CharLimit = 64
		ti.TextStyle = fieldValidStyle
		m.inputs[i] = ti
	}

	m.syncFields()
	m.refreshScene()
	return m, nil
}

// syncFields writes the session pair into the inputs and marks that text
// as saved.
func (m *Model) syncFields() {
	f := edit.FieldsOf(m.sess.Gate(), m.sess.State())
	m.setFields(f)
	m.editor.Remember(f)
	m.matrixStyle, m.stateStyle = fieldValidStyle, fieldValidStyle
	m.applyFieldStyles()
}

func (m *Model) setFields(f edit.Fields) {
	for i, v := range f.Matrix {
		m.inputs[i].SetValue(v)
	}
	for i, v := range f.State {
		m.inputs[numMatrixFields+i].SetValue(v)
	}
}

func (m *Model) fields() edit.Fields {
	var f edit.Fields
	for i := range f.Matrix {
		f.Matrix[i] = m.inputs[i].Value()
	}
	for i := range f.State {
		f.State[i] = m.inputs[numMatrixFields+i].Value()
	}
	return f
}

func (m *Model) applyFieldStyles() {
	for i := range m.inputs {
		if i < numMatrixFields {
			m.inputs[i].TextStyle = m.matrixStyle
		} else {
			m.inputs[i].TextStyle = m.stateStyle
		}
	}
}

// submit validates the inputs and commits them.
func (m *Model) submit() {
	out := m.editor.Submit(m.fields())
	m.setFields(out.Fields)
	m.matrixStyle = fieldStyle(out.Matrix, m.matrixStyle)
	m.stateStyle = fieldStyle(out.State, m.stateStyle)
	m.applyFieldStyles()

	switch {
	case out.Noop:
		m.statusMsg = "No changes"
	case out.Err != nil:
		m.statusMsg = firstLine(out.Err.Error())
		m.log.Debug("submit failed", "matrix", out.Matrix, "state", out.State, "err", out.Err)
	case out.State == edit.Corrected:
		m.statusMsg = "Saved; state normalised"
	default:
		m.statusMsg = "Saved"
	}
}

// refreshScene rebuilds the scene when the session changed since the last
// build and restarts the animation.
func (m *Model) refreshScene() tea.Cmd {
	v := m.builder.Version()
	if v == m.sceneVersion {
		return nil
	}
	m.sceneVersion = v
	m.scene, m.sceneErr = m.builder.Scene()
	if m.sceneErr != nil {
		m.statusMsg = m.sceneErr.Error()
		m.log.Warn("scene build failed", "err", m.sceneErr)
	}
	return m.player.start(m.scene.Frames())
}

func (m *Model) setGate(name string) {
	g, err := qubit.GateFromName(name)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.sess.UpdateGate(g, false)
	m.syncFields()
	m.statusMsg = "Gate " + g.String()
}

func (m *Model) setState(name string) {
	s, err := qubit.StateFromName(name)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.sess.UpdateState(s, false)
	m.syncFields()
	m.statusMsg = "State " + s.String()
}

func (m *Model) choose(cat int, item menuItem) {
	if cat == menuGates {
		m.setGate(item.name)
	} else {
		m.setState(item.name)
	}
}

func (m *Model) focusField(pos int) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.fieldIdx = (pos + numFields) % numFields
	return m.inputs[fieldOrder[m.fieldIdx]].Focus()
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	if m.player.frames < 1 {
		return nil
	}
	return m.player.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 4

	case frameMsg:
		return m, m.player.update(msg)

	case tea.KeyMsg:
		m.statusMsg = ""
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusSphere:
			cmds = append(cmds, m.updateSphere(msg))
		case focusFields:
			cmds = append(cmds, m.updateFields(msg))
		case focusMenu:
			m.updateMenu(msg)
		}
		cmds = append(cmds, m.refreshScene())
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateSphere(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Apply):
		from, g := m.sess.State(), m.sess.Gate()
		to := m.sess.Apply()
		m.syncFields()
		m.statusMsg = fmt.Sprintf("Applied %s: %s → %s", g, from, to)
	case key.Matches(msg, m.keys.Undo):
		if !m.sess.Undo() {
			m.statusMsg = "Nothing to undo"
			break
		}
		m.syncFields()
		m.statusMsg = "Undone"
	case key.Matches(msg, m.keys.Rerender):
		m.builder.Invalidate()
		m.statusMsg = "Rerendered"
	case key.Matches(msg, m.keys.Inverse):
		m.sess.UpdateGate(m.sess.Gate().Dagger(), false)
		m.syncFields()
		m.statusMsg = "Gate " + m.sess.Gate().String()
	case key.Matches(msg, m.keys.Palette):
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0
	case key.Matches(msg, m.keys.Fields):
		m.focus = focusFields
		return m.focusField(0)
	case key.Matches(msg, m.keys.Gate), key.Matches(msg, m.keys.State):
		if cat, item, ok := shortcutItem(msg.String()); ok {
			m.choose(cat, item)
		}
	case key.Matches(msg, m.keys.Camera):
		switch msg.String() {
		case "up":
			m.camera = m.camera.Rotate(elevationInc, 0)
		case "down":
			m.camera = m.camera.Rotate(-elevationInc, 0)
		case "left":
			m.camera = m.camera.Rotate(0, -azimuthInc)
		case "right":
			m.camera = m.camera.Rotate(0, azimuthInc)
		}
	case key.Matches(msg, m.keys.Reset):
		m.camera = scene.DefaultCamera()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) updateFields(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		m.focus = focusSphere
	case "tab", "down":
		return m.focusField(m.fieldIdx + 1)
	case "shift+tab", "up":
		return m.focusField(m.fieldIdx - 1)
	case "enter":
		m.submit()
	default:
		var cmd tea.Cmd
		i := fieldOrder[m.fieldIdx]
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q":
		m.focus = focusSphere
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(palette[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(palette)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "enter":
		m.choose(m.menuCat, palette[m.menuCat].items[m.menuItem])
		m.focus = focusSphere
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	rightW := infoPanelW
	sphereW := max(m.width-rightW-4, 24)
	bodyH := max(m.height-controlsH-4, 12)

	spherePanel := m.renderSpherePanel(sphereW, bodyH)
	fieldsPanel := m.renderFieldsPanel(rightW)
	infoH := max(bodyH-lipgloss.Height(fieldsPanel), 6)
	infoPanel := m.renderInfoPanel(rightW, infoH)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsH)

	right := lipgloss.JoinVertical(lipgloss.Left, fieldsPanel, infoPanel)
	top := lipgloss.JoinHorizontal(lipgloss.Top, spherePanel, right)
	frame := lipgloss.JoinVertical(lipgloss.Left, top, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
