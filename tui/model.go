package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ccgrid/bank"
	"ccgrid/debug"
	"ccgrid/input"
	"ccgrid/midi"
	"ccgrid/store"
	"ccgrid/theme"
	"ccgrid/widgets"
)

// promptKind says what the text being gathered will be applied to.
type promptKind int

const (
	promptNone promptKind = iota
	promptValue
	promptRename
	promptChannel
	promptControlNumber
	promptBank
	promptPort
	promptQuit
)

// flipMsg drives the cursor's periodic name/value blink.
type flipMsg time.Time

// Model is the controller: it owns the state snapshot, applies decoded
// commands, schedules debounced saves when bank data changes, and forwards
// value edits to the MIDI output.
type Model struct {
	State bank.AppState

	repo         store.Repository
	saver        *store.Saver
	out          midi.Output
	theme        *theme.Theme
	flipInterval time.Duration

	prompt      promptKind
	promptLabel string
	promptMax   int
	buffer      string
	ports       []string // listed while the port prompt is open

	status   string
	quitting bool
}

// NewModel wires the controller to its collaborators.
func NewModel(state bank.AppState, repo store.Repository, saver *store.Saver, out midi.Output, th *theme.Theme, flipInterval time.Duration) Model {
	return Model{
		State:        state,
		repo:         repo,
		saver:        saver,
		out:          out,
		theme:        th,
		flipInterval: flipInterval,
	}
}

func (m Model) Init() tea.Cmd {
	return flipTick(m.flipInterval)
}

func flipTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return flipMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case flipMsg:
		m.State = m.State.FlipCursorDisplay()
		return m, flipTick(m.flipInterval)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.shutdown()
		}
		if m.prompt != promptNone {
			return m.updatePrompt(msg.String())
		}
		return m.handleKey(msg.String())
	}

	return m, nil
}

// shutdown flushes the pending save before the program releases the
// terminal and MIDI port.
func (m Model) shutdown() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.saver.Flush()
	return m, tea.Quit
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	m.status = ""

	switch action := input.Decode(key); action.Kind {
	case input.Move:
		m.State = m.State.MoveCursor(action.DX, action.DY)

	case input.Increment:
		m = m.adjustValue(1)
	case input.Decrement:
		m = m.adjustValue(-1)

	case input.PromptValue:
		m = m.openPrompt(promptValue, "New value: ", 3)
	case input.PromptRename:
		m = m.openPrompt(promptRename, "New name: ", 3)
	case input.PromptChannel:
		m = m.openPrompt(promptChannel, "Channel: ", 2)
	case input.PromptControlNumber:
		m = m.openPrompt(promptControlNumber, "Control number: ", 3)
	case input.PromptBank:
		m = m.openPrompt(promptBank, "Bank name: ", 3)
	case input.PromptPort:
		m = m.openPrompt(promptPort, "MIDI port: ", 40)
		m.ports = m.out.Ports()
	case input.Quit:
		m = m.openPrompt(promptQuit, "Quit? (y/n): ", 1)

	case input.ResetBank:
		m = m.commit(m.State.ResetCurrentBank())
	case input.ToggleHelp:
		m.State = m.State.ToggleHelp()
	case input.ToggleAllValues:
		m.State = m.State.ToggleAllValues()
	}

	return m, nil
}

func (m Model) openPrompt(kind promptKind, label string, maxLen int) Model {
	m.prompt = kind
	m.promptLabel = label
	m.promptMax = maxLen
	m.buffer = ""
	return m
}

func (m Model) closePrompt() Model {
	m.prompt = promptNone
	m.promptLabel = ""
	m.buffer = ""
	m.ports = nil
	return m
}

// updatePrompt gathers prompt text one key at a time: printable characters
// append, backspace trims, esc cancels, enter commits.
func (m Model) updatePrompt(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		return m.commitPrompt()
	case "esc":
		return m.closePrompt(), nil
	case "backspace":
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
	default:
		if len(key) == 1 && key[0] >= 32 && key[0] < 127 && len(m.buffer) < m.promptMax {
			m.buffer += key
		}
	}
	return m, nil
}

func (m Model) commitPrompt() (tea.Model, tea.Cmd) {
	kind := m.prompt
	text := m.buffer
	m = m.closePrompt()

	// Empty input cancels everything but quit.
	if strings.TrimSpace(text) == "" && kind != promptQuit {
		return m, nil
	}

	switch kind {
	case promptValue:
		p := m.cursorParam()
		m = m.setValue(input.ParseMIDIValue(text, p.Value))

	case promptRename:
		if name, ok := input.CleanName(text); ok {
			m = m.commitErr(m.State.RenameParam(m.State.CursorIndex(), name))
		}

	case promptChannel:
		p := m.cursorParam()
		m = m.commitErr(m.State.SetChannel(m.State.CursorIndex(), input.ParseChannel(text, p.Channel)))

	case promptControlNumber:
		p := m.cursorParam()
		m = m.commitErr(m.State.SetControlNumber(m.State.CursorIndex(), input.ParseMIDIValue(text, p.ControlNumber)))

	case promptBank:
		if name, ok := input.CleanName(text); ok {
			m = m.commit(m.State.SwitchBank(name))
		}

	case promptPort:
		m = m.connectPort(text)

	case promptQuit:
		if strings.EqualFold(strings.TrimSpace(text), "y") {
			return m.shutdown()
		}
	}

	return m, nil
}

// commit adopts the new state, scheduling a debounced save when bank data
// changed.
func (m Model) commit(s bank.AppState) Model {
	if s.Generation != m.State.Generation {
		m.saver.Schedule(s.Banks)
	}
	m.State = s
	return m
}

func (m Model) commitErr(s bank.AppState, err error) Model {
	if err != nil {
		// Cursor is clamped to the grid, so this is a desync bug.
		debug.Log("tui", "parameter access failed: %v", err)
		panic(err)
	}
	return m.commit(s)
}

func (m Model) cursorParam() bank.Parameter {
	p, err := m.State.CursorParam()
	if err != nil {
		debug.Log("tui", "parameter access failed: %v", err)
		panic(err)
	}
	return p
}

// setValue applies a value edit and sends exactly one Control Change.
func (m Model) setValue(value int) Model {
	s, p, err := m.State.SetValue(m.State.CursorIndex(), value)
	if err != nil {
		debug.Log("tui", "parameter access failed: %v", err)
		panic(err)
	}
	m = m.commit(s)
	msg := p.Message()
	if err := m.out.Send(msg.Channel, msg.ControlNumber, msg.Value); err != nil {
		debug.Log("midi", "send failed: %v", err)
	}
	return m
}

func (m Model) adjustValue(delta int) Model {
	p := m.cursorParam()
	return m.setValue(p.Value + delta)
}

// connectPort connects synchronously. The entered text may be an index into
// the listed ports or a name substring. Success persists the preference
// immediately; failure keeps the prior port.
func (m Model) connectPort(text string) Model {
	name := strings.TrimSpace(text)
	if idx, err := strconv.Atoi(name); err == nil && idx >= 0 && idx < len(m.ports) {
		name = m.ports[idx]
	}

	if err := m.out.Connect(name); err != nil {
		debug.Log("midi", "connect %q: %v", name, err)
		m.status = fmt.Sprintf("connect failed: %v", err)
		return m
	}

	connected := m.out.PortName()
	m.State = m.State.WithPreferredPort(connected)
	if err := m.repo.SetPreferredPort(connected); err != nil {
		debug.Log("store", "save preferred port: %v", err)
	}
	m.status = "connected to " + connected
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Muted())
	cellStyle := lipgloss.NewStyle().Foreground(m.theme.FG())
	cursorStyle := lipgloss.NewStyle().Foreground(m.theme.BG()).Background(m.theme.Cursor())
	warnStyle := lipgloss.NewStyle().Foreground(m.theme.Warning())

	var out strings.Builder

	out.WriteString(headerStyle.Render(fmt.Sprintf("BANK: %s", m.State.CurrentBank)))
	out.WriteString(dimStyle.Render(fmt.Sprintf("   MIDI: %s", m.out.PortName())))
	out.WriteString("\n\n")

	out.WriteString(m.renderGrid(cellStyle, cursorStyle))
	out.WriteString("\n\n")

	p := m.cursorParam()
	out.WriteString(dimStyle.Render(fmt.Sprintf("%s  ch:%-2d  cc:%-3d  val:%-3d", p.Name, p.Channel, p.ControlNumber, p.Value)))
	out.WriteString("\n")

	if m.status != "" {
		out.WriteString(warnStyle.Render(m.status))
		out.WriteString("\n")
	}

	if m.prompt != promptNone {
		out.WriteString("\n")
		if m.prompt == promptPort {
			for i, name := range m.ports {
				out.WriteString(dimStyle.Render(fmt.Sprintf("  %d: %s", i, name)))
				out.WriteString("\n")
			}
		}
		out.WriteString(fmt.Sprintf("%s%s_", m.promptLabel, m.buffer))
		out.WriteString("\n")
	}

	if m.State.ShowHelp {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
			{Keys: []widgets.KeyBinding{
				{Key: "arrows", Desc: "navigate"},
				{Key: "v / + / -", Desc: "set / nudge value"},
				{Key: "r / c / n", Desc: "rename / channel / control number"},
				{Key: "b / x", Desc: "switch / reset bank"},
				{Key: "m", Desc: "midi port"},
				{Key: "space / h / q", Desc: "values / help / quit"},
			}},
		})))
	}

	return out.String()
}

// renderGrid builds the 8x8 cell labels: parameter names by default, values
// when show-all is on or the cursor cell is on its value half of the blink.
func (m Model) renderGrid(cellStyle, cursorStyle lipgloss.Style) string {
	b := m.State.Current()

	var cells [bank.GridSize][bank.GridSize]string
	for y := 0; y < bank.GridSize; y++ {
		for x := 0; x < bank.GridSize; x++ {
			p := b.Params[y*bank.GridSize+x]
			onCursor := x == m.State.CursorX && y == m.State.CursorY
			if m.State.ShowAllValues || (onCursor && m.State.ShowCursorValue) {
				cells[y][x] = fmt.Sprintf("%3d", p.Value)
			} else {
				cells[y][x] = p.Name
			}
		}
	}

	return widgets.RenderCellGrid(cells, m.State.CursorX, m.State.CursorY, cellStyle, cursorStyle)
}
