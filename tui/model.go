package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brat/sequencer"
	"brat/theme"
)

// Focus targets: the main surface, the drums pane, or an instrument by
// index.
const (
	focusMain  = -1
	focusDrums = -2
)

type Model struct {
	Manager *sequencer.Manager
	Theme   *theme.Theme

	focus    int // focusMain, focusDrums, or instrument index
	catalog  int // selected entry in the add-instrument catalog
	status   string
	quitting bool
}

type UpdateMsg struct{}

func NewModel(manager *sequencer.Manager, th *theme.Theme, lastInstrument string) Model {
	catalog := 0
	for i, name := range sequencer.InstrumentCatalog {
		if name == lastInstrument {
			catalog = i
		}
	}
	return Model{
		Manager: manager,
		Theme:   th,
		focus:   focusMain,
		catalog: catalog,
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Manager)
}

// noteKeys maps the home row to pitches, C4 to C5.
var noteKeys = map[string]uint8{
	"a": 60, "s": 62, "d": 64, "f": 65,
	"g": 67, "h": 69, "j": 71, "k": 72,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.quitting = true
			m.Manager.Drums().Stop()
			m.Manager.StopAll()
			return m, tea.Quit

		case "0":
			m.focus = focusMain

		case "9":
			m.focus = focusDrums

		case "1", "2", "3", "4", "5", "6", "7", "8":
			idx := int(key[0] - '1')
			if idx < len(m.Manager.Instruments()) {
				m.focus = idx
			}

		default:
			m = m.handleFocusedKey(key)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)
	}

	return m, nil
}

// handleFocusedKey routes a key to whichever pane has focus.
func (m Model) handleFocusedKey(key string) Model {
	switch m.focus {
	case focusMain:
		return m.handleMainKey(key)
	case focusDrums:
		return m.handleDrumsKey(key)
	default:
		return m.handleInstrumentKey(key)
	}
}

func (m Model) handleMainKey(key string) Model {
	switch key {
	case "[":
		if m.catalog > 0 {
			m.catalog--
		}
	case "]":
		if m.catalog < len(sequencer.InstrumentCatalog)-1 {
			m.catalog++
		}
	case "a", "enter":
		name := sequencer.InstrumentCatalog[m.catalog]
		m.Manager.AddInstrument(name)
		m.focus = len(m.Manager.Instruments()) - 1
		m.status = fmt.Sprintf("Added %s", name)
	case "p":
		m.Manager.PlayAll()
		m.status = "Playing all instruments"
	case "o":
		m.Manager.StopAll()
		m.status = "Stopped all instruments"
	}
	return m
}

func (m Model) handleDrumsKey(key string) Model {
	drums := m.Manager.Drums()
	switch key {
	case "p":
		drums.Start()
		m.status = "Drums playing"
	case "o":
		drums.Stop()
		m.status = "Drums stopped"
	case "+", "=":
		m.Manager.DrumsFaster()
	case "-", "_":
		m.Manager.DrumsSlower()
	}
	return m
}

func (m Model) handleInstrumentKey(key string) Model {
	instruments := m.Manager.Instruments()
	if m.focus < 0 || m.focus >= len(instruments) {
		return m
	}
	inst := instruments[m.focus]

	if pitch, ok := noteKeys[key]; ok {
		m.Manager.PlayNote(inst, pitch)
		return m
	}

	switch key {
	case "r":
		inst.Recording.Start()
		m.status = fmt.Sprintf("Recording %s...", inst.Name)
	case "e":
		inst.Recording.Stop()
		m.status = fmt.Sprintf("Stopped recording %s.", inst.Name)
	case "p":
		if err := inst.Playback.Play(); err != nil {
			m.status = fmt.Sprintf("No notes recorded for %s", inst.Name)
		} else {
			m.status = fmt.Sprintf("Playing %s", inst.Name)
		}
	case "o":
		inst.Playback.Stop()
		m.status = fmt.Sprintf("Stopped %s", inst.Name)
	case "l":
		inst.Playback.SetLooping(!inst.Playback.Looping())
	}
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.BG()).Background(m.Theme.Accent()).Padding(0, 2)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	focusStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	recStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render("brat"))
	out.WriteString("\n\n")

	// Instrument tracks
	instruments := m.Manager.Instruments()
	if len(instruments) == 0 {
		out.WriteString(dimStyle.Render("  no instruments - press a to add one"))
		out.WriteString("\n")
	}
	for i, inst := range instruments {
		marker := "  "
		line := fmt.Sprintf("%d %-10s ch:%02d prog:%03d notes:%d", i+1, inst.Name, inst.Channel, inst.Program, inst.Recording.Len())

		var badges []string
		if inst.Recording.Recording() {
			badges = append(badges, recStyle.Render("REC"))
		}
		if inst.Playback.Looping() {
			badges = append(badges, focusStyle.Render("LOOP"))
		}
		if len(badges) > 0 {
			line += "  " + strings.Join(badges, " ")
		}

		if m.focus == i {
			marker = focusStyle.Render("> ")
		}
		out.WriteString(marker + line + "\n")
	}

	// Drums pane
	drums := m.Manager.Drums()
	drumState := "stopped"
	if drums.Running() {
		drumState = "playing"
	}
	drumLine := fmt.Sprintf("9 %-10s tempo:%4dms %s", "Drums", drums.Tempo().Milliseconds(), drumState)
	if m.focus == focusDrums {
		out.WriteString(focusStyle.Render("> ") + drumLine + "\n")
	} else {
		out.WriteString("  " + drumLine + "\n")
	}

	// Add-instrument bar (main surface)
	out.WriteString("\n")
	addMarker := "  "
	if m.focus == focusMain {
		addMarker = focusStyle.Render("> ")
	}
	out.WriteString(addMarker + dimStyle.Render("add: ") + renderCatalog(m.catalog, focusStyle, dimStyle) + "\n")

	// Status + help
	out.WriteString("\n")
	if m.status != "" {
		out.WriteString(statusStyle.Render(m.status))
		out.WriteString("\n")
	}
	help := "0:main 1-8:instrument 9:drums  a:add [/]:pick  r:rec e:end p:play o:stop l:loop  asdfghjk:notes  q:quit"
	out.WriteString(dimStyle.Render(help))
	out.WriteString("\n")

	return out.String()
}

func renderCatalog(selected int, focusStyle, dimStyle lipgloss.Style) string {
	parts := make([]string, len(sequencer.InstrumentCatalog))
	for i, name := range sequencer.InstrumentCatalog {
		if i == selected {
			parts[i] = focusStyle.Render("[" + name + "]")
		} else {
			parts[i] = dimStyle.Render(name)
		}
	}
	return strings.Join(parts, " ")
}
