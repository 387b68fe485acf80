package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"animeyes/pkg/command"
	"animeyes/pkg/eye"
	"animeyes/pkg/script"
)

type ControlCommand struct {
	Port string `long:"port" description:"Command serial port"`
	Baud int    `long:"baud" description:"Command port baud rate"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 8 // one row per channel + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border

	angleStep = 5 // degrees per keypress
)

// Channel colors - distinct colors for each channel
var channelColors = map[eye.Channel]string{
	eye.TopEyelidLeft:     "196", // red
	eye.TopEyelidRight:    "208", // orange
	eye.BottomEyelidLeft:  "226", // yellow
	eye.BottomEyelidRight: "46",  // green
	eye.EyeVertical:       "51",  // cyan
	eye.EyeHorizontal:     "201", // magenta
}

// Quick commands, one key per pose (the original controller's buttons).
var quickKeys = map[string]string{
	"b": "blink",
	"r": "raise_eyelids",
	"w": "lower_eyelids",
	"o": "open_bottom_eyelid",
	"x": "close_bottom_eyelid",
	"u": "look_up",
	"d": "look_down",
	",": "look_left",
	".": "look_right",
	"f": "look_forward",
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
)

type controlModel struct {
	sender   *lineSender
	runner   *script.Runner
	chart    *streamlinechart.Model
	width    int // terminal width
	height   int // terminal height
	logs     []string
	quitting bool

	selected int // index into eye.AllChannels()
	angles   map[eye.Channel]int
	lineCh   chan string // lines received over the serial link
}

func (m *controlModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the serial link and background sends
type serialLineMsg string
type sendErrMsg struct{ err error }
type poseMsg struct {
	name string
	err  error
}
type chartTickMsg time.Time

func waitForLine(lineCh chan string) tea.Cmd {
	return func() tea.Msg {
		return serialLineMsg(<-lineCh)
	}
}

func chartTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return chartTickMsg(t)
	})
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *controlModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 15 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 8 {
		height = 8
	}
	return width, height
}

func (m *controlModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialControlModel(sender *lineSender, lineCh chan string) controlModel {
	chart := streamlinechart.New(80, 15,
		streamlinechart.WithYRange(float64(eye.MinAngle), float64(eye.MaxAngle)),
	)

	angles := make(map[eye.Channel]int, len(eye.AllChannels()))
	for _, ch := range eye.AllChannels() {
		color := channelColors[ch]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(ch.Name(), runes.ThinLineStyle, style)
		angles[ch] = 90
	}

	return controlModel{
		sender: sender,
		runner: script.NewRunner(sender),
		chart:  &chart,
		angles: angles,
		lineCh: lineCh,
	}
}

func (m controlModel) Init() tea.Cmd {
	return tea.Batch(waitForLine(m.lineCh), chartTick())
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case serialLineMsg:
		m.addLog("< " + string(msg))
		return m, waitForLine(m.lineCh)

	case sendErrMsg:
		m.addLog(fmt.Sprintf("send error: %v", msg.err))
		return m, nil

	case poseMsg:
		if msg.err != nil {
			m.addLog(fmt.Sprintf("pose %s: %v", msg.name, msg.err))
		}
		return m, nil

	case chartTickMsg:
		for _, ch := range eye.AllChannels() {
			m.chart.PushDataSet(ch.Name(), float64(m.angles[ch]))
		}
		m.chart.DrawAll()
		return m, chartTick()
	}

	return m, nil
}

func (m controlModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	channels := eye.AllChannels()

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.selected = (m.selected + len(channels) - 1) % len(channels)
		return m, nil

	case "down", "j":
		m.selected = (m.selected + 1) % len(channels)
		return m, nil

	case "left", "h":
		return m.adjust(channels[m.selected], -angleStep)

	case "right", "l":
		return m.adjust(channels[m.selected], +angleStep)
	}

	if name, ok := quickKeys[key]; ok {
		return m.runPose(name)
	}

	return m, nil
}

// adjust nudges the selected channel and sends the new angle.
func (m controlModel) adjust(ch eye.Channel, delta int) (tea.Model, tea.Cmd) {
	angle := m.angles[ch] + delta
	if angle < eye.MinAngle {
		angle = eye.MinAngle
	}
	if angle > eye.MaxAngle {
		angle = eye.MaxAngle
	}
	if angle == m.angles[ch] {
		return m, nil
	}
	m.angles[ch] = angle

	cmd := command.Command{Channel: ch, Angle: angle}
	return m, func() tea.Msg {
		if err := m.sender.Send(context.Background(), cmd); err != nil {
			return sendErrMsg{err}
		}
		return nil
	}
}

// runPose executes a quick command off the UI loop (blink holds for
// 200ms) and tracks the pose's final angles.
func (m controlModel) runPose(name string) (tea.Model, tea.Cmd) {
	steps, ok := script.Pose(name)
	if !ok {
		return m, nil
	}

	for _, step := range steps {
		if step.Wait == 0 {
			m.angles[step.Cmd.Channel] = step.Cmd.Angle
		}
	}

	m.addLog("pose " + name)
	return m, func() tea.Msg {
		err := m.runner.RunSteps(context.Background(), steps)
		return poseMsg{name: name, err: err}
	}
}

func (m controlModel) View() string {
	if m.quitting {
		return "Control stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Animeyes Control"))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Channel list
	sb.WriteString(m.renderChannels())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("↑/↓ select · ←/→ adjust · b blink · f look forward · q quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m controlModel) renderChannels() string {
	var sb strings.Builder
	for i, ch := range eye.AllChannels() {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(channelColors[ch])).Bold(true)

		marker := "  "
		name := ch.Name()
		if i == m.selected {
			marker = "▶ "
			name = selectedStyle.Render(name)
		}

		sb.WriteString(fmt.Sprintf("%s%s %s %s\n",
			marker,
			colorStyle.Render("━━"),
			name,
			statusStyle.Render(fmt.Sprintf("%3d°", m.angles[ch]))))
	}
	return sb.String()
}

func (c *ControlCommand) Execute(args []string) error {
	sp, err := openCommandPort(loadConfigOrDefault(), c.Port, c.Baud)
	if err != nil {
		return err
	}
	defer sp.Close()

	lineCh := make(chan string, 10)
	go func() {
		scanner := bufio.NewScanner(sp)
		for scanner.Scan() {
			select {
			case lineCh <- scanner.Text():
			default:
				// Drop if the UI is behind
			}
		}
	}()

	sender := &lineSender{port: sp}
	p := tea.NewProgram(initialControlModel(sender, lineCh), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
