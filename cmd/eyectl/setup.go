package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"

	"animeyes/pkg/eye"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Animeyes Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	ports, err := serial.GetPortsList()
	if err != nil {
		return fmt.Errorf("list ports: %w", err)
	}

	// Step 1: find the servo bus
	fmt.Println("Scanning for the eye mechanism...")
	fmt.Println()

	busPort := findBus(ports)
	if busPort == "" {
		fmt.Println("No eye mechanism found.")
		fmt.Println("Make sure the servo bus is connected and powered on.")
		os.Exit(1)
	}
	fmt.Println(successStyle.Render("Servo bus: " + busPort))

	// Step 2: pick the command link
	fmt.Println()
	fmt.Println(subHeaderStyle.Render("━━━ Command Link ━━━"))
	fmt.Println()

	cmdPort := chooseCommandPort(ports, busPort)

	// Step 3: save config with the factory calibration
	cfg := &eye.Config{
		BusPort:     busPort,
		CommandPort: cmdPort,
		CommandBaud: eye.DefaultCommandBaud,
		Calibration: eye.DefaultCalibration(),
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(renderCalibrationTable(cfg.Calibration))
	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", eye.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Start the daemon with: " + headerStyle.Render("eyectl serve"))

	return nil
}

// findBus probes each serial port for the six-servo bus.
func findBus(ports []string) string {
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

		bus, err := feetech.NewBus(feetech.BusConfig{
			Port:     port,
			BaudRate: 1_000_000,
			Protocol: feetech.ProtocolSTS,
			Timeout:  100 * time.Millisecond,
		})
		if err != nil {
			cancel()
			continue
		}

		servos, err := bus.Scan(ctx, eye.MinChannel, eye.MaxChannel)
		cancel()
		bus.Close()

		if err == nil && isEyeRig(servos) {
			fmt.Printf("  Found six-servo bus on %s\n", port)
			return port
		}
	}
	return ""
}

// isEyeRig checks for exactly one servo per channel.
func isEyeRig(servos []feetech.FoundServo) bool {
	if len(servos) != len(eye.AllChannels()) {
		return false
	}

	ids := make(map[int]bool)
	for _, s := range servos {
		ids[s.ID] = true
	}
	for _, ch := range eye.AllChannels() {
		if !ids[int(ch)] {
			return false
		}
	}
	return true
}

func chooseCommandPort(ports []string, busPort string) string {
	options := []huh.Option[string]{
		huh.NewOption("stdin/stdout (no serial link)", "-"),
	}
	for _, port := range ports {
		if port == busPort || strings.Contains(port, "Bluetooth") {
			continue
		}
		options = append(options, huh.NewOption(port, port))
	}

	var cmdPort string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which port should commands arrive on?").
				Description("Hosts send channel,angle lines over this link").
				Options(options...).
				Value(&cmdPort),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	return cmdPort
}

func renderCalibrationTable(cal eye.Calibration) string {
	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableChannelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	tableCellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(eye.AllChannels()))
	for _, ch := range eye.AllChannels() {
		cc := cal.For(ch)
		direction := "normal"
		if cc.Reversed() {
			direction = "reversed"
		}
		min, max := cc.Range()
		rows = append(rows, []string{
			fmt.Sprintf("%d", int(ch)),
			ch.Name(),
			fmt.Sprintf("%d-%d", min, max),
			direction,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Channel", "Name", "Range", "Direction").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col <= 1 {
				return tableChannelStyle
			}
			return tableCellStyle
		})

	return t.Render()
}
