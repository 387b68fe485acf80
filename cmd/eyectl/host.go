package main

import (
	"context"
	"fmt"
	"sync"

	"go.bug.st/serial"

	"animeyes/pkg/command"
	"animeyes/pkg/eye"
)

// loadConfigOrDefault returns the saved config, or a zero config when
// none exists yet. Flags override whatever comes back.
func loadConfigOrDefault() *eye.Config {
	if !eye.ConfigExists() {
		return &eye.Config{}
	}
	cfg, err := eye.LoadConfig()
	if err != nil {
		return &eye.Config{}
	}
	return cfg
}

// openCommandPort opens the serial link to a running eyectl serve (or
// the mechanism's original firmware). Flag values win over the config.
func openCommandPort(cfg *eye.Config, portFlag string, baudFlag int) (serial.Port, error) {
	port := portFlag
	if port == "" {
		port = cfg.CommandPort
	}
	if port == "" || port == "-" {
		return nil, fmt.Errorf("no command serial port configured; pass --port or run 'eyectl setup'")
	}

	baud := baudFlag
	if baud == 0 {
		baud = cfg.CommandBaud
	}
	if baud == 0 {
		baud = eye.DefaultCommandBaud
	}

	sp, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port, err)
	}
	return sp, nil
}

// lineSender writes commands to the serial link, one per line. Safe for
// use from multiple goroutines (the TUI sends poses off the UI loop).
type lineSender struct {
	mu   sync.Mutex
	port serial.Port
}

func (s *lineSender) Send(ctx context.Context, cmd command.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.port, "%s\n", cmd); err != nil {
		return fmt.Errorf("send %s: %w", cmd, err)
	}
	return nil
}
