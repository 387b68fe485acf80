package main

import (
	"fmt"

	"go.bug.st/serial"
)

type PortsCommand struct{}

func (c *PortsCommand) Execute(args []string) error {
	ports, err := serial.GetPortsList()
	if err != nil {
		return fmt.Errorf("list ports: %w", err)
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return nil
	}

	for _, port := range ports {
		fmt.Println(port)
	}
	return nil
}
