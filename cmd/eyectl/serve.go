package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.bug.st/serial"

	"animeyes/pkg/command"
	"animeyes/pkg/eye"
)

type ServeCommand struct {
	Port string `long:"port" description:"Command serial port (\"-\" for stdin/stdout)"`
	Baud int    `long:"baud" description:"Command port baud rate"`
	Bus  string `long:"bus" description:"Servo bus serial port"`
}

func (c *ServeCommand) Execute(args []string) error {
	cfg := loadConfigOrDefault()

	busPort := c.Bus
	if busPort == "" {
		busPort = cfg.BusPort
	}
	if busPort == "" {
		return errors.New("no servo bus configured; run 'eyectl setup' or pass --bus")
	}

	cmdPort := c.Port
	if cmdPort == "" {
		cmdPort = cfg.CommandPort
	}
	if cmdPort == "" {
		return errors.New("no command port configured; run 'eyectl setup' or pass --port")
	}

	baud := c.Baud
	if baud == 0 {
		baud = cfg.CommandBaud
	}
	if baud == 0 {
		baud = eye.DefaultCommandBaud
	}

	rig, err := eye.NewRig(eye.RigConfig{Port: busPort})
	if err != nil {
		return fmt.Errorf("connect rig: %w", err)
	}
	defer rig.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rig.Enable(ctx); err != nil {
		log.Printf("Warning: failed to enable torque: %v", err)
	}
	defer func() {
		if err := rig.Disable(context.Background()); err != nil {
			log.Printf("Warning: failed to disable torque: %v", err)
		}
	}()

	if angles, err := rig.Angles(ctx); err == nil {
		for _, ch := range eye.AllChannels() {
			log.Printf("servo %d (%s) at %d degrees", int(ch), ch.Name(), angles[ch])
		}
	}

	var in io.Reader
	var out io.Writer
	if cmdPort == "-" {
		in, out = os.Stdin, os.Stdout
	} else {
		sp, err := serial.Open(cmdPort, &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err != nil {
			return fmt.Errorf("open command port %s: %w", cmdPort, err)
		}
		defer sp.Close()

		// Closing the port unblocks the read loop on shutdown.
		go func() {
			<-ctx.Done()
			sp.Close()
		}()

		in, out = sp, sp
	}

	interp := command.NewInterpreter(in, out, rig, cfg.EffectiveCalibration())
	go func() {
		for msg := range interp.Logs() {
			log.Print(msg)
		}
	}()

	log.Printf("listening for commands on %s (bus %s)", cmdPort, busPort)

	err = interp.Run(ctx)
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		log.Print("shutting down")
		return nil
	}
	return err
}
