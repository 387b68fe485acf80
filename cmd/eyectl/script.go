package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"animeyes/pkg/script"
)

type ScriptCommand struct {
	Port string `long:"port" description:"Command serial port"`
	Baud int    `long:"baud" description:"Command port baud rate"`
	Args struct {
		File string `positional-arg-name:"script-file" required:"yes"`
	} `positional-args:"yes"`
}

func (c *ScriptCommand) Execute(args []string) error {
	f, err := os.Open(c.Args.File)
	if err != nil {
		return err
	}
	defer f.Close()

	sp, err := openCommandPort(loadConfigOrDefault(), c.Port, c.Baud)
	if err != nil {
		return err
	}
	defer sp.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := script.NewRunner(&lineSender{port: sp})
	go func() {
		for msg := range runner.Logs() {
			fmt.Println(msg)
		}
	}()

	// Echo whatever the daemon sends back while the script runs.
	go func() {
		scanner := bufio.NewScanner(sp)
		for scanner.Scan() {
			fmt.Printf("< %s\n", scanner.Text())
		}
	}()

	if err := runner.Run(ctx, f); err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Println("Script complete.")
	return nil
}
