package main

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"animeyes/pkg/command"
)

type SendCommand struct {
	Port string `long:"port" description:"Command serial port"`
	Baud int    `long:"baud" description:"Command port baud rate"`
	Args struct {
		Command string `positional-arg-name:"channel,angle" required:"yes"`
	} `positional-args:"yes"`
}

func (c *SendCommand) Execute(args []string) error {
	// Validate locally before touching the port; the daemon would
	// reject it anyway.
	cmd, err := command.Parse(c.Args.Command)
	if err != nil {
		return err
	}

	sp, err := openCommandPort(loadConfigOrDefault(), c.Port, c.Baud)
	if err != nil {
		return err
	}
	defer sp.Close()

	sender := &lineSender{port: sp}
	if err := sender.Send(context.Background(), cmd); err != nil {
		return err
	}

	sp.SetReadTimeout(2 * time.Second)
	reply, err := bufio.NewReader(sp).ReadString('\n')
	if err != nil {
		return fmt.Errorf("no reply: %w", err)
	}
	fmt.Print(reply)

	return nil
}
