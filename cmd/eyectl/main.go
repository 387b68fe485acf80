package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Serve   ServeCommand   `command:"serve" description:"Run the command interpreter daemon"`
	Setup   SetupCommand   `command:"setup" description:"Scan for the servo bus and write the config file"`
	Control ControlCommand `command:"control" description:"Drive the mechanism interactively"`
	Send    SendCommand    `command:"send" description:"Send a single channel,angle command"`
	Script  ScriptCommand  `command:"script" description:"Run a pose script file"`
	Ports   PortsCommand   `command:"ports" description:"List available serial ports"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Animeyes - serial command controller for a six-servo animatronic eye mechanism"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
