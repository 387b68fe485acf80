// Package animeyes drives a six-servo animatronic eye mechanism over a
// plain-text serial protocol.
//
// Commands arrive one per line in the form "channel,angle", where the
// channel is 1-6 and the angle is 0-180 degrees. The eyelid channels
// carry a fixed linear remap onto their mechanical range (channel 2 is
// mounted mirrored and runs inverted); the remaining channels pass the
// angle through unchanged.
//
// # Usage
//
// Run setup to find the servo bus and write the config file:
//
//	eyectl setup
//
// Then start the daemon that interprets commands from the serial link:
//
//	eyectl serve
//
// Or drive the mechanism interactively from another machine:
//
//	eyectl control
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/eyectl: CLI with serve, setup, control, send, script and ports commands
//   - pkg/eye: channels, calibration, servo rig and configuration
//   - pkg/command: line protocol parser and command interpreter
//   - pkg/script: pose script runner (wait, blink, look_left, ...)
package animeyes
