package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"animeyes/pkg/eye"
)

// Mover is the hardware side of the interpreter. eye.Rig satisfies it.
type Mover interface {
	Move(ctx context.Context, ch eye.Channel, angle int) error
}

// Interpreter reads "channel,angle" lines from a command link, applies
// the calibration remap and drives the servos. Every line gets exactly
// one response line: a confirmation, or an error after which the
// command is dropped.
type Interpreter struct {
	in    io.Reader
	out   io.Writer
	mover Mover
	cal   eye.Calibration
	logCh chan string
}

// NewInterpreter creates an interpreter reading commands from in and
// writing response lines to out.
func NewInterpreter(in io.Reader, out io.Writer, mover Mover, cal eye.Calibration) *Interpreter {
	return &Interpreter{
		in:    in,
		out:   out,
		mover: mover,
		cal:   cal,
		logCh: make(chan string, 10),
	}
}

// Logs returns a channel that receives a copy of every response line.
func (it *Interpreter) Logs() <-chan string {
	return it.logCh
}

// Run processes commands until the input is exhausted or ctx is
// canceled. Malformed or out-of-range commands are reported and
// dropped; the loop keeps going.
func (it *Interpreter) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(it.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		it.handle(ctx, line)
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return ctx.Err()
}

func (it *Interpreter) handle(ctx context.Context, line string) {
	cmd, err := Parse(line)
	if err != nil {
		it.reply("error: %v", err)
		return
	}

	angle := it.cal.Apply(cmd.Channel, cmd.Angle)
	if err := it.mover.Move(ctx, cmd.Channel, angle); err != nil {
		it.reply("error: servo %d: %v", int(cmd.Channel), err)
		return
	}

	it.reply("servo %d set to %d", int(cmd.Channel), angle)
}

func (it *Interpreter) reply(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(it.out, msg)

	select {
	case it.logCh <- msg:
	default:
		// Drop if channel full
	}
}
