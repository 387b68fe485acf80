// Package command implements the "channel,angle" line protocol and the
// interpreter loop that drives the servos from it.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"animeyes/pkg/eye"
)

// Command is a single parsed instruction: move one channel to an angle.
type Command struct {
	Channel eye.Channel
	Angle   int
}

// Parse failure classes. Callers branch on these with errors.Is; the
// messages double as the wire error text.
var (
	ErrFormat  = errors.New(`invalid command, expected "channel,angle"`)
	ErrChannel = fmt.Errorf("channel out of range %d-%d", eye.MinChannel, eye.MaxChannel)
	ErrAngle   = fmt.Errorf("angle out of range %d-%d", eye.MinAngle, eye.MaxAngle)
)

// Parse parses one line of the wire protocol. The line is split on the
// first comma into two integer fields: channel and requested angle.
func Parse(line string) (Command, error) {
	chField, angleField, ok := strings.Cut(line, ",")
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrFormat, line)
	}

	ch, err := strconv.Atoi(strings.TrimSpace(chField))
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrFormat, line)
	}
	angle, err := strconv.Atoi(strings.TrimSpace(angleField))
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrFormat, line)
	}

	if !eye.Channel(ch).Valid() {
		return Command{}, fmt.Errorf("%w: got %d", ErrChannel, ch)
	}
	if angle < eye.MinAngle || angle > eye.MaxAngle {
		return Command{}, fmt.Errorf("%w: got %d", ErrAngle, angle)
	}

	return Command{Channel: eye.Channel(ch), Angle: angle}, nil
}

// String renders the command in wire format.
func (c Command) String() string {
	return fmt.Sprintf("%d,%d", int(c.Channel), c.Angle)
}
