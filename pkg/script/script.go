// Package script runs pose scripts for the eye mechanism.
//
// A script is plain text, one action per line: a named pose ("blink",
// "look_left", ...), a pause ("wait 0.2"), or a raw "channel,angle"
// command. Blank lines and lines starting with '#' are skipped.
package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"animeyes/pkg/command"
	"animeyes/pkg/eye"
)

// Sender delivers commands to the mechanism, either directly or over
// the serial link.
type Sender interface {
	Send(ctx context.Context, cmd command.Command) error
}

// Step is one action within a pose: a command, or a pause when Wait is
// non-zero.
type Step struct {
	Cmd  command.Command
	Wait time.Duration
}

func move(ch eye.Channel, angle int) Step {
	return Step{Cmd: command.Command{Channel: ch, Angle: angle}}
}

func pause(d time.Duration) Step {
	return Step{Wait: d}
}

// Poses send logical angles; the interpreter's channel remaps turn the
// shared eyelid values into mirrored motion. The eye angles are the
// mechanism's tuned positions on the identity channels.
var poses = map[string][]Step{
	"raise_eyelids": {
		move(eye.TopEyelidLeft, 180),
		move(eye.TopEyelidRight, 180),
	},
	"lower_eyelids": {
		move(eye.TopEyelidLeft, 0),
		move(eye.TopEyelidRight, 0),
	},
	"blink": {
		move(eye.TopEyelidLeft, 0),
		move(eye.TopEyelidRight, 0),
		pause(200 * time.Millisecond),
		move(eye.TopEyelidLeft, 180),
		move(eye.TopEyelidRight, 180),
	},
	"open_bottom_eyelid":  {move(eye.BottomEyelidLeft, 112)},
	"close_bottom_eyelid": {move(eye.BottomEyelidLeft, 81)},
	"look_right":          {move(eye.EyeHorizontal, 50)},
	"look_left":           {move(eye.EyeHorizontal, 120)},
	"look_down":           {move(eye.EyeVertical, 58)},
	"look_up":             {move(eye.EyeVertical, 135)},
	"look_forward": {
		move(eye.EyeHorizontal, 90),
		move(eye.EyeVertical, 130),
	},
}

// Pose returns the steps for a named pose.
func Pose(name string) ([]Step, bool) {
	steps, ok := poses[name]
	return steps, ok
}

// PoseNames returns all pose names, sorted.
func PoseNames() []string {
	names := make([]string, 0, len(poses))
	for name := range poses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner executes scripts against a Sender.
type Runner struct {
	sender Sender
	logCh  chan string
}

// NewRunner creates a script runner.
func NewRunner(sender Sender) *Runner {
	return &Runner{
		sender: sender,
		logCh:  make(chan string, 10),
	}
}

// Logs returns a channel that receives progress and skip messages.
func (r *Runner) Logs() <-chan string {
	return r.logCh
}

// Run executes the script line by line. Unknown or malformed lines are
// logged and skipped; a send failure or cancellation stops the script.
func (r *Runner) Run(ctx context.Context, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.runLine(ctx, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func (r *Runner) runLine(ctx context.Context, line string) error {
	if rest, ok := strings.CutPrefix(line, "wait "); ok {
		secs, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil || secs < 0 {
			r.log("skipping bad wait %q", line)
			return nil
		}
		return sleep(ctx, time.Duration(secs*float64(time.Second)))
	}

	if steps, ok := Pose(line); ok {
		r.log("pose %s", line)
		return r.RunSteps(ctx, steps)
	}

	if strings.Contains(line, ",") {
		cmd, err := command.Parse(line)
		if err != nil {
			r.log("skipping %q: %v", line, err)
			return nil
		}
		return r.sender.Send(ctx, cmd)
	}

	r.log("unknown script command: %s", line)
	return nil
}

// RunSteps executes a pose's steps in order.
func (r *Runner) RunSteps(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if step.Wait > 0 {
			if err := sleep(ctx, step.Wait); err != nil {
				return err
			}
			continue
		}
		if err := r.sender.Send(ctx, step.Cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) log(format string, args ...any) {
	select {
	case r.logCh <- fmt.Sprintf(format, args...):
	default:
		// Drop if channel full
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
