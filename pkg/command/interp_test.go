package command

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"animeyes/pkg/eye"
)

type fakeMove struct {
	Channel eye.Channel
	Angle   int
}

type fakeMover struct {
	moves []fakeMove
	err   error
}

func (f *fakeMover) Move(_ context.Context, ch eye.Channel, angle int) error {
	if f.err != nil {
		return f.err
	}
	f.moves = append(f.moves, fakeMove{ch, angle})
	return nil
}

func runInterpreter(t *testing.T, input string, mover Mover) string {
	t.Helper()
	var out bytes.Buffer
	it := NewInterpreter(strings.NewReader(input), &out, mover, eye.DefaultCalibration())
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestInterpreter_CalibratedMoves(t *testing.T) {
	tests := []struct {
		line    string
		channel eye.Channel
		angle   int // calibrated angle written to the servo
		reply   string
	}{
		{"1,0", eye.TopEyelidLeft, 69, "servo 1 set to 69"},
		{"1,180", eye.TopEyelidLeft, 154, "servo 1 set to 154"},
		{"2,0", eye.TopEyelidRight, 154, "servo 2 set to 154"},
		{"2,180", eye.TopEyelidRight, 69, "servo 2 set to 69"},
		{"3,180", eye.BottomEyelidLeft, 180, "servo 3 set to 180"},
		{"5,58", eye.EyeVertical, 58, "servo 5 set to 58"},
		{"6,120", eye.EyeHorizontal, 120, "servo 6 set to 120"},
	}

	for _, tt := range tests {
		mover := &fakeMover{}
		got := runInterpreter(t, tt.line+"\n", mover)

		if len(mover.moves) != 1 {
			t.Errorf("%q: %d moves, want 1", tt.line, len(mover.moves))
			continue
		}
		if mover.moves[0].Channel != tt.channel || mover.moves[0].Angle != tt.angle {
			t.Errorf("%q moved %+v, want channel %d angle %d",
				tt.line, mover.moves[0], tt.channel, tt.angle)
		}
		if got != tt.reply+"\n" {
			t.Errorf("%q replied %q, want %q", tt.line, got, tt.reply+"\n")
		}
	}
}

func TestInterpreter_OutputWithinCalibratedRange(t *testing.T) {
	cal := eye.DefaultCalibration()

	for _, ch := range eye.AllChannels() {
		min, max := cal.For(ch).Range()
		for angle := eye.MinAngle; angle <= eye.MaxAngle; angle += 9 {
			mover := &fakeMover{}
			cmd := Command{Channel: ch, Angle: angle}
			runInterpreter(t, cmd.String()+"\n", mover)

			if len(mover.moves) != 1 {
				t.Fatalf("%s: no move", cmd)
			}
			if got := mover.moves[0].Angle; got < min || got > max {
				t.Errorf("%s wrote %d, outside calibrated range [%d,%d]",
					cmd, got, min, max)
			}
		}
	}
}

func TestInterpreter_BadInput(t *testing.T) {
	tests := []struct {
		line  string
		reply string
	}{
		{"190", `error: invalid command, expected "channel,angle": "190"`},
		{"7,90", "error: channel out of range 1-6: got 7"},
		{"1,200", "error: angle out of range 0-180: got 200"},
	}

	for _, tt := range tests {
		mover := &fakeMover{}
		got := runInterpreter(t, tt.line+"\n", mover)

		if len(mover.moves) != 0 {
			t.Errorf("%q: bad input reached the mover: %+v", tt.line, mover.moves)
		}
		if got != tt.reply+"\n" {
			t.Errorf("%q replied %q, want %q", tt.line, got, tt.reply+"\n")
		}
	}
}

func TestInterpreter_KeepsGoingAfterErrors(t *testing.T) {
	mover := &fakeMover{}
	input := "garbage\n1,0\n9,9\n\r\n6,90\n"
	out := runInterpreter(t, input, mover)

	if len(mover.moves) != 2 {
		t.Fatalf("%d moves, want 2 (errors and blank lines skipped)", len(mover.moves))
	}
	if mover.moves[0] != (fakeMove{eye.TopEyelidLeft, 69}) {
		t.Errorf("first move = %+v", mover.moves[0])
	}
	if mover.moves[1] != (fakeMove{eye.EyeHorizontal, 90}) {
		t.Errorf("second move = %+v", mover.moves[1])
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("%d response lines, want 4 (blank line gets none): %q", len(lines), out)
	}
}

func TestInterpreter_StripsCarriageReturn(t *testing.T) {
	mover := &fakeMover{}
	runInterpreter(t, "4,45\r\n", mover)

	if len(mover.moves) != 1 || mover.moves[0] != (fakeMove{eye.BottomEyelidRight, 45}) {
		t.Errorf("CRLF input not handled: %+v", mover.moves)
	}
}

func TestInterpreter_MoveError(t *testing.T) {
	mover := &fakeMover{err: errors.New("bus timeout")}
	out := runInterpreter(t, "3,90\n", mover)

	if !strings.HasPrefix(out, "error: servo 3:") {
		t.Errorf("move failure reply = %q", out)
	}
}

func TestInterpreter_LogsMirrorReplies(t *testing.T) {
	var out bytes.Buffer
	it := NewInterpreter(strings.NewReader("1,0\n"), &out, &fakeMover{}, eye.DefaultCalibration())
	if err := it.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	select {
	case msg := <-it.Logs():
		if msg != "servo 1 set to 69" {
			t.Errorf("log = %q", msg)
		}
	default:
		t.Error("no log message for the confirmation")
	}
}
