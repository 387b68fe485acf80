package command

import (
	"errors"
	"testing"

	"animeyes/pkg/eye"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		channel eye.Channel
		angle   int
	}{
		{"1,90", eye.TopEyelidLeft, 90},
		{"6,0", eye.EyeHorizontal, 0},
		{"3,180", eye.BottomEyelidLeft, 180},
		{"2, 45", eye.TopEyelidRight, 45},  // space after comma
		{" 5 , 135 ", eye.EyeVertical, 135}, // padded fields
	}

	for _, tt := range tests {
		cmd, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.line, err)
			continue
		}
		if cmd.Channel != tt.channel || cmd.Angle != tt.angle {
			t.Errorf("Parse(%q) = %+v, want channel %d angle %d",
				tt.line, cmd, tt.channel, tt.angle)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		line     string
		expected error
	}{
		{"190", ErrFormat},     // no comma
		{"", ErrFormat},
		{"1;90", ErrFormat},
		{"one,90", ErrFormat},  // non-integer channel
		{"1,ninety", ErrFormat},
		{"1,", ErrFormat},
		{"0,90", ErrChannel},
		{"7,90", ErrChannel},
		{"-1,90", ErrChannel},
		{"1,181", ErrAngle},
		{"1,-1", ErrAngle},
		{"6,9999", ErrAngle},
	}

	for _, tt := range tests {
		_, err := Parse(tt.line)
		if !errors.Is(err, tt.expected) {
			t.Errorf("Parse(%q) = %v, want %v", tt.line, err, tt.expected)
		}
	}
}

func TestParse_SplitsOnFirstComma(t *testing.T) {
	// "1,90,extra" splits into "1" and "90,extra"; the second field is
	// not an integer, so this is a format error rather than a silent
	// truncation.
	if _, err := Parse("1,90,extra"); !errors.Is(err, ErrFormat) {
		t.Errorf("Parse(\"1,90,extra\") = %v, want %v", err, ErrFormat)
	}
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Channel: eye.EyeVertical, Angle: 58}
	if got := cmd.String(); got != "5,58" {
		t.Errorf("String() = %q, want \"5,58\"", got)
	}
}
