// Package eye provides abstractions for the animatronic eye mechanism.
package eye

import "fmt"

// Channel identifies one servo output. Channel N is wired to the servo
// with bus ID N.
type Channel int

// Channels of the eye mechanism.
const (
	TopEyelidLeft Channel = iota + 1
	TopEyelidRight
	BottomEyelidLeft
	BottomEyelidRight
	EyeVertical
	EyeHorizontal
)

// MinChannel and MaxChannel bound the valid channel numbers.
const (
	MinChannel = int(TopEyelidLeft)
	MaxChannel = int(EyeHorizontal)
)

var channelNames = map[Channel]string{
	TopEyelidLeft:     "top_eyelid_left",
	TopEyelidRight:    "top_eyelid_right",
	BottomEyelidLeft:  "bottom_eyelid_left",
	BottomEyelidRight: "bottom_eyelid_right",
	EyeVertical:       "eye_vertical",
	EyeHorizontal:     "eye_horizontal",
}

// AllChannels returns all channels in order (matching servo IDs 1-6).
func AllChannels() []Channel {
	return []Channel{
		TopEyelidLeft,
		TopEyelidRight,
		BottomEyelidLeft,
		BottomEyelidRight,
		EyeVertical,
		EyeHorizontal,
	}
}

// Valid reports whether the channel is one of the six servo outputs.
func (c Channel) Valid() bool {
	return int(c) >= MinChannel && int(c) <= MaxChannel
}

// Name returns the channel's mechanism name, e.g. "eye_horizontal".
func (c Channel) Name() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("channel_%d", int(c))
}

func (c Channel) String() string {
	return fmt.Sprintf("%d (%s)", int(c), c.Name())
}
