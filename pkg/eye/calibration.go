package eye

// Commanded angles are always in [MinAngle, MaxAngle] degrees.
const (
	MinAngle = 0
	MaxAngle = 180
)

// ChannelCalibration is a linear remap from the commanded angle range
// [0,180] onto a channel's mechanical range. Low is the output at angle
// 0 and High the output at angle 180; Low > High inverts the channel.
type ChannelCalibration struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Apply remaps a commanded angle onto the calibrated range.
// Integer math, truncating, so the endpoints map exactly.
func (c ChannelCalibration) Apply(angle int) int {
	return c.Low + angle*(c.High-c.Low)/MaxAngle
}

// Reversed reports whether the channel runs inverted.
func (c ChannelCalibration) Reversed() bool {
	return c.Low > c.High
}

// Range returns the calibrated output range in ascending order.
func (c ChannelCalibration) Range() (min, max int) {
	if c.Reversed() {
		return c.High, c.Low
	}
	return c.Low, c.High
}

// identity passes the commanded angle through unchanged.
var identity = ChannelCalibration{Low: MinAngle, High: MaxAngle}

// Calibration holds the per-channel remaps. Channels without an entry
// are identity.
type Calibration map[Channel]ChannelCalibration

// DefaultCalibration returns the factory calibration for the eye
// mechanism: the top eyelid servos reach their mechanical stops at 69
// and 154 degrees, and the right one is mounted mirrored.
func DefaultCalibration() Calibration {
	return Calibration{
		TopEyelidLeft:  {Low: 69, High: 154},
		TopEyelidRight: {Low: 154, High: 69},
	}
}

// For returns the remap for a channel, identity if none is configured.
func (c Calibration) For(ch Channel) ChannelCalibration {
	if cc, ok := c[ch]; ok {
		return cc
	}
	return identity
}

// Apply remaps a commanded angle for the given channel.
func (c Calibration) Apply(ch Channel, angle int) int {
	return c.For(ch).Apply(angle)
}
