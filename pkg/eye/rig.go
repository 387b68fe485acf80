package eye

import (
	"context"
	"fmt"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Servo counts for the STS series: 4096 counts per revolution, with the
// commanded [0,180] degree range centered on the mid position so that
// angle 90 sits at count 2048.
const (
	rawZero     = 1024
	rawPerRange = 2048
)

// DegreesToRaw converts an angle in degrees to a servo count.
// Rounds to the nearest count so RawToDegrees inverts it exactly.
func DegreesToRaw(deg int) int {
	return rawZero + (deg*rawPerRange+MaxAngle/2)/MaxAngle
}

// RawToDegrees converts a servo count back to degrees.
func RawToDegrees(raw int) int {
	return ((raw-rawZero)*MaxAngle + rawPerRange/2) / rawPerRange
}

// Rig drives the eye mechanism's servos over a Feetech bus.
type Rig struct {
	bus   *feetech.Bus
	group *feetech.ServoGroup
}

// RigConfig holds configuration for connecting to the rig.
type RigConfig struct {
	// Port is the serial port of the servo bus.
	Port string

	// BaudRate defaults to 1000000.
	BaudRate int

	// Transport overrides Port when set. Used in tests.
	Transport feetech.Transport
}

// NewRig opens the servo bus and prepares one servo per channel.
func NewRig(cfg RigConfig) (*Rig, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 1_000_000
	}

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:      cfg.Port,
		BaudRate:  cfg.BaudRate,
		Protocol:  feetech.ProtocolSTS,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	ids := make([]int, 0, len(AllChannels()))
	for _, ch := range AllChannels() {
		ids = append(ids, int(ch))
	}

	return &Rig{
		bus:   bus,
		group: feetech.NewServoGroupByIDs(bus, ids...),
	}, nil
}

// Close closes the rig's bus connection.
func (r *Rig) Close() error {
	return r.bus.Close()
}

// Enable enables torque on all servos.
func (r *Rig) Enable(ctx context.Context) error {
	return r.group.EnableAll(ctx)
}

// Disable disables torque on all servos.
func (r *Rig) Disable(ctx context.Context) error {
	return r.group.DisableAll(ctx)
}

// Move commands one channel to the given angle in degrees. The angle is
// expected to be calibrated already.
func (r *Rig) Move(ctx context.Context, ch Channel, angle int) error {
	if !ch.Valid() {
		return fmt.Errorf("channel %d: no servo attached", int(ch))
	}

	raw := DegreesToRaw(angle)
	if err := r.group.SetPositions(ctx, feetech.PositionMap{int(ch): raw}); err != nil {
		return fmt.Errorf("move servo %d: %w", int(ch), err)
	}

	return nil
}

// Angles reads back the current angle of every channel.
func (r *Rig) Angles(ctx context.Context) (map[Channel]int, error) {
	raw, err := r.group.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	angles := make(map[Channel]int, len(raw))
	for id, pos := range raw {
		angles[Channel(id)] = RawToDegrees(pos)
	}
	return angles, nil
}
