package eye

import "testing"

func TestChannelCalibration_Apply(t *testing.T) {
	topLeft := ChannelCalibration{Low: 69, High: 154}
	topRight := ChannelCalibration{Low: 154, High: 69}

	tests := []struct {
		name     string
		cal      ChannelCalibration
		angle    int
		expected int
	}{
		{"top left min", topLeft, 0, 69},
		{"top left max", topLeft, 180, 154},
		{"top left mid", topLeft, 90, 111}, // 69 + 90*85/180, truncated
		{"top right min", topRight, 0, 154},
		{"top right max", topRight, 180, 69},
		{"top right mid", topRight, 90, 112},
		{"identity min", identity, 0, 0},
		{"identity max", identity, 180, 180},
		{"identity mid", identity, 90, 90},
	}

	for _, tt := range tests {
		got := tt.cal.Apply(tt.angle)
		if got != tt.expected {
			t.Errorf("%s: Apply(%d) = %d, want %d", tt.name, tt.angle, got, tt.expected)
		}
	}
}

func TestChannelCalibration_ApplyStaysInRange(t *testing.T) {
	cals := []ChannelCalibration{
		{Low: 69, High: 154},
		{Low: 154, High: 69},
		identity,
		{Low: 81, High: 112},
	}

	for _, cal := range cals {
		min, max := cal.Range()
		for angle := MinAngle; angle <= MaxAngle; angle++ {
			got := cal.Apply(angle)
			if got < min || got > max {
				t.Fatalf("Apply(%d) = %d, outside range [%d,%d] for %+v",
					angle, got, min, max, cal)
			}
		}
	}
}

func TestChannelCalibration_Reversed(t *testing.T) {
	if (ChannelCalibration{Low: 69, High: 154}).Reversed() {
		t.Error("Low < High should not be reversed")
	}
	if !(ChannelCalibration{Low: 154, High: 69}).Reversed() {
		t.Error("Low > High should be reversed")
	}
}

func TestDefaultCalibration(t *testing.T) {
	cal := DefaultCalibration()

	tests := []struct {
		ch       Channel
		angle    int
		expected int
	}{
		{TopEyelidLeft, 0, 69},
		{TopEyelidLeft, 180, 154},
		{TopEyelidRight, 0, 154},
		{TopEyelidRight, 180, 69},
		{BottomEyelidLeft, 0, 0},
		{BottomEyelidRight, 180, 180},
		{EyeVertical, 58, 58},
		{EyeHorizontal, 120, 120},
	}

	for _, tt := range tests {
		got := cal.Apply(tt.ch, tt.angle)
		if got != tt.expected {
			t.Errorf("Apply(%s, %d) = %d, want %d", tt.ch.Name(), tt.angle, got, tt.expected)
		}
	}
}

func TestCalibration_ForUnconfigured(t *testing.T) {
	cal := Calibration{}
	cc := cal.For(EyeHorizontal)
	if cc != identity {
		t.Errorf("For(eye_horizontal) = %+v, want identity", cc)
	}
}
