package eye

import (
	"path/filepath"
	"testing"
)

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animeyes.json")

	cfg := &Config{
		BusPort:     "/dev/ttyACM0",
		CommandPort: "/dev/ttyUSB0",
		CommandBaud: 9600,
		Calibration: DefaultCalibration(),
	}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}

	if loaded.BusPort != cfg.BusPort {
		t.Errorf("BusPort = %q, want %q", loaded.BusPort, cfg.BusPort)
	}
	if loaded.CommandPort != cfg.CommandPort {
		t.Errorf("CommandPort = %q, want %q", loaded.CommandPort, cfg.CommandPort)
	}
	if loaded.CommandBaud != cfg.CommandBaud {
		t.Errorf("CommandBaud = %d, want %d", loaded.CommandBaud, cfg.CommandBaud)
	}

	left := loaded.Calibration.For(TopEyelidLeft)
	if left.Low != 69 || left.High != 154 {
		t.Errorf("TopEyelidLeft calibration = %+v, want {69 154}", left)
	}
	right := loaded.Calibration.For(TopEyelidRight)
	if !right.Reversed() {
		t.Errorf("TopEyelidRight should survive as reversed: %+v", right)
	}
}

func TestConfig_EffectiveCalibration(t *testing.T) {
	var cfg Config
	cal := cfg.EffectiveCalibration()
	if cal.Apply(TopEyelidLeft, 0) != 69 {
		t.Error("empty config should fall back to the default calibration")
	}

	cfg.Calibration = Calibration{TopEyelidLeft: {Low: 10, High: 20}}
	if cfg.EffectiveCalibration().Apply(TopEyelidLeft, 0) != 10 {
		t.Error("configured calibration should win over the default")
	}
}

func TestLoadConfigFrom_Missing(t *testing.T) {
	if _, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("loading a missing file should fail")
	}
}
