package sensor

import "time"

// Both wear channels come from a 12-bit converter referenced to the 5 V
// sensor supply.
const (
	MaxCount   = 4095
	FullScaleV = 5.0
)

// Convert maps a raw 12-bit count to volts.
func Convert(raw uint16) float64 {
	return float64(raw) * (FullScaleV / float64(MaxCount))
}

type Reading struct {
	Channel   int       `json:"channel"`
	Raw       uint16    `json:"raw"`
	Voltage   float64   `json:"voltage"`
	Timestamp time.Time `json:"timestamp"`
}

// Sample is one pair of wear readings taken in the same cycle.
type Sample struct {
	Fine   Reading `json:"fine"`
	Coarse Reading `json:"coarse"`
}

func (s Sample) Sum() float64 {
	return s.Fine.Voltage + s.Coarse.Voltage
}

// Sensor reads the fine and coarse wear channels.
type Sensor interface {
	ReadSample() (Sample, error)
	Close() error
}
