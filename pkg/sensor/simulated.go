package sensor

import (
	"math/rand"
	"sync"
	"time"
)

// SimulatedSensor produces random 12-bit counts. Useful for running the
// daemon on a desk with no ADC attached.
type SimulatedSensor struct {
	fineCh   int
	coarseCh int
	mu       sync.Mutex
}

func NewSimulated(fineCh, coarseCh int) Sensor {
	return &SimulatedSensor{fineCh: fineCh, coarseCh: coarseCh}
}

func (f *SimulatedSensor) ReadSample() (Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	fine := uint16(rand.Intn(MaxCount + 1))
	coarse := uint16(rand.Intn(MaxCount + 1))
	return Sample{
		Fine:   Reading{Channel: f.fineCh, Raw: fine, Voltage: Convert(fine), Timestamp: now},
		Coarse: Reading{Channel: f.coarseCh, Raw: coarse, Voltage: Convert(coarse), Timestamp: now},
	}, nil
}

func (f *SimulatedSensor) Close() error { return nil }
