// Package sampler runs the periodic acquisition task: read both wear
// channels, publish the voltages into the shared cells, and fan the sample
// out to the configured outputs.
package sampler

import (
	"context"
	"log"
	"time"

	"github.com/oildebris/monitor/pkg/cell"
	"github.com/oildebris/monitor/pkg/output"
	"github.com/oildebris/monitor/pkg/sensor"
)

type Sampler struct {
	sensor   sensor.Sensor
	fine     *cell.Cell[float64]
	coarse   *cell.Cell[float64]
	interval time.Duration
	outputs  []output.Output
}

func New(s sensor.Sensor, fine, coarse *cell.Cell[float64], interval time.Duration, outputs []output.Output) *Sampler {
	return &Sampler{sensor: s, fine: fine, coarse: coarse, interval: interval, outputs: outputs}
}

// Run samples immediately, then once per interval until ctx is cancelled.
// One goroutine; no overlap between cycles.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sampleOnce()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sampleOnce()
		}
	}
}

// sampleOnce reads the sensor and commits both cells. The cell writes are
// independent; a concurrent reader may see one new and one old value. A
// failed hardware read leaves the previous cell values in place.
func (s *Sampler) sampleOnce() {
	smp, err := s.sensor.ReadSample()
	if err != nil {
		log.Printf("sensor read failed, keeping previous values: %v", err)
		return
	}
	s.fine.Put(smp.Fine.Voltage)
	s.coarse.Put(smp.Coarse.Voltage)

	for _, out := range s.outputs {
		if err := out.Publish(smp); err != nil {
			log.Printf("output publish error: %v", err)
		}
	}
}
