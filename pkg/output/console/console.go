package console

import (
	"fmt"

	"github.com/oildebris/monitor/pkg/output"
	"github.com/oildebris/monitor/pkg/sensor"
)

type ConsoleOutput struct{}

func NewConsole() output.Output { return &ConsoleOutput{} }

// Publish prints one diagnostic line per sample, the same line the original
// bench rig showed on its serial monitor.
func (c *ConsoleOutput) Publish(s sensor.Sample) error {
	fmt.Printf("Fine Wear Voltage: %.2fV Coarse Wear Voltage: %.2fV Sum: %.2fV\n",
		s.Fine.Voltage, s.Coarse.Voltage, s.Sum())
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }
