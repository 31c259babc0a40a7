package output

import "github.com/oildebris/monitor/pkg/sensor"

// Output receives each completed sample. Implementations live in
// subpackages.
type Output interface {
	Publish(sensor.Sample) error
	Close() error
}
