package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// IIOSensor reads raw counts from the Linux IIO sysfs interface, for boards
// whose ADC already has a kernel driver.
type IIOSensor struct {
	device   string
	fineCh   int
	coarseCh int
}

func NewIIO(device string, fineCh, coarseCh int) Sensor {
	return &IIOSensor{device: device, fineCh: fineCh, coarseCh: coarseCh}
}

func (s *IIOSensor) ReadSample() (Sample, error) {
	now := time.Now()
	fine, err := s.readChannel(s.fineCh)
	if err != nil {
		return Sample{}, err
	}
	coarse, err := s.readChannel(s.coarseCh)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Fine:   Reading{Channel: s.fineCh, Raw: fine, Voltage: Convert(fine), Timestamp: now},
		Coarse: Reading{Channel: s.coarseCh, Raw: coarse, Voltage: Convert(coarse), Timestamp: now},
	}, nil
}

func (s *IIOSensor) readChannel(channel int) (uint16, error) {
	path := fmt.Sprintf("/sys/bus/iio/devices/%s/in_voltage%d_raw", s.device, channel)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return clampCount(value), nil
}

func (s *IIOSensor) Close() error { return nil }

func clampCount(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > MaxCount {
		return MaxCount
	}
	return uint16(v)
}
