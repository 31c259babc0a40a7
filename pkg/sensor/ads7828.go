package sensor

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// ADS7828Sensor reads the wear channels from an ADS7828, a 12-bit 8-channel
// I2C ADC. One conversion per channel per sample: write the command byte,
// read the 2-byte result.
type ADS7828Sensor struct {
	dev      *i2c.Dev
	bus      i2c.BusCloser
	fineCh   int
	coarseCh int
}

func NewADS7828(busName string, addr, fineCh, coarseCh int) (Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c: %w", err)
	}
	dev := &i2c.Dev{Addr: uint16(addr), Bus: bus}
	return &ADS7828Sensor{dev: dev, bus: bus, fineCh: fineCh, coarseCh: coarseCh}, nil
}

func (s *ADS7828Sensor) Close() error {
	if s.bus != nil {
		return s.bus.Close()
	}
	return nil
}

func (s *ADS7828Sensor) ReadSample() (Sample, error) {
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

func (s *ADS7828Sensor) readChannel(channel int) (uint16, error) {
	cmd, err := commandByte(channel)
	if err != nil {
		return 0, err
	}
	readBuf := make([]byte, 2)
	if err := s.dev.Tx([]byte{cmd}, readBuf); err != nil {
		return 0, fmt.Errorf("read channel %d: %w", channel, err)
	}
	raw := uint16(readBuf[0])<<8 | uint16(readBuf[1])
	return raw & MaxCount, nil
}

// commandByte builds the ADS7828 command: SD=1 (single-ended), channel
// select bits C2..C0, PD1:PD0=01 (internal reference off, converter on).
// The mux table interleaves even and odd inputs, hence the lookup.
func commandByte(channel int) (byte, error) {
	if channel < 0 || channel > 7 {
		return 0, fmt.Errorf("invalid channel %d", channel)
	}
	sel := [8]byte{0x0, 0x4, 0x1, 0x5, 0x2, 0x6, 0x3, 0x7}
	return 0x80 | sel[channel]<<4 | 0x04, nil
}
