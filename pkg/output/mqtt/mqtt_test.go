package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/oildebris/monitor/pkg/sensor"
)

func TestSamplePayload(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	s := sensor.Sample{
		Fine:   sensor.Reading{Channel: 0, Raw: 2048, Voltage: 2.5, Timestamp: ts},
		Coarse: sensor.Reading{Channel: 1, Raw: 1024, Voltage: 1.25, Timestamp: ts},
	}
	b, err := samplePayload(s)
	if err != nil {
		t.Fatalf("samplePayload: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got["fine_voltage"] != 2.5 || got["coarse_voltage"] != 1.25 {
		t.Fatalf("voltages: %v", got)
	}
	if got["sum"] != 3.75 {
		t.Fatalf("sum: %v", got["sum"])
	}
	if got["fine_raw"] != float64(2048) || got["coarse_raw"] != float64(1024) {
		t.Fatalf("raw counts: %v", got)
	}
}
