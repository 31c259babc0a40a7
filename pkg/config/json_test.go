package config

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalConfigJSON(t *testing.T) {
	js := `{
        "sensor_type": "iio",
        "iio_device": "iio:device1",
        "fine_channel": 2,
        "coarse_channel": 3,
        "sample_interval_ms": 250,
        "listen_addr": ":8080",
        "network": {
            "mode": "station",
            "interface": "wlp2s0",
            "station": {"ssid": "shopfloor", "password": "hunter2"}
        },
        "outputs": [
            {"type": "console"},
            {"type": "mqtt", "mqtt": {"server": "tcp://broker:1883", "topic": "plant/debris"}}
        ]
    }`

	cfg := DefaultConfig()
	if err := json.Unmarshal([]byte(js), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.SensorType != SensorIIO || cfg.IIODevice != "iio:device1" {
		t.Fatalf("sensor backend: %q %q", cfg.SensorType, cfg.IIODevice)
	}
	if cfg.FineChannel != 2 || cfg.CoarseChannel != 3 {
		t.Fatalf("channels: %d %d", cfg.FineChannel, cfg.CoarseChannel)
	}
	if cfg.SampleIntervalMs != 250 || cfg.ListenAddr != ":8080" {
		t.Fatalf("interval/listen: %d %q", cfg.SampleIntervalMs, cfg.ListenAddr)
	}
	if cfg.Network.Mode != ModeStation || cfg.Network.Interface != "wlp2s0" {
		t.Fatalf("network: %+v", cfg.Network)
	}
	if cfg.Network.Station.SSID != "shopfloor" || cfg.Network.Station.Password != "hunter2" {
		t.Fatalf("station credentials: %+v", cfg.Network.Station)
	}
	// defaults not mentioned in the file survive the merge
	if cfg.Network.AccessPoint.SSID != "debris_tester" {
		t.Fatalf("AP defaults lost: %+v", cfg.Network.AccessPoint)
	}
	if len(cfg.Outputs) != 2 || cfg.Outputs[1].Type != "mqtt" {
		t.Fatalf("outputs: %+v", cfg.Outputs)
	}
	if cfg.Outputs[1].MQTT == nil || cfg.Outputs[1].MQTT.Topic != "plant/debris" {
		t.Fatalf("mqtt output: %+v", cfg.Outputs[1].MQTT)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
