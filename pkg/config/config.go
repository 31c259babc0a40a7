package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Network modes.
const (
	ModeAccessPoint = "ap"
	ModeStation     = "station"
)

// Sensor backends.
const (
	SensorADS7828   = "ads7828"
	SensorIIO       = "iio"
	SensorSimulated = "simulation"
)

type MQTTConfig struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
}

type OutputConfig struct {
	Type string      `json:"type"`
	MQTT *MQTTConfig `json:"mqtt,omitempty"`
}

type AccessPointConfig struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
	IP       string `json:"ip"`
	Gateway  string `json:"gateway"`
	Netmask  string `json:"netmask"`
}

type StationConfig struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

type NetworkConfig struct {
	Mode        string            `json:"mode"`
	Interface   string            `json:"interface"`
	AccessPoint AccessPointConfig `json:"access_point"`
	Station     StationConfig     `json:"station"`
}

type Config struct {
	SensorType       string         `json:"sensor_type"`
	I2CBus           string         `json:"i2c_bus"`
	I2CAddress       int            `json:"i2c_address"`
	IIODevice        string         `json:"iio_device"`
	FineChannel      int            `json:"fine_channel"`
	CoarseChannel    int            `json:"coarse_channel"`
	SampleIntervalMs int            `json:"sample_interval_ms"`
	ListenAddr       string         `json:"listen_addr"`
	Network          NetworkConfig  `json:"network"`
	Outputs          []OutputConfig `json:"outputs"`
}

func DefaultConfig() Config {
	return Config{
		SensorType:       SensorADS7828,
		I2CBus:           "1",
		I2CAddress:       0x48,
		IIODevice:        "iio:device0",
		FineChannel:      0,
		CoarseChannel:    1,
		SampleIntervalMs: 500,
		ListenAddr:       ":80",
		Network: NetworkConfig{
			Mode:      ModeAccessPoint,
			Interface: "wlan0",
			AccessPoint: AccessPointConfig{
				SSID:     "debris_tester",
				Password: "password",
				IP:       "192.168.5.1",
				Gateway:  "192.168.5.1",
				Netmask:  "255.255.255.0",
			},
		},
		Outputs: []OutputConfig{{Type: "console"}},
	}
}

// LoadFromFlags loads configuration from a JSON file (optional) and flags.
// Flags override values present in the JSON file. Station credentials belong
// in a config file kept out of version control, not on the command line.
func LoadFromFlags() (Config, error) {
	cfgPath := flag.String("config", "", "Path to JSON config file")
	flagSensorType := flag.String("sensor-type", "", "sensor backend: ads7828|iio|simulation")
	flagI2CBus := flag.String("i2c-bus", "", "I2C bus (e.g., '1' -> /dev/i2c-1)")
	flagI2CAddStr := flag.String("i2c-address", "", "I2C address (decimal or 0x hex)")
	flagIIODevice := flag.String("iio-device", "", "IIO device name (e.g., iio:device0)")
	flagFine := flag.Int("fine-channel", -1, "ADC channel of the fine wear sensor")
	flagCoarse := flag.Int("coarse-channel", -1, "ADC channel of the coarse wear sensor")
	flagInterval := flag.Int("interval-ms", -1, "Sample interval in ms")
	flagListen := flag.String("listen", "", "HTTP listen address (default :80)")
	flagNetMode := flag.String("net-mode", "", "network mode: ap|station")
	flagNetIface := flag.String("net-interface", "", "wireless interface name")
	flagOutputs := flag.String("outputs", "", "Comma-separated outputs (console,mqtt)")
	flagMQTTServer := flag.String("mqtt-server", "", "MQTT server (tcp://host:port)")
	flagMQTTUser := flag.String("mqtt-user", "", "MQTT username")
	flagMQTTPass := flag.String("mqtt-pass", "", "MQTT password")
	flagClientID := flag.String("mqtt-client-id", "", "MQTT client id")
	flagTopic := flag.String("mqtt-topic", "", "MQTT topic")

	flag.Parse()

	cfg := DefaultConfig()

	if *cfgPath != "" {
		b, err := os.ReadFile(*cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if *flagSensorType != "" {
		cfg.SensorType = *flagSensorType
	}
	if *flagI2CBus != "" {
		cfg.I2CBus = *flagI2CBus
	}
	if *flagI2CAddStr != "" {
		v, err := parseIntOrHex(*flagI2CAddStr)
		if err != nil {
			return cfg, fmt.Errorf("i2c-address: %w", err)
		}
		cfg.I2CAddress = v
	}
	if *flagIIODevice != "" {
		cfg.IIODevice = *flagIIODevice
	}
	if *flagFine != -1 {
		cfg.FineChannel = *flagFine
	}
	if *flagCoarse != -1 {
		cfg.CoarseChannel = *flagCoarse
	}
	if *flagInterval != -1 {
		cfg.SampleIntervalMs = *flagInterval
	}
	if *flagListen != "" {
		cfg.ListenAddr = *flagListen
	}
	if *flagNetMode != "" {
		cfg.Network.Mode = *flagNetMode
	}
	if *flagNetIface != "" {
		cfg.Network.Interface = *flagNetIface
	}
	if *flagOutputs != "" {
		parts := parseCSV(*flagOutputs)
		outs := make([]OutputConfig, 0, len(parts))
		for _, p := range parts {
			outs = append(outs, OutputConfig{Type: p})
		}
		cfg.Outputs = outs
	}
	// map mqtt flags onto the mqtt output (create one if missing)
	if *flagMQTTServer != "" || *flagMQTTUser != "" || *flagMQTTPass != "" || *flagClientID != "" || *flagTopic != "" {
		applied := false
		for i := range cfg.Outputs {
			if strings.ToLower(cfg.Outputs[i].Type) == "mqtt" {
				applyMQTTFlags(&cfg.Outputs[i], *flagMQTTServer, *flagMQTTUser, *flagMQTTPass, *flagClientID, *flagTopic)
				applied = true
			}
		}
		if !applied {
			out := OutputConfig{Type: "mqtt"}
			applyMQTTFlags(&out, *flagMQTTServer, *flagMQTTUser, *flagMQTTPass, *flagClientID, *flagTopic)
			cfg.Outputs = append(cfg.Outputs, out)
		}
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the daemon relies on.
func Validate(cfg Config) error {
	switch cfg.SensorType {
	case SensorADS7828, SensorIIO, SensorSimulated:
	default:
		return fmt.Errorf("unknown sensor_type %q", cfg.SensorType)
	}
	if cfg.SampleIntervalMs <= 0 {
		return errors.New("sample_interval_ms must be > 0")
	}
	if cfg.FineChannel < 0 || cfg.FineChannel > 7 {
		return fmt.Errorf("fine_channel %d out of range 0-7", cfg.FineChannel)
	}
	if cfg.CoarseChannel < 0 || cfg.CoarseChannel > 7 {
		return fmt.Errorf("coarse_channel %d out of range 0-7", cfg.CoarseChannel)
	}
	if cfg.FineChannel == cfg.CoarseChannel {
		return errors.New("fine_channel and coarse_channel must differ")
	}
	if cfg.ListenAddr == "" {
		return errors.New("listen_addr must not be empty")
	}
	switch cfg.Network.Mode {
	case ModeAccessPoint:
		if cfg.Network.AccessPoint.SSID == "" {
			return errors.New("access_point.ssid must not be empty")
		}
	case ModeStation:
		if cfg.Network.Station.SSID == "" {
			return errors.New("station.ssid must not be empty")
		}
	default:
		return fmt.Errorf("unknown network mode %q", cfg.Network.Mode)
	}
	for _, out := range cfg.Outputs {
		switch strings.ToLower(out.Type) {
		case "console", "mqtt":
		default:
			return fmt.Errorf("unknown output type %q", out.Type)
		}
	}
	return nil
}

func applyMQTTFlags(out *OutputConfig, server, user, pass, clientID, topic string) {
	if out.MQTT == nil {
		out.MQTT = &MQTTConfig{}
	}
	if server != "" {
		out.MQTT.Server = server
	}
	if user != "" {
		out.MQTT.Username = user
	}
	if pass != "" {
		out.MQTT.Password = pass
	}
	if clientID != "" {
		out.MQTT.ClientID = clientID
	}
	if topic != "" {
		out.MQTT.Topic = topic
	}
}

func parseIntOrHex(s string) (int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 0)
		return int(v), err
	}
	v, err := strconv.Atoi(s)
	return v, err
}

func parseCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
