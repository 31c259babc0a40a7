package mqtt

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/oildebris/monitor/pkg/config"
	"github.com/oildebris/monitor/pkg/output"
	"github.com/oildebris/monitor/pkg/sensor"
)

const (
	DefaultServer   = "tcp://localhost:1883"
	DefaultClientID = "oil-debris-monitor"
	DefaultTopic    = "oildebris/sample"
)

type MQTTOutput struct {
	client mqtt.Client
	topic  string
}

func NewMQTT(cfg config.MQTTConfig) (output.Output, error) {
	server := cfg.Server
	if server == "" {
		server = DefaultServer
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = DefaultClientID
	}
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	opts := mqtt.NewClientOptions().AddBroker(server).SetClientID(clientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTTOutput{client: client, topic: topic}, nil
}

func (m *MQTTOutput) Publish(s sensor.Sample) error {
	b, err := samplePayload(s)
	if err != nil {
		return err
	}
	token := m.client.Publish(m.topic, 0, false, b)
	token.Wait()
	return token.Error()
}

func (m *MQTTOutput) Close() error {
	if m.client != nil {
		m.client.Disconnect(250)
	}
	return nil
}

// samplePayload builds the JSON body published per sample. Raw counts ride
// along so downstream tools can re-derive voltages with their own scaling.
func samplePayload(s sensor.Sample) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"fine_voltage":   s.Fine.Voltage,
		"coarse_voltage": s.Coarse.Voltage,
		"sum":            s.Sum(),
		"fine_raw":       s.Fine.Raw,
		"coarse_raw":     s.Coarse.Raw,
		"timestamp":      s.Fine.Timestamp,
	})
}
