package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oildebris/monitor/pkg/cell"
	"github.com/oildebris/monitor/pkg/config"
	"github.com/oildebris/monitor/pkg/netif"
	"github.com/oildebris/monitor/pkg/output"
	"github.com/oildebris/monitor/pkg/output/console"
	mqttout "github.com/oildebris/monitor/pkg/output/mqtt"
	"github.com/oildebris/monitor/pkg/sampler"
	"github.com/oildebris/monitor/pkg/sensor"
	"github.com/oildebris/monitor/pkg/web"
)

func main() {
	log.Println("starting oil debris monitor...")

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sens, err := buildSensor(cfg)
	if err != nil {
		log.Fatalf("sensor init: %v", err)
	}
	defer sens.Close()

	if err := buildNetworkMode(cfg.Network).BringUp(ctx); err != nil {
		log.Fatalf("network bring-up: %v", err)
	}

	outs, err := buildOutputs(cfg)
	if err != nil {
		log.Fatalf("outputs: %v", err)
	}
	defer closeOutputs(outs)

	fineCell := cell.New(0.0)
	coarseCell := cell.New(0.0)

	interval := time.Duration(cfg.SampleIntervalMs) * time.Millisecond
	smp := sampler.New(sens, fineCell, coarseCell, interval, outs)
	go smp.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: web.NewServer(fineCell, coarseCell).Handler(),
	}
	go func() {
		log.Printf("HTTP server started on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

func buildSensor(cfg config.Config) (sensor.Sensor, error) {
	switch cfg.SensorType {
	case "", config.SensorADS7828:
		return sensor.NewADS7828(cfg.I2CBus, cfg.I2CAddress, cfg.FineChannel, cfg.CoarseChannel)
	case config.SensorIIO:
		return sensor.NewIIO(cfg.IIODevice, cfg.FineChannel, cfg.CoarseChannel), nil
	case config.SensorSimulated:
		return sensor.NewSimulated(cfg.FineChannel, cfg.CoarseChannel), nil
	default:
		return nil, fmt.Errorf("unknown sensor type %q", cfg.SensorType)
	}
}

func buildNetworkMode(nc config.NetworkConfig) netif.Mode {
	if nc.Mode == config.ModeStation {
		return netif.Station{
			Interface: nc.Interface,
			SSID:      nc.Station.SSID,
			Password:  nc.Station.Password,
		}
	}
	ap := nc.AccessPoint
	return netif.AccessPoint{
		Interface: nc.Interface,
		SSID:      ap.SSID,
		Password:  ap.Password,
		IP:        ap.IP,
		Gateway:   ap.Gateway,
		Netmask:   ap.Netmask,
	}
}

func buildOutputs(cfg config.Config) ([]output.Output, error) {
	outs := make([]output.Output, 0, len(cfg.Outputs))
	for _, oc := range cfg.Outputs {
		switch strings.ToLower(oc.Type) {
		case "console":
			outs = append(outs, console.NewConsole())
		case "mqtt":
			var mc config.MQTTConfig
			if oc.MQTT != nil {
				mc = *oc.MQTT
			}
			m, err := mqttout.NewMQTT(mc)
			if err != nil {
				return nil, fmt.Errorf("mqtt output: %w", err)
			}
			outs = append(outs, m)
		default:
			return nil, fmt.Errorf("unknown output type %q", oc.Type)
		}
	}
	return outs, nil
}

func closeOutputs(outs []output.Output) {
	for _, o := range outs {
		if err := o.Close(); err != nil {
			log.Printf("output close error: %v", err)
		}
	}
}
