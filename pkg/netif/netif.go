// Package netif brings the wireless interface up in either access-point or
// station mode. The supplicant itself belongs to the host OS; this package
// only drives NetworkManager and watches the link state.
package netif

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"strings"
	"time"
)

const hotspotName = "debris-hotspot"

// Mode is one of the two ways the device gets on a network.
type Mode interface {
	BringUp(ctx context.Context) error
}

// CommandRunner executes one host command. Swapped out in tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// AccessPoint hosts the device's own network: it broadcasts SSID, hands out
// addresses, and is reachable at IP.
type AccessPoint struct {
	Interface string
	SSID      string
	Password  string
	IP        string
	Gateway   string
	Netmask   string

	Run CommandRunner
}

func (a AccessPoint) BringUp(ctx context.Context) error {
	run := a.Run
	if run == nil {
		run = execRunner
	}
	prefix, err := maskPrefix(a.Netmask)
	if err != nil {
		return err
	}

	log.Printf("Setting up WiFi access point %q...", a.SSID)
	if err := run(ctx, "nmcli", "device", "wifi", "hotspot",
		"ifname", a.Interface,
		"con-name", hotspotName,
		"ssid", a.SSID,
		"password", a.Password); err != nil {
		return fmt.Errorf("create hotspot: %w", err)
	}
	// ipv4.method shared makes NetworkManager serve DHCP with the device as
	// its own gateway.
	addr := fmt.Sprintf("%s/%d", a.IP, prefix)
	if err := run(ctx, "nmcli", "connection", "modify", hotspotName,
		"ipv4.method", "shared",
		"ipv4.addresses", addr); err != nil {
		return fmt.Errorf("set hotspot address: %w", err)
	}
	if err := run(ctx, "nmcli", "connection", "up", hotspotName); err != nil {
		return fmt.Errorf("bring hotspot up: %w", err)
	}
	log.Println("done.")
	return nil
}

// Station joins an existing network and blocks until the interface is
// associated, polling once per second and printing a dot per attempt.
type Station struct {
	Interface string
	SSID      string
	Password  string

	Run          CommandRunner
	OperState    func() (string, error)
	PollInterval time.Duration
}

func (s Station) BringUp(ctx context.Context) error {
	run := s.Run
	if run == nil {
		run = execRunner
	}
	operState := s.OperState
	if operState == nil {
		operState = func() (string, error) { return readOperState(s.Interface) }
	}
	poll := s.PollInterval
	if poll == 0 {
		poll = time.Second
	}

	log.Printf("Connecting to %s", s.SSID)
	if err := run(ctx, "nmcli", "device", "wifi", "connect", s.SSID,
		"password", s.Password,
		"ifname", s.Interface); err != nil {
		// The connection may still come up on its own; keep waiting.
		log.Printf("nmcli connect: %v", err)
	}

	for {
		state, err := operState()
		if err == nil && state == "up" {
			break
		}
		fmt.Print(".")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll):
		}
	}
	log.Printf("connected at IP address %s", interfaceAddr(s.Interface))
	return nil
}

func readOperState(iface string) (string, error) {
	b, err := os.ReadFile("/sys/class/net/" + iface + "/operstate")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func interfaceAddr(iface string) string {
	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return "unknown"
	}
	addrs, err := ifi.Addrs()
	if err != nil || len(addrs) == 0 {
		return "unknown"
	}
	return addrs[0].String()
}

// maskPrefix converts a dotted netmask ("255.255.255.0") to a prefix length.
func maskPrefix(netmask string) (int, error) {
	ip := net.ParseIP(netmask)
	if ip == nil || ip.To4() == nil {
		return 0, fmt.Errorf("invalid netmask %q", netmask)
	}
	ones, bits := net.IPMask(ip.To4()).Size()
	if bits != 32 {
		return 0, fmt.Errorf("invalid netmask %q", netmask)
	}
	if ones == 0 && netmask != "0.0.0.0" {
		return 0, fmt.Errorf("non-contiguous netmask %q", netmask)
	}
	return ones, nil
}
