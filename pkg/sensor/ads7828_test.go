package sensor

import (
	"math"
	"testing"
)

func TestCommandByte(t *testing.T) {
	// SD=1, PD=01; channel select per the datasheet mux table
	want := map[int]byte{
		0: 0x84,
		1: 0xC4,
		2: 0x94,
		3: 0xD4,
		4: 0xA4,
		5: 0xE4,
		6: 0xB4,
		7: 0xF4,
	}
	for ch, w := range want {
		got, err := commandByte(ch)
		if err != nil {
			t.Fatalf("channel %d: unexpected error: %v", ch, err)
		}
		if got != w {
			t.Fatalf("channel %d: got %02X want %02X", ch, got, w)
		}
	}

	if _, err := commandByte(8); err == nil {
		t.Fatalf("expected error for channel 8")
	}
	if _, err := commandByte(-1); err == nil {
		t.Fatalf("expected error for channel -1")
	}
}

func TestConvertBoundaries(t *testing.T) {
	if got := Convert(0); got != 0.0 {
		t.Fatalf("Convert(0) = %v; want 0.0", got)
	}
	if got := Convert(4095); math.Abs(got-5.0) > 1e-12 {
		t.Fatalf("Convert(4095) = %v; want 5.0", got)
	}
}

func TestConvertLinear(t *testing.T) {
	for _, raw := range []uint16{1, 2, 819, 2048, 4094} {
		want := float64(raw) * 5.0 / 4095.0
		if got := Convert(raw); got != want {
			t.Fatalf("Convert(%d) = %v; want %v", raw, got, want)
		}
	}
	// monotonic over the full range
	prev := Convert(0)
	for raw := uint16(1); raw <= 4095; raw++ {
		v := Convert(raw)
		if v <= prev {
			t.Fatalf("Convert not monotonic at raw=%d: %v <= %v", raw, v, prev)
		}
		prev = v
	}
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		in   int
		want uint16
	}{
		{-5, 0},
		{0, 0},
		{1234, 1234},
		{4095, 4095},
		{9999, 4095},
	}
	for _, tt := range tests {
		if got := clampCount(tt.in); got != tt.want {
			t.Fatalf("clampCount(%d) = %d; want %d", tt.in, got, tt.want)
		}
	}
}
