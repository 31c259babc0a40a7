package cell

import (
	"sync"
	"testing"
)

func TestInitialValue(t *testing.T) {
	c := New(1.25)
	if got := c.Get(); got != 1.25 {
		t.Fatalf("initial Get: got %v want 1.25", got)
	}
}

func TestPutReplaces(t *testing.T) {
	c := New(0.0)
	c.Put(2.5)
	if got := c.Get(); got != 2.5 {
		t.Fatalf("after Put: got %v want 2.5", got)
	}
	c.Put(5.0)
	if got := c.Get(); got != 5.0 {
		t.Fatalf("last writer wins: got %v want 5.0", got)
	}
}

func TestRepeatedGetStable(t *testing.T) {
	c := New(uint16(4095))
	a := c.Get()
	b := c.Get()
	if a != b {
		t.Fatalf("two Gets without a Put differ: %v vs %v", a, b)
	}
}

// Every observed value must be one that was actually stored, never a
// synthetic mix, even under concurrent writers. Run with -race.
func TestConcurrentPutGet(t *testing.T) {
	c := New(0.0)
	valid := map[float64]bool{0.0: true, 1.0: true, 2.0: true}

	var wg sync.WaitGroup
	for _, v := range []float64{1.0, 2.0} {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.Put(v)
			}
		}(v)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if got := c.Get(); !valid[got] {
				t.Errorf("Get returned value never stored: %v", got)
				return
			}
		}
	}()
	wg.Wait()
}
