package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 8

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForRangeCoversAllIndicesOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 10}
	n := 103

	var mu sync.Mutex
	seen := make([]int, n)
	ForRange(n, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			seen[i]++
		}
	}, cfg)

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForRangeSequentialSingleCall(t *testing.T) {
	calls := 0
	ForRange(50, func(start, end int) {
		calls++
		if start != 0 || end != 50 {
			t.Errorf("got range [%d, %d), want [0, 50)", start, end)
		}
	}, Sequential())

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestForRangeEmpty(_ *testing.T) {
	ForRange(0, func(_, _ int) {
		panic("should not be called")
	}, DefaultConfig())
}
