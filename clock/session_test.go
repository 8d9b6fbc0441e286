package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"weatheros/manager"
)

type blockedResolver struct {
	gate chan struct{}
}

func (r blockedResolver) ResolveByName(ctx context.Context, _ string) (manager.Place, error) {
	select {
	case <-r.gate:
	case <-ctx.Done():
	}
	return manager.Place{Name: "Curitiba - PR"}, nil
}

func (blockedResolver) ResolveByCoordinates(_ context.Context, coords manager.Coordinates) manager.Place {
	return manager.Place{Coordinates: coords}
}

type fixedWeather struct{}

func (fixedWeather) Current(context.Context, manager.Coordinates) (manager.Conditions, error) {
	return manager.Conditions{TemperatureC: 19, WindKmh: 12, Code: 3}, nil
}

func TestTickerRunsWhileLookupPending(t *testing.T) {
	gate := make(chan struct{})
	session := manager.New(blockedResolver{gate: gate}, fixedWeather{})

	var (
		mu    sync.Mutex
		ticks int
	)
	tk := New(func(string) {
		mu.Lock()
		defer mu.Unlock()
		ticks++
	})

	done := make(chan manager.State, 1)
	go func() {
		st, _ := session.Submit(context.Background(), "Curitiba")
		done <- st
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !session.State().Busy() {
		if time.Now().After(deadline) {
			t.Fatal("lookup never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := tk.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer tk.Stop()

	time.Sleep(2500 * time.Millisecond)

	mu.Lock()
	n := ticks
	mu.Unlock()
	if n < 2 {
		t.Errorf("got %d ticks while the lookup was pending, want at least 2", n)
	}
	if st := session.State(); st.Status != manager.Loading || st.Message != manager.MsgResolving {
		t.Errorf("ticks changed the session state: %+v", st)
	}

	close(gate)
	select {
	case st := <-done:
		if st.Status != manager.Ready {
			t.Errorf("final state = %+v", st)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("lookup did not finish after release")
	}
}
