package clock

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

const Layout = "15:04:05"

// Format renders t as a 24-hour wall clock.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Ticker calls a function with the formatted local time once a second.
type Ticker struct {
	scheduler *gocron.Scheduler
	onTick    func(string)
	now       func() time.Time

	mu      sync.Mutex
	running bool
}

func New(onTick func(string)) *Ticker {
	return &Ticker{
		scheduler: gocron.NewScheduler(time.Local),
		onTick:    onTick,
		now:       time.Now,
	}
}

// Start schedules the tick job and fires the first tick right away.
func (t *Ticker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return nil
	}

	_, err := t.scheduler.Every(1).Second().Do(func() {
		t.onTick(Format(t.now()))
	})
	if err != nil {
		return err
	}

	t.scheduler.StartAsync()
	t.running = true
	return nil
}

// Stop cancels future ticks. It is safe to call more than once.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.scheduler.Stop()
	t.scheduler.Clear()
	t.running = false
}
