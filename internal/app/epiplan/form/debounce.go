package form

import (
	"sync"
	"time"
)

// Debouncer runs task after delay of idleness. Every Trigger cancels the pending
// run and schedules a new one.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	task  func()
	timer *time.Timer
	gen   uint64
}

// NewDebouncer makes debouncer for task
func NewDebouncer(delay time.Duration, task func()) *Debouncer {
	return &Debouncer{delay: delay, task: task}
}

// Trigger (re)schedules task
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Stop cancels pending run, returns true if one was pending
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// SetTask replaces the task run on expiry
func (d *Debouncer) SetTask(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.task = task
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	task := d.task
	d.mu.Unlock()

	if task != nil {
		task()
	}
}
