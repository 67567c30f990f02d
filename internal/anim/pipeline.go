package anim

import (
	"sync"
	"time"

	"github.com/yourusername/playwin/internal/logging"
)

// Task is one timed step of a layout transition: run the body, then hold
// for the duration while the executor animates toward the state the body
// established.
type Task struct {
	Name     string
	Duration time.Duration
	Easing   Easing
	Body     func()
}

// InstantTask builds a zero-duration task, used for hooks and constraint
// updates that must happen between animations without consuming time.
func InstantTask(name string, body func()) Task {
	return Task{Name: name, Body: body}
}

// Pipeline executes task chains strictly serially: one task at a time, in
// submission order, never two chains concurrently. Tasks submitted while a
// chain is running are appended to the same queue. There is no mid-flight
// cancellation; the instant override instead runs every task with zero
// duration so the final state is always reached.
type Pipeline struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Task
	running bool
	instant bool

	// sleep is swappable so tests don't wait on real time.
	sleep func(time.Duration)
}

// NewPipeline creates an idle pipeline.
func NewPipeline() *Pipeline {
	p := &Pipeline{sleep: time.Sleep}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// SetInstant toggles the zero-duration override (reduced motion, or
// batching several geometry changes into one paint).
func (p *Pipeline) SetInstant(instant bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.instant = instant
}

// IsInstant returns whether the zero-duration override is active.
func (p *Pipeline) IsInstant() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.instant
}

// Submit appends tasks to the queue and starts the runner if idle.
func (p *Pipeline) Submit(tasks ...Task) {
	if len(tasks) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, tasks...)
	if !p.running {
		p.running = true
		go p.run()
	}
}

// Wait blocks until the queue has drained and the runner has stopped.
func (p *Pipeline) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.running {
		p.cond.Wait()
	}
}

// IsRunning reports whether a chain is currently executing.
func (p *Pipeline) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Pipeline) run() {
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.running = false
			p.cond.Broadcast()
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		instant := p.instant
		p.mu.Unlock()

		if task.Body != nil {
			task.Body()
		}
		if !instant && task.Duration > 0 {
			p.sleep(task.Duration)
		} else if task.Duration > 0 {
			logging.Debug().Str("task", task.Name).Msg("animation suppressed, applied instantly")
		}
	}
}
