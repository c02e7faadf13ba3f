package services

import (
	"sync"
	"time"
)

// DefaultLoadingTips is the cyclic list shown while a translate-cycle
// call is in flight.
var DefaultLoadingTips = []string{
	"Average translation time is 5-10 seconds.",
	"Analyzing tone, subtext, and pragmatic meaning...",
	"Tip: Providing clear context leads to better translations.",
	"Did you know? The 'Double Empathy Problem' suggests communication gaps are a two-way street.",
	"Checking for potential misinterpretations...",
	"Tip: Indirect communicators often use questions to make suggestions softly.",
	"Considering how different neurotypes might perceive this message...",
}

// TipTicker rotates a loading tip on a fixed interval while a request is
// in flight. Start and Stop are idempotent; Stop must leave no running
// goroutine or timer behind.
type TipTicker struct {
	interval time.Duration
	tips     []string

	mu      sync.Mutex
	idx     int
	running bool
	stop    chan struct{}
	done    chan struct{}
	subs    map[int]chan string
	nextSub int
}

func NewTipTicker(interval time.Duration, tips []string) *TipTicker {
	if len(tips) == 0 {
		tips = DefaultLoadingTips
	}
	return &TipTicker{
		interval: interval,
		tips:     tips,
		subs:     make(map[int]chan string),
	}
}

// Current returns the tip to display right now.
func (t *TipTicker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tips[t.idx]
}

// Running reports whether the rotation goroutine is active.
func (t *TipTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Subscribe registers a listener for tip changes. The returned cancel
// func must be called when the listener goes away.
func (t *TipTicker) Subscribe() (<-chan string, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	ch := make(chan string, 1)
	t.subs[id] = ch
	return ch, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// Start begins rotating tips. Calling Start on a running ticker is a
// no-op, so the workflow can call it at every loading transition.
func (t *TipTicker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.idx = 0
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(t.stop, t.done)
}

func (t *TipTicker) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.advance()
		case <-stop:
			return
		}
	}
}

func (t *TipTicker) advance() {
	t.mu.Lock()
	t.idx = (t.idx + 1) % len(t.tips)
	tip := t.tips[t.idx]
	for _, ch := range t.subs {
		// Drop the stale value if the subscriber hasn't drained it.
		select {
		case ch <- tip:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- tip:
			default:
			}
		}
	}
	t.mu.Unlock()
}

// Stop halts rotation and waits for the goroutine to exit.
func (t *TipTicker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.stop)
	done := t.done
	t.mu.Unlock()
	<-done
}
