// Package notify is the car's outgoing event port. Events carry no payload;
// subscribers query the car for whatever state they need.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
)

type Event int

const (
	Arrived Event = iota
	FloorChanged
	StartedMoving
	SameFloorCalled
)

func (e Event) String() string {
	switch e {
	case Arrived:
		return "Arrived"
	case FloorChanged:
		return "FloorChanged"
	case StartedMoving:
		return "StartedMoving"
	case SameFloorCalled:
		return "SameFloorCalled"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

type Handler func()

type subscription struct {
	id      uint64
	handler Handler
}

// Port fans every published event out to all current subscribers of that
// event, in subscription order. Publishing with no subscribers is fine.
type Port struct {
	mu     sync.RWMutex
	subs   map[Event][]subscription
	nextID uint64
}

func NewPort() *Port {
	return &Port{subs: make(map[Event][]subscription)}
}

// Subscribe registers handler for ev and returns a func that removes it.
func (p *Port) Subscribe(ev Event, handler Handler) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	id := p.nextID
	p.subs[ev] = append(p.subs[ev], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { p.remove(ev, id) })
	}
}

// Notify returns a channel that receives a value for each ev, dropping
// events while the buffer is full.
func (p *Port) Notify(ev Event, buffer int) (<-chan struct{}, func()) {
	ch := make(chan struct{}, buffer)
	unsubscribe := p.Subscribe(ev, func() {
		select {
		case ch <- struct{}{}:
		default:
			slog.Debug("Dropped event, subscriber buffer full", "event", ev)
		}
	})
	return ch, unsubscribe
}

// Publish calls the subscribers of ev on the caller's goroutine. Handlers
// may subscribe or unsubscribe while being called.
func (p *Port) Publish(ev Event) {
	p.mu.RLock()
	subs := make([]subscription, len(p.subs[ev]))
	copy(subs, p.subs[ev])
	p.mu.RUnlock()

	for _, s := range subs {
		s.handler()
	}
}

func (p *Port) Subscribers(ev Event) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs[ev])
}

func (p *Port) remove(ev Event, id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	subs := p.subs[ev]
	for i, s := range subs {
		if s.id == id {
			p.subs[ev] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
