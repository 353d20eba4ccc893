// Package events заменяет глобальные слушатели DOM явными подписками с отпиской.
// Тесты публикуют события сами, без настоящего UI.
package events

import (
	"slices"
	"sync"
)

const (
	TypeKeyDown      = "keydown"
	TypeScroll       = "scroll"
	TypeIntersect    = "intersect"
	TypeNotification = "notification"
)

type Event struct {
	Type    string
	Key     string  // keydown
	ScrollY float64 // scroll
	Target  string  // intersect: id элемента
	Ratio   float64 // intersect: видимая доля элемента, 0..1
	Payload any
}

type Handler func(Event)

type Bus struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[string]map[uint64]Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string]map[uint64]Handler),
	}
}

type Subscription struct {
	bus       *Bus
	eventType string
	id        uint64
	once      sync.Once
}

func (b *Bus) Subscribe(eventType string, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[uint64]Handler)
	}
	b.handlers[eventType][b.next] = h

	return &Subscription{bus: b, eventType: eventType, id: b.next}
}

// Unsubscribe можно вызывать повторно
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()

		delete(s.bus.handlers[s.eventType], s.id)
		if len(s.bus.handlers[s.eventType]) == 0 {
			delete(s.bus.handlers, s.eventType)
		}
	})
}

// Publish вызывает обработчики синхронно в порядке подписки.
// Обработчик может отписаться или подписаться внутри вызова.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.handlers[e.Type]
	ids := make([]uint64, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	handlers := make(map[uint64]Handler, len(subs))
	for id, h := range subs {
		handlers[id] = h
	}
	b.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		handlers[id](e)
	}
}

// Subscribers число активных подписок на тип события
func (b *Bus) Subscribers(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
