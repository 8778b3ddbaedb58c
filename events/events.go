// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events provides the synchronous notification bus used for the ledger's
// fire-and-forget signals (tier changes, penalties, withdrawal requests,
// renewals). Delivery happens inline on the publisher's call stack; subscriber
// panics are contained so a notification can never abort a committed operation.
package events

import (
	"sync"
	"time"

	"github.com/credencelabs/credence/log"
)

type EventType string

type SubscriberID int

type HandlerFunc func(Event)

type Event struct {
	Timestamp time.Time
	Type      EventType
	Data      any
}

func NewEvent(eventType EventType, data any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Bus dispatches events to subscribers by type.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[EventType]map[SubscriberID]HandlerFunc
	lastSubID   SubscriberID
	logger      log.Logger
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[EventType]map[SubscriberID]HandlerFunc),
		logger:      log.WithContext("pkg", "events"),
	}
}

// Subscribe registers a handler for the given event type.
func (b *Bus) Subscribe(eventType EventType, handler HandlerFunc) SubscriberID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastSubID++
	id := b.lastSubID
	if b.subscribers[eventType] == nil {
		b.subscribers[eventType] = make(map[SubscriberID]HandlerFunc)
	}
	b.subscribers[eventType][id] = handler
	return id
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(eventType EventType, id SubscriberID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers[eventType], id)
}

// Publish delivers the event synchronously to all subscribers of its type.
func (b *Bus) Publish(eventType EventType, data any) {
	b.mu.RLock()
	handlers := make([]HandlerFunc, 0, len(b.subscribers[eventType]))
	for _, handler := range b.subscribers[eventType] {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	evt := NewEvent(eventType, data)
	for _, handler := range handlers {
		b.deliver(handler, evt)
	}
}

func (b *Bus) deliver(handler HandlerFunc, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("event handler panicked", "type", evt.Type, "panic", r)
		}
	}()
	handler(evt)
}
