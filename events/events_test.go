// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe("tier_changed", func(evt Event) {
		got = append(got, evt)
	})

	bus.Publish("tier_changed", "silver")
	bus.Publish("other", "ignored")

	assert.Len(t, got, 1)
	assert.Equal(t, EventType("tier_changed"), got[0].Type)
	assert.Equal(t, "silver", got[0].Data)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	id := bus.Subscribe("evt", func(Event) { count++ })
	bus.Publish("evt", nil)
	bus.Unsubscribe("evt", id)
	bus.Publish("evt", nil)

	assert.Equal(t, 1, count)
}

func TestHandlerPanicContained(t *testing.T) {
	bus := NewBus()

	delivered := false
	bus.Subscribe("evt", func(Event) { panic("boom") })
	bus.Subscribe("evt", func(Event) { delivered = true })

	assert.NotPanics(t, func() { bus.Publish("evt", nil) })
	assert.True(t, delivered)
}
