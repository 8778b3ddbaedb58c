// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rolling holds the period policy for rolling bonds. A rolling bond
// renews its lock-up automatically once the current period elapses, unless the
// owner has requested withdrawal and the notice period runs out first.
package rolling

import (
	"github.com/credencelabs/credence/amounts"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/events"
)

const (
	// EventBondRenewed is published when a rolling bond rolls into a new period.
	EventBondRenewed events.EventType = "bond_renewed"
	// EventWithdrawalRequested is published when a rolling bond's owner starts
	// the notice period.
	EventWithdrawalRequested events.EventType = "withdrawal_requested"
)

// Renewal is the payload of an EventBondRenewed notification.
type Renewal struct {
	Identity credence.Address
	NewStart uint64
	Duration uint64
}

// WithdrawalRequest is the payload of an EventWithdrawalRequested notification.
type WithdrawalRequest struct {
	Identity    credence.Address
	RequestedAt uint64
	NoticeEnd   uint64
}

// PeriodEnded reports whether the period that started at start has elapsed at
// now. An overflowing period end never elapses.
func PeriodEnded(now, start, duration uint64) bool {
	end, err := amounts.AddTime(start, duration)
	if err != nil {
		return false
	}
	return now >= end
}

// NoticeElapsed reports whether the notice period started at requestedAt has
// run out at now. A zero requestedAt means no request is outstanding.
func NoticeElapsed(now, requestedAt, noticePeriod uint64) bool {
	if requestedAt == 0 {
		return false
	}
	end, err := amounts.AddTime(requestedAt, noticePeriod)
	if err != nil {
		return false
	}
	return now >= end
}

// Service publishes rolling-bond notifications.
type Service struct {
	bus *events.Bus
}

func New(bus *events.Bus) *Service {
	return &Service{bus: bus}
}

// NotifyRenewal publishes the renewal of a rolling bond into a new period.
func (s *Service) NotifyRenewal(identity credence.Address, newStart, duration uint64) {
	s.bus.Publish(EventBondRenewed, Renewal{
		Identity: identity,
		NewStart: newStart,
		Duration: duration,
	})
}

// NotifyWithdrawalRequested publishes the start of a notice period.
func (s *Service) NotifyWithdrawalRequested(identity credence.Address, requestedAt, noticePeriod uint64) {
	noticeEnd, _ := amounts.AddTime(requestedAt, noticePeriod)
	s.bus.Publish(EventWithdrawalRequested, WithdrawalRequest{
		Identity:    identity,
		RequestedAt: requestedAt,
		NoticeEnd:   noticeEnd,
	})
}
