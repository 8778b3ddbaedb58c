// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package penalty computes the early-exit penalty applied when a bond is
// withdrawn before its lock-up ends. The penalty is prorated over the time
// remaining: amount * rateBps/10000 * remaining/duration. The penalty itself is
// routed to the treasury by the funds-movement layer, not deducted here.
package penalty

import (
	"math/big"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/events"
	"github.com/credencelabs/credence/slots"
)

// EventPenaltyApplied is published when an early withdrawal incurs a penalty.
const EventPenaltyApplied events.EventType = "early_exit_penalty"

const bpsDenominator = 10_000

// Applied is the payload of an EventPenaltyApplied notification.
type Applied struct {
	Identity credence.Address
	Amount   *big.Int
	Penalty  *big.Int
	Treasury credence.Address
}

var (
	slotTreasury   = credence.BytesToBytes32([]byte("early-exit-treasury"))
	slotPenaltyBps = credence.BytesToBytes32([]byte("early-exit-penalty-bps"))
)

// Service holds the early-exit config and computes penalties.
type Service struct {
	treasury *slots.Address
	rateBps  *slots.Uint32

	bus *events.Bus
}

func New(sctx *slots.Context, bus *events.Bus) *Service {
	return &Service{
		treasury: slots.NewAddress(sctx, slotTreasury),
		rateBps:  slots.NewUint32(sctx, slotPenaltyBps),
		bus:      bus,
	}
}

// SetConfig stores the treasury address and penalty rate in basis points
// (e.g. 500 = 5%).
func (s *Service) SetConfig(treasury credence.Address, rateBps uint32) {
	s.treasury.Set(treasury)
	s.rateBps.Set(rateBps)
}

// Config returns the configured treasury and rate.
func (s *Service) Config() (credence.Address, uint32, error) {
	treasury, err := s.treasury.Get()
	if err != nil {
		return credence.Address{}, 0, err
	}
	rate, err := s.rateBps.Get()
	if err != nil {
		return credence.Address{}, 0, err
	}
	return treasury, rate, nil
}

// Calculate returns the penalty for withdrawing amount with timeRemaining of
// totalDuration left, at the given rate. A zero duration yields a zero penalty.
func Calculate(amount *big.Int, timeRemaining, totalDuration uint64, rateBps uint32) *big.Int {
	if totalDuration == 0 || timeRemaining == 0 || rateBps == 0 || amount == nil || amount.Sign() <= 0 {
		return new(big.Int)
	}
	if timeRemaining > totalDuration {
		timeRemaining = totalDuration
	}
	p := new(big.Int).Mul(amount, big.NewInt(int64(rateBps)))
	p.Mul(p, new(big.Int).SetUint64(timeRemaining))
	p.Div(p, new(big.Int).SetUint64(totalDuration))
	p.Div(p, big.NewInt(bpsDenominator))
	return p
}

// Notify publishes the penalty notification.
func (s *Service) Notify(identity credence.Address, amount, penalty *big.Int, treasury credence.Address) {
	s.bus.Publish(EventPenaltyApplied, Applied{
		Identity: identity,
		Amount:   new(big.Int).Set(amount),
		Penalty:  new(big.Int).Set(penalty),
		Treasury: treasury,
	})
}
