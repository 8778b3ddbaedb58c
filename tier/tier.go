// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tier classifies bonds by their bonded amount and notifies tier
// transitions after top-ups and withdrawals.
package tier

import (
	"math/big"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/events"
	"github.com/credencelabs/credence/log"
)

type Tier = uint8

const (
	Bronze = Tier(iota)
	Silver
	Gold
	Platinum
)

// EventTierChanged is published whenever a bond mutation crosses a tier boundary.
const EventTierChanged events.EventType = "tier_changed"

// Change is the payload of an EventTierChanged notification.
type Change struct {
	Identity credence.Address
	Old      Tier
	New      Tier
}

// Tier boundaries in minor token units (6 decimals).
var (
	silverThreshold   = big.NewInt(100_000_000)    // 100 tokens
	goldThreshold     = big.NewInt(1_000_000_000)  // 1k tokens
	platinumThreshold = big.NewInt(10_000_000_000) // 10k tokens
)

var logger = log.WithContext("pkg", "tier")

func SetLogger(l log.Logger) {
	logger = l
}

// Name returns the tier's display name.
func Name(t Tier) string {
	switch t {
	case Platinum:
		return "platinum"
	case Gold:
		return "gold"
	case Silver:
		return "silver"
	default:
		return "bronze"
	}
}

// ForAmount returns the tier for a bonded amount.
func ForAmount(amount *big.Int) Tier {
	switch {
	case amount.Cmp(platinumThreshold) >= 0:
		return Platinum
	case amount.Cmp(goldThreshold) >= 0:
		return Gold
	case amount.Cmp(silverThreshold) >= 0:
		return Silver
	default:
		return Bronze
	}
}

// Service compares before/after amounts and publishes tier changes.
type Service struct {
	bus *events.Bus
}

func New(bus *events.Bus) *Service {
	return &Service{bus: bus}
}

// NotifyChange publishes a tier change when the old and new amounts classify
// differently. Fire-and-forget: it never fails the calling operation.
func (s *Service) NotifyChange(identity credence.Address, oldAmount, newAmount *big.Int) {
	oldTier := ForAmount(oldAmount)
	newTier := ForAmount(newAmount)
	if oldTier == newTier {
		return
	}
	logger.Debug("tier changed", "identity", identity, "old", Name(oldTier), "new", Name(newTier))
	s.bus.Publish(EventTierChanged, Change{Identity: identity, Old: oldTier, New: newTier})
}
