// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bonds

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/credencelabs/credence/bond"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/tier"
)

// JSONBond is the api presentation of a bond.
type JSONBond struct {
	Identity              credence.Address      `json:"identity"`
	BondedAmount          *math.HexOrDecimal256 `json:"bondedAmount"`
	SlashedAmount         *math.HexOrDecimal256 `json:"slashedAmount"`
	Available             *math.HexOrDecimal256 `json:"available"`
	BondStart             uint64                `json:"bondStart"`
	BondDuration          uint64                `json:"bondDuration"`
	Active                bool                  `json:"active"`
	IsRolling             bool                  `json:"isRolling"`
	WithdrawalRequestedAt uint64                `json:"withdrawalRequestedAt,omitempty"`
	NoticePeriod          uint64                `json:"noticePeriod,omitempty"`
	Tier                  string                `json:"tier"`
}

func convertBond(b *bond.Bond) (*JSONBond, error) {
	available, err := b.Available()
	if err != nil {
		return nil, err
	}
	return &JSONBond{
		Identity:              b.Identity,
		BondedAmount:          (*math.HexOrDecimal256)(b.BondedAmount),
		SlashedAmount:         (*math.HexOrDecimal256)(b.SlashedAmount),
		Available:             (*math.HexOrDecimal256)(available),
		BondStart:             b.BondStart,
		BondDuration:          b.BondDuration,
		Active:                b.Active,
		IsRolling:             b.IsRolling,
		WithdrawalRequestedAt: b.WithdrawalRequestedAt,
		NoticePeriod:          b.NoticePeriod,
		Tier:                  tier.Name(tier.ForAmount(b.BondedAmount)),
	}, nil
}
