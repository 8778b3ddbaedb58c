// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package amounts holds the checked arithmetic shared by every mutator of the
// bond ledger. Amounts are big integers confined to the signed 128-bit domain
// (the headroom the ledger inherits for token amounts); timestamps are uint64
// seconds. Any add/sub that would leave the domain fails with reverts.ErrOverflow
// instead of wrapping.
package amounts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/credencelabs/credence/reverts"
)

// MaxAmount is the upper bound of the amount domain (i128 max).
var MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

// Bond amount bounds, in minor token units (6 decimals).
var (
	MinBondAmount = big.NewInt(1_000_000)           // 1 token
	MaxBondAmount = big.NewInt(100_000_000_000_000) // 100M tokens
)

// Valid reports whether a lies inside the amount domain.
func Valid(a *big.Int) bool {
	return a != nil && a.Sign() >= 0 && a.Cmp(MaxAmount) <= 0
}

// Add returns a+b, failing with ErrOverflow when the sum leaves the domain.
func Add(a, b *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(a, b)
	if !Valid(sum) {
		return nil, reverts.ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b, failing with ErrOverflow when the difference is negative.
func Sub(a, b *big.Int) (*big.Int, error) {
	diff := new(big.Int).Sub(a, b)
	if diff.Sign() < 0 {
		return nil, reverts.ErrOverflow
	}
	return diff, nil
}

// Min returns the smaller of a and b as a fresh value.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

// ValidateBondAmount checks a bond principal against the configured bounds.
func ValidateBondAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrap(reverts.ErrAmountOutOfRange, "negative amount")
	}
	if amount.Cmp(MinBondAmount) < 0 {
		return errors.Wrapf(reverts.ErrAmountOutOfRange, "below minimum %s", MinBondAmount)
	}
	if amount.Cmp(MaxBondAmount) > 0 {
		return errors.Wrapf(reverts.ErrAmountOutOfRange, "above maximum %s", MaxBondAmount)
	}
	return nil
}

// AddTime returns start+duration, failing with ErrOverflow when the end
// timestamp would wrap the uint64 domain.
func AddTime(start, duration uint64) (uint64, error) {
	end, overflow := math.SafeAdd(start, duration)
	if overflow {
		return 0, reverts.ErrOverflow
	}
	return end, nil
}

// SubTimeSaturating returns a-b, clamping at zero.
func SubTimeSaturating(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
