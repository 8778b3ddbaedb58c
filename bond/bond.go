// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bond implements the collateral record and its lifecycle: creation,
// top-up, extension, partial and early withdrawal, rolling renewal with notice
// periods, and the slashing arithmetic shared by the governed and direct-admin
// paths. Every mutator leaves the record satisfying 0 <= slashed <= bonded,
// with the bond retired once the full balance is slashed or withdrawn.
package bond

import (
	"math/big"

	"github.com/credencelabs/credence/amounts"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
)

// Bond is the collateral locked against an identity.
type Bond struct {
	Identity              credence.Address
	BondedAmount          *big.Int
	BondStart             uint64
	BondDuration          uint64
	SlashedAmount         *big.Int
	Active                bool
	IsRolling             bool
	WithdrawalRequestedAt uint64
	NoticePeriod          uint64
}

// Available returns the withdrawable balance, bonded minus slashed. It fails
// with ErrInvariantViolation if slashed exceeds bonded, which no reachable
// sequence of operations produces.
func (b *Bond) Available() (*big.Int, error) {
	available, err := amounts.Sub(b.BondedAmount, b.SlashedAmount)
	if err != nil {
		return nil, reverts.ErrInvariantViolation
	}
	return available, nil
}

// PeriodEnd returns bond_start + bond_duration. Creation and extension check
// the sum, so it cannot overflow here.
func (b *Bond) PeriodEnd() uint64 {
	return b.BondStart + b.BondDuration
}

// ApplySlashCapped adds amount to the slashed balance, capping at the bonded
// balance. A full slash retires the bond. Returns the new slashed amount.
func (b *Bond) ApplySlashCapped(amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, reverts.ErrAmountOutOfRange
	}
	newSlashed, err := amounts.Add(b.SlashedAmount, amount)
	if err != nil {
		return nil, err
	}
	b.SlashedAmount = amounts.Min(newSlashed, b.BondedAmount)
	if b.SlashedAmount.Cmp(b.BondedAmount) == 0 {
		b.Active = false
	}
	return new(big.Int).Set(b.SlashedAmount), nil
}

// ApplySlashStrict adds amount to the slashed balance, failing with
// ErrSlashExceedsBond when the result would exceed the bonded balance. A full
// slash retires the bond. Returns the new slashed amount.
func (b *Bond) ApplySlashStrict(amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, reverts.ErrAmountOutOfRange
	}
	newSlashed, err := amounts.Add(b.SlashedAmount, amount)
	if err != nil {
		return nil, err
	}
	if newSlashed.Cmp(b.BondedAmount) > 0 {
		return nil, reverts.ErrSlashExceedsBond
	}
	b.SlashedAmount = newSlashed
	if b.SlashedAmount.Cmp(b.BondedAmount) == 0 {
		b.Active = false
	}
	return new(big.Int).Set(b.SlashedAmount), nil
}

// deduct removes amount from the bonded balance after an availability check.
func (b *Bond) deduct(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.ErrAmountOutOfRange
	}
	available, err := b.Available()
	if err != nil {
		return err
	}
	if amount.Cmp(available) > 0 {
		return reverts.ErrInsufficientBalance
	}
	newBonded, err := amounts.Sub(b.BondedAmount, amount)
	if err != nil {
		return err
	}
	if b.SlashedAmount.Cmp(newBonded) > 0 {
		return reverts.ErrInvariantViolation
	}
	b.BondedAmount = newBonded
	return nil
}
