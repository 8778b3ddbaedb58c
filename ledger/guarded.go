// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/credencelabs/credence/authority"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
)

// Callbacks is the external target invoked by the guarded entry points after
// their effects are in place. A nil registration skips the interaction.
type Callbacks interface {
	OnWithdraw(amount *big.Int) error
	OnSlash(amount *big.Int) error
	OnCollect(total *big.Int) error
}

// interact runs a callback with panics contained. Checks and effects precede
// it, so a reentrant call through the callback observes already-updated state
// and trips the guard.
func (l *Ledger) interact(op string, fn func() error) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("callback panicked", "op", op, "panic", r)
			err = errors.Errorf("ledger: %s callback panicked: %v", op, r)
		}
	}()
	return fn()
}

// WithdrawBond withdraws the full available balance and retires the bond. The
// registered OnWithdraw callback is invoked with the amount while the lock is
// held.
func (l *Ledger) WithdrawBond(caller, identity credence.Address) (amount *big.Int, err error) {
	err = l.run("withdraw_bond", func() error {
		if err := l.guard.Acquire(); err != nil {
			return err
		}
		if err := authority.RequireOwner(caller, identity); err != nil {
			return err
		}
		b, err := l.bonds.Get(identity)
		if err != nil {
			return err
		}
		if !b.Active {
			return reverts.ErrNotActive
		}
		amount, err = b.Available()
		if err != nil {
			return err
		}

		// effects: the bond is retired before any external interaction
		b.BondedAmount = new(big.Int)
		b.SlashedAmount = new(big.Int)
		b.Active = false
		if err := l.bonds.Set(b); err != nil {
			return err
		}

		var cb func() error
		if l.callbacks != nil {
			cb = func() error { return l.callbacks.OnWithdraw(amount) }
		}
		if err := l.interact("withdraw_bond", cb); err != nil {
			return err
		}
		l.guard.Release()
		return nil
	})
	return
}

// SlashBond is the direct-admin slash. Unlike the governed path it rejects a
// slash exceeding the bonded balance instead of capping. The registered
// OnSlash callback is invoked with the slashed amount while the lock is held.
func (l *Ledger) SlashBond(caller, identity credence.Address, amount *big.Int) (newSlashed *big.Int, err error) {
	err = l.run("slash_bond", func() error {
		if err := l.guard.Acquire(); err != nil {
			return err
		}
		if err := l.auth.RequireAdmin(caller); err != nil {
			return err
		}
		b, err := l.bonds.Get(identity)
		if err != nil {
			return err
		}
		if !b.Active {
			return reverts.ErrNotActive
		}
		newSlashed, err = b.ApplySlashStrict(amount)
		if err != nil {
			return err
		}
		if err := l.bonds.Set(b); err != nil {
			return err
		}

		var cb func() error
		if l.callbacks != nil {
			cb = func() error { return l.callbacks.OnSlash(amount) }
		}
		if err := l.interact("slash_bond", cb); err != nil {
			return err
		}
		l.guard.Release()
		return nil
	})
	return
}

// CollectFees zeroes the fee pool and invokes the registered OnCollect
// callback with the collected total while the lock is held. Admin only.
func (l *Ledger) CollectFees(caller credence.Address) (total *big.Int, err error) {
	err = l.run("collect_fees", func() error {
		if err := l.guard.Acquire(); err != nil {
			return err
		}
		if err := l.auth.RequireAdmin(caller); err != nil {
			return err
		}
		total, err = l.feePool.Get()
		if err != nil {
			return err
		}

		// the pool is zeroed before the payout interaction
		l.feePool.Set(new(big.Int))

		var cb func() error
		if l.callbacks != nil {
			cb = func() error { return l.callbacks.OnCollect(total) }
		}
		if err := l.interact("collect_fees", cb); err != nil {
			return err
		}
		l.guard.Release()
		return nil
	})
	return
}
