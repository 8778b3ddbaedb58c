// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package guard implements the reentrancy lock serializing the entry points
// that both mutate the ledger and invoke an external callback. The lock is a
// persisted flag: a guarded operation re-entered through its own callback sees
// the flag set and fails instead of double-spending.
package guard

import (
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/slots"
)

var slotLock = credence.BytesToBytes32([]byte("reentrancy-lock"))

// Guard is the persisted reentrancy lock.
type Guard struct {
	locked *slots.Bool
}

func New(sctx *slots.Context) *Guard {
	return &Guard{locked: slots.NewBool(sctx, slotLock)}
}

// Acquire takes the lock, failing with ErrReentrancyDetected when it is
// already held.
func (g *Guard) Acquire() error {
	held, err := g.locked.Get()
	if err != nil {
		return err
	}
	if held {
		return reverts.ErrReentrancyDetected
	}
	g.locked.Set(true)
	return nil
}

// Release drops the lock. Safe to call when not held.
func (g *Guard) Release() {
	g.locked.Set(false)
}

// Held reports whether the lock is currently held.
func (g *Guard) Held() (bool, error) {
	return g.locked.Get()
}
