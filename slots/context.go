// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package slots provides typed wrappers over named storage slots of the ledger
// state, similar to declaring storage variables in a contract. Record types are
// rlp-encoded; mapping entries hash their key with the slot position.
package slots

import "github.com/credencelabs/credence/state"

// Context carries the state a set of slots read from and write to.
type Context struct {
	state *state.State
}

func NewContext(state *state.State) *Context {
	return &Context{state: state}
}

func (c *Context) State() *state.State {
	return c.state
}
