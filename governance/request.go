// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package governance implements the quorum slashing path: slash requests
// submitted by governance members, approved up to a configured threshold,
// then executed against the bond, with a dispute and resolution detour.
package governance

import (
	"math/big"

	"github.com/credencelabs/credence/credence"
)

// Status of a slash request. Transitions are monotone: Pending can approve,
// reject or go disputed; Approved can execute or go disputed; Disputed
// resolves back to Approved, Pending or Rejected; Executed and Rejected are
// terminal.
type Status uint8

const (
	Pending Status = iota
	Approved
	Executed
	Rejected
	Disputed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Approved:
		return "approved"
	case Executed:
		return "executed"
	case Rejected:
		return "rejected"
	case Disputed:
		return "disputed"
	default:
		return "unknown"
	}
}

// SlashRequest is a proposed penalty pending collective approval. The
// requester counts as the first approval.
type SlashRequest struct {
	ID            uint32
	Requester     credence.Address
	Identity      credence.Address
	Amount        *big.Int
	Reason        uint32
	Status        Status
	Approvals     []credence.Address
	CreatedAt     uint64
	IsDisputed    bool
	DisputeReason string
}

// HasApproval reports whether addr already approved.
func (r *SlashRequest) HasApproval(addr credence.Address) bool {
	for _, a := range r.Approvals {
		if a == addr {
			return true
		}
	}
	return false
}
