// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the ledger's failure taxonomy. Every operation either
// commits fully or fails with one of these errors; callers match them with
// errors.Is through any wrapping added along the way.
package reverts

import (
	"errors"
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// IsRevertErr reports whether err is (or wraps) a ledger revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Authorization failures.
var (
	ErrNotOwner            = New("not bond owner")
	ErrNotAdmin            = New("not admin")
	ErrNotGovernanceMember = New("not a governance member")
)

// State failures: the operation was invoked in a state that forbids it.
var (
	ErrNotPending       = New("request not pending")
	ErrNotApproved      = New("request not approved")
	ErrNotDisputed      = New("no disputed request")
	ErrAlreadyRequested = New("withdrawal already requested")
	ErrNotRolling       = New("not a rolling bond")
	ErrInvalidState     = New("cannot dispute in current state")
	ErrNotActive        = New("bond not active")
	ErrNoBond           = New("no bond")
	ErrNoRequest        = New("no slash request")
)

// Arithmetic failures.
var (
	ErrOverflow           = New("arithmetic overflow")
	ErrInvariantViolation = New("slashed amount exceeds bonded amount")
)

// Business rule failures.
var (
	ErrInsufficientBalance = New("insufficient balance for withdrawal")
	ErrSlashExceedsBond    = New("slash exceeds bond")
	ErrUseRegularWithdraw  = New("use withdraw for post lock-up")
	ErrAmountOutOfRange    = New("bond amount out of range")
)

// Concurrency failures.
var (
	ErrReentrancyDetected = New("reentrancy detected")
)
