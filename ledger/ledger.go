// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger is the facade over the collateral ledger. It composes the
// bond lifecycle, the governance slashing path, the direct-admin paths and the
// reentrancy guard on top of one journaled state, and makes every entry point
// atomic: an operation either commits in full or reverts to the checkpoint
// taken at its start.
package ledger

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/credencelabs/credence/authority"
	"github.com/credencelabs/credence/bond"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/events"
	"github.com/credencelabs/credence/governance"
	"github.com/credencelabs/credence/guard"
	"github.com/credencelabs/credence/kv"
	"github.com/credencelabs/credence/log"
	"github.com/credencelabs/credence/metrics"
	"github.com/credencelabs/credence/penalty"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/rolling"
	"github.com/credencelabs/credence/slots"
	"github.com/credencelabs/credence/state"
	"github.com/credencelabs/credence/tier"
)

var logger = log.WithContext("pkg", "ledger")

func SetLogger(l log.Logger) {
	logger = l
}

var slotFeePool = credence.BytesToBytes32([]byte("fee-pool"))

// Ledger exposes the collateral ledger's operations.
type Ledger struct {
	state *state.State
	bus   *events.Bus

	auth    *authority.Service
	guard   *guard.Guard
	bonds   *bond.Repository
	bondSvc *bond.Service
	govRepo *governance.Repository
	govSvc  *governance.Service
	penalty *penalty.Service
	feePool *slots.Uint256

	callbacks Callbacks
	now       func() uint64

	// nesting depth of run; >0 while a callback re-enters the facade
	depth int
}

// New builds a ledger over the given store. Notifications go out on bus.
func New(store kv.GetPutter, bus *events.Bus) *Ledger {
	st := state.New(store)
	sctx := slots.NewContext(st)

	auth := authority.New(sctx)
	bonds := bond.NewRepository(sctx)
	penaltySvc := penalty.New(sctx, bus)
	govRepo := governance.NewRepository(sctx)

	return &Ledger{
		state:   st,
		bus:     bus,
		auth:    auth,
		guard:   guard.New(sctx),
		bonds:   bonds,
		bondSvc: bond.NewService(bonds, tier.New(bus), penaltySvc, rolling.New(bus)),
		govRepo: govRepo,
		govSvc:  governance.NewService(govRepo, auth, bonds),
		penalty: penaltySvc,
		feePool: slots.NewUint256(sctx, slotFeePool),
		now:     func() uint64 { return uint64(time.Now().Unix()) },
	}
}

// SetCallbacks registers the external callback target for the guarded entry
// points. Absence of a registration is not an error.
func (l *Ledger) SetCallbacks(cb Callbacks) {
	l.callbacks = cb
}

// SetClock overrides the time source.
func (l *Ledger) SetClock(now func() uint64) {
	l.now = now
}

// run makes op atomic: any error reverts every mutation recorded since the
// checkpoint, success commits the journal to the backing store. An operation
// re-entered through a callback joins the outer operation's journal and only
// the outermost success commits. A panic escaping fn unwinds like a failed
// operation before propagating.
func (l *Ledger) run(op string, fn func() error) error {
	checkpoint := l.state.NewCheckpoint()
	l.depth++
	done := false
	defer func() {
		if !done {
			l.depth--
			l.state.RevertTo(checkpoint)
			countOp(op, "reverted")
		}
	}()
	err := fn()
	done = true
	l.depth--
	if err != nil {
		l.state.RevertTo(checkpoint)
		countOp(op, "reverted")
		return err
	}
	if l.depth == 0 {
		if err := l.state.Commit(); err != nil {
			l.state.RevertTo(checkpoint)
			countOp(op, "failed")
			return errors.Wrapf(err, "ledger: commit %s", op)
		}
	}
	countOp(op, "committed")
	return nil
}

func countOp(op, status string) {
	metrics.CounterVec("ledger_operation_count", []string{"op", "status"}).
		AddWithLabel(1, map[string]string{"op": op, "status": status})
}

// CreateBond locks a fresh bond for identity, replacing any existing one.
func (l *Ledger) CreateBond(caller, identity credence.Address, amount *big.Int, duration uint64, isRolling bool, noticePeriod uint64) (b *bond.Bond, err error) {
	err = l.run("create_bond", func() error {
		if err := authority.RequireOwner(caller, identity); err != nil {
			return err
		}
		b, err = l.bondSvc.Create(identity, amount, l.now(), duration, isRolling, noticePeriod)
		return err
	})
	return
}

// TopUpBond adds amount to the bonded balance.
func (l *Ledger) TopUpBond(caller, identity credence.Address, amount *big.Int) (b *bond.Bond, err error) {
	err = l.run("top_up", func() error {
		if err := authority.RequireOwner(caller, identity); err != nil {
			return err
		}
		b, err = l.bondSvc.TopUp(identity, amount)
		return err
	})
	return
}

// ExtendBondDuration lengthens the bond's lock-up.
func (l *Ledger) ExtendBondDuration(caller, identity credence.Address, extra uint64) (b *bond.Bond, err error) {
	err = l.run("extend_duration", func() error {
		if err := authority.RequireOwner(caller, identity); err != nil {
			return err
		}
		b, err = l.bondSvc.ExtendDuration(identity, extra)
		return err
	})
	return
}

// WithdrawBondAmount removes amount from the available balance.
func (l *Ledger) WithdrawBondAmount(caller, identity credence.Address, amount *big.Int) (b *bond.Bond, err error) {
	err = l.run("withdraw", func() error {
		if err := authority.RequireOwner(caller, identity); err != nil {
			return err
		}
		b, err = l.bondSvc.Withdraw(identity, amount)
		return err
	})
	return
}

// WithdrawBondEarly removes amount before the lock-up ends, charging the
// early-exit penalty.
func (l *Ledger) WithdrawBondEarly(caller, identity credence.Address, amount *big.Int) (b *bond.Bond, err error) {
	err = l.run("withdraw_early", func() error {
		if err := authority.RequireOwner(caller, identity); err != nil {
			return err
		}
		b, err = l.bondSvc.WithdrawEarly(identity, amount, l.now())
		return err
	})
	return
}

// RequestWithdrawal starts the notice period of a rolling bond.
func (l *Ledger) RequestWithdrawal(caller, identity credence.Address) (b *bond.Bond, err error) {
	err = l.run("request_withdrawal", func() error {
		if err := authority.RequireOwner(caller, identity); err != nil {
			return err
		}
		b, err = l.bondSvc.RequestWithdrawal(identity, l.now())
		return err
	})
	return
}

// RenewIfRolling rolls the bond into a new period when due. Callable by
// anyone, a renewal changes no balances.
func (l *Ledger) RenewIfRolling(identity credence.Address) (b *bond.Bond, err error) {
	err = l.run("renew_if_rolling", func() error {
		b, err = l.bondSvc.RenewIfRolling(identity, l.now())
		return err
	})
	return
}

// SubmitSlashRequest opens a slash request against identity's bond.
func (l *Ledger) SubmitSlashRequest(caller, identity credence.Address, amount *big.Int, reason uint32) (id uint32, err error) {
	err = l.run("submit_slash_request", func() error {
		id, err = l.govSvc.Submit(caller, identity, amount, reason, l.now())
		return err
	})
	return
}

// ApproveSlashRequest adds caller's approval to the live request. Returns true
// when this approval meets the quorum.
func (l *Ledger) ApproveSlashRequest(caller credence.Address) (reached bool, err error) {
	err = l.run("approve_slash_request", func() error {
		reached, err = l.govSvc.Approve(caller)
		return err
	})
	return
}

// ExecuteSlashRequest applies the approved slash, capping at the bonded
// balance. The state machine alone gates execution.
func (l *Ledger) ExecuteSlashRequest() (b *bond.Bond, err error) {
	err = l.run("execute_slash_request", func() error {
		b, err = l.govSvc.Execute()
		return err
	})
	return
}

// RejectSlashRequest terminates a pending request. Admin only.
func (l *Ledger) RejectSlashRequest(caller credence.Address) (req *governance.SlashRequest, err error) {
	err = l.run("reject_slash_request", func() error {
		if err := l.auth.RequireAdmin(caller); err != nil {
			return err
		}
		req, err = l.govSvc.Reject()
		return err
	})
	return
}

// DisputeSlashRequest puts the live request on hold.
func (l *Ledger) DisputeSlashRequest(caller credence.Address, reason string) error {
	return l.run("dispute_slash_request", func() error {
		return l.govSvc.Dispute(caller, reason)
	})
}

// ResolveSlashRequest settles a disputed request. Admin only.
func (l *Ledger) ResolveSlashRequest(caller credence.Address, approveResolution bool) (status governance.Status, err error) {
	err = l.run("resolve_slash_request", func() error {
		if err := l.auth.RequireAdmin(caller); err != nil {
			return err
		}
		status, err = l.govSvc.Resolve(approveResolution)
		return err
	})
	return
}

// DepositFees adds amount to the fee pool.
func (l *Ledger) DepositFees(amount *big.Int) error {
	return l.run("deposit_fees", func() error {
		if amount == nil || amount.Sign() <= 0 {
			return errors.Wrap(reverts.ErrAmountOutOfRange, "fee deposit")
		}
		pool, err := l.feePool.Get()
		if err != nil {
			return err
		}
		l.feePool.Set(new(big.Int).Add(pool, amount))
		return nil
	})
}

// FeePool returns the accumulated, uncollected fees.
func (l *Ledger) FeePool() (*big.Int, error) {
	return l.feePool.Get()
}

// GetBond returns the bond for identity.
func (l *Ledger) GetBond(identity credence.Address) (*bond.Bond, error) {
	return l.bonds.Get(identity)
}

// GetTier returns the tier of identity's bond.
func (l *Ledger) GetTier(identity credence.Address) (tier.Tier, error) {
	b, err := l.bonds.Get(identity)
	if err != nil {
		return 0, err
	}
	return tier.ForAmount(b.BondedAmount), nil
}

// IsGovernanceMember reports whether addr is in the governance member set.
func (l *Ledger) IsGovernanceMember(addr credence.Address) (bool, error) {
	return l.auth.IsMember(addr)
}

// CurrentSlashRequest returns the live slash request.
func (l *Ledger) CurrentSlashRequest() (*governance.SlashRequest, error) {
	return l.govSvc.Current()
}

// GetSlashRequest returns the request with the given id.
func (l *Ledger) GetSlashRequest(id uint32) (*governance.SlashRequest, error) {
	return l.govSvc.Get(id)
}
