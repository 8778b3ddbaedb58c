// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package governance

import (
	"math/big"

	"github.com/credencelabs/credence/authority"
	"github.com/credencelabs/credence/bond"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/log"
	"github.com/credencelabs/credence/reverts"
)

var logger = log.WithContext("pkg", "governance")

func SetLogger(l log.Logger) {
	logger = l
}

// Service runs the slash-request state machine.
type Service struct {
	repo      *Repository
	authority *authority.Service
	bonds     *bond.Repository
}

func NewService(repo *Repository, auth *authority.Service, bonds *bond.Repository) *Service {
	return &Service{
		repo:      repo,
		authority: auth,
		bonds:     bonds,
	}
}

// Submit creates a Pending request with the requester already counted as one
// approval, replacing any live request.
func (s *Service) Submit(requester, identity credence.Address, amount *big.Int, reason uint32, now uint64) (uint32, error) {
	if err := s.authority.RequireMember(requester); err != nil {
		return 0, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, reverts.ErrAmountOutOfRange
	}

	id, err := s.repo.NextID()
	if err != nil {
		return 0, err
	}
	req := &SlashRequest{
		ID:        id,
		Requester: requester,
		Identity:  identity,
		Amount:    new(big.Int).Set(amount),
		Reason:    reason,
		Status:    Pending,
		Approvals: []credence.Address{requester},
		CreatedAt: now,
	}
	if err := s.repo.Set(req); err != nil {
		return 0, err
	}
	s.repo.SetCurrent(id)

	logger.Info("slash request submitted", "id", id, "requester", requester, "identity", identity, "amount", amount)
	return id, nil
}

// Approve adds approver to the live request. Duplicate approvals are no-ops
// returning false. Returns true exactly when this approval meets the quorum
// and the request transitions to Approved.
func (s *Service) Approve(approver credence.Address) (bool, error) {
	if err := s.authority.RequireMember(approver); err != nil {
		return false, err
	}
	req, err := s.repo.Current()
	if err != nil {
		return false, err
	}
	if req.Status != Pending {
		return false, reverts.ErrNotPending
	}
	if req.HasApproval(approver) {
		return false, nil
	}

	req.Approvals = append(req.Approvals, approver)
	required, err := s.repo.RequiredApprovals()
	if err != nil {
		return false, err
	}
	reached := uint32(len(req.Approvals)) >= required
	if reached {
		req.Status = Approved
	}
	if err := s.repo.Set(req); err != nil {
		return false, err
	}

	logger.Debug("slash request approved", "id", req.ID, "approver", approver, "approvals", len(req.Approvals), "quorum", reached)
	return reached, nil
}

// Execute applies the approved slash to the bond, capping at the bonded
// balance, and marks the request Executed.
func (s *Service) Execute() (*bond.Bond, error) {
	req, err := s.repo.Current()
	if err != nil {
		return nil, err
	}
	if req.Status != Approved {
		return nil, reverts.ErrNotApproved
	}

	b, err := s.bonds.Get(req.Identity)
	if err != nil {
		return nil, err
	}
	if _, err := b.ApplySlashCapped(req.Amount); err != nil {
		return nil, err
	}
	if err := s.bonds.Set(b); err != nil {
		return nil, err
	}

	req.Status = Executed
	if err := s.repo.Set(req); err != nil {
		return nil, err
	}

	logger.Info("slash executed", "id", req.ID, "identity", req.Identity, "amount", req.Amount, "slashed", b.SlashedAmount)
	return b, nil
}

// Reject marks a Pending request Rejected, leaving the bond untouched.
func (s *Service) Reject() (*SlashRequest, error) {
	req, err := s.repo.Current()
	if err != nil {
		return nil, err
	}
	if req.Status != Pending {
		return nil, reverts.ErrNotPending
	}

	req.Status = Rejected
	if err := s.repo.Set(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Dispute puts a Pending or Approved request on hold with a recorded reason.
func (s *Service) Dispute(disputer credence.Address, reason string) error {
	if err := s.authority.RequireMember(disputer); err != nil {
		return err
	}
	req, err := s.repo.Current()
	if err != nil {
		return err
	}
	if req.Status != Pending && req.Status != Approved {
		return reverts.ErrInvalidState
	}

	req.Status = Disputed
	req.IsDisputed = true
	req.DisputeReason = reason
	if err := s.repo.Set(req); err != nil {
		return err
	}

	logger.Info("slash request disputed", "id", req.ID, "disputer", disputer, "reason", reason)
	return nil
}

// Resolve settles a Disputed request. An upheld resolution re-evaluates the
// quorum: back to Approved when the approvals still meet it, back to Pending
// otherwise. A rejected resolution terminates the request.
func (s *Service) Resolve(approveResolution bool) (Status, error) {
	req, err := s.repo.Current()
	if err != nil {
		return 0, err
	}
	if req.Status != Disputed {
		return 0, reverts.ErrNotDisputed
	}

	if approveResolution {
		required, err := s.repo.RequiredApprovals()
		if err != nil {
			return 0, err
		}
		if uint32(len(req.Approvals)) >= required {
			req.Status = Approved
		} else {
			req.Status = Pending
		}
	} else {
		req.Status = Rejected
	}
	req.IsDisputed = false
	if err := s.repo.Set(req); err != nil {
		return 0, err
	}

	logger.Info("slash request resolved", "id", req.ID, "status", req.Status)
	return req.Status, nil
}

// Current returns the live request.
func (s *Service) Current() (*SlashRequest, error) {
	return s.repo.Current()
}

// Get returns the request with the given id.
func (s *Service) Get(id uint32) (*SlashRequest, error) {
	return s.repo.Get(id)
}
