// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bond

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/credencelabs/credence/amounts"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/log"
	"github.com/credencelabs/credence/penalty"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/rolling"
	"github.com/credencelabs/credence/tier"
)

var logger = log.WithContext("pkg", "bond")

func SetLogger(l log.Logger) {
	logger = l
}

// Service runs the bond lifecycle. All timestamps are supplied by the caller,
// so the lifecycle itself is deterministic.
type Service struct {
	repo    *Repository
	tier    *tier.Service
	penalty *penalty.Service
	rolling *rolling.Service
}

func NewService(repo *Repository, tierSvc *tier.Service, penaltySvc *penalty.Service, rollingSvc *rolling.Service) *Service {
	return &Service{
		repo:    repo,
		tier:    tierSvc,
		penalty: penaltySvc,
		rolling: rollingSvc,
	}
}

// Create stores a fresh active, unslashed bond for identity, replacing any
// existing one.
func (s *Service) Create(identity credence.Address, amount *big.Int, now, duration uint64, isRolling bool, noticePeriod uint64) (*Bond, error) {
	if err := amounts.ValidateBondAmount(amount); err != nil {
		return nil, err
	}
	if _, err := amounts.AddTime(now, duration); err != nil {
		return nil, err
	}

	b := &Bond{
		Identity:      identity,
		BondedAmount:  new(big.Int).Set(amount),
		BondStart:     now,
		BondDuration:  duration,
		SlashedAmount: new(big.Int),
		Active:        true,
		IsRolling:     isRolling,
		NoticePeriod:  noticePeriod,
	}
	if err := s.repo.Set(b); err != nil {
		return nil, err
	}
	logger.Info("bond created", "identity", identity, "amount", amount, "duration", duration, "rolling", isRolling)
	return b, nil
}

// TopUp adds amount to the bonded balance.
func (s *Service) TopUp(identity credence.Address, amount *big.Int) (*Bond, error) {
	b, err := s.repo.Get(identity)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, reverts.ErrNotActive
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, errors.Wrap(reverts.ErrAmountOutOfRange, "negative amount")
	}

	oldAmount := b.BondedAmount
	newAmount, err := amounts.Add(b.BondedAmount, amount)
	if err != nil {
		return nil, err
	}
	b.BondedAmount = newAmount
	if err := s.repo.Set(b); err != nil {
		return nil, err
	}

	s.tier.NotifyChange(identity, oldAmount, newAmount)
	return b, nil
}

// ExtendDuration lengthens the lock-up, re-checking the period end against the
// timestamp domain.
func (s *Service) ExtendDuration(identity credence.Address, extra uint64) (*Bond, error) {
	b, err := s.repo.Get(identity)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, reverts.ErrNotActive
	}

	newDuration, err := amounts.AddTime(b.BondDuration, extra)
	if err != nil {
		return nil, err
	}
	if _, err := amounts.AddTime(b.BondStart, newDuration); err != nil {
		return nil, err
	}
	b.BondDuration = newDuration
	if err := s.repo.Set(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Withdraw removes amount from the available balance, bonded minus slashed.
func (s *Service) Withdraw(identity credence.Address, amount *big.Int) (*Bond, error) {
	b, err := s.repo.Get(identity)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, reverts.ErrNotActive
	}

	oldAmount := new(big.Int).Set(b.BondedAmount)
	if err := b.deduct(amount); err != nil {
		return nil, err
	}
	if err := s.repo.Set(b); err != nil {
		return nil, err
	}

	s.tier.NotifyChange(identity, oldAmount, b.BondedAmount)
	return b, nil
}

// WithdrawEarly removes amount before the lock-up ends, charging the
// configured early-exit penalty. Past the lock-up it directs the caller to
// Withdraw instead.
func (s *Service) WithdrawEarly(identity credence.Address, amount *big.Int, now uint64) (*Bond, error) {
	b, err := s.repo.Get(identity)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, reverts.ErrNotActive
	}
	end := b.PeriodEnd()
	if now >= end {
		return nil, reverts.ErrUseRegularWithdraw
	}

	treasury, rateBps, err := s.penalty.Config()
	if err != nil {
		return nil, err
	}
	fee := penalty.Calculate(amount, amounts.SubTimeSaturating(end, now), b.BondDuration, rateBps)

	oldAmount := new(big.Int).Set(b.BondedAmount)
	if err := b.deduct(amount); err != nil {
		return nil, err
	}
	if err := s.repo.Set(b); err != nil {
		return nil, err
	}

	s.tier.NotifyChange(identity, oldAmount, b.BondedAmount)
	// the penalty is routed to the treasury out of the withdrawn amount, the
	// bond itself is only reduced by amount
	s.penalty.Notify(identity, amount, fee, treasury)
	logger.Info("early withdrawal", "identity", identity, "amount", amount, "penalty", fee)
	return b, nil
}

// RequestWithdrawal starts the notice period of a rolling bond.
func (s *Service) RequestWithdrawal(identity credence.Address, now uint64) (*Bond, error) {
	b, err := s.repo.Get(identity)
	if err != nil {
		return nil, err
	}
	if !b.IsRolling {
		return nil, reverts.ErrNotRolling
	}
	if b.WithdrawalRequestedAt != 0 {
		return nil, reverts.ErrAlreadyRequested
	}

	b.WithdrawalRequestedAt = now
	if err := s.repo.Set(b); err != nil {
		return nil, err
	}

	s.rolling.NotifyWithdrawalRequested(identity, now, b.NoticePeriod)
	return b, nil
}

// RenewIfRolling rolls the bond into a new period when the current one has
// elapsed. A bond whose notice period has run out is not renewed. Returns the
// bond unchanged when no renewal applies.
func (s *Service) RenewIfRolling(identity credence.Address, now uint64) (*Bond, error) {
	b, err := s.repo.Get(identity)
	if err != nil {
		return nil, err
	}
	if !b.IsRolling || !rolling.PeriodEnded(now, b.BondStart, b.BondDuration) {
		return b, nil
	}
	if rolling.NoticeElapsed(now, b.WithdrawalRequestedAt, b.NoticePeriod) {
		return b, nil
	}

	b.BondStart = now
	if err := s.repo.Set(b); err != nil {
		return nil, err
	}

	s.rolling.NotifyRenewal(identity, now, b.BondDuration)
	return b, nil
}

// Get returns the bond for identity.
func (s *Service) Get(identity credence.Address) (*Bond, error) {
	return s.repo.Get(identity)
}
