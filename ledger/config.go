// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/pkg/errors"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
)

// GovernanceConfig is the quorum policy snapshot.
type GovernanceConfig struct {
	Admin             credence.Address
	Members           []credence.Address
	RequiredApprovals uint32
	RequestCounter    uint32
}

// SetGovernanceConfig stores the admin, the member set and the quorum
// threshold. The first call bootstraps the config; later calls require the
// current admin. Keeping the threshold satisfiable against the member set is
// the caller's responsibility.
func (l *Ledger) SetGovernanceConfig(caller, admin credence.Address, members []credence.Address, requiredApprovals uint32) error {
	return l.run("set_governance_config", func() error {
		current, err := l.auth.Admin()
		if err != nil {
			return err
		}
		if !current.IsZero() {
			if err := l.auth.RequireAdmin(caller); err != nil {
				return err
			}
		}
		if requiredApprovals < 1 {
			return errors.Wrap(reverts.ErrAmountOutOfRange, "required approvals must be at least 1")
		}

		l.auth.SetAdmin(admin)
		if err := l.auth.SetMembers(members); err != nil {
			return err
		}
		l.govRepo.SetRequiredApprovals(requiredApprovals)

		logger.Info("governance config updated", "admin", admin, "members", len(members), "required", requiredApprovals)
		return nil
	})
}

// GetGovernanceConfig returns the current quorum policy.
func (l *Ledger) GetGovernanceConfig() (*GovernanceConfig, error) {
	admin, err := l.auth.Admin()
	if err != nil {
		return nil, err
	}
	members, err := l.auth.Members()
	if err != nil {
		return nil, err
	}
	required, err := l.govRepo.RequiredApprovals()
	if err != nil {
		return nil, err
	}
	counter, err := l.govRepo.Counter()
	if err != nil {
		return nil, err
	}
	return &GovernanceConfig{
		Admin:             admin,
		Members:           members,
		RequiredApprovals: required,
		RequestCounter:    counter,
	}, nil
}

// SetEarlyExitConfig stores the treasury and the early-exit penalty rate in
// basis points. Admin only.
func (l *Ledger) SetEarlyExitConfig(caller, treasury credence.Address, rateBps uint32) error {
	return l.run("set_early_exit_config", func() error {
		if err := l.auth.RequireAdmin(caller); err != nil {
			return err
		}
		l.penalty.SetConfig(treasury, rateBps)
		return nil
	})
}

// GetEarlyExitConfig returns the treasury and penalty rate.
func (l *Ledger) GetEarlyExitConfig() (credence.Address, uint32, error) {
	return l.penalty.Config()
}
