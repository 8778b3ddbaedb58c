// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority implements the role checks every ledger entry point runs
// before touching state: the configured admin, the governance member set, and
// bond ownership.
package authority

import (
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/slots"
)

var (
	slotAdmin   = credence.BytesToBytes32([]byte("authority-admin"))
	slotMembers = credence.BytesToBytes32([]byte("authority-members"))
)

// Service answers role questions against the persisted authority config.
type Service struct {
	admin   *slots.Address
	members *slots.Record[[]credence.Address]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		admin:   slots.NewAddress(sctx, slotAdmin),
		members: slots.NewRecord[[]credence.Address](sctx, slotMembers),
	}
}

// SetAdmin stores the admin address.
func (s *Service) SetAdmin(admin credence.Address) {
	s.admin.Set(admin)
}

// Admin returns the configured admin address.
func (s *Service) Admin() (credence.Address, error) {
	return s.admin.Get()
}

// SetMembers replaces the governance member set.
func (s *Service) SetMembers(members []credence.Address) error {
	return s.members.Set(members)
}

// Members returns the governance member set, empty if never configured.
func (s *Service) Members() ([]credence.Address, error) {
	members, _, err := s.members.Get()
	return members, err
}

// IsMember reports whether addr is a governance member.
func (s *Service) IsMember(addr credence.Address) (bool, error) {
	members, err := s.Members()
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m == addr {
			return true, nil
		}
	}
	return false, nil
}

// RequireAdmin fails with ErrNotAdmin unless caller is the configured admin.
func (s *Service) RequireAdmin(caller credence.Address) error {
	admin, err := s.admin.Get()
	if err != nil {
		return err
	}
	if caller != admin {
		return reverts.ErrNotAdmin
	}
	return nil
}

// RequireMember fails with ErrNotGovernanceMember unless caller is in the
// member set.
func (s *Service) RequireMember(caller credence.Address) error {
	ok, err := s.IsMember(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotGovernanceMember
	}
	return nil
}

// RequireOwner fails with ErrNotOwner unless caller is the bond's identity.
func RequireOwner(caller, identity credence.Address) error {
	if caller != identity {
		return reverts.ErrNotOwner
	}
	return nil
}
