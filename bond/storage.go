// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bond

import (
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/slots"
)

var slotBonds = credence.BytesToBytes32([]byte("bonds"))

// Repository keys bonds by identity.
type Repository struct {
	bonds *slots.Mapping[credence.Address, *Bond]
}

func NewRepository(sctx *slots.Context) *Repository {
	return &Repository{
		bonds: slots.NewMapping[credence.Address, *Bond](sctx, slotBonds),
	}
}

// Get returns the bond for identity, failing with ErrNoBond when none exists.
// Absent entries decode with a nil bonded amount.
func (r *Repository) Get(identity credence.Address) (*Bond, error) {
	b, err := r.bonds.Get(identity)
	if err != nil {
		return nil, err
	}
	if b.BondedAmount == nil {
		return nil, reverts.ErrNoBond
	}
	return b, nil
}

// Set stores the bond under its identity.
func (r *Repository) Set(b *Bond) error {
	return r.bonds.Set(b.Identity, b)
}

// Has reports whether a bond exists for identity.
func (r *Repository) Has(identity credence.Address) (bool, error) {
	b, err := r.bonds.Get(identity)
	if err != nil {
		return false, err
	}
	return b.BondedAmount != nil, nil
}
