// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/lvldb"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/slots"
	"github.com/credencelabs/credence/state"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	assert.NoError(t, err)
	return New(slots.NewContext(state.New(db)))
}

func TestAdmin(t *testing.T) {
	svc := newService(t)

	admin := credence.BytesToAddress([]byte("admin"))
	other := credence.BytesToAddress([]byte("other"))
	svc.SetAdmin(admin)

	got, err := svc.Admin()
	assert.NoError(t, err)
	assert.Equal(t, admin, got)

	assert.NoError(t, svc.RequireAdmin(admin))
	assert.ErrorIs(t, svc.RequireAdmin(other), reverts.ErrNotAdmin)
}

func TestMembers(t *testing.T) {
	svc := newService(t)

	a := credence.BytesToAddress([]byte{0xa})
	b := credence.BytesToAddress([]byte{0xb})
	c := credence.BytesToAddress([]byte{0xc})

	// empty set before configuration
	ok, err := svc.IsMember(a)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, svc.SetMembers([]credence.Address{a, b}))

	members, err := svc.Members()
	assert.NoError(t, err)
	assert.Equal(t, []credence.Address{a, b}, members)

	assert.NoError(t, svc.RequireMember(a))
	assert.NoError(t, svc.RequireMember(b))
	assert.ErrorIs(t, svc.RequireMember(c), reverts.ErrNotGovernanceMember)
}

func TestRequireOwner(t *testing.T) {
	identity := credence.BytesToAddress([]byte{1})
	assert.NoError(t, RequireOwner(identity, identity))
	assert.ErrorIs(t, RequireOwner(credence.BytesToAddress([]byte{2}), identity), reverts.ErrNotOwner)
}
