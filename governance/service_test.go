// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package governance

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credencelabs/credence/authority"
	"github.com/credencelabs/credence/bond"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/lvldb"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/slots"
	"github.com/credencelabs/credence/state"
)

var (
	memberA  = credence.BytesToAddress([]byte{0xa})
	memberB  = credence.BytesToAddress([]byte{0xb})
	memberC  = credence.BytesToAddress([]byte{0xc})
	outsider = credence.BytesToAddress([]byte{0xf})
	identity = credence.BytesToAddress([]byte("identity"))
)

type fixture struct {
	svc   *Service
	bonds *bond.Repository
}

// required_approvals=2, members={A,B,C}, bond of 1000 for identity
func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	sctx := slots.NewContext(state.New(db))

	auth := authority.New(sctx)
	require.NoError(t, auth.SetMembers([]credence.Address{memberA, memberB, memberC}))

	repo := NewRepository(sctx)
	repo.SetRequiredApprovals(2)

	bonds := bond.NewRepository(sctx)
	require.NoError(t, bonds.Set(&bond.Bond{
		Identity:      identity,
		BondedAmount:  big.NewInt(1000),
		BondStart:     1000,
		BondDuration:  86400,
		SlashedAmount: new(big.Int),
		Active:        true,
	}))

	return &fixture{svc: NewService(repo, auth, bonds), bonds: bonds}
}

func TestSubmitApproveExecuteScenario(t *testing.T) {
	f := newFixture(t)

	id, err := f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)

	req, err := f.svc.Current()
	require.NoError(t, err)
	assert.Equal(t, Pending, req.Status)
	assert.Equal(t, []credence.Address{memberA}, req.Approvals)

	// executing before quorum fails
	_, err = f.svc.Execute()
	assert.ErrorIs(t, err, reverts.ErrNotApproved)

	reached, err := f.svc.Approve(memberB)
	require.NoError(t, err)
	assert.True(t, reached)

	req, err = f.svc.Current()
	require.NoError(t, err)
	assert.Equal(t, Approved, req.Status)

	b, err := f.svc.Execute()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), b.BondedAmount)
	assert.Equal(t, big.NewInt(300), b.SlashedAmount)
	assert.True(t, b.Active)

	req, err = f.svc.Current()
	require.NoError(t, err)
	assert.Equal(t, Executed, req.Status)
}

func TestQuorumMonotonicity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)

	// the requester's self-approval is a duplicate no-op
	reached, err := f.svc.Approve(memberA)
	require.NoError(t, err)
	assert.False(t, reached)

	req, err := f.svc.Current()
	require.NoError(t, err)
	assert.Len(t, req.Approvals, 1)
	assert.Equal(t, Pending, req.Status)

	reached, err = f.svc.Approve(memberB)
	require.NoError(t, err)
	assert.True(t, reached)

	// approving past the transition fails on state, not on quorum
	_, err = f.svc.Approve(memberC)
	assert.ErrorIs(t, err, reverts.ErrNotPending)
}

func TestExcessSlashCapsOnExecute(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(memberA, identity, big.NewInt(5000), 1, 5000)
	require.NoError(t, err)
	_, err = f.svc.Approve(memberB)
	require.NoError(t, err)

	b, err := f.svc.Execute()
	require.NoError(t, err)
	assert.Equal(t, b.BondedAmount, b.SlashedAmount)
	assert.False(t, b.Active)
}

func TestNonMemberRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(outsider, identity, big.NewInt(300), 1, 5000)
	assert.ErrorIs(t, err, reverts.ErrNotGovernanceMember)

	_, err = f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)

	_, err = f.svc.Approve(outsider)
	assert.ErrorIs(t, err, reverts.ErrNotGovernanceMember)

	err = f.svc.Dispute(outsider, "bad")
	assert.ErrorIs(t, err, reverts.ErrNotGovernanceMember)
}

func TestReject(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)

	req, err := f.svc.Reject()
	require.NoError(t, err)
	assert.Equal(t, Rejected, req.Status)

	// bond untouched
	b, err := f.bonds.Get(identity)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0).String(), b.SlashedAmount.String())

	_, err = f.svc.Reject()
	assert.ErrorIs(t, err, reverts.ErrNotPending)
}

func TestDisputeResolveUpheld(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)
	_, err = f.svc.Approve(memberB)
	require.NoError(t, err)

	require.NoError(t, f.svc.Dispute(memberC, "contested evidence"))
	req, err := f.svc.Current()
	require.NoError(t, err)
	assert.Equal(t, Disputed, req.Status)
	assert.True(t, req.IsDisputed)
	assert.Equal(t, "contested evidence", req.DisputeReason)

	// quorum still satisfied: resolution restores Approved
	status, err := f.svc.Resolve(true)
	require.NoError(t, err)
	assert.Equal(t, Approved, status)

	req, err = f.svc.Current()
	require.NoError(t, err)
	assert.False(t, req.IsDisputed)
}

func TestDisputeResolveBelowQuorum(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)

	require.NoError(t, f.svc.Dispute(memberB, "premature"))

	// only the self-approval stands: back to Pending
	status, err := f.svc.Resolve(true)
	require.NoError(t, err)
	assert.Equal(t, Pending, status)
}

func TestDisputeResolveRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)
	require.NoError(t, f.svc.Dispute(memberB, "fraudulent"))

	status, err := f.svc.Resolve(false)
	require.NoError(t, err)
	assert.Equal(t, Rejected, status)

	req, err := f.svc.Current()
	require.NoError(t, err)
	assert.False(t, req.IsDisputed)

	_, err = f.svc.Resolve(true)
	assert.ErrorIs(t, err, reverts.ErrNotDisputed)
}

func TestDisputeInvalidStates(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Dispute(memberA, "nothing live")
	assert.ErrorIs(t, err, reverts.ErrNoRequest)

	_, err = f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)
	_, err = f.svc.Reject()
	require.NoError(t, err)

	err = f.svc.Dispute(memberA, "too late")
	assert.ErrorIs(t, err, reverts.ErrInvalidState)
}

func TestSubmitReplacesLiveRequest(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Submit(memberA, identity, big.NewInt(300), 1, 5000)
	require.NoError(t, err)
	second, err := f.svc.Submit(memberB, identity, big.NewInt(200), 2, 6000)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), second)

	req, err := f.svc.Current()
	require.NoError(t, err)
	assert.Equal(t, second, req.ID)
	assert.Equal(t, memberB, req.Requester)

	// the replaced request stays readable by id
	old, err := f.svc.Get(first)
	require.NoError(t, err)
	assert.Equal(t, memberA, old.Requester)
	assert.Equal(t, Pending, old.Status)
}
