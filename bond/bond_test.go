// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bond

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
)

func newBond(bonded, slashed int64) *Bond {
	return &Bond{
		Identity:      credence.BytesToAddress([]byte{1}),
		BondedAmount:  big.NewInt(bonded),
		BondStart:     1000,
		BondDuration:  86400,
		SlashedAmount: big.NewInt(slashed),
		Active:        true,
	}
}

func TestAvailable(t *testing.T) {
	b := newBond(1000, 300)
	available, err := b.Available()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(700), available)

	// unreachable through normal operation
	b.SlashedAmount = big.NewInt(1001)
	_, err = b.Available()
	assert.ErrorIs(t, err, reverts.ErrInvariantViolation)
}

func TestApplySlashCapped(t *testing.T) {
	b := newBond(1000, 0)

	newSlashed, err := b.ApplySlashCapped(big.NewInt(300))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(300), newSlashed)
	assert.True(t, b.Active)

	// exceeding the remaining balance caps, never errors
	newSlashed, err = b.ApplySlashCapped(big.NewInt(900))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), newSlashed)
	assert.Equal(t, b.BondedAmount, b.SlashedAmount)
	assert.False(t, b.Active)
}

func TestApplySlashStrict(t *testing.T) {
	b := newBond(1000, 300)

	// the same excess input that caps on the governed path is rejected here
	_, err := b.ApplySlashStrict(big.NewInt(900))
	assert.ErrorIs(t, err, reverts.ErrSlashExceedsBond)
	assert.Equal(t, big.NewInt(300), b.SlashedAmount)
	assert.True(t, b.Active)

	newSlashed, err := b.ApplySlashStrict(big.NewInt(700))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), newSlashed)
	assert.False(t, b.Active)
}
