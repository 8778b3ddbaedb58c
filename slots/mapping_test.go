// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/lvldb"
	"github.com/credencelabs/credence/state"
)

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(state.New(db))
}

type entry struct {
	Amount uint64
	Active bool
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	pos := credence.BytesToBytes32([]byte("entries"))
	mapping := NewMapping[credence.Address, entry](ctx, pos)

	addr := credence.BytesToAddress([]byte{1})

	// absent key decodes to zero value
	got, err := mapping.Get(addr)
	assert.NoError(t, err)
	assert.Equal(t, entry{}, got)

	want := entry{Amount: 42, Active: true}
	require.NoError(t, mapping.Set(addr, want))

	got, err = mapping.Get(addr)
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	// distinct keys hash to distinct positions
	other := credence.BytesToAddress([]byte{2})
	got, err = mapping.Get(other)
	assert.NoError(t, err)
	assert.Equal(t, entry{}, got)
}

func TestScalars(t *testing.T) {
	ctx := newTestContext(t)

	u := NewUint256(ctx, credence.BytesToBytes32([]byte("u256")))
	u.Set(big.NewInt(12345))
	got, err := u.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(12345), got)

	u64 := NewUint64(ctx, credence.BytesToBytes32([]byte("u64")))
	u64.Set(1 << 40)
	got64, err := u64.Get()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1)<<40, got64)

	u32 := NewUint32(ctx, credence.BytesToBytes32([]byte("u32")))
	u32.Set(7)
	got32, err := u32.Get()
	assert.NoError(t, err)
	assert.Equal(t, uint32(7), got32)

	b := NewBool(ctx, credence.BytesToBytes32([]byte("flag")))
	gotBool, err := b.Get()
	assert.NoError(t, err)
	assert.False(t, gotBool)
	b.Set(true)
	gotBool, err = b.Get()
	assert.NoError(t, err)
	assert.True(t, gotBool)
	b.Set(false)
	gotBool, err = b.Get()
	assert.NoError(t, err)
	assert.False(t, gotBool)

	a := NewAddress(ctx, credence.BytesToBytes32([]byte("addr")))
	addr := credence.BytesToAddress([]byte{0xaa})
	a.Set(addr)
	gotAddr, err := a.Get()
	assert.NoError(t, err)
	assert.Equal(t, addr, gotAddr)
}

func TestRecord(t *testing.T) {
	ctx := newTestContext(t)
	rec := NewRecord[entry](ctx, credence.BytesToBytes32([]byte("record")))

	_, exists, err := rec.Get()
	assert.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, rec.Set(entry{Amount: 9, Active: true}))
	got, exists, err := rec.Get()
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, entry{Amount: 9, Active: true}, got)
}
