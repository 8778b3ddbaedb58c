// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/kv"
	"github.com/credencelabs/credence/lvldb"
)

// batchRecordingStore records the op count of every batch written through it.
type batchRecordingStore struct {
	kv.GetPutter
	batchLens []int
}

func (s *batchRecordingStore) NewBatch() kv.Batch {
	return &recordingBatch{Batch: s.GetPutter.NewBatch(), store: s}
}

type recordingBatch struct {
	kv.Batch
	store *batchRecordingStore
	ops   int
}

func (b *recordingBatch) Put(key, value []byte) error {
	b.ops++
	return b.Batch.Put(key, value)
}

func (b *recordingBatch) Delete(key []byte) error {
	b.ops++
	return b.Batch.Delete(key)
}

func (b *recordingBatch) Write() error {
	b.store.batchLens = append(b.store.batchLens, b.ops)
	return b.Batch.Write()
}

func newTestState(t *testing.T) *State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestStorageRoundTrip(t *testing.T) {
	st := newTestState(t)
	key := credence.Blake2b([]byte("key"))
	value := credence.BytesToBytes32([]byte{1, 2, 3})

	got, err := st.GetStorage(key)
	assert.NoError(t, err)
	assert.True(t, got.IsZero())

	st.SetStorage(key, value)
	got, err = st.GetStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestCheckpointRevert(t *testing.T) {
	st := newTestState(t)
	key := credence.Blake2b([]byte("key"))

	st.SetStorage(key, credence.BytesToBytes32([]byte{1}))

	cp := st.NewCheckpoint()
	st.SetStorage(key, credence.BytesToBytes32([]byte{2}))

	got, err := st.GetStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, credence.BytesToBytes32([]byte{2}), got)

	st.RevertTo(cp)

	got, err = st.GetStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, credence.BytesToBytes32([]byte{1}), got)
}

func TestNestedCheckpoints(t *testing.T) {
	st := newTestState(t)
	key := credence.Blake2b([]byte("key"))

	cp1 := st.NewCheckpoint()
	st.SetStorage(key, credence.BytesToBytes32([]byte{1}))
	cp2 := st.NewCheckpoint()
	st.SetStorage(key, credence.BytesToBytes32([]byte{2}))
	st.NewCheckpoint()
	st.SetStorage(key, credence.BytesToBytes32([]byte{3}))

	st.RevertTo(cp2)
	got, _ := st.GetStorage(key)
	assert.Equal(t, credence.BytesToBytes32([]byte{1}), got)

	st.RevertTo(cp1)
	got, _ = st.GetStorage(key)
	assert.True(t, got.IsZero())
}

func TestCommitPersists(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := New(db)
	key := credence.Blake2b([]byte("key"))
	st.SetStorage(key, credence.BytesToBytes32([]byte{9}))
	require.NoError(t, st.Commit())

	// a fresh state over the same store sees the committed value
	st2 := New(db)
	got, err := st2.GetStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, credence.BytesToBytes32([]byte{9}), got)
}

func TestCommitCollapsesJournal(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := &batchRecordingStore{GetPutter: db}
	st := New(store)
	key := credence.Blake2b([]byte("counter"))

	for i := 1; i <= 50; i++ {
		st.NewCheckpoint()
		st.SetStorage(key, credence.BytesToBytes32([]byte{byte(i)}))
		require.NoError(t, st.Commit())
	}

	// each commit carries only the writes made since the previous one
	require.Len(t, store.batchLens, 50)
	for _, n := range store.batchLens {
		assert.Equal(t, 1, n)
	}
	assert.Equal(t, 1, st.sm.depth())

	got, err := st.GetStorage(key)
	require.NoError(t, err)
	assert.Equal(t, credence.BytesToBytes32([]byte{50}), got)
}

func TestRevertedWritesNotCommitted(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := New(db)
	key := credence.Blake2b([]byte("key"))

	cp := st.NewCheckpoint()
	st.SetStorage(key, credence.BytesToBytes32([]byte{7}))
	st.RevertTo(cp)
	require.NoError(t, st.Commit())

	has, err := db.Has(key.Bytes())
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newTestState(t)
	key := credence.Blake2b([]byte("raw"))

	require.NoError(t, st.EncodeStorage(key, func() ([]byte, error) {
		return []byte("payload"), nil
	}))

	var decoded []byte
	require.NoError(t, st.DecodeStorage(key, func(raw []byte) error {
		decoded = append([]byte(nil), raw...)
		return nil
	}))
	assert.Equal(t, []byte("payload"), decoded)
}
