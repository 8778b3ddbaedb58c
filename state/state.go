// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides the journaled storage layer shared by the bond ledger's
// services. All mutations are buffered in a stacked map until Commit, and any
// range of mutations can be reverted via checkpoints, which is what makes every
// ledger entry point atomic: a failing operation reverts to the checkpoint taken
// at its start and the backing store is never touched.
package state

import (
	"github.com/pkg/errors"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/kv"
)

// State manages the main ledger storage.
type State struct {
	store kv.GetPutter
	sm    *stackedMap
}

// New create state object backed by the given kv store.
func New(store kv.GetPutter) *State {
	st := &State{store: store}
	st.sm = newStackedMap(st.storeGetter)
	// base level, restored after every commit
	st.sm.push()
	return st
}

func (s *State) storeGetter(key credence.Bytes32) ([]byte, bool, error) {
	raw, err := s.store.Get(key.Bytes())
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "state: get storage")
	}
	return raw, true, nil
}

// GetRawStorage returns the raw value stored at key, nil if absent.
func (s *State) GetRawStorage(key credence.Bytes32) ([]byte, error) {
	raw, _, err := s.sm.get(key)
	return raw, err
}

// SetRawStorage stores the raw value at key. Empty value deletes the key on commit.
func (s *State) SetRawStorage(key credence.Bytes32, raw []byte) {
	s.sm.put(key, raw)
}

// GetStorage returns the 32-byte value stored at key, zero value if absent.
func (s *State) GetStorage(key credence.Bytes32) (credence.Bytes32, error) {
	raw, err := s.GetRawStorage(key)
	if err != nil {
		return credence.Bytes32{}, err
	}
	if len(raw) == 0 {
		return credence.Bytes32{}, nil
	}
	return credence.BytesToBytes32(raw), nil
}

// SetStorage stores a 32-byte value at key. Zero value deletes the key on commit.
func (s *State) SetStorage(key, value credence.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(key, nil)
		return
	}
	// trim leading zeros, like trie storage does
	trimmed := value.Bytes()
	for len(trimmed) > 0 && trimmed[0] == 0 {
		trimmed = trimmed[1:]
	}
	s.SetRawStorage(key, trimmed)
}

// EncodeStorage sets the encoded storage value at key.
// An empty encoded value deletes the key on commit.
func (s *State) EncodeStorage(key credence.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return errors.Wrap(err, "state: encode storage")
	}
	s.SetRawStorage(key, raw)
	return nil
}

// DecodeStorage decodes the storage value at key via dec.
// dec receives a nil slice when the key is absent.
func (s *State) DecodeStorage(key credence.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return errors.Wrap(err, "state: decode storage")
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns the checkpoint to be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.push()
}

// RevertTo reverts the state to the given checkpoint, dropping all mutations
// recorded since it was taken.
// Panics if the checkpoint is invalid.
func (s *State) RevertTo(checkpoint int) {
	if checkpoint < 1 || checkpoint > s.sm.depth() {
		panic("state: invalid checkpoint")
	}
	sm := s.sm
	sm.popTo(checkpoint)
}

// Commit writes all buffered mutations to the backing store in one batch and
// collapses the journal, so the next commit carries only the writes made since.
// Committed values are served by the backing store afterwards.
func (s *State) Commit() error {
	batch := s.store.NewBatch()
	err := s.sm.journal(func(key credence.Bytes32, value []byte) error {
		if len(value) == 0 {
			return batch.Delete(key.Bytes())
		}
		return batch.Put(key.Bytes(), value)
	})
	if err != nil {
		return errors.Wrap(err, "state: build commit batch")
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "state: commit")
	}
	s.sm.popTo(0)
	s.sm.push()
	return nil
}
