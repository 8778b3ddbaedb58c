// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/credencelabs/credence/credence"
)

// Record is a wrapper for storage and retrieval of a single rlp-encoded record
// at a fixed slot, like a struct storage variable.
type Record[T any] struct {
	context *Context
	pos     credence.Bytes32
}

func NewRecord[T any](context *Context, pos credence.Bytes32) *Record[T] {
	return &Record[T]{context: context, pos: pos}
}

// Get decodes the stored record. The second return value reports presence.
func (r *Record[T]) Get() (value T, exists bool, err error) {
	err = r.context.state.DecodeStorage(r.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		exists = true
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set encodes the record into its slot.
func (r *Record[T]) Set(value T) error {
	return r.context.state.EncodeStorage(r.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
