// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/credencelabs/credence/credence"
)

// Key is anything that can key a mapping entry.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction over a base slot, similar to a
// mapping declared in a contract: each entry lives at blake2b(key, basePos).
type Mapping[K Key, V any] struct {
	context *Context
	basePos credence.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos credence.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get decodes the entry at key. The zero V is returned for absent entries.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := credence.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(position, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set encodes value at key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	position := credence.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(position, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
