// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"encoding/binary"
	"math/big"

	"github.com/credencelabs/credence/credence"
)

// Uint256 is a wrapper for storage and retrieval of a big integer at a fixed slot.
// If the provided value exceeds 256 bits it will be truncated to fit into Bytes32.
type Uint256 struct {
	context *Context
	pos     credence.Bytes32
}

func NewUint256(context *Context, pos credence.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) {
	u.context.state.SetStorage(u.pos, credence.BytesToBytes32(value.Bytes()))
}

// Uint64 is a wrapper for storage and retrieval of an uint64 at a fixed slot.
type Uint64 struct {
	context *Context
	pos     credence.Bytes32
}

func NewUint64(context *Context, pos credence.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.context.state.GetStorage(u.pos)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(storage[24:]), nil
}

func (u *Uint64) Set(value uint64) {
	var b32 credence.Bytes32
	binary.BigEndian.PutUint64(b32[24:], value)
	u.context.state.SetStorage(u.pos, b32)
}

// Uint32 is a wrapper for storage and retrieval of an uint32 at a fixed slot.
type Uint32 struct {
	context *Context
	pos     credence.Bytes32
}

func NewUint32(context *Context, pos credence.Bytes32) *Uint32 {
	return &Uint32{context: context, pos: pos}
}

func (u *Uint32) Get() (uint32, error) {
	storage, err := u.context.state.GetStorage(u.pos)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(storage[28:]), nil
}

func (u *Uint32) Set(value uint32) {
	var b32 credence.Bytes32
	binary.BigEndian.PutUint32(b32[28:], value)
	u.context.state.SetStorage(u.pos, b32)
}

// Bool is a wrapper for storage and retrieval of a bool flag at a fixed slot.
type Bool struct {
	context *Context
	pos     credence.Bytes32
}

func NewBool(context *Context, pos credence.Bytes32) *Bool {
	return &Bool{context: context, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var b32 credence.Bytes32
	if value {
		b32[31] = 1
	}
	b.context.state.SetStorage(b.pos, b32)
}

// Address is a wrapper for storage and retrieval of an address at a fixed slot.
type Address struct {
	context *Context
	pos     credence.Bytes32
}

func NewAddress(context *Context, pos credence.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (credence.Address, error) {
	storage, err := a.context.state.GetStorage(a.pos)
	if err != nil {
		return credence.Address{}, err
	}
	return credence.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr credence.Address) {
	a.context.state.SetStorage(a.pos, credence.BytesToBytes32(addr.Bytes()))
}
