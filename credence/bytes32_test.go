// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package credence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBytes32(t *testing.T) {
	b32 := Bytes32{1, 2, 3}
	parsed, err := ParseBytes32(b32.String())
	assert.NoError(t, err)
	assert.Equal(t, b32, parsed)

	_, err = ParseBytes32("0x123")
	assert.Error(t, err)

	_, err = ParseBytes32("zz" + b32.String()[2:])
	assert.Error(t, err)
}

func TestBytesToBytes32(t *testing.T) {
	// shorter input is left padded
	assert.Equal(t, Bytes32{31: 0xff}, BytesToBytes32([]byte{0xff}))
	// longer input is cropped from the left
	long := make([]byte, 40)
	long[39] = 0xaa
	assert.Equal(t, Bytes32{31: 0xaa}, BytesToBytes32(long))
}

func TestBytes32JSON(t *testing.T) {
	b32 := Blake2b([]byte("credence"))
	data, err := json.Marshal(&b32)
	assert.NoError(t, err)

	var decoded Bytes32
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b32, decoded)
}

func TestAddressRoundTrip(t *testing.T) {
	addr := BytesToAddress([]byte{0xde, 0xad})
	parsed, err := ParseAddress(addr.String())
	assert.NoError(t, err)
	assert.Equal(t, addr, parsed)
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestBlake2bDistinct(t *testing.T) {
	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
}
