// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	stderrors "errors"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(stderrors.New("plain")))
	assert.False(t, IsRevertErr("not an error"))
	assert.True(t, IsRevertErr(ErrNotAdmin))
	assert.True(t, IsRevertErr(errors.Wrap(ErrOverflow, "top up")))
}

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	wrapped := errors.Wrap(ErrInsufficientBalance, "withdraw 500")
	assert.True(t, stderrors.Is(wrapped, ErrInsufficientBalance))
	assert.False(t, stderrors.Is(wrapped, ErrSlashExceedsBond))
	assert.Equal(t, "insufficient balance for withdrawal", ErrInsufficientBalance.Error())
}
