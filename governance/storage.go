// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package governance

import (
	"encoding/binary"

	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/reverts"
	"github.com/credencelabs/credence/slots"
)

var (
	slotRequests          = credence.BytesToBytes32([]byte("slash-requests"))
	slotCurrentRequest    = credence.BytesToBytes32([]byte("current-slash-request"))
	slotRequestCounter    = credence.BytesToBytes32([]byte("slash-request-counter"))
	slotRequiredApprovals = credence.BytesToBytes32([]byte("required-approvals"))
)

// requestID keys the request mapping.
type requestID uint32

func (id requestID) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(id))
	return b[:]
}

// Repository keys slash requests by id and tracks the live one. At most one
// request is live at a time; submitting a new one replaces the pointer while
// older requests stay readable by id.
type Repository struct {
	requests *slots.Mapping[requestID, *SlashRequest]
	current  *slots.Uint32
	counter  *slots.Uint32
	required *slots.Uint32
}

func NewRepository(sctx *slots.Context) *Repository {
	return &Repository{
		requests: slots.NewMapping[requestID, *SlashRequest](sctx, slotRequests),
		current:  slots.NewUint32(sctx, slotCurrentRequest),
		counter:  slots.NewUint32(sctx, slotRequestCounter),
		required: slots.NewUint32(sctx, slotRequiredApprovals),
	}
}

// NextID allocates the next request id, starting at 1.
func (r *Repository) NextID() (uint32, error) {
	counter, err := r.counter.Get()
	if err != nil {
		return 0, err
	}
	counter++
	r.counter.Set(counter)
	return counter, nil
}

// Counter returns the id of the most recently allocated request, zero when
// none was ever submitted.
func (r *Repository) Counter() (uint32, error) {
	return r.counter.Get()
}

// Get returns the request with the given id, failing with ErrNoRequest when
// none exists. Absent entries decode with a nil amount.
func (r *Repository) Get(id uint32) (*SlashRequest, error) {
	req, err := r.requests.Get(requestID(id))
	if err != nil {
		return nil, err
	}
	if req.Amount == nil {
		return nil, reverts.ErrNoRequest
	}
	return req, nil
}

// Set stores the request under its id.
func (r *Repository) Set(req *SlashRequest) error {
	return r.requests.Set(requestID(req.ID), req)
}

// Current returns the live request.
func (r *Repository) Current() (*SlashRequest, error) {
	id, err := r.current.Get()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, reverts.ErrNoRequest
	}
	return r.Get(id)
}

// SetCurrent points the live-request slot at id.
func (r *Repository) SetCurrent(id uint32) {
	r.current.Set(id)
}

// RequiredApprovals returns the quorum threshold.
func (r *Repository) RequiredApprovals() (uint32, error) {
	return r.required.Get()
}

// SetRequiredApprovals stores the quorum threshold.
func (r *Repository) SetRequiredApprovals(n uint32) {
	r.required.Set(n)
}
