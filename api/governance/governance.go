// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package governance exposes read access to the quorum config and slash
// requests over http.
package governance

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/credencelabs/credence/api/utils"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/governance"
	"github.com/credencelabs/credence/ledger"
	"github.com/credencelabs/credence/reverts"
)

// JSONSlashRequest is the api presentation of a slash request.
type JSONSlashRequest struct {
	ID            uint32                `json:"id"`
	Requester     credence.Address      `json:"requester"`
	Identity      credence.Address      `json:"identity"`
	Amount        *math.HexOrDecimal256 `json:"amount"`
	Reason        uint32                `json:"reason"`
	Status        string                `json:"status"`
	Approvals     []credence.Address    `json:"approvals"`
	CreatedAt     uint64                `json:"createdAt"`
	Disputed      bool                  `json:"disputed"`
	DisputeReason string                `json:"disputeReason,omitempty"`
}

func convertRequest(req *governance.SlashRequest) *JSONSlashRequest {
	return &JSONSlashRequest{
		ID:            req.ID,
		Requester:     req.Requester,
		Identity:      req.Identity,
		Amount:        (*math.HexOrDecimal256)(req.Amount),
		Reason:        req.Reason,
		Status:        req.Status.String(),
		Approvals:     req.Approvals,
		CreatedAt:     req.CreatedAt,
		Disputed:      req.IsDisputed,
		DisputeReason: req.DisputeReason,
	}
}

type Governance struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Governance {
	return &Governance{ledger: l}
}

func (g *Governance) handleGetConfig(w http.ResponseWriter, req *http.Request) error {
	cfg, err := g.ledger.GetGovernanceConfig()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, cfg)
}

func (g *Governance) handleGetCurrentRequest(w http.ResponseWriter, req *http.Request) error {
	current, err := g.ledger.CurrentSlashRequest()
	if err != nil {
		if errors.Is(err, reverts.ErrNoRequest) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertRequest(current))
}

func (g *Governance) handleGetRequest(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	request, err := g.ledger.GetSlashRequest(uint32(id))
	if err != nil {
		if errors.Is(err, reverts.ErrNoRequest) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertRequest(request))
}

func (g *Governance) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(g.handleGetConfig))
	sub.Path("/requests/current").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(g.handleGetCurrentRequest))
	sub.Path("/requests/{id:[0-9]+}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(g.handleGetRequest))
}
