// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bonds exposes read access to the bond ledger over http.
package bonds

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/credencelabs/credence/api/utils"
	"github.com/credencelabs/credence/credence"
	"github.com/credencelabs/credence/ledger"
	"github.com/credencelabs/credence/reverts"
)

type Bonds struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Bonds {
	return &Bonds{ledger: l}
}

func (b *Bonds) handleGetBond(w http.ResponseWriter, req *http.Request) error {
	identity, err := credence.ParseAddress(mux.Vars(req)["identity"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "identity"))
	}
	bnd, err := b.ledger.GetBond(identity)
	if err != nil {
		if errors.Is(err, reverts.ErrNoBond) {
			return utils.NotFound(err)
		}
		return err
	}
	jb, err := convertBond(bnd)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, jb)
}

func (b *Bonds) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{identity}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(b.handleGetBond))
}
