// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"

	"github.com/pixelplatform/staking/api/utils"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/state"
)

// Account is the json form of an account.
type Account struct {
	Lamports   uint64        `json:"lamports"`
	Owner      pixel.Address `json:"owner"`
	Data       string        `json:"data"`
	Executable bool          `json:"executable"`
}

// Getter reads committed accounts.
type Getter interface {
	Account(addr pixel.Address) (*state.Account, error)
}

type Accounts struct {
	getter Getter
}

func New(getter Getter) *Accounts {
	return &Accounts{getter}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	acc, err := a.getter.Account(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{
		Lamports:   acc.Lamports,
		Owner:      acc.Owner,
		Data:       hexutil.Encode(acc.Data),
		Executable: acc.Executable,
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
