// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/api/utils"
	"github.com/pixelplatform/staking/ledger"
	"github.com/pixelplatform/staking/runtime"
	"github.com/pixelplatform/staking/staking"
)

type Transactions struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Transactions {
	return &Transactions{l}
}

// convertError maps a failed execution to its http error.
func convertError(err error) error {
	if code, ok := staking.CodeOf(err); ok {
		return utils.BadRequestWithCode(err, uint32(code))
	}
	if ledger.IsRejection(err) || runtime.IsHostError(err) {
		return utils.BadRequest(err)
	}
	return err
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var raw RawTx
	if err := utils.ParseJSON(req.Body, &raw); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	tx, err := raw.decode()
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}
	receipt, err := t.ledger.Execute(req.Context(), tx)
	if err != nil {
		return convertError(err)
	}
	return utils.WriteJSON(w, &SendResult{
		ID:        receipt.TxID.String(),
		Slot:      receipt.Slot,
		Blockhash: receipt.Blockhash.String(),
	})
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := solana.SignatureFromBase58(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := t.ledger.Receipt(id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return utils.WriteJSON(w, nil)
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /transactions").
		HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /transactions/{id}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetReceipt))
}
