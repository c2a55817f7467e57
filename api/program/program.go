// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package program serves the staking program accounts.
package program

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/api/utils"
	"github.com/pixelplatform/staking/ledger"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/staking"
	"github.com/pixelplatform/staking/state"
	"github.com/pixelplatform/staking/token"
)

type Program struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Program {
	return &Program{l}
}

func (p *Program) owned(st *state.State, addr pixel.Address) (*state.Account, bool, error) {
	acc, err := st.GetAccount(addr)
	if err != nil {
		return nil, false, err
	}
	return acc, acc.Owner == p.ledger.Processor().Program(), nil
}

func (p *Program) handleGetVault(w http.ResponseWriter, _ *http.Request) error {
	proc := p.ledger.Processor()
	vault, err := proc.Deriver().Vault()
	if err != nil {
		return err
	}
	holding, err := proc.Deriver().Holding(vault.Address, proc.RewardMint())
	if err != nil {
		return err
	}

	st := p.ledger.State()
	_, initialized, err := p.owned(st, vault.Address)
	if err != nil {
		return err
	}
	float, err := holdingBalance(st, holding)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Vault{
		Address:       vault.Address,
		Bump:          vault.Bump,
		Initialized:   initialized,
		RewardHolding: holding,
		RewardFloat:   float,
	})
}

func (p *Program) handleGetWhitelist(w http.ResponseWriter, req *http.Request) error {
	issuer, err := utils.ParseAddress(mux.Vars(req)["issuer"], "issuer")
	if err != nil {
		return err
	}
	entry, err := p.ledger.Processor().Deriver().Whitelist(issuer)
	if err != nil {
		return err
	}
	_, approved, err := p.owned(p.ledger.State(), entry.Address)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &WhitelistEntry{
		Issuer:   issuer,
		Address:  entry.Address,
		Approved: approved,
	})
}

func (p *Program) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.ParseAddress(mux.Vars(req)["asset"], "asset")
	if err != nil {
		return err
	}
	proc := p.ledger.Processor()
	addr, err := proc.Deriver().StakeRecord(asset)
	if err != nil {
		return err
	}
	acc, ok, err := p.owned(p.ledger.State(), addr.Address)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NotFound(errors.New("stake record not found"))
	}
	rec, err := staking.DecodeStakeRecord(acc.Data)
	if err != nil {
		return errors.Wrap(err, "decode stake record")
	}

	var pending uint64
	if rec.Active {
		pending = proc.Schedule().Calculate(p.ledger.Now(), rec.StakedAt, rec.Harvested, rec.Withdrawn)
	}
	return utils.WriteJSON(w, &Stake{
		Address:       addr.Address,
		StakedAt:      rec.StakedAt,
		Owner:         rec.Owner,
		Mint:          rec.Mint,
		Active:        rec.Active,
		Withdrawn:     rec.Withdrawn,
		Harvested:     rec.Harvested,
		PendingReward: pending,
	})
}

func (p *Program) handleGetAsset(w http.ResponseWriter, req *http.Request) error {
	mint, err := utils.ParseAddress(mux.Vars(req)["mint"], "mint")
	if err != nil {
		return err
	}
	addr, err := p.ledger.Processor().Deriver().Metadata(mint)
	if err != nil {
		return err
	}
	acc, err := p.ledger.Account(addr)
	if err != nil {
		return err
	}
	if acc.Owner != pixel.MetadataProgramID {
		return utils.NotFound(errors.New("metadata not found"))
	}
	var meta token.Metadata
	if err := token.Decode(acc.Data, &meta); err != nil {
		return errors.Wrap(err, "decode metadata")
	}
	issuer, ok := meta.Issuer()
	if !ok {
		return utils.NotFound(errors.New("metadata has no creators"))
	}
	return utils.WriteJSON(w, &Asset{
		Mint:     mint,
		Metadata: addr,
		Issuer:   issuer.Address,
		Verified: issuer.Verified,
	})
}

func (p *Program) handleGetBlockhash(w http.ResponseWriter, _ *http.Request) error {
	hash, slot := p.ledger.LatestBlockhash()
	return utils.WriteJSON(w, &Blockhash{
		Blockhash: hash.String(),
		Slot:      slot,
		GenesisID: p.ledger.GenesisID().String(),
	})
}

func holdingBalance(st *state.State, addr pixel.Address) (uint64, error) {
	acc, err := st.GetAccount(addr)
	if err != nil {
		return 0, err
	}
	if acc.Owner != pixel.TokenProgramID {
		return 0, nil
	}
	var h token.Holding
	if err := token.Decode(acc.Data, &h); err != nil {
		return 0, errors.Wrap(err, "decode holding")
	}
	return h.Amount, nil
}

// Mount registers the program routes at the root of the router.
func (p *Program) Mount(root *mux.Router) {
	root.Path("/blockhash").
		Methods(http.MethodGet).
		Name("GET /blockhash").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetBlockhash))
	root.Path("/vault").
		Methods(http.MethodGet).
		Name("GET /vault").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetVault))
	root.Path("/whitelist/{issuer}").
		Methods(http.MethodGet).
		Name("GET /whitelist/{issuer}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetWhitelist))
	root.Path("/stakes/{asset}").
		Methods(http.MethodGet).
		Name("GET /stakes/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetStake))
	root.Path("/assets/{mint}").
		Methods(http.MethodGet).
		Name("GET /assets/{mint}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetAsset))
}
