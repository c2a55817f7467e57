// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/pixelplatform/staking/client"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/staking"
)

const requestTimeout = 30 * time.Second

// session carries what a client command needs to build and submit a transaction.
type session struct {
	builder *staking.Builder
	client  *client.Client
	signer  solana.PrivateKey
}

func (s *session) address() pixel.Address {
	return pixel.Address(s.signer.PublicKey())
}

func newSession(ctx *cli.Context) (*session, error) {
	initLogger(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	keyFile := ctx.String(signFlag.Name)
	if keyFile == "" {
		return nil, errors.Errorf("missing --%s key file", signFlag.Name)
	}
	signer, err := solana.PrivateKeyFromSolanaKeygenFile(keyFile)
	if err != nil {
		return nil, errors.Wrap(err, "load signer key")
	}
	url, err := cfg.Endpoint(ctx.String(envFlag.Name))
	if err != nil {
		return nil, err
	}
	return &session{cfg.Builder(), client.New(url), signer}, nil
}

// submit signs ins with the session key, submits it and prints the transaction id.
func (s *session) submit(ctx context.Context, cliCtx *cli.Context, ins solana.Instruction) error {
	hash, err := s.client.Blockhash(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch blockhash")
	}
	tx, err := solana.NewTransaction([]solana.Instruction{ins}, hash, solana.TransactionPayer(s.signer.PublicKey()))
	if err != nil {
		return errors.Wrap(err, "build transaction")
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.signer.PublicKey()) {
			return &s.signer
		}
		return nil
	}); err != nil {
		return errors.Wrap(err, "sign transaction")
	}
	res, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		return errors.Wrap(err, "send transaction")
	}
	logger.Debug("transaction committed", "id", res.ID, "slot", res.Slot)
	fmt.Fprintln(cliCtx.App.Writer, res.ID)
	return nil
}

// assets resolves the --nft values to staked assets through the issuer metadata.
func (s *session) assets(ctx context.Context, cliCtx *cli.Context, single bool) ([]staking.StakedAsset, error) {
	mints := cliCtx.StringSlice(nftFlag.Name)
	switch {
	case len(mints) == 0:
		return nil, errors.Errorf("missing --%s", nftFlag.Name)
	case single && len(mints) > 1:
		return nil, errors.Errorf("expected a single --%s, got %d", nftFlag.Name, len(mints))
	case len(mints) > pixel.MaxStakeBatch:
		return nil, errors.Errorf("at most %d assets per transaction, got %d", pixel.MaxStakeBatch, len(mints))
	}

	assets := make([]staking.StakedAsset, 0, len(mints))
	for _, m := range mints {
		mint, err := pixel.ParseAddress(m)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --%s %q", nftFlag.Name, m)
		}
		meta, err := s.client.Asset(ctx, *mint)
		if err != nil {
			return nil, errors.Wrapf(err, "read metadata of %v", mint)
		}
		assets = append(assets, staking.StakedAsset{Mint: *mint, Issuer: meta.Issuer})
	}
	return assets, nil
}

func run(cliCtx *cli.Context, build func(ctx context.Context, s *session) (solana.Instruction, error)) error {
	s, err := newSession(cliCtx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	ins, err := build(ctx, s)
	if err != nil {
		return err
	}
	return s.submit(ctx, cliCtx, ins)
}

func generateVaultAction(cliCtx *cli.Context) error {
	return run(cliCtx, func(_ context.Context, s *session) (solana.Instruction, error) {
		return s.builder.GenerateVault(s.address())
	})
}

func addToWhitelistAction(cliCtx *cli.Context) error {
	return run(cliCtx, func(_ context.Context, s *session) (solana.Instruction, error) {
		creator := cliCtx.String(creatorFlag.Name)
		if creator == "" {
			return nil, errors.Errorf("missing --%s", creatorFlag.Name)
		}
		issuer, err := pixel.ParseAddress(creator)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --%s", creatorFlag.Name)
		}
		return s.builder.AddToWhitelist(s.address(), *issuer)
	})
}

func stakeAction(cliCtx *cli.Context) error {
	return run(cliCtx, func(ctx context.Context, s *session) (solana.Instruction, error) {
		assets, err := s.assets(ctx, cliCtx, false)
		if err != nil {
			return nil, err
		}
		return s.builder.Stake(s.address(), assets...)
	})
}

func unstakeAction(cliCtx *cli.Context) error {
	return run(cliCtx, func(ctx context.Context, s *session) (solana.Instruction, error) {
		assets, err := s.assets(ctx, cliCtx, true)
		if err != nil {
			return nil, err
		}
		return s.builder.Unstake(s.address(), assets[0])
	})
}

func claimAction(cliCtx *cli.Context) error {
	return run(cliCtx, func(ctx context.Context, s *session) (solana.Instruction, error) {
		assets, err := s.assets(ctx, cliCtx, true)
		if err != nil {
			return nil, err
		}
		return s.builder.Claim(s.address(), assets[0])
	})
}
