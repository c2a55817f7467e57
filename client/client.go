// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client provides an HTTP client of the staking node API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gagliardetto/solana-go"

	"github.com/pixelplatform/staking/api/accounts"
	"github.com/pixelplatform/staking/api/events"
	"github.com/pixelplatform/staking/api/program"
	"github.com/pixelplatform/staking/api/transactions"
	"github.com/pixelplatform/staking/api/utils"
	"github.com/pixelplatform/staking/pixel"
)

var ErrNotFound = errors.New("not found")

// APIError is a non 200 response of the node.
type APIError struct {
	Status  int
	Message string
	// Code is the staking error code, nil for other failures.
	Code *uint32
}

func (e *APIError) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("http error %d: %s (code %d)", e.Status, e.Message, *e.Code)
	}
	return fmt.Sprintf("http error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{url, c}
}

func (c *Client) request(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("unable to marshal payload - %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(data))}
		var eb utils.ErrorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			apiErr.Message = eb.Error
			apiErr.Code = eb.Code
		}
		return apiErr
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unable to unmarshal response - %w", err)
	}
	return nil
}

// Account retrieves the account at addr.
func (c *Client) Account(ctx context.Context, addr pixel.Address) (*accounts.Account, error) {
	var acc accounts.Account
	if err := c.request(ctx, http.MethodGet, "/accounts/"+addr.String(), nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Blockhash retrieves the latest blockhash.
func (c *Client) Blockhash(ctx context.Context) (solana.Hash, error) {
	var res program.Blockhash
	if err := c.request(ctx, http.MethodGet, "/blockhash", nil, &res); err != nil {
		return solana.Hash{}, err
	}
	hash, err := solana.HashFromBase58(res.Blockhash)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("unable to parse blockhash - %w", err)
	}
	return hash, nil
}

func (c *Client) Vault(ctx context.Context) (*program.Vault, error) {
	var v program.Vault
	if err := c.request(ctx, http.MethodGet, "/vault", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) Whitelist(ctx context.Context, issuer pixel.Address) (*program.WhitelistEntry, error) {
	var e program.WhitelistEntry
	if err := c.request(ctx, http.MethodGet, "/whitelist/"+issuer.String(), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Stake retrieves the stake record of asset. It returns ErrNotFound if the asset was never staked.
func (c *Client) Stake(ctx context.Context, asset pixel.Address) (*program.Stake, error) {
	var s program.Stake
	if err := c.request(ctx, http.MethodGet, "/stakes/"+asset.String(), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Asset retrieves the issuer metadata of mint.
func (c *Client) Asset(ctx context.Context, mint pixel.Address) (*program.Asset, error) {
	var a program.Asset
	if err := c.request(ctx, http.MethodGet, "/assets/"+mint.String(), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Events retrieves events matching the query parameters.
func (c *Client) Events(ctx context.Context, query url.Values) ([]*events.Event, error) {
	path := "/events"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var evs []*events.Event
	if err := c.request(ctx, http.MethodGet, path, nil, &evs); err != nil {
		return nil, err
	}
	return evs, nil
}

// SendTransaction submits a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (*transactions.SendResult, error) {
	raw, err := transactions.EncodeRawTx(tx)
	if err != nil {
		return nil, fmt.Errorf("unable to encode transaction - %w", err)
	}
	var res transactions.SendResult
	if err := c.request(ctx, http.MethodPost, "/transactions", raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Receipt retrieves the receipt of a committed transaction, nil if unknown.
func (c *Client) Receipt(ctx context.Context, id solana.Signature) (*transactions.Receipt, error) {
	var r *transactions.Receipt
	if err := c.request(ctx, http.MethodGet, "/transactions/"+id.String(), nil, &r); err != nil {
		return nil, err
	}
	return r, nil
}
