// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pixelplatform/staking/log"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/state"
)

var logger = log.WithContext("pkg", "runtime")

// AccountMeta is an account reference presented to a program.
type AccountMeta struct {
	Key        pixel.Address
	IsSigner   bool
	IsWritable bool
}

// Event is a record of a completed program operation.
type Event struct {
	Op     string
	Asset  pixel.Address
	Owner  pixel.Address
	Amount uint64
}

// Signer authorizes host calls on behalf of an address derived from the executing program.
// It can only be obtained from Context.Sign.
type Signer struct {
	address pixel.Address
}

// Address returns the derived address the signer acts for.
func (s Signer) Address() pixel.Address {
	return s.address
}

// Context is the execution context of one instruction.
// Programs see only the accounts they are handed and change state through host calls.
type Context struct {
	state    *state.State
	deriver  *pda.Deriver
	accounts []AccountMeta
	metas    map[pixel.Address]AccountMeta
	now      uint64
	rent     Rent
	events   []Event
}

// NewContext creates the context for running an instruction of the deriver's program.
func NewContext(st *state.State, deriver *pda.Deriver, accounts []AccountMeta, now uint64) *Context {
	metas := make(map[pixel.Address]AccountMeta, len(accounts))
	for _, a := range accounts {
		m := metas[a.Key]
		m.Key = a.Key
		m.IsSigner = m.IsSigner || a.IsSigner
		m.IsWritable = m.IsWritable || a.IsWritable
		metas[a.Key] = m
	}
	return &Context{
		state:    st,
		deriver:  deriver,
		accounts: accounts,
		metas:    metas,
		now:      now,
		rent:     DefaultRent,
	}
}

// Program returns the executing program.
func (c *Context) Program() pixel.Address { return c.deriver.Program() }

// Accounts returns the ordered account references of the instruction.
func (c *Context) Accounts() []AccountMeta { return c.accounts }

// Now returns the clock in unix seconds.
func (c *Context) Now() uint64 { return c.now }

// Rent returns the rent policy.
func (c *Context) Rent() Rent { return c.rent }

// Deriver returns the address deriver of the executing program.
func (c *Context) Deriver() *pda.Deriver { return c.deriver }

// Emit records an event.
func (c *Context) Emit(ev Event) {
	c.events = append(c.events, ev)
}

// Events returns the events emitted so far.
func (c *Context) Events() []Event { return c.events }

// Account loads an account.
func (c *Context) Account(addr pixel.Address) (*state.Account, error) {
	return c.state.GetAccount(addr)
}

// SetData overwrites the data of an account owned by the executing program.
// The data length must equal the allocated size.
func (c *Context) SetData(addr pixel.Address, data []byte) error {
	acc, err := c.writable(addr)
	if err != nil {
		return err
	}
	if acc.Owner != c.Program() {
		return ErrExternalDataModified
	}
	if len(acc.Data) != len(data) {
		return ErrAccountDataSize
	}
	acc.Data = data
	c.state.SetAccount(addr, acc)
	return nil
}

// Sign returns a signer for the program address created from seeds.
// The seeds must include the bump.
func (c *Context) Sign(seeds ...[]byte) (Signer, error) {
	addr, err := pda.Create(c.Program(), seeds...)
	if err != nil {
		return Signer{}, ErrInvalidSeeds
	}
	return Signer{addr}, nil
}

func (c *Context) isSigner(addr pixel.Address, signers []Signer) bool {
	if c.metas[addr].IsSigner {
		return true
	}
	for _, s := range signers {
		if s.address == addr {
			return true
		}
	}
	return false
}

// writable loads an account for modification.
func (c *Context) writable(addr pixel.Address) (*state.Account, error) {
	m, ok := c.metas[addr]
	if !ok {
		return nil, ErrAccountNotPresent
	}
	if !m.IsWritable {
		return nil, ErrReadonlyAccount
	}
	return c.state.GetAccount(addr)
}
