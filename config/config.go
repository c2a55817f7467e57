// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config holds the node and client configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/reward"
	"github.com/pixelplatform/staking/staking"
)

// DefaultNetwork is the network used when none is selected.
const DefaultNetwork = "local"

type API struct {
	Addr string `yaml:"addr"`
	// Cors is a comma separated list of allowed origins.
	Cors string `yaml:"cors"`
}

type Metrics struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the deployment configuration of a staking program.
type Config struct {
	Program    pixel.Address     `yaml:"program"`
	Admin      pixel.Address     `yaml:"admin"`
	RewardMint pixel.Address     `yaml:"rewardMint"`
	Reward     reward.Schedule   `yaml:"reward"`
	API        API               `yaml:"api"`
	Metrics    Metrics           `yaml:"metrics"`
	Networks   map[string]string `yaml:"networks"`
	// Genesis is the path of the genesis document, the devnet genesis if empty.
	Genesis string `yaml:"genesis"`
}

// Default returns the devnet configuration.
func Default() *Config {
	return &Config{
		Program:    genesis.DevProgram,
		Admin:      genesis.DevAccounts()[0].Address,
		RewardMint: genesis.DevRewardMint,
		Reward:     reward.Default,
		API: API{
			Addr: "localhost:8669",
		},
		Networks: map[string]string{
			DefaultNetwork: "http://localhost:8669",
		},
	}
}

// Load reads the config file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes a YAML config over the defaults. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	switch {
	case c.Program.IsZero():
		return errors.New("program id not set")
	case c.Admin.IsZero():
		return errors.New("admin not set")
	case c.RewardMint.IsZero():
		return errors.New("reward mint not set")
	case c.Admin == c.Program:
		return errors.New("admin must not be the program")
	}
	if err := c.Reward.Validate(); err != nil {
		return errors.Wrap(err, "reward schedule")
	}
	return nil
}

// Endpoint resolves a network name or URL to the API URL.
func (c *Config) Endpoint(network string) (string, error) {
	if network == "" {
		network = DefaultNetwork
	}
	if strings.HasPrefix(network, "http://") || strings.HasPrefix(network, "https://") {
		return strings.TrimRight(network, "/"), nil
	}
	url, ok := c.Networks[network]
	if !ok {
		return "", errors.Errorf("unknown network %q", network)
	}
	return strings.TrimRight(url, "/"), nil
}

// Deriver returns the address deriver of the program.
func (c *Config) Deriver() *pda.Deriver {
	return pda.New(c.Program)
}

// Processor creates the staking processor of the deployment.
func (c *Config) Processor() *staking.Processor {
	return staking.New(c.Deriver(), c.Admin, c.RewardMint, c.Reward)
}

// Builder creates the instruction builder of the deployment.
func (c *Config) Builder() *staking.Builder {
	return staking.NewBuilder(c.Deriver(), c.RewardMint)
}

// LoadGenesis loads the configured genesis.
func (c *Config) LoadGenesis() (*genesis.Genesis, error) {
	doc := genesis.DevDocument()
	if c.Genesis != "" {
		var err error
		if doc, err = genesis.Load(c.Genesis); err != nil {
			return nil, err
		}
	}
	return doc.Genesis(c.Program, c.RewardMint)
}
