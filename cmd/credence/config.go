// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/credencelabs/credence/credence"
)

// Config is the operator-supplied ledger configuration.
type Config struct {
	Admin             string   `yaml:"admin"`
	Members           []string `yaml:"members"`
	RequiredApprovals uint32   `yaml:"requiredApprovals"`
	Treasury          string   `yaml:"treasury"`
	EarlyExitBps      uint32   `yaml:"earlyExitBps"`
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if cfg.Admin == "" {
		return nil, errors.New("config: admin is required")
	}
	if cfg.RequiredApprovals < 1 {
		return nil, errors.New("config: requiredApprovals must be at least 1")
	}
	return &cfg, nil
}

func (c *Config) adminAddress() (credence.Address, error) {
	addr, err := credence.ParseAddress(c.Admin)
	if err != nil {
		return credence.Address{}, errors.Wrap(err, "config: admin")
	}
	return addr, nil
}

func (c *Config) treasuryAddress() (credence.Address, error) {
	if c.Treasury == "" {
		return credence.Address{}, nil
	}
	addr, err := credence.ParseAddress(c.Treasury)
	if err != nil {
		return credence.Address{}, errors.Wrap(err, "config: treasury")
	}
	return addr, nil
}

func (c *Config) memberAddresses() ([]credence.Address, error) {
	members := make([]credence.Address, 0, len(c.Members))
	for _, m := range c.Members {
		addr, err := credence.ParseAddress(m)
		if err != nil {
			return nil, errors.Wrapf(err, "config: member %s", m)
		}
		members = append(members, addr)
	}
	return members, nil
}
