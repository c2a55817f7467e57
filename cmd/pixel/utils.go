// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/ntp"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/pixelplatform/staking/config"
	"github.com/pixelplatform/staking/eventdb"
	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/log"
	"github.com/pixelplatform/staking/lvldb"
)

const (
	ntpServer     = "pool.ntp.org"
	maxClockDrift = 10 * time.Second
)

var logger = log.WithContext("pkg", "main")

func initLogger(ctx *cli.Context) {
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < log.LvlCrit || verbosity > log.LvlTrace {
		verbosity = log.LvlInfo
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetHandler(log.NewTerminalHandler(os.Stderr, verbosity, useColor))
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func instanceDir(dataDir string, gene *genesis.Genesis) (string, error) {
	id := gene.ID()
	dir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", id[24:]))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir at '%v'", dir)
	}
	return dir, nil
}

// openDatabases opens the account and event databases, in memory when dataDir is empty.
func openDatabases(dataDir string, gene *genesis.Genesis) (*lvldb.LevelDB, *eventdb.EventDB, string, error) {
	if dataDir == "" {
		db, err := lvldb.NewMem()
		if err != nil {
			return nil, nil, "", err
		}
		events, err := eventdb.NewMem()
		if err != nil {
			db.Close()
			return nil, nil, "", err
		}
		return db, events, "Memory", nil
	}

	dir, err := instanceDir(dataDir, gene)
	if err != nil {
		return nil, nil, "", err
	}
	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{CacheSize: 128, OpenFilesCacheCapacity: 64})
	if err != nil {
		return nil, nil, "", errors.Wrap(err, "open main database")
	}
	events, err := eventdb.New(filepath.Join(dir, "events.db"))
	if err != nil {
		db.Close()
		return nil, nil, "", errors.Wrap(err, "open event database")
	}
	return db, events, dir, nil
}

func checkClockDrift() {
	resp, err := ntp.Query(ntpServer)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockDrift {
		logger.Warn("clock offset detected, staking rewards depend on the local clock", "offset", resp.ClockOffset)
		return
	}
	logger.Debug("clock offset", "offset", resp.ClockOffset)
}
