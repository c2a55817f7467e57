// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   = "0.1.0"
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	clientFlags := []cli.Flag{signFlag, envFlag, configFlag, verbosityFlag}

	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "pixel"
	app.Usage = "Node and client of the pixel collectible staking program"
	app.Commands = []cli.Command{
		{
			Name:  "node",
			Usage: "run a ledger node serving the staking program",
			Flags: []cli.Flag{
				configFlag,
				dataDirFlag,
				apiAddrFlag,
				apiCorsFlag,
				enableAPILogsFlag,
				genesisFlag,
				verbosityFlag,
				enableMetricsFlag,
				skipNTPFlag,
			},
			Action: nodeAction,
		},
		{
			Name:   "generate_vault_address",
			Usage:  "create the program vault (administrator only)",
			Flags:  clientFlags,
			Action: generateVaultAction,
		},
		{
			Name:   "add_to_whitelist",
			Usage:  "approve an issuer (administrator only)",
			Flags:  append([]cli.Flag{creatorFlag}, clientFlags...),
			Action: addToWhitelistAction,
		},
		{
			Name:   "stake",
			Usage:  "stake one or more assets in a single transaction",
			Flags:  append([]cli.Flag{nftFlag}, clientFlags...),
			Action: stakeAction,
		},
		{
			Name:   "unstake",
			Usage:  "unstake an asset and collect its reward",
			Flags:  append([]cli.Flag{nftFlag}, clientFlags...),
			Action: unstakeAction,
		},
		{
			Name:   "claim",
			Usage:  "collect the accrued reward of a staked asset",
			Flags:  append([]cli.Flag{nftFlag}, clientFlags...),
			Action: claimAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
