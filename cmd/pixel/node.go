// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/pixelplatform/staking/api"
	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/ledger"
	"github.com/pixelplatform/staking/metrics"
)

const shutdownTimeout = 5 * time.Second

func nodeAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()
	initLogger(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet(apiAddrFlag.Name) {
		cfg.API.Addr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		cfg.API.Cors = ctx.String(apiCorsFlag.Name)
	}
	if ctx.IsSet(genesisFlag.Name) {
		cfg.Genesis = ctx.String(genesisFlag.Name)
	}
	enableMetrics := cfg.Metrics.Enabled || ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := cfg.LoadGenesis()
	if err != nil {
		return err
	}
	db, events, dir, err := openDatabases(ctx.String(dataDirFlag.Name), gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); db.Close() }()
	defer func() { logger.Info("closing event database..."); events.Close() }()

	l, err := ledger.New(db, gene, cfg.Processor(), events, ledger.Options{})
	if err != nil {
		return errors.Wrap(err, "open ledger")
	}

	if !ctx.Bool(skipNTPFlag.Name) {
		go checkClockDrift()
	}

	listener, err := net.Listen("tcp", cfg.API.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen API addr [%v]", cfg.API.Addr)
	}
	srv := &http.Server{
		Handler: api.New(l, api.Options{
			AllowedOrigins:  cfg.API.Cors,
			EnableMetrics:   enableMetrics,
			EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		}),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       10 * time.Second,
	}

	printStartupMessage(gene, l, cfg.Program.String(), dir, "http://"+listener.Addr().String()+"/")

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(sigCtx)
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "serve API")
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func printStartupMessage(gene *genesis.Genesis, l *ledger.Ledger, program, dataDir, apiURL string) {
	latest, slot := l.LatestBlockhash()
	fmt.Printf(`Starting pixel staking node
    Network      [ %v %v ]
    Program      [ %v ]
    Best slot    [ %v %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
`,
		gene.ID(), gene.Name(),
		program,
		slot, latest,
		dataDir,
		apiURL)
}
