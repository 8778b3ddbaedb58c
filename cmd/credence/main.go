// Copyright (c) 2026 The Credence developers
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

	cli "gopkg.in/urfave/cli.v1"

	"github.com/credencelabs/credence/api"
	"github.com/credencelabs/credence/events"
	"github.com/credencelabs/credence/ledger"
	"github.com/credencelabs/credence/log"
	"github.com/credencelabs/credence/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

var logger = log.WithContext("pkg", "main")

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Credence",
		Usage:     "Collateral bond ledger",
		Copyright: "2026 Credence Labs",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			enableAPILogsFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	logger = log.WithContext("pkg", "main")

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	db := openMainDB(ctx)
	defer func() { logger.Info("closing ledger database..."); db.Close() }()

	bus := events.NewBus()
	l := ledger.New(db, bus)

	if path := ctx.String(configFlag.Name); path != "" {
		if err := applyConfig(l, path); err != nil {
			return err
		}
	}

	srv, srvURL, err := startAPIServer(ctx, api.New(l, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
	}))
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("ledger started", "api", srvURL, "version", fullVersion())

	<-handleExitSignal()
	return nil
}

// applyConfig bootstraps or updates the governance and early-exit config from
// the operator's config file. The stored admin applies the update when one is
// already configured.
func applyConfig(l *ledger.Ledger, path string) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	admin, err := cfg.adminAddress()
	if err != nil {
		return err
	}
	members, err := cfg.memberAddresses()
	if err != nil {
		return err
	}
	treasury, err := cfg.treasuryAddress()
	if err != nil {
		return err
	}

	caller := admin
	if current, err := l.GetGovernanceConfig(); err == nil && !current.Admin.IsZero() {
		caller = current.Admin
	}
	if err := l.SetGovernanceConfig(caller, admin, members, cfg.RequiredApprovals); err != nil {
		return err
	}
	if !treasury.IsZero() || cfg.EarlyExitBps > 0 {
		if err := l.SetEarlyExitConfig(admin, treasury, cfg.EarlyExitBps); err != nil {
			return err
		}
	}
	return nil
}

func startAPIServer(ctx *cli.Context, handler http.HandlerFunc) (*http.Server, string, error) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("listen API addr [%v]: %w", addr, err)
	}
	srv := &http.Server{Handler: handler}
	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			logger.Error("API server stopped", "err", err)
		}
	}()
	return srv, "http://" + listener.Addr().String() + "/", nil
}

func handleExitSignal() chan os.Signal {
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	return exit
}
