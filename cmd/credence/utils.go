// Copyright (c) 2026 The Credence developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	isatty "github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/credencelabs/credence/log"
	"github.com/credencelabs/credence/lvldb"
)

func fatal(args ...any) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".credence")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// initLogger wires the root logger: logfmt on a terminal, JSON when asked for
// or when stderr is redirected.
func initLogger(ctx *cli.Context) {
	level := log.LevelFromVerbosity(ctx.Int(verbosityFlag.Name))
	useJSON := ctx.Bool(jsonLogsFlag.Name) ||
		(!isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()))
	if useJSON {
		log.SetDefault(log.New(log.JSONHandler(os.Stderr, level)))
		return
	}
	log.SetDefault(log.New(log.LogfmtHandler(os.Stderr, level)))
}

func openMainDB(ctx *cli.Context) *lvldb.LevelDB {
	dataDir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data directory [%v]: %v", dataDir, err))
	}
	db, err := lvldb.New(filepath.Join(dataDir, "ledger.db"), lvldb.Options{})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", dataDir, err))
	}
	return db
}
