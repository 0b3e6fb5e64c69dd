// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/ledger"
	"github.com/chirp-network/chirpd/payment"
	"github.com/chirp-network/chirpd/storage"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "initialise", "init", "deposit", "balance", "status":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                         (h)    - display this message\n\n")
		fmt.Printf("  version                      (v)    - display version string\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]           (rpc)  - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                        (run)  - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                  (cfg)  - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  initialise ACCOUNT FEE       (init) - set the platform account and fee percent\n")
		fmt.Printf("\n")

		fmt.Printf("  deposit ACCOUNT AMOUNT              - credit an account balance\n")
		fmt.Printf("\n")

		fmt.Printf("  balance ACCOUNT                     - display an account balance\n")
		fmt.Printf("\n")

		fmt.Printf("  status                              - display the platform counters\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the store is open so these commands can access and/or change the records
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "initialise", "init":
		if len(arguments) < 2 {
			exitwithstatus.Message("usage: initialise ACCOUNT FEE-PERCENT")
		}

		platform, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in account: %s", err)
		}

		feePercent, err := strconv.ParseUint(arguments[1], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in fee percent: %s", err)
		}

		err = executeTransaction(func(trx storage.Transaction) error {
			return ledger.InitialisePlatform(trx, platform, feePercent)
		})
		if nil != err {
			exitwithstatus.Message("platform initialise error: %s", err)
		}
		fmt.Printf("platform account: %s  fee: %d%%\n", platform, feePercent)

	case "deposit":
		if len(arguments) < 2 {
			exitwithstatus.Message("usage: deposit ACCOUNT AMOUNT")
		}

		owner, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in account: %s", err)
		}

		amount, err := strconv.ParseUint(arguments[1], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in amount: %s", err)
		}
		if 0 == amount {
			exitwithstatus.Message("error: amount cannot be zero")
		}

		var balance uint64
		err = executeTransaction(func(trx storage.Transaction) error {
			var err error
			balance, err = payment.Deposit(trx, owner, amount)
			return err
		})
		if nil != err {
			exitwithstatus.Message("deposit error: %s", err)
		}
		fmt.Printf("account: %s  balance: %d\n", owner, balance)

	case "balance":
		if len(arguments) < 1 {
			exitwithstatus.Message("usage: balance ACCOUNT")
		}

		owner, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in account: %s", err)
		}

		fmt.Printf("account: %s  balance: %d\n", owner, payment.Balance(owner))

	case "status":
		state, err := ledger.GetPlatformState()
		if nil != err {
			if fault.NotInitialised == err {
				exitwithstatus.Message("platform is not initialised")
			}
			exitwithstatus.Message("status error: %s", err)
		}

		s, err := json.MarshalIndent(state, "", "  ")
		if nil != err {
			exitwithstatus.Message("status JSON error: %s", err)
		}
		fmt.Printf("%s\n", s)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// run one operation as its own transaction
func executeTransaction(operation func(trx storage.Transaction) error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = operation(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
