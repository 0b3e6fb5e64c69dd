// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/chirp-network/chirpd/storage"
)

// test database file
const (
	databaseFileName = "test"
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName + ".leveldb")
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

// acquire the writer or fail the test
func beginTransaction(t *testing.T) storage.Transaction {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	return trx
}
