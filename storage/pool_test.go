// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chirp-network/chirpd/storage"
)

// the same key in two pools must address two independent records
func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")

	trx := beginTransaction(t)
	trx.Put(storage.Pool.Posts, key, []byte("post-data"))
	trx.Put(storage.Pool.Comments, key, []byte("comment-data"))
	err := trx.Commit()
	assert.NoError(t, err, "commit")

	assert.Equal(t, []byte("post-data"), storage.Pool.Posts.Get(key), "posts pool")
	assert.Equal(t, []byte("comment-data"), storage.Pool.Comments.Get(key), "comments pool")
	assert.Nil(t, storage.Pool.Likes.Get(key), "likes pool must be empty")

	assert.True(t, storage.Pool.Posts.Has(key), "posts has")
	assert.False(t, storage.Pool.Likes.Has(key), "likes has")
}

func TestGetMissing(t *testing.T) {
	setup(t)
	defer teardown(t)

	assert.Nil(t, storage.Pool.TestData.Get([]byte("/nonexistent")), "get")
	assert.False(t, storage.Pool.TestData.Has([]byte("/nonexistent")), "has")

	n, found := storage.Pool.Balances.GetN([]byte("/nonexistent"))
	assert.False(t, found, "getN found")
	assert.Equal(t, uint64(0), n, "getN value")
}

func TestPutNGetN(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("balance-key")

	trx := beginTransaction(t)
	trx.PutN(storage.Pool.Balances, key, 120_000_000)

	// visible through the transaction before commit
	n, found := trx.GetN(storage.Pool.Balances, key)
	assert.True(t, found, "pending getN found")
	assert.Equal(t, uint64(120_000_000), n, "pending getN value")

	err := trx.Commit()
	assert.NoError(t, err, "commit")

	n, found = storage.Pool.Balances.GetN(key)
	assert.True(t, found, "getN found")
	assert.Equal(t, uint64(120_000_000), n, "getN value")
}

// data survives a database close and reopen
func TestPersistence(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("durable-key")

	trx := beginTransaction(t)
	trx.Put(storage.Pool.TestData, key, []byte("durable-data"))
	err := trx.Commit()
	assert.NoError(t, err, "commit")

	storage.Finalise()
	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.NoError(t, err, "reopen")

	assert.Equal(t, []byte("durable-data"), storage.Pool.TestData.Get(key), "after reopen")
}
