// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
)

// Access - batched access to the database
//
// pending puts and deletes accumulate in a batch and a cache overlay;
// Get and Has consult the overlay first so a transaction reads its
// own uncommitted writes
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Put([]byte, []byte)
}

type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newDA(db *leveldb.DB, batch *leveldb.Batch, cache Cache) Access {
	return &AccessData{
		inUse: false,
		db:    db,
		batch: batch,
		cache: cache,
	}
}

func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fmt.Errorf("batch already in use")
	}

	d.inUse = true
	return nil
}

func (d *AccessData) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

func (d *AccessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
}

func (d *AccessData) Commit() error {
	return d.db.Write(d.batch, nil)
}

func (d *AccessData) Get(key []byte) ([]byte, error) {
	op, value, found := d.cache.Get(string(key))
	if found {
		if dbDelete == op {
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return d.db.Get(key, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	op, _, found := d.cache.Get(string(key))
	if found {
		return dbPut == op, nil
	}
	return d.db.Has(key, nil)
}

func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}
