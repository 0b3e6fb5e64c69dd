// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - read-your-writes overlay for a pending transaction
//
// records both puts and deletes so that a read after either sees the
// pending state, not the database state
type Cache interface {
	Get(string) (int, []byte, bool)
	Set(int, string, []byte)
	Clear()
}

// cached operations
const (
	dbPut = iota
	dbDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    int
	value []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultTimeout, defaultExpiration),
	}
}

func (c *dbCache) Get(key string) (int, []byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return dbPut, nil, false
	}

	data := obj.(cacheData)
	return data.op, data.value, true
}

func (c *dbCache) Set(op int, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, defaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
