// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk record store
//
// a single LevelDB database split into pools by a one byte key
// prefix, one pool per record kind plus the username index and the
// balance ledger
//
// all writes are funnelled through a single Transaction: Begin blocks
// until the previous holder commits or aborts, which serialises every
// mutating operation; reads inside a transaction see its own pending
// writes through a cache overlay in front of the batch, while pool
// reads outside any transaction see committed state only
package storage
