// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
)

// Transaction - the single-writer mutation scope
//
// Begin blocks until the previous transaction has committed or
// aborted; every Put/Delete between Begin and Commit is applied as
// one atomic batch and any Get/Has in between sees the pending
// writes
//
// Commit and Abort release the writer; Abort without a matching
// Begin is a programming error
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

type TransactionImpl struct {
	writer     sync.Mutex // held from Begin to Commit/Abort
	dataAccess Access
}

func newTransaction(dataAccess Access) Transaction {
	return &TransactionImpl{
		dataAccess: dataAccess,
	}
}

func (t *TransactionImpl) Begin() error {
	t.writer.Lock()
	return t.dataAccess.Begin()
}

func (t *TransactionImpl) Put(handle *PoolHandle, key []byte, value []byte) {
	handle.put(key, value)
}

func (t *TransactionImpl) PutN(handle *PoolHandle, key []byte, value uint64) {
	handle.putN(key, value)
}

func (t *TransactionImpl) Delete(handle *PoolHandle, key []byte) {
	handle.remove(key)
}

func (t *TransactionImpl) Get(handle *PoolHandle, key []byte) []byte {
	return handle.get(key)
}

func (t *TransactionImpl) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	return handle.getN(key)
}

func (t *TransactionImpl) Has(handle *PoolHandle, key []byte) bool {
	return handle.has(key)
}

func (t *TransactionImpl) Commit() error {
	err := t.dataAccess.Commit()
	t.dataAccess.Abort() // reset batch and overlay, clear in-use
	t.writer.Unlock()
	return err
}

func (t *TransactionImpl) Abort() {
	t.dataAccess.Abort()
	t.writer.Unlock()
}

func (t *TransactionImpl) InUse() bool {
	return t.dataAccess.InUse()
}
