// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the state transition engine
//
// one function per operation, each applied against a held storage
// transaction: preconditions are checked against the pending state,
// every mutation lands in the same transaction, and the caller
// commits on success or aborts on the first error, so an operation
// is atomic end to end
//
// record uniqueness is enforced by address occupancy, never by
// scanning: a create checks the derived slot and rejects when it is
// already held
package ledger
