// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/storage"
)

// InitialisePlatform - create the singleton counters record
//
// runs exactly once per deployment; a second attempt finds the slot
// occupied and is rejected
func InitialisePlatform(trx storage.Transaction, platformAccount *account.Account, feePercent uint64) error {
	if nil == platformAccount {
		return fault.NotAPublicKey
	}
	if feePercent > 100 {
		return fault.InvalidCount
	}

	if trx.Has(storage.Pool.State, stateKey[:]) {
		return fault.AlreadyInitialised
	}

	state := &record.PlatformState{
		Initialised:        true,
		PlatformFeePercent: feePercent,
		PlatformAccount:    platformAccount,
	}
	return storeState(trx, state)
}
