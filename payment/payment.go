// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - the value transfer subsystem
//
// donations are split into a creator share and a platform fee and
// moved between funding balances inside the caller's storage
// transaction, so a failed transfer rolls back together with every
// record mutation of the same operation
package payment

import (
	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/storage"
)

// MinimumDonation - smallest accepted donation in base units
const MinimumDonation = 20_000_000

// Transferrer - the funding transfer primitive
//
// implementations never hold custody: a transfer either moves the
// full amount within the supplied transaction or returns an error
// leaving both balances untouched
type Transferrer interface {
	Transfer(trx storage.Transaction, from *account.Account, to *account.Account, amount uint64) error
}

// balances pool backed transferrer
type balanceTransferrer struct{}

// New - create the default transferrer over the balances pool
func New() Transferrer {
	return balanceTransferrer{}
}

// Transfer - move amount between two funding balances
func (balanceTransferrer) Transfer(trx storage.Transaction, from *account.Account, to *account.Account, amount uint64) error {
	if nil == from || nil == to {
		return fault.NotAPublicKey
	}

	fromBalance, _ := trx.GetN(storage.Pool.Balances, from.Bytes())
	if fromBalance < amount {
		return fault.InsufficientFunds
	}

	toBalance, _ := trx.GetN(storage.Pool.Balances, to.Bytes())

	trx.PutN(storage.Pool.Balances, from.Bytes(), fromBalance-amount)
	trx.PutN(storage.Pool.Balances, to.Bytes(), toBalance+amount)
	return nil
}

// SplitFee - divide a gross amount into creator and platform shares
//
// fee truncates toward zero, the creator always receives the
// remainder
//
// feePercent is at most 100; dividing before multiplying keeps the
// product inside uint64 for any amount
func SplitFee(amount uint64, feePercent uint64) (net uint64, fee uint64) {
	fee = amount/100*feePercent + amount%100*feePercent/100
	net = amount - fee
	return net, fee
}

// Deposit - credit a funding balance
//
// the host primitive used by the deposit setup command and by tests;
// returns the new balance
func Deposit(trx storage.Transaction, to *account.Account, amount uint64) (uint64, error) {
	if nil == to {
		return 0, fault.NotAPublicKey
	}
	balance, _ := trx.GetN(storage.Pool.Balances, to.Bytes())
	balance += amount
	trx.PutN(storage.Pool.Balances, to.Bytes(), balance)
	return balance, nil
}

// Balance - read a funding balance outside any transaction
func Balance(owner *account.Account) uint64 {
	if nil == owner {
		return 0
	}
	balance, _ := storage.Pool.Balances.GetN(owner.Bytes())
	return balance
}
