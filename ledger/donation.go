// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/address"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/payment"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/storage"
)

// DonateToCreator - split a donation between creator and platform
//
// the creator transfer runs first; any transfer failure surfaces
// as-is and the caller's abort rolls back every record mutation,
// the donation log entry included
//
// a repeat donation for the same (donor, recipient) pair overwrites
// the previous log entry
func DonateToCreator(trx storage.Transaction, transferrer payment.Transferrer, caller *account.Account, recipient *account.Account, amount uint64) (*record.Donation, error) {
	if nil == caller || nil == recipient {
		return nil, fault.NotAPublicKey
	}
	if caller.Equal(recipient) {
		return nil, fault.CannotDonateToSelf
	}
	if amount < payment.MinimumDonation {
		return nil, fault.InvalidDonationAmount
	}

	recipientProfile, err := fetchProfile(trx, recipient)
	if nil != err {
		return nil, err
	}

	state, err := fetchState(trx)
	if nil != err {
		return nil, err
	}

	net, fee := payment.SplitFee(amount, state.PlatformFeePercent)

	err = transferrer.Transfer(trx, caller, recipient, net)
	if nil != err {
		return nil, err
	}
	if fee > 0 {
		err = transferrer.Transfer(trx, caller, state.PlatformAccount, fee)
		if nil != err {
			return nil, err
		}
	}

	donationAddress := address.Donation(caller, recipient)
	donation := &record.Donation{
		Donor:          caller,
		Recipient:      recipient,
		Amount:         amount,
		Timestamp:      timestamp(),
		TransactionRef: donationAddress.String(),
	}
	packed, err := donation.Pack()
	if nil != err {
		return nil, err
	}
	trx.Put(storage.Pool.Donations, donationAddress[:], packed)

	recipientProfile.TotalDonationsReceived += net
	err = storeProfile(trx, recipientProfile)
	if nil != err {
		return nil, err
	}

	state.TotalDonations += amount
	err = storeState(trx, state)
	if nil != err {
		return nil, err
	}
	return donation, nil
}
