// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package donation

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/ledger"
	"github.com/chirp-network/chirpd/payment"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/rpc/ratelimit"
	"github.com/chirp-network/chirpd/storage"
)

const (
	rateLimitDonation = 100
	rateBurstDonation = 50
)

// Donation - type for the RPC
type Donation struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Transferrer payment.Transferrer
}

// New - create the donation RPC handler
func New(log *logger.L, transferrer payment.Transferrer) *Donation {
	return &Donation{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitDonation, rateBurstDonation),
		Transferrer: transferrer,
	}
}

// DonateArguments - arguments for the donate RPC
type DonateArguments struct {
	Donor     *account.Account `json:"donor"`     // base58
	Recipient *account.Account `json:"recipient"` // base58
	Amount    uint64           `json:"amount,string"`
}

// DonateReply - result from the donate RPC
type DonateReply struct {
	Donation *record.Donation `json:"donation"`
}

// Donate - split a donation between creator and platform
func (d *Donation) Donate(arguments *DonateArguments, reply *DonateReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Donor || nil == arguments.Recipient {
		return fault.MissingParameters
	}

	d.Log.Infof("Donation.Donate: %s to: %s amount: %d", arguments.Donor, arguments.Recipient, arguments.Amount)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	donation, err := ledger.DonateToCreator(trx, d.Transferrer, arguments.Donor, arguments.Recipient, arguments.Amount)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Donation = donation
	return nil
}

// GetArguments - arguments for the get RPC
type GetArguments struct {
	Donor     *account.Account `json:"donor"`     // base58
	Recipient *account.Account `json:"recipient"` // base58
}

// GetReply - result from the get RPC
type GetReply struct {
	Donation *record.Donation `json:"donation"`
}

// Get - read the latest donation for a (donor, recipient) pair
func (d *Donation) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Donor || nil == arguments.Recipient {
		return fault.MissingParameters
	}

	donation, err := ledger.GetDonation(arguments.Donor, arguments.Recipient)
	if nil != err {
		return err
	}

	reply.Donation = donation
	return nil
}
