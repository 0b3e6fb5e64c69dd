// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package profile

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/ledger"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/rpc/ratelimit"
	"github.com/chirp-network/chirpd/storage"
)

const (
	rateLimitProfile = 200
	rateBurstProfile = 100
)

// Profile - type for the RPC
type Profile struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the profile RPC handler
func New(log *logger.L) *Profile {
	return &Profile{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitProfile, rateBurstProfile),
	}
}

// CreateArguments - arguments for the create RPC
type CreateArguments struct {
	Owner       *account.Account `json:"owner"` // base58
	Username    string           `json:"username"`
	DisplayName string           `json:"displayName"`
	Bio         string           `json:"bio"`
	ImageUrl    string           `json:"imageUrl"`
}

// CreateReply - result from the create RPC
type CreateReply struct {
	Profile *record.Profile `json:"profile"`
}

// Create - allocate a profile for the caller
func (p *Profile) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Owner {
		return fault.MissingParameters
	}

	p.Log.Infof("Profile.Create: %s", arguments.Owner)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	profile, err := ledger.CreateProfile(trx, arguments.Owner, arguments.Username, arguments.DisplayName, arguments.Bio, arguments.ImageUrl)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Profile = profile
	return nil
}

// UpdateArguments - arguments for the update RPC
//
// nil fields are left untouched
type UpdateArguments struct {
	Owner       *account.Account `json:"owner"` // base58
	DisplayName *string          `json:"displayName"`
	Bio         *string          `json:"bio"`
	ImageUrl    *string          `json:"imageUrl"`
}

// UpdateReply - result from the update RPC
type UpdateReply struct {
	Profile *record.Profile `json:"profile"`
}

// Update - replace selected fields of the caller's profile
func (p *Profile) Update(arguments *UpdateArguments, reply *UpdateReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Owner {
		return fault.MissingParameters
	}

	p.Log.Infof("Profile.Update: %s", arguments.Owner)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	profile, err := ledger.UpdateProfile(trx, arguments.Owner, arguments.DisplayName, arguments.Bio, arguments.ImageUrl)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Profile = profile
	return nil
}

// GetArguments - arguments for the get RPC
type GetArguments struct {
	Owner *account.Account `json:"owner"` // base58
}

// GetReply - result from the get RPC
type GetReply struct {
	Profile *record.Profile `json:"profile"`
}

// Get - read one profile by owner
func (p *Profile) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Owner {
		return fault.MissingParameters
	}

	profile, err := ledger.GetProfile(arguments.Owner)
	if nil != err {
		return err
	}

	reply.Profile = profile
	return nil
}
