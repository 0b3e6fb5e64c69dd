// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/address"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/storage"
)

// CreateProfile - allocate the caller's profile
//
// one profile per owner identity; usernames are claimed through a
// separate index so two owners can never share one
func CreateProfile(trx storage.Transaction, caller *account.Account, username string, displayName string, bio string, imageUrl string) (*record.Profile, error) {
	if nil == caller {
		return nil, fault.NotAPublicKey
	}

	state, err := fetchState(trx)
	if nil != err {
		return nil, err
	}

	profileAddress := address.Profile(caller)
	if trx.Has(storage.Pool.Profiles, profileAddress[:]) {
		return nil, fault.ProfileAlreadyExists
	}

	usernameKey := []byte(username)
	if trx.Has(storage.Pool.Usernames, usernameKey) {
		return nil, fault.UsernameAlreadyExists
	}

	profile := &record.Profile{
		Owner:       caller,
		UserID:      state.UserCount + 1,
		Username:    username,
		DisplayName: displayName,
		Bio:         bio,
		ImageUrl:    imageUrl,
		CreatedAt:   timestamp(),
	}

	// bounds are enforced by the pack
	packed, err := profile.Pack()
	if nil != err {
		return nil, err
	}

	trx.Put(storage.Pool.Profiles, profileAddress[:], packed)
	trx.Put(storage.Pool.Usernames, usernameKey, caller.Bytes())

	state.UserCount += 1
	err = storeState(trx, state)
	if nil != err {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile - replace selected profile fields
//
// nil fields stay untouched, each supplied field is bounds checked
// independently
func UpdateProfile(trx storage.Transaction, caller *account.Account, displayName *string, bio *string, imageUrl *string) (*record.Profile, error) {
	if nil == caller {
		return nil, fault.NotAPublicKey
	}

	profile, err := fetchProfile(trx, caller)
	if nil != err {
		return nil, err
	}

	if nil != displayName {
		profile.DisplayName = *displayName
	}
	if nil != bio {
		profile.Bio = *bio
	}
	if nil != imageUrl {
		profile.ImageUrl = *imageUrl
	}

	err = storeProfile(trx, profile)
	if nil != err {
		return nil, err
	}
	return profile, nil
}
