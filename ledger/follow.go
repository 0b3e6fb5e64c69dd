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

// FollowUser - create the (caller, target) follow edge
//
// edge existence is the relationship: an occupied slot rejects a
// second follow without touching any counter
func FollowUser(trx storage.Transaction, caller *account.Account, target *account.Account) error {
	if nil == caller || nil == target {
		return fault.NotAPublicKey
	}
	if caller.Equal(target) {
		return fault.CannotFollowSelf
	}

	targetProfile, err := fetchProfile(trx, target)
	if nil != err {
		return err
	}
	callerProfile, err := fetchProfile(trx, caller)
	if nil != err {
		return err
	}

	edgeAddress := address.Follow(caller, target)
	if trx.Has(storage.Pool.Follows, edgeAddress[:]) {
		return fault.AlreadyFollowing
	}

	edge := &record.Follow{
		Follower:  caller,
		Following: target,
		CreatedAt: timestamp(),
	}
	packed, err := edge.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Follows, edgeAddress[:], packed)

	callerProfile.FollowingCount += 1
	err = storeProfile(trx, callerProfile)
	if nil != err {
		return err
	}

	targetProfile.FollowersCount += 1
	return storeProfile(trx, targetProfile)
}

// UnfollowUser - destroy the (caller, target) follow edge
func UnfollowUser(trx storage.Transaction, caller *account.Account, target *account.Account) error {
	if nil == caller || nil == target {
		return fault.NotAPublicKey
	}

	edgeAddress := address.Follow(caller, target)
	data := trx.Get(storage.Pool.Follows, edgeAddress[:])
	if nil == data {
		return fault.NotFollowing
	}
	unpacked, _, err := record.Packed(data).Unpack()
	if nil != err {
		return err
	}
	edge, ok := unpacked.(*record.Follow)
	if !ok || !edge.Follower.Equal(caller) || !edge.Following.Equal(target) {
		return fault.NotFollowing
	}

	trx.Delete(storage.Pool.Follows, edgeAddress[:])

	callerProfile, err := fetchProfile(trx, caller)
	if nil != err {
		return err
	}
	callerProfile.FollowingCount = decrement(callerProfile.FollowingCount)
	err = storeProfile(trx, callerProfile)
	if nil != err {
		return err
	}

	targetProfile, err := fetchProfile(trx, target)
	if nil != err {
		return err
	}
	targetProfile.FollowersCount = decrement(targetProfile.FollowersCount)
	return storeProfile(trx, targetProfile)
}
