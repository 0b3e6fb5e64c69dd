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

// read-only queries, these run outside any transaction and see the
// last committed state

// GetPlatformState - read the singleton counters
func GetPlatformState() (*record.PlatformState, error) {
	return decodeState(storage.Pool.State.Get(stateKey[:]))
}

// GetProfile - read one profile by owner
func GetProfile(owner *account.Account) (*record.Profile, error) {
	if nil == owner {
		return nil, fault.NotAPublicKey
	}
	profileAddress := address.Profile(owner)
	return decodeProfile(storage.Pool.Profiles.Get(profileAddress[:]), owner)
}

// GetPost - read one post by id
func GetPost(postID uint64) (*record.Post, error) {
	postAddress := address.Post(postID)
	return decodePost(storage.Pool.Posts.Get(postAddress[:]), postID)
}

// GetComment - read one comment by id
func GetComment(commentID uint64) (*record.Comment, error) {
	commentAddress := address.Comment(commentID)
	return decodeComment(storage.Pool.Comments.Get(commentAddress[:]), commentID)
}

// IsFollowing - check a follow edge
func IsFollowing(follower *account.Account, following *account.Account) bool {
	if nil == follower || nil == following {
		return false
	}
	edgeAddress := address.Follow(follower, following)
	return storage.Pool.Follows.Has(edgeAddress[:])
}

// HasLiked - check a like edge
func HasLiked(user *account.Account, postID uint64) bool {
	if nil == user {
		return false
	}
	edgeAddress := address.Like(user, postID)
	return storage.Pool.Likes.Has(edgeAddress[:])
}

// GetDonation - read the latest donation for a (donor, recipient) pair
func GetDonation(donor *account.Account, recipient *account.Account) (*record.Donation, error) {
	if nil == donor || nil == recipient {
		return nil, fault.NotAPublicKey
	}
	donationAddress := address.Donation(donor, recipient)
	data := storage.Pool.Donations.Get(donationAddress[:])
	if nil == data {
		return nil, fault.DonationNotFound
	}
	unpacked, _, err := record.Packed(data).Unpack()
	if nil != err {
		return nil, err
	}
	donation, ok := unpacked.(*record.Donation)
	if !ok || !donation.Donor.Equal(donor) || !donation.Recipient.Equal(recipient) {
		return nil, fault.DonationNotFound
	}
	return donation, nil
}
