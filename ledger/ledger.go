// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/address"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/storage"
)

// the singleton counters slot
var stateKey = address.PlatformState()

// timestamp - integer seconds from the host clock
func timestamp() uint64 {
	return uint64(time.Now().Unix())
}

// saturating decrement, counters never wrap below zero
func decrement(value uint64) uint64 {
	if value > 0 {
		return value - 1
	}
	return 0
}

// load the platform counters from the pending state
func fetchState(trx storage.Transaction) (*record.PlatformState, error) {
	return decodeState(trx.Get(storage.Pool.State, stateKey[:]))
}

func decodeState(data []byte) (*record.PlatformState, error) {
	if nil == data {
		return nil, fault.NotInitialised
	}
	unpacked, _, err := record.Packed(data).Unpack()
	if nil != err {
		return nil, err
	}
	state, ok := unpacked.(*record.PlatformState)
	if !ok || !state.Initialised {
		return nil, fault.NotInitialised
	}
	return state, nil
}

func storeState(trx storage.Transaction, state *record.PlatformState) error {
	packed, err := state.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.State, stateKey[:], packed)
	return nil
}

// load a profile and verify its embedded owner matches the address
func fetchProfile(trx storage.Transaction, owner *account.Account) (*record.Profile, error) {
	profileAddress := address.Profile(owner)
	return decodeProfile(trx.Get(storage.Pool.Profiles, profileAddress[:]), owner)
}

func decodeProfile(data []byte, owner *account.Account) (*record.Profile, error) {
	if nil == data {
		return nil, fault.ProfileNotFound
	}
	unpacked, _, err := record.Packed(data).Unpack()
	if nil != err {
		return nil, err
	}
	profile, ok := unpacked.(*record.Profile)
	if !ok || !profile.Owner.Equal(owner) {
		return nil, fault.ProfileNotFound
	}
	return profile, nil
}

func storeProfile(trx storage.Transaction, profile *record.Profile) error {
	packed, err := profile.Pack()
	if nil != err {
		return err
	}
	profileAddress := address.Profile(profile.Owner)
	trx.Put(storage.Pool.Profiles, profileAddress[:], packed)
	return nil
}

// load a post and verify its embedded id matches the address
func fetchPost(trx storage.Transaction, postID uint64) (*record.Post, error) {
	postAddress := address.Post(postID)
	return decodePost(trx.Get(storage.Pool.Posts, postAddress[:]), postID)
}

func decodePost(data []byte, postID uint64) (*record.Post, error) {
	if nil == data {
		return nil, fault.PostNotFound
	}
	unpacked, _, err := record.Packed(data).Unpack()
	if nil != err {
		return nil, err
	}
	post, ok := unpacked.(*record.Post)
	if !ok || post.PostID != postID {
		return nil, fault.PostNotFound
	}
	return post, nil
}

func storePost(trx storage.Transaction, post *record.Post) error {
	packed, err := post.Pack()
	if nil != err {
		return err
	}
	postAddress := address.Post(post.PostID)
	trx.Put(storage.Pool.Posts, postAddress[:], packed)
	return nil
}

// load a comment and verify its embedded id matches the address
func fetchComment(trx storage.Transaction, commentID uint64) (*record.Comment, error) {
	commentAddress := address.Comment(commentID)
	return decodeComment(trx.Get(storage.Pool.Comments, commentAddress[:]), commentID)
}

func decodeComment(data []byte, commentID uint64) (*record.Comment, error) {
	if nil == data {
		return nil, fault.CommentNotFound
	}
	unpacked, _, err := record.Packed(data).Unpack()
	if nil != err {
		return nil, err
	}
	comment, ok := unpacked.(*record.Comment)
	if !ok || comment.CommentID != commentID {
		return nil, fault.CommentNotFound
	}
	return comment, nil
}

func storeComment(trx storage.Transaction, comment *record.Comment) error {
	packed, err := comment.Pack()
	if nil != err {
		return err
	}
	commentAddress := address.Comment(comment.CommentID)
	trx.Put(storage.Pool.Comments, commentAddress[:], packed)
	return nil
}
