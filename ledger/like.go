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

// LikePost - create the (caller, post) like edge
func LikePost(trx storage.Transaction, caller *account.Account, postID uint64) error {
	if nil == caller {
		return fault.NotAPublicKey
	}

	post, err := fetchPost(trx, postID)
	if nil != err {
		return err
	}
	if post.IsDeleted {
		return fault.PostDeleted
	}

	edgeAddress := address.Like(caller, postID)
	if trx.Has(storage.Pool.Likes, edgeAddress[:]) {
		return fault.AlreadyLiked
	}

	edge := &record.Like{
		User:      caller,
		PostID:    postID,
		CreatedAt: timestamp(),
	}
	packed, err := edge.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Likes, edgeAddress[:], packed)

	post.LikesCount += 1
	return storePost(trx, post)
}

// UnlikePost - destroy the (caller, post) like edge
//
// permitted even after the post is tombstoned, the tombstone only
// gates new likes and comments
func UnlikePost(trx storage.Transaction, caller *account.Account, postID uint64) error {
	if nil == caller {
		return fault.NotAPublicKey
	}

	edgeAddress := address.Like(caller, postID)
	data := trx.Get(storage.Pool.Likes, edgeAddress[:])
	if nil == data {
		return fault.NotLiked
	}
	unpacked, _, err := record.Packed(data).Unpack()
	if nil != err {
		return err
	}
	edge, ok := unpacked.(*record.Like)
	if !ok || !edge.User.Equal(caller) || edge.PostID != postID {
		return fault.NotLiked
	}

	post, err := fetchPost(trx, postID)
	if nil != err {
		return err
	}

	trx.Delete(storage.Pool.Likes, edgeAddress[:])

	post.LikesCount = decrement(post.LikesCount)
	return storePost(trx, post)
}
