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

// CreateComment - allocate the next comment against a live post
func CreateComment(trx storage.Transaction, caller *account.Account, postID uint64, content string) (*record.Comment, error) {
	if nil == caller {
		return nil, fault.NotAPublicKey
	}

	post, err := fetchPost(trx, postID)
	if nil != err {
		return nil, err
	}
	if post.IsDeleted {
		return nil, fault.PostDeleted
	}

	state, err := fetchState(trx)
	if nil != err {
		return nil, err
	}

	comment := &record.Comment{
		CommentID: state.CommentCount + 1,
		PostID:    postID,
		Author:    caller,
		Content:   content,
		CreatedAt: timestamp(),
	}

	// bounds are enforced by the pack
	packed, err := comment.Pack()
	if nil != err {
		return nil, err
	}

	commentAddress := address.Comment(comment.CommentID)
	if trx.Has(storage.Pool.Comments, commentAddress[:]) {
		// id sequence and occupied slot disagree
		return nil, fault.AlreadyInitialised
	}
	trx.Put(storage.Pool.Comments, commentAddress[:], packed)

	state.CommentCount += 1
	err = storeState(trx, state)
	if nil != err {
		return nil, err
	}

	post.CommentsCount += 1
	err = storePost(trx, post)
	if nil != err {
		return nil, err
	}
	return comment, nil
}

// DeleteComment - tombstone a comment, author only
func DeleteComment(trx storage.Transaction, caller *account.Account, commentID uint64) error {
	if nil == caller {
		return fault.NotAPublicKey
	}

	comment, err := fetchComment(trx, commentID)
	if nil != err {
		return err
	}

	if !caller.Equal(comment.Author) {
		return fault.Unauthorized
	}

	// a tombstoned comment reads as gone
	if comment.IsDeleted {
		return fault.CommentNotFound
	}

	comment.IsDeleted = true

	post, err := fetchPost(trx, comment.PostID)
	if nil != err {
		return err
	}
	post.CommentsCount = decrement(post.CommentsCount)
	err = storePost(trx, post)
	if nil != err {
		return err
	}

	return storeComment(trx, comment)
}
