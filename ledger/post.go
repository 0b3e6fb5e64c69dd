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

// CreatePost - allocate the next post in the id sequence
func CreatePost(trx storage.Transaction, caller *account.Account, content string, imageUrl string) (*record.Post, error) {
	return createPost(trx, caller, nil, content, imageUrl)
}

// CreateCollaborationPost - allocate a post with a second author
//
// the collaborator must hold a profile and cannot be the caller;
// only the caller's posts count is incremented
func CreateCollaborationPost(trx storage.Transaction, caller *account.Account, collaborator *account.Account, content string, imageUrl string) (*record.Post, error) {
	if nil == collaborator {
		return nil, fault.NotAPublicKey
	}
	if caller.Equal(collaborator) {
		return nil, fault.CannotCollaborateWithSelf
	}

	collaboratorProfile, err := fetchProfile(trx, collaborator)
	if nil != err {
		if fault.ProfileNotFound == err {
			return nil, fault.CollaboratorNotFound
		}
		return nil, err
	}

	return createPost(trx, caller, collaboratorProfile.Owner, content, imageUrl)
}

func createPost(trx storage.Transaction, caller *account.Account, collaborator *account.Account, content string, imageUrl string) (*record.Post, error) {
	if nil == caller {
		return nil, fault.NotAPublicKey
	}

	profile, err := fetchProfile(trx, caller)
	if nil != err {
		return nil, err
	}

	state, err := fetchState(trx)
	if nil != err {
		return nil, err
	}

	now := timestamp()
	post := &record.Post{
		PostID:          state.PostCount + 1,
		Author:          caller,
		Collaborator:    collaborator,
		Content:         content,
		ImageUrl:        imageUrl,
		CreatedAt:       now,
		UpdatedAt:       now,
		IsCollaboration: nil != collaborator,
	}

	// bounds are enforced by the pack
	packed, err := post.Pack()
	if nil != err {
		return nil, err
	}

	postAddress := address.Post(post.PostID)
	if trx.Has(storage.Pool.Posts, postAddress[:]) {
		// id sequence and occupied slot disagree
		return nil, fault.AlreadyInitialised
	}
	trx.Put(storage.Pool.Posts, postAddress[:], packed)

	state.PostCount += 1
	err = storeState(trx, state)
	if nil != err {
		return nil, err
	}

	profile.PostsCount += 1
	err = storeProfile(trx, profile)
	if nil != err {
		return nil, err
	}
	return post, nil
}

// DeletePost - tombstone a post
//
// allowed for the author or the collaborator; the author's posts
// count only drops when the author is the deleter
func DeletePost(trx storage.Transaction, caller *account.Account, postID uint64) error {
	if nil == caller {
		return fault.NotAPublicKey
	}

	post, err := fetchPost(trx, postID)
	if nil != err {
		return err
	}

	isAuthor := caller.Equal(post.Author)
	isCollaborator := nil != post.Collaborator && caller.Equal(post.Collaborator)
	if !isAuthor && !isCollaborator {
		return fault.CannotDeleteOthersPost
	}

	if post.IsDeleted {
		return fault.PostDeleted
	}

	post.IsDeleted = true
	post.UpdatedAt = timestamp()

	if isAuthor {
		profile, err := fetchProfile(trx, post.Author)
		if nil != err {
			return err
		}
		profile.PostsCount = decrement(profile.PostsCount)
		err = storeProfile(trx, profile)
		if nil != err {
			return err
		}
	}

	return storePost(trx, post)
}
