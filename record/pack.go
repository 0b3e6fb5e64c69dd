// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/util"
)

// pack PlatformState
//
// Pack Varint64(tag) followed by fields in order as struct above
func (state *PlatformState) Pack() (Packed, error) {
	if nil == state.PlatformAccount {
		return nil, fault.NotAPublicKey
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(PlatformStateTag))
	message = appendBool(message, state.Initialised)
	message = appendUint64(message, state.UserCount)
	message = appendUint64(message, state.PostCount)
	message = appendUint64(message, state.CommentCount)
	message = appendUint64(message, state.PlatformFeePercent)
	message = appendAccount(message, state.PlatformAccount)
	message = appendUint64(message, state.TotalDonations)
	return message, nil
}

// pack Profile
//
// Pack Varint64(tag) followed by fields in order as struct above
func (profile *Profile) Pack() (Packed, error) {
	if nil == profile.Owner {
		return nil, fault.NotAPublicKey
	}
	if len(profile.Username) > MaxUsernameLength {
		return nil, fault.UsernameTooLong
	}
	if len(profile.DisplayName) > MaxDisplayNameLength {
		return nil, fault.DisplayNameTooLong
	}
	if len(profile.Bio) > MaxBioLength {
		return nil, fault.BioTooLong
	}
	if len(profile.ImageUrl) > MaxImageUrlLength {
		return nil, fault.ImageUrlTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(ProfileTag))
	message = appendAccount(message, profile.Owner)
	message = appendUint64(message, profile.UserID)
	message = appendString(message, profile.Username)
	message = appendString(message, profile.DisplayName)
	message = appendString(message, profile.Bio)
	message = appendString(message, profile.ImageUrl)
	message = appendUint64(message, profile.FollowersCount)
	message = appendUint64(message, profile.FollowingCount)
	message = appendUint64(message, profile.PostsCount)
	message = appendUint64(message, profile.CreatedAt)
	message = appendUint64(message, profile.TotalDonationsReceived)
	message = appendBool(message, profile.IsVerified)
	return message, nil
}

// pack Post
//
// Pack Varint64(tag) followed by fields in order as struct above
//
// a nil collaborator packs as a zero length account field
func (post *Post) Pack() (Packed, error) {
	if nil == post.Author {
		return nil, fault.NotAPublicKey
	}
	if len(post.Content) > MaxPostContentLength {
		return nil, fault.PostContentTooLong
	}
	if len(post.ImageUrl) > MaxImageUrlLength {
		return nil, fault.ImageUrlTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(PostTag))
	message = appendUint64(message, post.PostID)
	message = appendAccount(message, post.Author)
	if nil == post.Collaborator {
		message = appendBytes(message, nil)
	} else {
		message = appendAccount(message, post.Collaborator)
	}
	message = appendString(message, post.Content)
	message = appendString(message, post.ImageUrl)
	message = appendUint64(message, post.LikesCount)
	message = appendUint64(message, post.CommentsCount)
	message = appendUint64(message, post.CreatedAt)
	message = appendUint64(message, post.UpdatedAt)
	message = appendBool(message, post.IsDeleted)
	message = appendBool(message, post.IsCollaboration)
	return message, nil
}

// pack Comment
//
// Pack Varint64(tag) followed by fields in order as struct above
func (comment *Comment) Pack() (Packed, error) {
	if nil == comment.Author {
		return nil, fault.NotAPublicKey
	}
	if len(comment.Content) > MaxCommentLength {
		return nil, fault.CommentTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(CommentTag))
	message = appendUint64(message, comment.CommentID)
	message = appendUint64(message, comment.PostID)
	message = appendAccount(message, comment.Author)
	message = appendString(message, comment.Content)
	message = appendUint64(message, comment.CreatedAt)
	message = appendBool(message, comment.IsDeleted)
	return message, nil
}

// pack Follow
//
// Pack Varint64(tag) followed by fields in order as struct above
func (follow *Follow) Pack() (Packed, error) {
	if nil == follow.Follower || nil == follow.Following {
		return nil, fault.NotAPublicKey
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(FollowTag))
	message = appendAccount(message, follow.Follower)
	message = appendAccount(message, follow.Following)
	message = appendUint64(message, follow.CreatedAt)
	return message, nil
}

// pack Like
//
// Pack Varint64(tag) followed by fields in order as struct above
func (like *Like) Pack() (Packed, error) {
	if nil == like.User {
		return nil, fault.NotAPublicKey
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(LikeTag))
	message = appendAccount(message, like.User)
	message = appendUint64(message, like.PostID)
	message = appendUint64(message, like.CreatedAt)
	return message, nil
}

// pack Donation
//
// Pack Varint64(tag) followed by fields in order as struct above
func (donation *Donation) Pack() (Packed, error) {
	if nil == donation.Donor || nil == donation.Recipient {
		return nil, fault.NotAPublicKey
	}
	if len(donation.TransactionRef) > MaxTransactionRefLength {
		return nil, fault.TransactionRefTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(DonationTag))
	message = appendAccount(message, donation.Donor)
	message = appendAccount(message, donation.Recipient)
	message = appendUint64(message, donation.Amount)
	message = appendUint64(message, donation.Timestamp)
	message = appendString(message, donation.TransactionRef)
	return message, nil
}

// append a string to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an account to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, acc *account.Account) Packed {
	data := acc.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}

// append a bool to buffer as Varint64 zero or one
func appendBool(buffer Packed, value bool) Packed {
	b := byte(0x00)
	if value {
		b = 0x01
	}
	return append(buffer, b)
}
