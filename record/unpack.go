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

// maximum byte count for a packed account field
const maxAccountLength = 64

// turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   profile, ok := result.(*record.Profile)
// or:
//   switch r := result.(type) {
//   case *record.Profile:
func (packed Packed) Unpack() (t Record, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.NotRecordPack
		}
	}()

	recordType, n := util.ClippedVarint64(packed, 1, int(InvalidTag)-1)
	if 0 == n {
		return nil, 0, fault.NotRecordPack
	}

unpack_switch:
	switch TagType(recordType) {

	case PlatformStateTag:

		initialised, flagLength := unpackBool(packed[n:])
		if 0 == flagLength {
			break unpack_switch
		}
		n += flagLength

		userCount, userLength := util.FromVarint64(packed[n:])
		if 0 == userLength {
			break unpack_switch
		}
		n += userLength

		postCount, postLength := util.FromVarint64(packed[n:])
		if 0 == postLength {
			break unpack_switch
		}
		n += postLength

		commentCount, commentLength := util.FromVarint64(packed[n:])
		if 0 == commentLength {
			break unpack_switch
		}
		n += commentLength

		feePercent, feeLength := util.FromVarint64(packed[n:])
		if 0 == feeLength {
			break unpack_switch
		}
		n += feeLength

		platformAccount, accountLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += accountLength

		totalDonations, totalLength := util.FromVarint64(packed[n:])
		if 0 == totalLength {
			break unpack_switch
		}
		n += totalLength

		r := &PlatformState{
			Initialised:        initialised,
			UserCount:          userCount,
			PostCount:          postCount,
			CommentCount:       commentCount,
			PlatformFeePercent: feePercent,
			PlatformAccount:    platformAccount,
			TotalDonations:     totalDonations,
		}
		return r, n, nil

	case ProfileTag:

		owner, ownerLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += ownerLength

		userID, idLength := util.FromVarint64(packed[n:])
		if 0 == idLength {
			break unpack_switch
		}
		n += idLength

		username, usernameLength := unpackString(packed[n:], MaxUsernameLength)
		if 0 == usernameLength {
			break unpack_switch
		}
		n += usernameLength

		displayName, displayLength := unpackString(packed[n:], MaxDisplayNameLength)
		if 0 == displayLength {
			break unpack_switch
		}
		n += displayLength

		bio, bioLength := unpackString(packed[n:], MaxBioLength)
		if 0 == bioLength {
			break unpack_switch
		}
		n += bioLength

		imageUrl, urlLength := unpackString(packed[n:], MaxImageUrlLength)
		if 0 == urlLength {
			break unpack_switch
		}
		n += urlLength

		followersCount, followersLength := util.FromVarint64(packed[n:])
		if 0 == followersLength {
			break unpack_switch
		}
		n += followersLength

		followingCount, followingLength := util.FromVarint64(packed[n:])
		if 0 == followingLength {
			break unpack_switch
		}
		n += followingLength

		postsCount, postsLength := util.FromVarint64(packed[n:])
		if 0 == postsLength {
			break unpack_switch
		}
		n += postsLength

		createdAt, createdLength := util.FromVarint64(packed[n:])
		if 0 == createdLength {
			break unpack_switch
		}
		n += createdLength

		totalReceived, receivedLength := util.FromVarint64(packed[n:])
		if 0 == receivedLength {
			break unpack_switch
		}
		n += receivedLength

		isVerified, verifiedLength := unpackBool(packed[n:])
		if 0 == verifiedLength {
			break unpack_switch
		}
		n += verifiedLength

		r := &Profile{
			Owner:                  owner,
			UserID:                 userID,
			Username:               username,
			DisplayName:            displayName,
			Bio:                    bio,
			ImageUrl:               imageUrl,
			FollowersCount:         followersCount,
			FollowingCount:         followingCount,
			PostsCount:             postsCount,
			CreatedAt:              createdAt,
			TotalDonationsReceived: totalReceived,
			IsVerified:             isVerified,
		}
		return r, n, nil

	case PostTag:

		postID, idLength := util.FromVarint64(packed[n:])
		if 0 == idLength {
			break unpack_switch
		}
		n += idLength

		author, authorLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += authorLength

		// zero length means no collaborator
		collaboratorSize, sizeOffset := util.ClippedVarint64(packed[n:], 0, maxAccountLength)
		if 0 == sizeOffset {
			break unpack_switch
		}
		n += sizeOffset
		var collaborator *account.Account
		if 0 != collaboratorSize {
			acc, err := account.AccountFromBytes(packed[n : n+collaboratorSize])
			if nil != err {
				return nil, 0, err
			}
			collaborator = acc
			n += collaboratorSize
		}

		content, contentLength := unpackString(packed[n:], MaxPostContentLength)
		if 0 == contentLength {
			break unpack_switch
		}
		n += contentLength

		imageUrl, urlLength := unpackString(packed[n:], MaxImageUrlLength)
		if 0 == urlLength {
			break unpack_switch
		}
		n += urlLength

		likesCount, likesLength := util.FromVarint64(packed[n:])
		if 0 == likesLength {
			break unpack_switch
		}
		n += likesLength

		commentsCount, commentsLength := util.FromVarint64(packed[n:])
		if 0 == commentsLength {
			break unpack_switch
		}
		n += commentsLength

		createdAt, createdLength := util.FromVarint64(packed[n:])
		if 0 == createdLength {
			break unpack_switch
		}
		n += createdLength

		updatedAt, updatedLength := util.FromVarint64(packed[n:])
		if 0 == updatedLength {
			break unpack_switch
		}
		n += updatedLength

		isDeleted, deletedLength := unpackBool(packed[n:])
		if 0 == deletedLength {
			break unpack_switch
		}
		n += deletedLength

		isCollaboration, collabLength := unpackBool(packed[n:])
		if 0 == collabLength {
			break unpack_switch
		}
		n += collabLength

		r := &Post{
			PostID:          postID,
			Author:          author,
			Collaborator:    collaborator,
			Content:         content,
			ImageUrl:        imageUrl,
			LikesCount:      likesCount,
			CommentsCount:   commentsCount,
			CreatedAt:       createdAt,
			UpdatedAt:       updatedAt,
			IsDeleted:       isDeleted,
			IsCollaboration: isCollaboration,
		}
		return r, n, nil

	case CommentTag:

		commentID, idLength := util.FromVarint64(packed[n:])
		if 0 == idLength {
			break unpack_switch
		}
		n += idLength

		postID, postLength := util.FromVarint64(packed[n:])
		if 0 == postLength {
			break unpack_switch
		}
		n += postLength

		author, authorLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += authorLength

		content, contentLength := unpackString(packed[n:], MaxCommentLength)
		if 0 == contentLength {
			break unpack_switch
		}
		n += contentLength

		createdAt, createdLength := util.FromVarint64(packed[n:])
		if 0 == createdLength {
			break unpack_switch
		}
		n += createdLength

		isDeleted, deletedLength := unpackBool(packed[n:])
		if 0 == deletedLength {
			break unpack_switch
		}
		n += deletedLength

		r := &Comment{
			CommentID: commentID,
			PostID:    postID,
			Author:    author,
			Content:   content,
			CreatedAt: createdAt,
			IsDeleted: isDeleted,
		}
		return r, n, nil

	case FollowTag:

		follower, followerLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += followerLength

		following, followingLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += followingLength

		createdAt, createdLength := util.FromVarint64(packed[n:])
		if 0 == createdLength {
			break unpack_switch
		}
		n += createdLength

		r := &Follow{
			Follower:  follower,
			Following: following,
			CreatedAt: createdAt,
		}
		return r, n, nil

	case LikeTag:

		user, userLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += userLength

		postID, postLength := util.FromVarint64(packed[n:])
		if 0 == postLength {
			break unpack_switch
		}
		n += postLength

		createdAt, createdLength := util.FromVarint64(packed[n:])
		if 0 == createdLength {
			break unpack_switch
		}
		n += createdLength

		r := &Like{
			User:      user,
			PostID:    postID,
			CreatedAt: createdAt,
		}
		return r, n, nil

	case DonationTag:

		donor, donorLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += donorLength

		recipient, recipientLength, err := unpackAccount(packed[n:])
		if nil != err {
			return nil, 0, err
		}
		n += recipientLength

		amount, amountLength := util.FromVarint64(packed[n:])
		if 0 == amountLength {
			break unpack_switch
		}
		n += amountLength

		timestamp, timestampLength := util.FromVarint64(packed[n:])
		if 0 == timestampLength {
			break unpack_switch
		}
		n += timestampLength

		ref, refLength := unpackString(packed[n:], MaxTransactionRefLength)
		if 0 == refLength {
			break unpack_switch
		}
		n += refLength

		r := &Donation{
			Donor:          donor,
			Recipient:      recipient,
			Amount:         amount,
			Timestamp:      timestamp,
			TransactionRef: ref,
		}
		return r, n, nil

	default: // also NullTag
	}
	return nil, 0, fault.NotRecordPack
}

// read a length prefixed string
//
// returns the string and the total bytes consumed, 0 consumed on error
func unpackString(buffer []byte, maximum int) (string, int) {
	size, offset := util.ClippedVarint64(buffer, 0, maximum)
	if 0 == offset {
		return "", 0
	}
	s := string(buffer[offset : offset+size])
	return s, offset + size
}

// read a length prefixed account
func unpackAccount(buffer []byte) (*account.Account, int, error) {
	size, offset := util.ClippedVarint64(buffer, 1, maxAccountLength)
	if 0 == offset {
		return nil, 0, fault.NotRecordPack
	}
	acc, err := account.AccountFromBytes(buffer[offset : offset+size])
	if nil != err {
		return nil, 0, err
	}
	return acc, offset + size, nil
}

// read a single byte bool
func unpackBool(buffer []byte) (bool, int) {
	if 0 == len(buffer) {
		return false, 0
	}
	return 0x00 != buffer[0], 1
}
