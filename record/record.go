// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the persisted record types
//
// All records are fixed shape, length bounded structures.  Each kind
// packs to a tagged byte sequence: Varint64(tag) followed by the
// fields in struct order, strings and byte fields preceded by their
// Varint64 length.  Field bounds are enforced at pack time so an
// oversize record can never reach storage.
package record

import (
	"github.com/chirp-network/chirpd/account"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	ProfileTag       = TagType(iota) // one per owner identity
	PostTag          = TagType(iota) // sequentially numbered
	CommentTag       = TagType(iota) // sequentially numbered
	FollowTag        = TagType(iota) // (follower, following) edge
	LikeTag          = TagType(iota) // (user, post) edge
	DonationTag      = TagType(iota) // (donor, recipient) log entry
	PlatformStateTag = TagType(iota) // singleton counters

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic record interface
type Record interface {
	Pack() (Packed, error)
}

// byte sizes for the variable length fields
//
// all are UTF-8 byte counts, not rune counts
const (
	MaxUsernameLength       = 20
	MaxDisplayNameLength    = 50
	MaxBioLength            = 160
	MaxPostContentLength    = 280
	MaxCommentLength        = 140
	MaxImageUrlLength       = 256
	MaxTransactionRefLength = 64
)

// PlatformState - the singleton counters record
// created exactly once, mutated by nearly every operation
type PlatformState struct {
	Initialised        bool             `json:"initialised"`
	UserCount          uint64           `json:"userCount"`
	PostCount          uint64           `json:"postCount"`
	CommentCount       uint64           `json:"commentCount"`
	PlatformFeePercent uint64           `json:"platformFeePercent"`
	PlatformAccount    *account.Account `json:"platformAccount"` // base58
	TotalDonations     uint64           `json:"totalDonations"`  // gross amounts
}

// Profile - one per owner identity, never destroyed
type Profile struct {
	Owner                  *account.Account `json:"owner"` // base58
	UserID                 uint64           `json:"userId"`
	Username               string           `json:"username"`    // utf-8
	DisplayName            string           `json:"displayName"` // utf-8
	Bio                    string           `json:"bio"`         // utf-8
	ImageUrl               string           `json:"imageUrl"`    // utf-8
	FollowersCount         uint64           `json:"followersCount"`
	FollowingCount         uint64           `json:"followingCount"`
	PostsCount             uint64           `json:"postsCount"`
	CreatedAt              uint64           `json:"createdAt"` // unix seconds
	TotalDonationsReceived uint64           `json:"totalDonationsReceived"`
	IsVerified             bool             `json:"isVerified"`
}

// Post - sequentially numbered, soft deleted, never removed
type Post struct {
	PostID          uint64           `json:"postId"`
	Author          *account.Account `json:"author"`       // base58
	Collaborator    *account.Account `json:"collaborator"` // nil unless collaboration
	Content         string           `json:"content"`      // utf-8
	ImageUrl        string           `json:"imageUrl"`     // utf-8, empty = none
	LikesCount      uint64           `json:"likesCount"`
	CommentsCount   uint64           `json:"commentsCount"`
	CreatedAt       uint64           `json:"createdAt"` // unix seconds
	UpdatedAt       uint64           `json:"updatedAt"` // unix seconds
	IsDeleted       bool             `json:"isDeleted"`
	IsCollaboration bool             `json:"isCollaboration"`
}

// Comment - sequentially numbered, soft deleted
type Comment struct {
	CommentID uint64           `json:"commentId"`
	PostID    uint64           `json:"postId"` // parent
	Author    *account.Account `json:"author"` // base58
	Content   string           `json:"content"`
	CreatedAt uint64           `json:"createdAt"` // unix seconds
	IsDeleted bool             `json:"isDeleted"`
}

// Follow - relationship edge, physically removed on unfollow
type Follow struct {
	Follower  *account.Account `json:"follower"`  // base58
	Following *account.Account `json:"following"` // base58
	CreatedAt uint64           `json:"createdAt"` // unix seconds
}

// Like - relationship edge, physically removed on unlike
type Like struct {
	User      *account.Account `json:"user"` // base58
	PostID    uint64           `json:"postId"`
	CreatedAt uint64           `json:"createdAt"` // unix seconds
}

// Donation - log entry, latest donation per pair overwrites the previous
type Donation struct {
	Donor          *account.Account `json:"donor"`     // base58
	Recipient      *account.Account `json:"recipient"` // base58
	Amount         uint64           `json:"amount"`    // gross, before fee
	Timestamp      uint64           `json:"timestamp"` // unix seconds
	TransactionRef string           `json:"transactionRef"`
}
