// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - deterministic record addresses
//
// Every record is stored at an address derived from its logical key:
// SHA3-256 over a namespace tag followed by the length prefixed key
// parts.  Equal keys always derive equal addresses, so an empty slot
// is proof the entity does not exist and an occupied slot blocks a
// second create.
package address

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/util"
)

// Length - number of bytes in an address
const Length = 32

// Address - the derived storage location of one record
type Address [Length]byte

// namespace tags - one per record kind
const (
	tagPlatformState = "platform_state"
	tagProfile       = "user_profile"
	tagPost          = "post"
	tagComment       = "comment"
	tagFollow        = "follow"
	tagLike          = "like"
	tagDonation      = "donation"
)

// derive an address from a namespace tag and key parts
//
// each part is preceded by its varint length so that part boundaries
// can never be shifted to alias another key
func derive(namespace string, parts ...[]byte) Address {
	h := sha3.New256()
	h.Write([]byte(namespace))
	for _, part := range parts {
		h.Write(util.ToVarint64(uint64(len(part))))
		h.Write(part)
	}

	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

// uint64Key - numeric ids as big endian 8 bytes
func uint64Key(value uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}

// PlatformState - the singleton counters record
func PlatformState() Address {
	return derive(tagPlatformState)
}

// Profile - one profile per owner identity
func Profile(owner *account.Account) Address {
	return derive(tagProfile, owner.Bytes())
}

// Post - sequentially numbered posts
func Post(postID uint64) Address {
	return derive(tagPost, uint64Key(postID))
}

// Comment - sequentially numbered comments
func Comment(commentID uint64) Address {
	return derive(tagComment, uint64Key(commentID))
}

// Follow - at most one edge per ordered (follower, following) pair
func Follow(follower *account.Account, following *account.Account) Address {
	return derive(tagFollow, follower.Bytes(), following.Bytes())
}

// Like - at most one edge per (user, post) pair
func Like(user *account.Account, postID uint64) Address {
	return derive(tagLike, user.Bytes(), uint64Key(postID))
}

// Donation - one record per (donor, recipient) pair
func Donation(donor *account.Account, recipient *account.Account) Address {
	return derive(tagDonation, donor.Bytes(), recipient.Bytes())
}

// String - convert an address to hex text for use by the fmt package (for %s)
func (address Address) String() string {
	return hex.EncodeToString(address[:])
}

// GoString - convert an address to hex text for use by the fmt package (for %#v)
func (address Address) GoString() string {
	return "<address:" + hex.EncodeToString(address[:]) + ">"
}

// MarshalText - convert an address to hex text
func (address Address) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(address))
	buffer := make([]byte, size)
	hex.Encode(buffer, address[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an address
func (address *Address) UnmarshalText(s []byte) error {
	if len(address) != hex.DecodedLen(len(s)) {
		return fault.NotRecordPack
	}
	byteCount, err := hex.Decode(address[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.NotRecordPack
	}
	return nil
}
