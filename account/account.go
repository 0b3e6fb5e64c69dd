// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - owner identities
//
// An account is an ed25519 public key.  Its byte form is a single
// key-variant byte followed by the 32 key bytes; its text form is
// Base58 of the byte form with a 4 byte SHA3-256 checksum appended.
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/chirp-network/chirpd/fault"
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key variant byte starting from LSB
	publicKeyCode = 0x01

	// only supported algorithm
	ed25519Code = 0x10
)

// Account - an authenticated caller identity
type Account struct {
	PublicKey []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return nil, fault.CannotDecodeAccount
	}

	// key variant byte + public key + checksum
	if 1+ed25519.PublicKeySize+checksumLength != len(accountDecoded) {
		return nil, fault.InvalidKeyLength
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	return AccountFromBytes(accountDecoded[:checksumStart])
}

// AccountFromBytes - convert a byte encoded buffer to an account
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	if 1+ed25519.PublicKeySize != len(accountBytes) {
		return nil, fault.InvalidKeyLength
	}

	keyVariant := accountBytes[0]
	if publicKeyCode != keyVariant&publicKeyCode || ed25519Code != keyVariant&0xf0 {
		return nil, fault.NotAPublicKey
	}

	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, accountBytes[1:])

	return &Account{PublicKey: publicKey}, nil
}

// NewAccount - wrap a raw ed25519 public key
func NewAccount(publicKey []byte) (*Account, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.InvalidKeyLength
	}
	k := make([]byte, ed25519.PublicKeySize)
	copy(k, publicKey)
	return &Account{PublicKey: k}, nil
}

// Bytes - byte slice for encoded key
func (account *Account) Bytes() []byte {
	keyVariant := byte(ed25519Code | publicKeyCode)
	return append([]byte{keyVariant}, account.PublicKey...)
}

// String - base58 encoding of encoded key with checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for use by the fmt package (for %#v)
func (account *Account) GoString() string {
	return "<account:" + account.String() + ">"
}

// MarshalText - convert an account to its Base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert a Base58 JSON form back to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.PublicKey = a.PublicKey
	return nil
}

// Equal - compare two identities
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other {
		return false
	}
	return bytes.Equal(account.PublicKey, other.PublicKey)
}

// CheckSignature - check the signature of a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.Unauthorized
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.Unauthorized
	}
	return nil
}
