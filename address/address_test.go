// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/address"
)

func makeAccount(t *testing.T) *account.Account {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	assert.NoError(t, err, "generate key")
	acc, err := account.NewAccount(publicKey)
	assert.NoError(t, err, "new account")
	return acc
}

// same logical key must always derive the same address
func TestDeterminism(t *testing.T) {
	alice := makeAccount(t)
	bob := makeAccount(t)

	assert.Equal(t, address.PlatformState(), address.PlatformState())
	assert.Equal(t, address.Profile(alice), address.Profile(alice))
	assert.Equal(t, address.Post(7), address.Post(7))
	assert.Equal(t, address.Comment(7), address.Comment(7))
	assert.Equal(t, address.Follow(alice, bob), address.Follow(alice, bob))
	assert.Equal(t, address.Like(alice, 7), address.Like(alice, 7))
	assert.Equal(t, address.Donation(alice, bob), address.Donation(alice, bob))
}

// different keys, kinds or orderings must derive different addresses
func TestSeparation(t *testing.T) {
	alice := makeAccount(t)
	bob := makeAccount(t)

	assert.NotEqual(t, address.Profile(alice), address.Profile(bob))
	assert.NotEqual(t, address.Post(1), address.Post(2))

	// same numeric id in different namespaces
	assert.NotEqual(t, address.Post(1), address.Comment(1))

	// reversed edges are distinct records
	assert.NotEqual(t, address.Follow(alice, bob), address.Follow(bob, alice))
	assert.NotEqual(t, address.Donation(alice, bob), address.Donation(bob, alice))

	// different posts liked by the same user
	assert.NotEqual(t, address.Like(alice, 1), address.Like(alice, 2))

	// same post liked by different users
	assert.NotEqual(t, address.Like(alice, 1), address.Like(bob, 1))
}

func TestTextMarshalling(t *testing.T) {
	alice := makeAccount(t)
	a := address.Profile(alice)

	text, err := a.MarshalText()
	assert.NoError(t, err, "marshal text")
	assert.Equal(t, a.String(), string(text), "string form")

	var back address.Address
	err = back.UnmarshalText(text)
	assert.NoError(t, err, "unmarshal text")
	assert.Equal(t, a, back, "round trip")

	err = back.UnmarshalText(text[:10])
	assert.Error(t, err, "short text accepted")
}
