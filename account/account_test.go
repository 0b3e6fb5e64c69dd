// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
)

func makeAccount(t *testing.T) (*account.Account, ed25519.PrivateKey) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	acc, err := account.NewAccount(publicKey)
	if nil != err {
		t.Fatalf("new account error: %s", err)
	}
	return acc, privateKey
}

func TestBase58RoundTrip(t *testing.T) {
	acc, _ := makeAccount(t)

	text := acc.String()
	decoded, err := account.AccountFromBase58(text)
	assert.Nil(t, err, "decode error")
	assert.True(t, acc.Equal(decoded), "account changed through base58 round trip")
}

func TestBytesRoundTrip(t *testing.T) {
	acc, _ := makeAccount(t)

	decoded, err := account.AccountFromBytes(acc.Bytes())
	assert.Nil(t, err, "decode error")
	assert.True(t, acc.Equal(decoded), "account changed through bytes round trip")
}

func TestChecksumTamper(t *testing.T) {
	acc, _ := makeAccount(t)

	text := []byte(acc.String())
	// flip one character; base58 has no 'l' so this is always a change
	if 'x' == text[5] {
		text[5] = 'y'
	} else {
		text[5] = 'x'
	}

	_, err := account.AccountFromBase58(string(text))
	assert.NotNil(t, err, "tampered account text accepted")
}

func TestInvalidKeyLength(t *testing.T) {
	_, err := account.NewAccount([]byte("short"))
	assert.Equal(t, fault.InvalidKeyLength, err, "wrong error")

	_, err = account.AccountFromBytes([]byte("also too short"))
	assert.Equal(t, fault.InvalidKeyLength, err, "wrong error")
}

func TestCheckSignature(t *testing.T) {
	acc, privateKey := makeAccount(t)

	message := []byte("a signed operation payload")
	signature := account.Signature(ed25519.Sign(privateKey, message))

	err := acc.CheckSignature(message, signature)
	assert.Nil(t, err, "valid signature rejected")

	err = acc.CheckSignature([]byte("a different payload"), signature)
	assert.Equal(t, fault.Unauthorized, err, "forged signature accepted")

	err = acc.CheckSignature(message, signature[1:])
	assert.Equal(t, fault.Unauthorized, err, "short signature accepted")
}
