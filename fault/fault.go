// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	AccessError   GenericError
	ExistsError   GenericError
	InvalidError  GenericError
	LengthError   GenericError
	NotFoundError GenericError
	ProcessError  GenericError
	RecordError   GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyFollowing             = ExistsError("already following user")
	AlreadyInitialised           = ExistsError("already initialised")
	AlreadyLiked                 = ExistsError("already liked post")
	BioTooLong                   = LengthError("bio too long")
	CannotCollaborateWithSelf    = InvalidError("cannot collaborate with yourself")
	CannotDecodeAccount          = RecordError("cannot decode account")
	CannotDeleteOthersPost       = AccessError("cannot delete someone else's post")
	CannotDonateToSelf           = InvalidError("cannot donate to yourself")
	CannotFollowSelf             = InvalidError("cannot follow yourself")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = ProcessError("checksum mismatch")
	CollaboratorNotFound         = NotFoundError("collaborator not found")
	CommentNotFound              = NotFoundError("comment not found")
	CommentTooLong               = LengthError("comment too long")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DisplayNameTooLong           = LengthError("display name too long")
	DonationNotFound             = NotFoundError("donation not found")
	ImageUrlTooLong              = LengthError("image url too long")
	InsufficientFunds            = ProcessError("insufficient funds")
	InvalidCount                 = InvalidError("invalid count")
	InvalidDonationAmount        = InvalidError("invalid donation amount")
	InvalidIpAddress             = InvalidError("invalid ip address")
	InvalidKeyLength             = InvalidError("invalid key length")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingParameters            = InvalidError("missing parameters")
	NotAPublicKey                = RecordError("not a public key")
	NotFollowing                 = NotFoundError("not following user")
	NotInitialised               = ProcessError("not initialised")
	NotLiked                     = NotFoundError("not liked post")
	NotRecordPack                = RecordError("not record pack")
	PostContentTooLong           = LengthError("post content too long")
	PostDeleted                  = InvalidError("post is deleted")
	PostNotFound                 = NotFoundError("post not found")
	ProfileAlreadyExists         = ExistsError("profile already exists")
	ProfileNotFound              = NotFoundError("profile not found")
	RateLimiting                 = ProcessError("rate limiting")
	TransactionRefTooLong        = LengthError("transaction reference too long")
	Unauthorized                 = AccessError("unauthorized action")
	UsernameAlreadyExists        = ExistsError("username already exists")
	UsernameTooLong              = LengthError("username too long")
	WrongOwnerForRecord          = AccessError("wrong owner for record")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrAccess - determine if access class
func IsErrAccess(e error) bool { _, ok := e.(AccessError); return ok }

// IsErrExists - determine if exists class
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine if length class
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine if not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine if record class
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }
