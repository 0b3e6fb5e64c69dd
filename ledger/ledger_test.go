// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/ledger"
	"github.com/chirp-network/chirpd/payment"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/storage"
)

const databaseFileName = "ledger-test"

var transferrer = payment.New()

func makeAccount(t *testing.T) *account.Account {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err, "generate key")
	acc, err := account.NewAccount(publicKey)
	require.NoError(t, err, "new account")
	return acc
}

// open a fresh store and create the counters with the given fee
func setup(t *testing.T, feePercent uint64) *account.Account {
	os.RemoveAll(databaseFileName + ".leveldb")
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	require.NoError(t, err, "storage initialise")

	platform := makeAccount(t)
	err = execute(func(trx storage.Transaction) error {
		return ledger.InitialisePlatform(trx, platform, feePercent)
	})
	require.NoError(t, err, "platform initialise")
	return platform
}

func teardown(t *testing.T) {
	storage.Finalise()
	os.RemoveAll(databaseFileName + ".leveldb")
}

// run one operation as its own transaction
// commit on success, abort on error so a failure mutates nothing
func execute(operation func(trx storage.Transaction) error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = operation(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

func createProfile(t *testing.T, owner *account.Account, username string) *record.Profile {
	var profile *record.Profile
	err := execute(func(trx storage.Transaction) error {
		var err error
		profile, err = ledger.CreateProfile(trx, owner, username, "", "", "")
		return err
	})
	require.NoError(t, err, "create profile: %s", username)
	return profile
}

func createPost(t *testing.T, author *account.Account, content string) *record.Post {
	var post *record.Post
	err := execute(func(trx storage.Transaction) error {
		var err error
		post, err = ledger.CreatePost(trx, author, content, "")
		return err
	})
	require.NoError(t, err, "create post")
	return post
}

func deposit(t *testing.T, owner *account.Account, amount uint64) {
	err := execute(func(trx storage.Transaction) error {
		_, err := payment.Deposit(trx, owner, amount)
		return err
	})
	require.NoError(t, err, "deposit")
}

func TestInitialiseOnce(t *testing.T) {
	platform := setup(t, 5)
	defer teardown(t)

	err := execute(func(trx storage.Transaction) error {
		return ledger.InitialisePlatform(trx, platform, 5)
	})
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	state, err := ledger.GetPlatformState()
	require.NoError(t, err, "read state")
	assert.True(t, state.Initialised, "initialised flag")
	assert.Equal(t, uint64(5), state.PlatformFeePercent, "fee percent")
	assert.True(t, state.PlatformAccount.Equal(platform), "platform account")
}

// a reader outside the transaction must not see an uncommitted transition
func TestReadIsolation(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)

	trx, err := storage.NewDBTransaction()
	require.NoError(t, err, "begin")
	_, err = ledger.CreateProfile(trx, alice, "alice", "", "", "")
	require.NoError(t, err, "create profile")

	// still pending: outside readers see the prior state
	_, err = ledger.GetProfile(alice)
	assert.Equal(t, fault.ProfileNotFound, err, "pending profile visible")
	state, err := ledger.GetPlatformState()
	require.NoError(t, err, "read state")
	assert.Equal(t, uint64(0), state.UserCount, "pending counter visible")

	trx.Abort()

	// the aborted transition never existed
	_, err = ledger.GetProfile(alice)
	assert.Equal(t, fault.ProfileNotFound, err, "aborted profile visible")

	createProfile(t, alice, "alice")
	profile, err := ledger.GetProfile(alice)
	require.NoError(t, err, "committed profile")
	assert.Equal(t, uint64(1), profile.UserID, "user id")
}

func TestCreateProfile(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)

	p1 := createProfile(t, alice, "alice")
	assert.Equal(t, uint64(1), p1.UserID, "first user id")

	p2 := createProfile(t, bob, "bob")
	assert.Equal(t, uint64(2), p2.UserID, "second user id")

	// one profile per owner
	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.CreateProfile(trx, alice, "alice2", "", "", "")
		return err
	})
	assert.Equal(t, fault.ProfileAlreadyExists, err, "double create")

	// usernames are globally unique
	carol := makeAccount(t)
	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.CreateProfile(trx, carol, "alice", "", "", "")
		return err
	})
	assert.Equal(t, fault.UsernameAlreadyExists, err, "username reuse")

	// neither failure moved the user counter
	state, err := ledger.GetPlatformState()
	require.NoError(t, err, "read state")
	assert.Equal(t, uint64(2), state.UserCount, "user count")
}

func TestUpdateProfile(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	createProfile(t, alice, "alice")

	displayName := "Alice"
	bio := "rabbit holes surveyed"
	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.UpdateProfile(trx, alice, &displayName, &bio, nil)
		return err
	})
	require.NoError(t, err, "update")

	profile, err := ledger.GetProfile(alice)
	require.NoError(t, err, "read profile")
	assert.Equal(t, "Alice", profile.DisplayName, "display name")
	assert.Equal(t, "rabbit holes surveyed", profile.Bio, "bio")
	assert.Equal(t, "alice", profile.Username, "username untouched")

	// a single oversize field rejects the whole update
	longBio := strings.Repeat("b", record.MaxBioLength+1)
	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.UpdateProfile(trx, alice, nil, &longBio, nil)
		return err
	})
	assert.Equal(t, fault.BioTooLong, err, "oversize bio")

	profile, err = ledger.GetProfile(alice)
	require.NoError(t, err, "read profile")
	assert.Equal(t, "rabbit holes surveyed", profile.Bio, "bio unchanged after failure")

	// no profile, no update
	mallory := makeAccount(t)
	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.UpdateProfile(trx, mallory, &displayName, nil, nil)
		return err
	})
	assert.Equal(t, fault.ProfileNotFound, err, "update without profile")
}

func TestCounterConservation(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, alice, "alice")
	createProfile(t, bob, "bob")

	createPost(t, alice, "one")
	createPost(t, alice, "two")
	createPost(t, bob, "three")

	// a failed create must not advance any id
	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.CreatePost(trx, alice, strings.Repeat("x", record.MaxPostContentLength+1), "")
		return err
	})
	assert.Equal(t, fault.PostContentTooLong, err, "oversize post")

	p4 := createPost(t, bob, "four")
	assert.Equal(t, uint64(4), p4.PostID, "post id sequence")

	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.CreateComment(trx, bob, p4.PostID, "nice")
		return err
	})
	require.NoError(t, err, "comment")

	state, err := ledger.GetPlatformState()
	require.NoError(t, err, "read state")
	assert.Equal(t, uint64(2), state.UserCount, "user count")
	assert.Equal(t, uint64(4), state.PostCount, "post count")
	assert.Equal(t, uint64(1), state.CommentCount, "comment count")

	aliceProfile, err := ledger.GetProfile(alice)
	require.NoError(t, err, "read profile")
	assert.Equal(t, uint64(2), aliceProfile.PostsCount, "alice posts count")
}

func TestPostNeedsProfile(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	nobody := makeAccount(t)
	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.CreatePost(trx, nobody, "hello", "")
		return err
	})
	assert.Equal(t, fault.ProfileNotFound, err, "post without profile")
}

func TestDeletionMonotonicity(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, alice, "alice")
	createProfile(t, bob, "bob")

	post := createPost(t, alice, "ephemeral")

	err := execute(func(trx storage.Transaction) error {
		return ledger.DeletePost(trx, alice, post.PostID)
	})
	require.NoError(t, err, "delete")

	// tombstone gates comment and like creation
	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.CreateComment(trx, bob, post.PostID, "too late")
		return err
	})
	assert.Equal(t, fault.PostDeleted, err, "comment on deleted")

	err = execute(func(trx storage.Transaction) error {
		return ledger.LikePost(trx, bob, post.PostID)
	})
	assert.Equal(t, fault.PostDeleted, err, "like on deleted")

	err = execute(func(trx storage.Transaction) error {
		return ledger.DeletePost(trx, alice, post.PostID)
	})
	assert.Equal(t, fault.PostDeleted, err, "second delete")

	// author's posts count dropped exactly once
	profile, err := ledger.GetProfile(alice)
	require.NoError(t, err, "read profile")
	assert.Equal(t, uint64(0), profile.PostsCount, "posts count")

	// a stranger cannot delete at all
	post2 := createPost(t, alice, "still here")
	err = execute(func(trx storage.Transaction) error {
		return ledger.DeletePost(trx, bob, post2.PostID)
	})
	assert.Equal(t, fault.CannotDeleteOthersPost, err, "stranger delete")
}

func TestCollaborationPost(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, alice, "alice")

	// self collaboration is rejected
	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.CreateCollaborationPost(trx, alice, alice, "solo duet", "")
		return err
	})
	assert.Equal(t, fault.CannotCollaborateWithSelf, err, "self collaboration")

	// collaborator must hold a profile
	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.CreateCollaborationPost(trx, alice, bob, "with bob", "")
		return err
	})
	assert.Equal(t, fault.CollaboratorNotFound, err, "collaborator without profile")

	createProfile(t, bob, "bob")

	var post *record.Post
	err = execute(func(trx storage.Transaction) error {
		var err error
		post, err = ledger.CreateCollaborationPost(trx, alice, bob, "with bob", "")
		return err
	})
	require.NoError(t, err, "collaboration post")
	assert.True(t, post.IsCollaboration, "collaboration flag")
	assert.True(t, post.Collaborator.Equal(bob), "collaborator identity")

	// only the author's posts count moves
	aliceProfile, _ := ledger.GetProfile(alice)
	bobProfile, _ := ledger.GetProfile(bob)
	assert.Equal(t, uint64(1), aliceProfile.PostsCount, "author posts count")
	assert.Equal(t, uint64(0), bobProfile.PostsCount, "collaborator posts count")

	// collaborator may delete, author's count is left alone
	err = execute(func(trx storage.Transaction) error {
		return ledger.DeletePost(trx, bob, post.PostID)
	})
	require.NoError(t, err, "collaborator delete")

	deleted, err := ledger.GetPost(post.PostID)
	require.NoError(t, err, "read post")
	assert.True(t, deleted.IsDeleted, "tombstone")

	aliceProfile, _ = ledger.GetProfile(alice)
	bobProfile, _ = ledger.GetProfile(bob)
	assert.Equal(t, uint64(1), aliceProfile.PostsCount, "author posts count after collaborator delete")
	assert.Equal(t, uint64(0), bobProfile.PostsCount, "collaborator posts count after delete")
}

func TestFollowUnfollow(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, alice, "alice")
	createProfile(t, bob, "bob")

	err := execute(func(trx storage.Transaction) error {
		return ledger.FollowUser(trx, alice, alice)
	})
	assert.Equal(t, fault.CannotFollowSelf, err, "self follow")

	err = execute(func(trx storage.Transaction) error {
		return ledger.FollowUser(trx, alice, bob)
	})
	require.NoError(t, err, "follow")
	assert.True(t, ledger.IsFollowing(alice, bob), "edge exists")
	assert.False(t, ledger.IsFollowing(bob, alice), "reverse edge absent")

	aliceProfile, _ := ledger.GetProfile(alice)
	bobProfile, _ := ledger.GetProfile(bob)
	assert.Equal(t, uint64(1), aliceProfile.FollowingCount, "following count")
	assert.Equal(t, uint64(1), bobProfile.FollowersCount, "followers count")

	// a second follow is an addressing collision, counters untouched
	err = execute(func(trx storage.Transaction) error {
		return ledger.FollowUser(trx, alice, bob)
	})
	assert.Equal(t, fault.AlreadyFollowing, err, "double follow")

	aliceProfile, _ = ledger.GetProfile(alice)
	bobProfile, _ = ledger.GetProfile(bob)
	assert.Equal(t, uint64(1), aliceProfile.FollowingCount, "following count after collision")
	assert.Equal(t, uint64(1), bobProfile.FollowersCount, "followers count after collision")

	// unfollow restores the pre-follow counts
	err = execute(func(trx storage.Transaction) error {
		return ledger.UnfollowUser(trx, alice, bob)
	})
	require.NoError(t, err, "unfollow")
	assert.False(t, ledger.IsFollowing(alice, bob), "edge removed")

	aliceProfile, _ = ledger.GetProfile(alice)
	bobProfile, _ = ledger.GetProfile(bob)
	assert.Equal(t, uint64(0), aliceProfile.FollowingCount, "following count restored")
	assert.Equal(t, uint64(0), bobProfile.FollowersCount, "followers count restored")

	err = execute(func(trx storage.Transaction) error {
		return ledger.UnfollowUser(trx, alice, bob)
	})
	assert.Equal(t, fault.NotFollowing, err, "unfollow without edge")

	// following a missing profile
	ghost := makeAccount(t)
	err = execute(func(trx storage.Transaction) error {
		return ledger.FollowUser(trx, alice, ghost)
	})
	assert.Equal(t, fault.ProfileNotFound, err, "follow missing profile")
}

func TestLikeUnlike(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, alice, "alice")
	createProfile(t, bob, "bob")

	post := createPost(t, alice, "likeable")

	err := execute(func(trx storage.Transaction) error {
		return ledger.LikePost(trx, bob, post.PostID)
	})
	require.NoError(t, err, "like")
	assert.True(t, ledger.HasLiked(bob, post.PostID), "edge exists")

	current, _ := ledger.GetPost(post.PostID)
	assert.Equal(t, uint64(1), current.LikesCount, "likes count")

	err = execute(func(trx storage.Transaction) error {
		return ledger.LikePost(trx, bob, post.PostID)
	})
	assert.Equal(t, fault.AlreadyLiked, err, "double like")

	current, _ = ledger.GetPost(post.PostID)
	assert.Equal(t, uint64(1), current.LikesCount, "likes count after collision")

	// like then unlike restores the pre-like value
	err = execute(func(trx storage.Transaction) error {
		return ledger.UnlikePost(trx, bob, post.PostID)
	})
	require.NoError(t, err, "unlike")
	assert.False(t, ledger.HasLiked(bob, post.PostID), "edge removed")

	current, _ = ledger.GetPost(post.PostID)
	assert.Equal(t, uint64(0), current.LikesCount, "likes count restored")

	err = execute(func(trx storage.Transaction) error {
		return ledger.UnlikePost(trx, bob, post.PostID)
	})
	assert.Equal(t, fault.NotLiked, err, "unlike without edge")

	err = execute(func(trx storage.Transaction) error {
		return ledger.LikePost(trx, bob, 999)
	})
	assert.Equal(t, fault.PostNotFound, err, "like missing post")

	// an existing like can still be withdrawn after deletion
	err = execute(func(trx storage.Transaction) error {
		return ledger.LikePost(trx, bob, post.PostID)
	})
	require.NoError(t, err, "re-like")
	err = execute(func(trx storage.Transaction) error {
		return ledger.DeletePost(trx, alice, post.PostID)
	})
	require.NoError(t, err, "delete")
	err = execute(func(trx storage.Transaction) error {
		return ledger.UnlikePost(trx, bob, post.PostID)
	})
	assert.NoError(t, err, "unlike after delete")
}

func TestCommentLifecycle(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, alice, "alice")
	createProfile(t, bob, "bob")

	post := createPost(t, alice, "discussable")

	var comment *record.Comment
	err := execute(func(trx storage.Transaction) error {
		var err error
		comment, err = ledger.CreateComment(trx, bob, post.PostID, "first")
		return err
	})
	require.NoError(t, err, "comment")
	assert.Equal(t, uint64(1), comment.CommentID, "comment id")
	assert.Equal(t, post.PostID, comment.PostID, "parent id")

	current, _ := ledger.GetPost(post.PostID)
	assert.Equal(t, uint64(1), current.CommentsCount, "comments count")

	// only the author may delete
	err = execute(func(trx storage.Transaction) error {
		return ledger.DeleteComment(trx, alice, comment.CommentID)
	})
	assert.Equal(t, fault.Unauthorized, err, "delete by non-author")

	err = execute(func(trx storage.Transaction) error {
		return ledger.DeleteComment(trx, bob, comment.CommentID)
	})
	require.NoError(t, err, "delete")

	current, _ = ledger.GetPost(post.PostID)
	assert.Equal(t, uint64(0), current.CommentsCount, "comments count restored")

	deleted, err := ledger.GetComment(comment.CommentID)
	require.NoError(t, err, "read comment")
	assert.True(t, deleted.IsDeleted, "tombstone")

	err = execute(func(trx storage.Transaction) error {
		return ledger.DeleteComment(trx, bob, comment.CommentID)
	})
	assert.Equal(t, fault.CommentNotFound, err, "second delete")

	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.CreateComment(trx, bob, 999, "orphan")
		return err
	})
	assert.Equal(t, fault.PostNotFound, err, "comment on missing post")
}

func TestDonationSplit(t *testing.T) {
	platform := setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, bob, "bob")
	deposit(t, alice, 200_000_000)

	var donation *record.Donation
	err := execute(func(trx storage.Transaction) error {
		var err error
		donation, err = ledger.DonateToCreator(trx, transferrer, alice, bob, 100_000_000)
		return err
	})
	require.NoError(t, err, "donate")

	// exact 95/5 split
	assert.Equal(t, uint64(95_000_000), payment.Balance(bob), "creator share")
	assert.Equal(t, uint64(5_000_000), payment.Balance(platform), "platform share")
	assert.Equal(t, uint64(100_000_000), payment.Balance(alice), "donor remainder")

	bobProfile, _ := ledger.GetProfile(bob)
	assert.Equal(t, uint64(95_000_000), bobProfile.TotalDonationsReceived, "recorded net")

	state, _ := ledger.GetPlatformState()
	assert.Equal(t, uint64(100_000_000), state.TotalDonations, "recorded gross")

	assert.Equal(t, uint64(100_000_000), donation.Amount, "donation amount")
	assert.Equal(t, 64, len(donation.TransactionRef), "transaction reference")

	// a second donation to the same recipient overwrites the log entry
	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.DonateToCreator(trx, transferrer, alice, bob, 20_000_000)
		return err
	})
	require.NoError(t, err, "second donation")

	logged, err := ledger.GetDonation(alice, bob)
	require.NoError(t, err, "read donation")
	assert.Equal(t, uint64(20_000_000), logged.Amount, "overwritten amount")
}

func TestDonationZeroFee(t *testing.T) {
	platform := setup(t, 0)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, bob, "bob")
	deposit(t, alice, 100_000_000)

	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.DonateToCreator(trx, transferrer, alice, bob, 100_000_000)
		return err
	})
	require.NoError(t, err, "donate")

	// no platform transfer is attempted at zero fee
	assert.Equal(t, uint64(100_000_000), payment.Balance(bob), "full amount to creator")
	assert.Equal(t, uint64(0), payment.Balance(platform), "platform untouched")
}

func TestDonationBoundaries(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, bob, "bob")
	deposit(t, alice, 200_000_000)

	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.DonateToCreator(trx, transferrer, alice, bob, 19_999_999)
		return err
	})
	assert.Equal(t, fault.InvalidDonationAmount, err, "below minimum")

	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.DonateToCreator(trx, transferrer, alice, bob, 20_000_000)
		return err
	})
	assert.NoError(t, err, "at minimum")

	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.DonateToCreator(trx, transferrer, alice, alice, 20_000_000)
		return err
	})
	assert.Equal(t, fault.CannotDonateToSelf, err, "self donation")

	ghost := makeAccount(t)
	err = execute(func(trx storage.Transaction) error {
		_, err := ledger.DonateToCreator(trx, transferrer, alice, ghost, 20_000_000)
		return err
	})
	assert.Equal(t, fault.ProfileNotFound, err, "recipient without profile")
}

// a failed transfer aborts the whole donation, no record survives
func TestDonationRollback(t *testing.T) {
	setup(t, 5)
	defer teardown(t)

	alice := makeAccount(t)
	bob := makeAccount(t)
	createProfile(t, bob, "bob")
	deposit(t, alice, 10_000_000) // below the donation amount

	err := execute(func(trx storage.Transaction) error {
		_, err := ledger.DonateToCreator(trx, transferrer, alice, bob, 50_000_000)
		return err
	})
	assert.Equal(t, fault.InsufficientFunds, err, "transfer failure propagated")

	assert.Equal(t, uint64(10_000_000), payment.Balance(alice), "donor balance intact")
	assert.Equal(t, uint64(0), payment.Balance(bob), "creator balance intact")

	_, err = ledger.GetDonation(alice, bob)
	assert.Equal(t, fault.DonationNotFound, err, "no donation record")

	bobProfile, _ := ledger.GetProfile(bob)
	assert.Equal(t, uint64(0), bobProfile.TotalDonationsReceived, "no recorded net")

	state, _ := ledger.GetPlatformState()
	assert.Equal(t, uint64(0), state.TotalDonations, "no recorded gross")
}
