// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package like

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/ledger"
	"github.com/chirp-network/chirpd/rpc/ratelimit"
	"github.com/chirp-network/chirpd/storage"
)

const (
	rateLimitLike = 200
	rateBurstLike = 100
)

// Like - type for the RPC
type Like struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the like RPC handler
func New(log *logger.L) *Like {
	return &Like{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLike, rateBurstLike),
	}
}

// Arguments - the (user, post) pair for all like RPCs
type Arguments struct {
	User   *account.Account `json:"user"` // base58
	PostID uint64           `json:"postId,string"`
}

// Reply - result from like and unlike RPCs
type Reply struct {
	Liked bool `json:"liked"`
}

// Like - create the like edge
func (l *Like) Like(arguments *Arguments, reply *Reply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.User {
		return fault.MissingParameters
	}

	l.Log.Infof("Like.Like: %s post: %d", arguments.User, arguments.PostID)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = ledger.LikePost(trx, arguments.User, arguments.PostID)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Liked = true
	return nil
}

// Unlike - destroy the like edge
func (l *Like) Unlike(arguments *Arguments, reply *Reply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.User {
		return fault.MissingParameters
	}

	l.Log.Infof("Like.Unlike: %s post: %d", arguments.User, arguments.PostID)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = ledger.UnlikePost(trx, arguments.User, arguments.PostID)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Liked = false
	return nil
}

// Check - report whether the edge exists
func (l *Like) Check(arguments *Arguments, reply *Reply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.User {
		return fault.MissingParameters
	}

	reply.Liked = ledger.HasLiked(arguments.User, arguments.PostID)
	return nil
}
