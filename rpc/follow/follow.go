// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package follow

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
	rateLimitFollow = 200
	rateBurstFollow = 100
)

// Follow - type for the RPC
type Follow struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the follow RPC handler
func New(log *logger.L) *Follow {
	return &Follow{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFollow, rateBurstFollow),
	}
}

// Arguments - the (follower, following) pair for all follow RPCs
type Arguments struct {
	Follower  *account.Account `json:"follower"`  // base58
	Following *account.Account `json:"following"` // base58
}

// Reply - result from follow and unfollow RPCs
type Reply struct {
	Following bool `json:"following"`
}

// Follow - create the follow edge
func (f *Follow) Follow(arguments *Arguments, reply *Reply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Follower || nil == arguments.Following {
		return fault.MissingParameters
	}

	f.Log.Infof("Follow.Follow: %s → %s", arguments.Follower, arguments.Following)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = ledger.FollowUser(trx, arguments.Follower, arguments.Following)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Following = true
	return nil
}

// Unfollow - destroy the follow edge
func (f *Follow) Unfollow(arguments *Arguments, reply *Reply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Follower || nil == arguments.Following {
		return fault.MissingParameters
	}

	f.Log.Infof("Follow.Unfollow: %s → %s", arguments.Follower, arguments.Following)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = ledger.UnfollowUser(trx, arguments.Follower, arguments.Following)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Following = false
	return nil
}

// Check - report whether the edge exists
func (f *Follow) Check(arguments *Arguments, reply *Reply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Follower || nil == arguments.Following {
		return fault.MissingParameters
	}

	reply.Following = ledger.IsFollowing(arguments.Follower, arguments.Following)
	return nil
}
