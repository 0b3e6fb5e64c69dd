// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/chirp-network/chirpd/counter"
	"github.com/chirp-network/chirpd/payment"
	"github.com/chirp-network/chirpd/rpc/comment"
	"github.com/chirp-network/chirpd/rpc/donation"
	"github.com/chirp-network/chirpd/rpc/follow"
	"github.com/chirp-network/chirpd/rpc/like"
	"github.com/chirp-network/chirpd/rpc/node"
	"github.com/chirp-network/chirpd/rpc/post"
	"github.com/chirp-network/chirpd/rpc/profile"
)

// Create - register every RPC handler on a fresh server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(profile.New(log))
	_ = server.Register(post.New(log))
	_ = server.Register(comment.New(log))
	_ = server.Register(follow.New(log))
	_ = server.Register(like.New(log))
	_ = server.Register(donation.New(log, payment.New()))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
