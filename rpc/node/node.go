// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/chirp-network/chirpd/counter"
	"github.com/chirp-network/chirpd/ledger"
	"github.com/chirp-network/chirpd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for the RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	start   time.Time
	version string
	counter *counter.Counter
}

// New - create the node RPC handler
func New(log *logger.L, start time.Time, version string, connectionCounter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:   start,
		version: version,
		counter: connectionCounter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Initialised    bool   `json:"initialised"`
	Users          uint64 `json:"users"`
	Posts          uint64 `json:"posts"`
	Comments       uint64 `json:"comments"`
	TotalDonations uint64 `json:"totalDonations,string"`
	FeePercent     uint64 `json:"feePercent"`
	Connections    uint64 `json:"connections"`
	Version        string `json:"version"`
	Uptime         string `json:"uptime"`
}

// Info - report platform counters and server state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	state, err := ledger.GetPlatformState()
	if nil == err {
		reply.Initialised = true
		reply.Users = state.UserCount
		reply.Posts = state.PostCount
		reply.Comments = state.CommentCount
		reply.TotalDonations = state.TotalDonations
		reply.FeePercent = state.PlatformFeePercent
	}

	reply.Connections = node.counter.Uint64()
	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	return nil
}
