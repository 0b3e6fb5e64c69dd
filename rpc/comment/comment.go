// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package comment

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/chirp-network/chirpd/account"
	"github.com/chirp-network/chirpd/fault"
	"github.com/chirp-network/chirpd/ledger"
	"github.com/chirp-network/chirpd/record"
	"github.com/chirp-network/chirpd/rpc/ratelimit"
	"github.com/chirp-network/chirpd/storage"
)

const (
	rateLimitComment = 200
	rateBurstComment = 100
)

// Comment - type for the RPC
type Comment struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the comment RPC handler
func New(log *logger.L) *Comment {
	return &Comment{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitComment, rateBurstComment),
	}
}

// CreateArguments - arguments for the create RPC
type CreateArguments struct {
	Author  *account.Account `json:"author"` // base58
	PostID  uint64           `json:"postId,string"`
	Content string           `json:"content"`
}

// CreateReply - result from the create RPC
type CreateReply struct {
	Comment *record.Comment `json:"comment"`
}

// Create - allocate the next comment against a live post
func (c *Comment) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Author {
		return fault.MissingParameters
	}

	c.Log.Infof("Comment.Create: %s post: %d", arguments.Author, arguments.PostID)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	comment, err := ledger.CreateComment(trx, arguments.Author, arguments.PostID, arguments.Content)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Comment = comment
	return nil
}

// DeleteArguments - arguments for the delete RPC
type DeleteArguments struct {
	Caller    *account.Account `json:"caller"` // base58
	CommentID uint64           `json:"commentId,string"`
}

// DeleteReply - result from the delete RPC
type DeleteReply struct {
	Deleted bool `json:"deleted"`
}

// Delete - tombstone a comment, author only
func (c *Comment) Delete(arguments *DeleteArguments, reply *DeleteReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Caller {
		return fault.MissingParameters
	}

	c.Log.Infof("Comment.Delete: %s comment: %d", arguments.Caller, arguments.CommentID)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = ledger.DeleteComment(trx, arguments.Caller, arguments.CommentID)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Deleted = true
	return nil
}

// GetArguments - arguments for the get RPC
type GetArguments struct {
	CommentID uint64 `json:"commentId,string"`
}

// GetReply - result from the get RPC
type GetReply struct {
	Comment *record.Comment `json:"comment"`
}

// Get - read one comment by id
func (c *Comment) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}

	comment, err := ledger.GetComment(arguments.CommentID)
	if nil != err {
		return err
	}

	reply.Comment = comment
	return nil
}
