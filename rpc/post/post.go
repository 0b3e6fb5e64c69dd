// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package post

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
	rateLimitPost = 200
	rateBurstPost = 100
)

// Post - type for the RPC
type Post struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the post RPC handler
func New(log *logger.L) *Post {
	return &Post{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitPost, rateBurstPost),
	}
}

// CreateArguments - arguments for the create RPC
type CreateArguments struct {
	Author   *account.Account `json:"author"` // base58
	Content  string           `json:"content"`
	ImageUrl string           `json:"imageUrl"`
}

// CreateReply - result from the create RPC
type CreateReply struct {
	Post *record.Post `json:"post"`
}

// Create - allocate the next post
func (p *Post) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Author {
		return fault.MissingParameters
	}

	p.Log.Infof("Post.Create: %s", arguments.Author)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	post, err := ledger.CreatePost(trx, arguments.Author, arguments.Content, arguments.ImageUrl)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Post = post
	return nil
}

// CreateCollaborationArguments - arguments for the collaboration RPC
type CreateCollaborationArguments struct {
	Author       *account.Account `json:"author"`       // base58
	Collaborator *account.Account `json:"collaborator"` // base58
	Content      string           `json:"content"`
	ImageUrl     string           `json:"imageUrl"`
}

// CreateCollaboration - allocate the next post with a second author
func (p *Post) CreateCollaboration(arguments *CreateCollaborationArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Author || nil == arguments.Collaborator {
		return fault.MissingParameters
	}

	p.Log.Infof("Post.CreateCollaboration: %s + %s", arguments.Author, arguments.Collaborator)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	post, err := ledger.CreateCollaborationPost(trx, arguments.Author, arguments.Collaborator, arguments.Content, arguments.ImageUrl)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Post = post
	return nil
}

// DeleteArguments - arguments for the delete RPC
type DeleteArguments struct {
	Caller *account.Account `json:"caller"` // base58
	PostID uint64           `json:"postId,string"`
}

// DeleteReply - result from the delete RPC
type DeleteReply struct {
	Deleted bool `json:"deleted"`
}

// Delete - tombstone a post
func (p *Post) Delete(arguments *DeleteArguments, reply *DeleteReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Caller {
		return fault.MissingParameters
	}

	p.Log.Infof("Post.Delete: %s post: %d", arguments.Caller, arguments.PostID)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = ledger.DeletePost(trx, arguments.Caller, arguments.PostID)
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
	PostID uint64 `json:"postId,string"`
}

// GetReply - result from the get RPC
type GetReply struct {
	Post *record.Post `json:"post"`
}

// Get - read one post by id
func (p *Post) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}

	post, err := ledger.GetPost(arguments.PostID)
	if nil != err {
		return err
	}

	reply.Post = post
	return nil
}
