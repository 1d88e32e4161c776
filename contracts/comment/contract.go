package comment

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/eduproof/eduproof-contract/common"
	"github.com/eduproof/eduproof-contract/contracts/comment/commentconst"
	"github.com/eduproof/eduproof-contract/contracts/listing/listingconst"
)

type (
	// Comment is a single entry of a listing discussion thread. Comments
	// form a tree through ParentID references; vote-comments are flat
	// records created by the Voting contract and excluded from the tree.
	Comment struct {
		ID            int
		ListingID     int
		Author        interop.Hash160
		Content       string
		Timestamp     int
		ParentID      int
		Upvotes       int
		Downvotes     int
		IsVoteComment bool
		Deleted       bool
		DeletedAt     int
		Replies       []int
	}
)

const (
	commentKeyPrefix     = 'c'
	threadKeyPrefix      = 't'
	voteCommentKeyPrefix = 'w'
	ballotKeyPrefix      = 'd'

	listingContractKey    = 'l'
	reputationContractKey = 'r'
	votingContractKey     = 'v'

	commentCounterKey = "commentCounter"

	ballotUp   = 1
	ballotDown = 2

	// feedbackPoints is the reputation weight of a single directional
	// comment vote. Unvoting and vote switching reverse exactly this
	// amount, keeping the score a clean fold over applied deltas.
	feedbackPoints = 1

	reasonFeedback = "comment feedback"
	reasonReverted = "comment feedback reverted"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)

	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	addrListing := args[0].(interop.Hash160)
	addrReputation := args[1].(interop.Hash160)
	addrVoting := args[2].(interop.Hash160)
	if len(addrListing) != interop.Hash160Len ||
		len(addrReputation) != interop.Hash160Len ||
		len(addrVoting) != interop.Hash160Len {
		panic("incorrect contract script hash")
	}

	storage.Put(ctx, listingContractKey, addrListing)
	storage.Put(ctx, reputationContractKey, addrReputation)
	storage.Put(ctx, votingContractKey, addrVoting)

	runtime.Log("comment contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("comment contract updated")
}

// Add method appends a discussion comment to a listing and returns the new
// comment id. Ids are assigned sequentially starting from one, zero is
// reserved for "no parent". A non-zero parentID must name an existing
// regular comment of the same listing; replying to a soft-deleted comment
// is allowed, which is exactly why deletion keeps the record around.
func Add(listingID int, author interop.Hash160, content string, parentID int) int {
	ctx := storage.GetContext()

	if len(author) != interop.Hash160Len {
		panic("incorrect author account")
	}
	common.CheckOwnerWitness(author)

	if len(content) == 0 {
		panic(commentconst.ErrEmpty)
	}

	listingContractAddr := storage.Get(ctx, listingContractKey).(interop.Hash160)
	if !contract.Call(listingContractAddr, "exists", contract.ReadOnly, listingID).(bool) {
		panic(listingconst.ErrNotFound)
	}

	var parent Comment
	if parentID != 0 {
		data := storage.Get(ctx, commentKey(parentID))
		if data == nil {
			panic(commentconst.ErrInvalidParent)
		}
		parent = std.Deserialize(data.([]byte)).(Comment)
		if parent.ListingID != listingID || parent.IsVoteComment {
			panic(commentconst.ErrInvalidParent)
		}
	}

	id := nextCommentID(ctx)
	c := Comment{
		ID:        id,
		ListingID: listingID,
		Author:    author,
		Content:   content,
		Timestamp: runtime.GetTime(),
		ParentID:  parentID,
	}
	putComment(ctx, c)
	storage.Put(ctx, threadKey(listingID, id), id)

	if parentID != 0 {
		parent.Replies = append(parent.Replies, id)
		putComment(ctx, parent)
	}

	runtime.Notify("CommentAdded", id, listingID, author)

	return id
}

// AddVoteComment method stores the mandatory explanation text of a vote. It
// can be invoked only by the Voting contract. The produced comment is
// flagged as a vote-comment: it is indexed by (listing, voter) instead of
// the reply tree and cannot be edited, deleted or rated through the regular
// comment methods.
func AddVoteComment(listingID int, voter interop.Hash160, content string) int {
	ctx := storage.GetContext()
	checkVotingWitness(ctx)

	if len(content) == 0 {
		panic(commentconst.ErrEmpty)
	}

	id := nextCommentID(ctx)
	c := Comment{
		ID:            id,
		ListingID:     listingID,
		Author:        voter,
		Content:       content,
		Timestamp:     runtime.GetTime(),
		IsVoteComment: true,
	}
	putComment(ctx, c)
	storage.Put(ctx, threadKey(listingID, id), id)
	storage.Put(ctx, voteCommentKey(listingID, voter), id)

	runtime.Notify("VoteCommentAdded", id, listingID, voter)

	return id
}

// RemoveVoteComment method soft-deletes the vote-comment of a revoked vote
// and drops its (listing, voter) index entry. It can be invoked only by the
// Voting contract.
func RemoveVoteComment(listingID int, voter interop.Hash160) {
	ctx := storage.GetContext()
	checkVotingWitness(ctx)

	data := storage.Get(ctx, voteCommentKey(listingID, voter))
	if data == nil {
		panic(commentconst.ErrNotFound)
	}
	id := data.(int)

	c := getComment(ctx, id)
	c.Content = ""
	c.Deleted = true
	c.DeletedAt = runtime.GetTime()
	putComment(ctx, c)

	storage.Delete(ctx, voteCommentKey(listingID, voter))
}

// Edit method replaces the content of a comment. It can be invoked only by
// the comment author. Vote-comments and deleted comments cannot be edited.
func Edit(id int, content string) {
	ctx := storage.GetContext()

	c := getComment(ctx, id)
	common.CheckOwnerWitness(c.Author)

	if c.IsVoteComment {
		panic(commentconst.ErrVoteComment)
	}
	if c.Deleted {
		panic(commentconst.ErrDeleted)
	}
	if len(content) == 0 {
		panic(commentconst.ErrEmpty)
	}

	c.Content = content
	putComment(ctx, c)

	runtime.Notify("CommentEdited", id)
}

// Remove method soft-deletes a comment: the content is cleared but the
// record, its place in the reply tree and its id stay, so reply chains of
// other users survive. It can be invoked only by the comment author.
// Vote-comments cannot be deleted.
func Remove(id int) {
	ctx := storage.GetContext()

	c := getComment(ctx, id)
	common.CheckOwnerWitness(c.Author)

	if c.IsVoteComment {
		panic(commentconst.ErrVoteComment)
	}
	if c.Deleted {
		panic(commentconst.ErrDeleted)
	}

	c.Content = ""
	c.Deleted = true
	c.DeletedAt = runtime.GetTime()
	putComment(ctx, c)

	runtime.Notify("CommentRemoved", id)
}

// Upvote method casts a positive directional vote on a comment and awards
// the author a reputation point. Each account holds at most one directional
// vote per comment: repeating the same direction fails, casting the
// opposite direction first reverses the previous reputation effect and then
// applies the new one, so a switch always moves the author's score by two
// points. Authors rating their own comments are not restricted.
func Upvote(id int, voter interop.Hash160) {
	castBallot(id, voter, true)
}

// Downvote method casts a negative directional vote on a comment, see
// Upvote.
func Downvote(id int, voter interop.Hash160) {
	castBallot(id, voter, false)
}

// Unvote method revokes whichever directional vote the account holds on the
// comment and reverses its reputation effect.
func Unvote(id int, voter interop.Hash160) {
	ctx := storage.GetContext()

	if len(voter) != interop.Hash160Len {
		panic("incorrect voter account")
	}
	common.CheckOwnerWitness(voter)

	c := getComment(ctx, id)

	data := storage.Get(ctx, ballotKey(id, voter))
	if data == nil {
		panic(commentconst.ErrNotVoted)
	}

	if data.(int) == ballotUp {
		c.Upvotes = c.Upvotes - 1
		applyFeedback(ctx, c.Author, -feedbackPoints, reasonReverted)
	} else {
		c.Downvotes = c.Downvotes - 1
		applyFeedback(ctx, c.Author, feedbackPoints, reasonReverted)
	}
	putComment(ctx, c)
	storage.Delete(ctx, ballotKey(id, voter))

	runtime.Notify("CommentVoteRevoked", id, voter)
}

// Get method returns the comment with the given id.
func Get(id int) Comment {
	ctx := storage.GetReadOnlyContext()
	return getComment(ctx, id)
}

// RepliesOf method returns ids of direct replies of the comment in the
// order they were added.
func RepliesOf(id int) []int {
	ctx := storage.GetReadOnlyContext()
	return getComment(ctx, id).Replies
}

// ListingComments method returns an iterator over ids of all comments of
// the given listing, vote-comments included.
func ListingComments(listingID int) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{threadKeyPrefix}, common.IDKey(listingID)...), storage.ValuesOnly)
}

// VoteCommentID method returns the id of the vote-comment the given account
// attached to its vote on the listing, or zero if there is none.
func VoteCommentID(listingID int, voter interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, voteCommentKey(listingID, voter))
	if data == nil {
		return 0
	}
	return data.(int)
}

// Count method returns the overall number of comments ever created.
func Count() int {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, commentCounterKey)
	if data == nil {
		return 0
	}
	return data.(int)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func castBallot(id int, voter interop.Hash160, isUpvote bool) {
	ctx := storage.GetContext()

	if len(voter) != interop.Hash160Len {
		panic("incorrect voter account")
	}
	common.CheckOwnerWitness(voter)

	c := getComment(ctx, id)
	if c.IsVoteComment {
		panic(commentconst.ErrVoteComment)
	}
	if c.Deleted {
		panic(commentconst.ErrDeleted)
	}

	newBallot := ballotDown
	if isUpvote {
		newBallot = ballotUp
	}

	data := storage.Get(ctx, ballotKey(id, voter))
	if data != nil {
		prev := data.(int)
		if prev == newBallot {
			panic(commentconst.ErrAlreadyVoted)
		}

		// switch: take back the old direction first
		if prev == ballotUp {
			c.Upvotes = c.Upvotes - 1
			applyFeedback(ctx, c.Author, -feedbackPoints, reasonReverted)
		} else {
			c.Downvotes = c.Downvotes - 1
			applyFeedback(ctx, c.Author, feedbackPoints, reasonReverted)
		}
	}

	if isUpvote {
		c.Upvotes = c.Upvotes + 1
		applyFeedback(ctx, c.Author, feedbackPoints, reasonFeedback)
	} else {
		c.Downvotes = c.Downvotes + 1
		applyFeedback(ctx, c.Author, -feedbackPoints, reasonFeedback)
	}
	putComment(ctx, c)
	storage.Put(ctx, ballotKey(id, voter), newBallot)

	runtime.Notify("CommentVoted", id, voter, isUpvote)
}

func applyFeedback(ctx storage.Context, author interop.Hash160, points int, reason string) {
	reputationContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	contract.Call(reputationContractAddr, "updateReputation", contract.All, author, points, reason)
}

func checkVotingWitness(ctx storage.Context) {
	caller := runtime.GetCallingScriptHash()
	votingContractAddr := storage.Get(ctx, votingContractKey).(interop.Hash160)
	if !caller.Equals(votingContractAddr) {
		panic("vote comment access denied")
	}
}

// nextCommentID shifts the shared counter by one. Comment ids start from 1,
// 0 is the "no parent" marker.
func nextCommentID(ctx storage.Context) int {
	return common.NextID(ctx, commentCounterKey) + 1
}

func getComment(ctx storage.Context, id int) Comment {
	data := storage.Get(ctx, commentKey(id))
	if data == nil {
		panic(commentconst.ErrNotFound)
	}
	return std.Deserialize(data.([]byte)).(Comment)
}

func putComment(ctx storage.Context, c Comment) {
	common.SetSerialized(ctx, commentKey(c.ID), c)
}

func commentKey(id int) []byte {
	return append([]byte{commentKeyPrefix}, convert.ToBytes(id)...)
}

func threadKey(listingID, id int) []byte {
	return append(append([]byte{threadKeyPrefix}, common.IDKey(listingID)...), common.IDKey(id)...)
}

func voteCommentKey(listingID int, voter interop.Hash160) []byte {
	return append(append([]byte{voteCommentKeyPrefix}, convert.ToBytes(listingID)...), voter...)
}

func ballotKey(id int, voter interop.Hash160) []byte {
	return append(append([]byte{ballotKeyPrefix}, convert.ToBytes(id)...), voter...)
}
