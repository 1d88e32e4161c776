package tests

import (
	"strconv"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/eduproof/eduproof-contract/common"
	"github.com/eduproof/eduproof-contract/contracts/comment/commentconst"
	"github.com/eduproof/eduproof-contract/contracts/listing/listingconst"
	"github.com/stretchr/testify/require"
)

func TestCommentAdd(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	author := inv.comment.NewAccount(t)
	c := inv.comment.WithSigners(author)

	t.Run("missing listing", func(t *testing.T) {
		c.InvokeFail(t, listingconst.ErrNotFound, "add", 42, author.ScriptHash(), "first", 0)
	})

	t.Run("empty content", func(t *testing.T) {
		c.InvokeFail(t, commentconst.ErrEmpty, "add", id, author.ScriptHash(), "", 0)
	})

	t.Run("missing parent", func(t *testing.T) {
		c.InvokeFail(t, commentconst.ErrInvalidParent, "add", id, author.ScriptHash(), "reply", 7)
	})

	// ids start from 1, 0 is reserved for "no parent"
	c.Invoke(t, 1, "add", id, author.ScriptHash(), "looks legit", 0)
	inv.comment.Invoke(t, 1, "count")

	t.Run("reply threading", func(t *testing.T) {
		replier := inv.comment.NewAccount(t)
		inv.comment.WithSigners(replier).Invoke(t, 2, "add",
			id, replier.ScriptHash(), "did you check the date?", 1)

		inv.comment.Invoke(t, stackitem.NewArray([]stackitem.Item{stackitem.Make(2)}),
			"repliesOf", 1)
		requireIntField(t, inv.comment, "get", commentFieldParentID, 1, 2)
	})

	t.Run("parent from another listing", func(t *testing.T) {
		second := createListing(t, inv, creator, "Other", "Details", "C")
		c.InvokeFail(t, commentconst.ErrInvalidParent, "add", second, author.ScriptHash(), "reply", 1)
	})
}

func TestCommentThreadIsolation(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	author := inv.comment.NewAccount(t)

	// listing 257 starts with the same byte as listing 1 in a minimal
	// integer encoding, thread keys must not mix the two up
	var last int64
	for i := 0; i < 257; i++ {
		last = createListing(t, inv, creator, "Listing "+strconv.Itoa(i), "Details", "C")
	}
	require.EqualValues(t, 257, last)

	inv.comment.WithSigners(author).Invoke(t, 1, "add",
		last, author.ScriptHash(), "late to the party", 0)

	s, err := inv.comment.TestInvoke(t, "listingComments", 1)
	require.NoError(t, err)
	require.False(t, s.Pop().Value().(*storage.Iterator).Next())

	s, err = inv.comment.TestInvoke(t, "listingComments", last)
	require.NoError(t, err)
	iter := s.Pop().Value().(*storage.Iterator)
	require.True(t, iter.Next())
	require.Equal(t, stackitem.Make(1), iter.Value())
	require.False(t, iter.Next())
}

func TestCommentLifecycle(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	author := inv.comment.NewAccount(t)
	c := inv.comment.WithSigners(author)
	c.Invoke(t, 1, "add", id, author.ScriptHash(), "original", 0)

	t.Run("author only", func(t *testing.T) {
		stranger := inv.comment.NewAccount(t)
		cStranger := inv.comment.WithSigners(stranger)
		cStranger.InvokeFail(t, common.ErrOwnerWitnessFailed, "edit", 1, "hijacked")
		cStranger.InvokeFail(t, common.ErrOwnerWitnessFailed, "remove", 1)
	})

	c.Invoke(t, stackitem.Null{}, "edit", 1, "clarified")
	requireCommentContent(t, inv.comment, 1, "clarified")

	t.Run("soft delete keeps the record", func(t *testing.T) {
		replier := inv.comment.NewAccount(t)
		inv.comment.WithSigners(replier).Invoke(t, 2, "add",
			id, replier.ScriptHash(), "reply before deletion", 1)

		c.Invoke(t, stackitem.Null{}, "remove", 1)

		requireCommentContent(t, inv.comment, 1, "")
		deleted, err := structField(t, inv.comment, "get", commentFieldDeleted, 1).TryBool()
		require.NoError(t, err)
		require.True(t, deleted)

		// the reply chain survives and even grows
		inv.comment.Invoke(t, stackitem.NewArray([]stackitem.Item{stackitem.Make(2)}),
			"repliesOf", 1)
		inv.comment.WithSigners(replier).Invoke(t, 3, "add",
			id, replier.ScriptHash(), "reply after deletion", 1)

		c.InvokeFail(t, commentconst.ErrDeleted, "edit", 1, "too late")
		c.InvokeFail(t, commentconst.ErrDeleted, "remove", 1)
	})
}

func TestCommentVotes(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	author := inv.comment.NewAccount(t)
	inv.comment.WithSigners(author).Invoke(t, 1, "add", id, author.ScriptHash(), "hot take", 0)

	voter := inv.comment.NewAccount(t)
	c := inv.comment.WithSigners(voter)

	c.Invoke(t, stackitem.Null{}, "upvote", 1, voter.ScriptHash())
	requireIntField(t, inv.comment, "get", commentFieldUpvotes, 1, 1)
	requireReputation(t, inv, author, 1)

	t.Run("same direction again", func(t *testing.T) {
		c.InvokeFail(t, commentconst.ErrAlreadyVoted, "upvote", 1, voter.ScriptHash())
	})

	t.Run("switch reverses before applying", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "downvote", 1, voter.ScriptHash())

		requireIntField(t, inv.comment, "get", commentFieldUpvotes, 0, 1)
		requireIntField(t, inv.comment, "get", commentFieldDownvotes, 1, 1)
		// the full swing is two points, not one
		requireReputation(t, inv, author, -1)
	})

	t.Run("unvote", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "unvote", 1, voter.ScriptHash())
		requireIntField(t, inv.comment, "get", commentFieldDownvotes, 0, 1)
		requireReputation(t, inv, author, 0)

		c.InvokeFail(t, commentconst.ErrNotVoted, "unvote", 1, voter.ScriptHash())
	})

	t.Run("own comment", func(t *testing.T) {
		// rating one's own comment is not restricted
		inv.comment.WithSigners(author).Invoke(t, stackitem.Null{}, "upvote", 1, author.ScriptHash())
		requireReputation(t, inv, author, 1)
	})

	t.Run("missing comment", func(t *testing.T) {
		c.InvokeFail(t, commentconst.ErrNotFound, "upvote", 42, voter.ScriptHash())
	})
}

func TestVoteCommentRestrictions(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	voter := inv.voting.NewAccount(t)
	castVote(t, inv, voter, id, true)

	// the vote explanation lands as comment 1
	inv.comment.Invoke(t, 1, "voteCommentID", id, voter.ScriptHash())

	cVoter := inv.comment.WithSigners(voter)
	cVoter.InvokeFail(t, commentconst.ErrVoteComment, "edit", 1, "reworded")
	cVoter.InvokeFail(t, commentconst.ErrVoteComment, "remove", 1)
	cVoter.InvokeFail(t, commentconst.ErrInvalidParent, "add", id, voter.ScriptHash(), "reply to vote", 1)

	other := inv.comment.NewAccount(t)
	inv.comment.WithSigners(other).InvokeFail(t, commentconst.ErrVoteComment,
		"upvote", 1, other.ScriptHash())

	t.Run("only voting contract creates them", func(t *testing.T) {
		inv.comment.WithSigners(other).InvokeFail(t, "vote comment access denied",
			"addVoteComment", id, other.ScriptHash(), "forged")
	})
}

func requireCommentContent(t *testing.T, c *neotest.ContractInvoker, id int64, expected string) {
	content, err := structField(t, c, "get", commentFieldContent, id).TryBytes()
	require.NoError(t, err)
	require.Equal(t, expected, string(content))
}
