package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/eduproof/eduproof-contract/contracts/voting/votingconst"
	"github.com/stretchr/testify/require"
)

func TestVoteCast(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	voter := inv.voting.NewAccount(t)
	c := inv.voting.WithSigners(voter)

	t.Run("empty comment", func(t *testing.T) {
		c.InvokeFail(t, votingconst.ErrEmptyComment, "cast", id, voter.ScriptHash(), true, "")
		inv.voting.Invoke(t, false, "hasVoted", id, voter.ScriptHash())
		requireIntField(t, inv.listing, "get", listingFieldAttestCount, 0, id)
		requireReputation(t, inv, creator, 0)
	})

	t.Run("own listing", func(t *testing.T) {
		inv.voting.WithSigners(creator).InvokeFail(t, votingconst.ErrOwnListing,
			"cast", id, creator.ScriptHash(), true, "sure it is fine")
	})

	c.Invoke(t, stackitem.Null{}, "cast", id, voter.ScriptHash(), true, "checked the proofs")

	inv.voting.Invoke(t, true, "hasVoted", id, voter.ScriptHash())
	requireIntField(t, inv.listing, "get", listingFieldAttestCount, 1, id)
	requireReputation(t, inv, creator, 1)

	t.Run("vote comment is attached", func(t *testing.T) {
		commentID, err := structField(t, inv.voting, "get", voteFieldCommentID,
			id, voter.ScriptHash()).TryInteger()
		require.NoError(t, err)
		require.Positive(t, commentID.Int64())

		inv.comment.Invoke(t, commentID.Int64(), "voteCommentID", id, voter.ScriptHash())
		flag, err := structField(t, inv.comment, "get", commentFieldIsVoteComment,
			commentID.Int64()).TryBool()
		require.NoError(t, err)
		require.True(t, flag)
	})

	t.Run("double vote", func(t *testing.T) {
		c.InvokeFail(t, votingconst.ErrAlreadyVoted, "cast", id, voter.ScriptHash(), false, "changed my mind")
	})

	t.Run("refutation balances attestation", func(t *testing.T) {
		refuter := inv.voting.NewAccount(t)
		inv.voting.WithSigners(refuter).Invoke(t, stackitem.Null{}, "cast",
			id, refuter.ScriptHash(), false, "the proof link is dead")

		requireIntField(t, inv.listing, "get", listingFieldRefuteCount, 1, id)
		requireReputation(t, inv, creator, 0)
	})

	t.Run("inactive listing", func(t *testing.T) {
		archived := createListing(t, inv, creator, "Old", "Old", "C")
		inv.listing.WithSigners(creator).Invoke(t, stackitem.Null{}, "archive", archived, 0, "stale")

		c.InvokeFail(t, votingconst.ErrNotActive, "cast", archived, voter.ScriptHash(), true, "late")
	})
}

func TestVoteEligibility(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	outcast := inv.voting.NewAccount(t)
	inv.reputation.Invoke(t, stackitem.Null{}, "setInitialReputation",
		outcast.ScriptHash(), votingconst.MinReputationToVote)

	inv.voting.WithSigners(outcast).InvokeFail(t, votingconst.ErrInsufficientReputation,
		"cast", id, outcast.ScriptHash(), true, "trust me")

	t.Run("threshold is strict", func(t *testing.T) {
		barely := inv.voting.NewAccount(t)
		inv.reputation.Invoke(t, stackitem.Null{}, "setInitialReputation",
			barely.ScriptHash(), votingconst.MinReputationToVote+1)

		inv.voting.WithSigners(barely).Invoke(t, stackitem.Null{}, "cast",
			id, barely.ScriptHash(), true, "verified it myself")
	})
}

func TestVoteFeedback(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	voter := inv.voting.NewAccount(t)
	castVote(t, inv, voter, id, true)

	t.Run("missing vote", func(t *testing.T) {
		giver := inv.voting.NewAccount(t)
		inv.voting.WithSigners(giver).InvokeFail(t, votingconst.ErrNotFound,
			"giveFeedback", id, creator.ScriptHash(), giver.ScriptHash(), true)
	})

	t.Run("self feedback", func(t *testing.T) {
		inv.voting.WithSigners(voter).InvokeFail(t, votingconst.ErrSelfFeedback,
			"giveFeedback", id, voter.ScriptHash(), voter.ScriptHash(), true)
	})

	giver := inv.voting.NewAccount(t)
	inv.voting.WithSigners(giver).Invoke(t, stackitem.Null{}, "giveFeedback",
		id, voter.ScriptHash(), giver.ScriptHash(), true)

	requireIntField(t, inv.voting, "get", voteFieldUpvotes, 1, id, voter.ScriptHash())
	requireReputation(t, inv, voter, 1)

	inv.voting.WithSigners(giver).Invoke(t, stackitem.Null{}, "giveFeedback",
		id, voter.ScriptHash(), giver.ScriptHash(), false)

	requireIntField(t, inv.voting, "get", voteFieldDownvotes, 1, id, voter.ScriptHash())
	requireReputation(t, inv, voter, 0)
}

func TestVoteRevocation(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	voter := inv.voting.NewAccount(t)
	c := inv.voting.WithSigners(voter)

	t.Run("nothing to revoke", func(t *testing.T) {
		c.InvokeFail(t, votingconst.ErrNotFound, "unvote", id, voter.ScriptHash())
	})

	castVote(t, inv, voter, id, true)
	requireReputation(t, inv, creator, 1)

	c.Invoke(t, stackitem.Null{}, "unvote", id, voter.ScriptHash())

	inv.voting.Invoke(t, false, "hasVoted", id, voter.ScriptHash())
	inv.voting.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "votersOf", id)
	requireIntField(t, inv.listing, "get", listingFieldAttestCount, 0, id)
	requireReputation(t, inv, creator, 0)

	t.Run("vote comment is soft-deleted", func(t *testing.T) {
		inv.comment.Invoke(t, 0, "voteCommentID", id, voter.ScriptHash())

		deleted, err := structField(t, inv.comment, "get", commentFieldDeleted, 1).TryBool()
		require.NoError(t, err)
		require.True(t, deleted)
	})

	t.Run("slot is free again", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "cast", id, voter.ScriptHash(), false, "on second thought")
		requireIntField(t, inv.listing, "get", listingFieldRefuteCount, 1, id)
		requireReputation(t, inv, creator, -1)
	})
}

func TestVoteRevocationKeepsOtherVoters(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")

	first := inv.voting.NewAccount(t)
	second := inv.voting.NewAccount(t)
	third := inv.voting.NewAccount(t)
	for _, v := range []neotest.Signer{first, second, third} {
		castVote(t, inv, v, id, true)
	}

	inv.voting.WithSigners(second).Invoke(t, stackitem.Null{}, "unvote", id, second.ScriptHash())

	inv.voting.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(first.ScriptHash().BytesBE()),
		stackitem.Make(third.ScriptHash().BytesBE()),
	}), "votersOf", id)
	inv.voting.Invoke(t, true, "hasVoted", id, first.ScriptHash())
	inv.voting.Invoke(t, false, "hasVoted", id, second.ScriptHash())
	requireIntField(t, inv.listing, "get", listingFieldAttestCount, 2, id)
}
