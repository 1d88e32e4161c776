package voting

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/eduproof/eduproof-contract/common"
	"github.com/eduproof/eduproof-contract/contracts/voting/votingconst"
)

type (
	// Vote is a single attestation or refutation of a listing. CommentID
	// references the vote-comment in the Comment contract carrying the
	// mandatory explanation. Upvotes and Downvotes count feedback other
	// accounts left on the vote and are independent of the attest/refute
	// value itself.
	Vote struct {
		ListingID int
		Voter     interop.Hash160
		IsAttest  bool
		CommentID int
		Timestamp int
		Upvotes   int
		Downvotes int
	}
)

const (
	voteKeyPrefix   = 'v'
	votersKeyPrefix = 'p'

	listingContractKey    = 'a'
	reputationContractKey = 'b'
	commentContractKey    = 'c'

	reasonAttest        = "attestation received"
	reasonRefute        = "refutation received"
	reasonAttestRevoked = "attestation revoked"
	reasonRefuteRevoked = "refutation revoked"
	reasonFeedback      = "vote feedback"
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
	addrComment := args[2].(interop.Hash160)
	if len(addrListing) != interop.Hash160Len ||
		len(addrReputation) != interop.Hash160Len ||
		len(addrComment) != interop.Hash160Len {
		panic("incorrect contract script hash")
	}

	storage.Put(ctx, listingContractKey, addrListing)
	storage.Put(ctx, reputationContractKey, addrReputation)
	storage.Put(ctx, commentContractKey, addrComment)

	runtime.Log("voting contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("voting contract updated")
}

// Cast method records an attestation (isAttest) or refutation vote of the
// given account on an active listing. The explanation comment is mandatory
// and is stored as a vote-comment in the Comment contract. An account may
// hold at most one vote per listing, may not vote on its own listing and is
// only eligible while its reputation exceeds votingconst.MinReputationToVote.
// A successful vote moves the listing counters and applies a reputation
// delta to the listing creator.
func Cast(listingID int, voter interop.Hash160, isAttest bool, comment string) {
	ctx := storage.GetContext()

	if len(voter) != interop.Hash160Len {
		panic("incorrect voter account")
	}
	common.CheckOwnerWitness(voter)

	if len(comment) == 0 {
		panic(votingconst.ErrEmptyComment)
	}

	listingContractAddr := storage.Get(ctx, listingContractKey).(interop.Hash160)
	if !contract.Call(listingContractAddr, "isActive", contract.ReadOnly, listingID).(bool) {
		panic(votingconst.ErrNotActive)
	}

	reputationContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	score := contract.Call(reputationContractAddr, "reputationOf", contract.ReadOnly, voter).(int)
	if score <= votingconst.MinReputationToVote {
		panic(votingconst.ErrInsufficientReputation)
	}

	creator := contract.Call(listingContractAddr, "creatorOf", contract.ReadOnly, listingID).(interop.Hash160)
	if common.BytesEqual(creator, voter) {
		panic(votingconst.ErrOwnListing)
	}

	key := voteKey(listingID, voter)
	if storage.Get(ctx, key) != nil {
		panic(votingconst.ErrAlreadyVoted)
	}

	commentContractAddr := storage.Get(ctx, commentContractKey).(interop.Hash160)
	commentID := contract.Call(commentContractAddr, "addVoteComment", contract.All,
		listingID, voter, comment).(int)

	v := Vote{
		ListingID: listingID,
		Voter:     voter,
		IsAttest:  isAttest,
		CommentID: commentID,
		Timestamp: runtime.GetTime(),
	}
	common.SetSerialized(ctx, key, v)

	voters := common.GetList(ctx, votersKey(listingID))
	voters = append(voters, voter)
	common.SetSerialized(ctx, votersKey(listingID), voters)

	contract.Call(listingContractAddr, "addVote", contract.All, listingID, isAttest)

	if isAttest {
		updateCreatorReputation(ctx, creator, votingconst.CreatorPoints, reasonAttest)
	} else {
		updateCreatorReputation(ctx, creator, -votingconst.CreatorPoints, reasonRefute)
	}

	runtime.Notify("VoteCast", listingID, voter, isAttest)
}

// GiveFeedback method leaves an up or down mark on an existing vote and
// applies the matching reputation delta to the voter. Feedback on one's own
// vote is rejected; everything else is plain counting, a giver is not
// limited to a single mark.
func GiveFeedback(listingID int, voter interop.Hash160, giver interop.Hash160, isUpvote bool) {
	ctx := storage.GetContext()

	if len(giver) != interop.Hash160Len {
		panic("incorrect giver account")
	}
	common.CheckOwnerWitness(giver)

	if common.BytesEqual(giver, voter) {
		panic(votingconst.ErrSelfFeedback)
	}

	v := getVote(ctx, listingID, voter)

	points := votingconst.FeedbackPoints
	if isUpvote {
		v.Upvotes = v.Upvotes + 1
	} else {
		v.Downvotes = v.Downvotes + 1
		points = -points
	}
	common.SetSerialized(ctx, voteKey(listingID, voter), v)

	reputationContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	contract.Call(reputationContractAddr, "updateReputation", contract.All,
		voter, points, reasonFeedback)

	runtime.Notify("VoteFeedback", listingID, voter, giver, isUpvote)
}

// Unvote method revokes the vote of the given account on a listing while
// the listing is still active: the listing counter is decremented, the
// creator's reputation delta is reversed and the vote-comment is
// soft-deleted. Feedback reputation earned by the voter is kept, only the
// creator-side effect of the vote is undone.
func Unvote(listingID int, voter interop.Hash160) {
	ctx := storage.GetContext()

	if len(voter) != interop.Hash160Len {
		panic("incorrect voter account")
	}
	common.CheckOwnerWitness(voter)

	v := getVote(ctx, listingID, voter)

	listingContractAddr := storage.Get(ctx, listingContractKey).(interop.Hash160)
	if !contract.Call(listingContractAddr, "isActive", contract.ReadOnly, listingID).(bool) {
		panic(votingconst.ErrNotActive)
	}

	storage.Delete(ctx, voteKey(listingID, voter))

	// order of the voter list is not part of the contract
	voters := common.GetList(ctx, votersKey(listingID))
	remaining := [][]byte{}
	for i := range voters {
		if !common.BytesEqual(voters[i], voter) {
			remaining = append(remaining, voters[i])
		}
	}
	common.SetSerialized(ctx, votersKey(listingID), remaining)

	contract.Call(listingContractAddr, "removeVote", contract.All, listingID, v.IsAttest)

	creator := contract.Call(listingContractAddr, "creatorOf", contract.ReadOnly, listingID).(interop.Hash160)
	if v.IsAttest {
		updateCreatorReputation(ctx, creator, -votingconst.CreatorPoints, reasonAttestRevoked)
	} else {
		updateCreatorReputation(ctx, creator, votingconst.CreatorPoints, reasonRefuteRevoked)
	}

	commentContractAddr := storage.Get(ctx, commentContractKey).(interop.Hash160)
	contract.Call(commentContractAddr, "removeVoteComment", contract.All, listingID, voter)

	runtime.Notify("VoteRevoked", listingID, voter)
}

// Get method returns the vote of the given account on the given listing.
func Get(listingID int, voter interop.Hash160) Vote {
	ctx := storage.GetReadOnlyContext()
	return getVote(ctx, listingID, voter)
}

// HasVoted method returns true if the account currently holds a vote on the
// listing.
func HasVoted(listingID int, voter interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, voteKey(listingID, voter)) != nil
}

// VotersOf method returns accounts currently holding a vote on the listing.
// The order is not significant: revocations move the last voter into the
// freed slot.
func VotersOf(listingID int) [][]byte {
	ctx := storage.GetReadOnlyContext()
	return common.GetList(ctx, votersKey(listingID))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func updateCreatorReputation(ctx storage.Context, creator interop.Hash160, points int, reason string) {
	reputationContractAddr := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	contract.Call(reputationContractAddr, "updateReputation", contract.All,
		creator, points, reason)
}

func getVote(ctx storage.Context, listingID int, voter interop.Hash160) Vote {
	data := storage.Get(ctx, voteKey(listingID, voter))
	if data == nil {
		panic(votingconst.ErrNotFound)
	}
	return std.Deserialize(data.([]byte)).(Vote)
}

func voteKey(listingID int, voter interop.Hash160) []byte {
	return append(append([]byte{voteKeyPrefix}, convert.ToBytes(listingID)...), voter...)
}

func votersKey(listingID int) []byte {
	return append([]byte{votersKeyPrefix}, convert.ToBytes(listingID)...)
}
