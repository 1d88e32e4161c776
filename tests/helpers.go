package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	reputationPath = "../contracts/reputation"
	listingPath    = "../contracts/listing"
	votingPath     = "../contracts/voting"
	commentPath    = "../contracts/comment"
	credentialPath = "../contracts/credential"
)

// Indexes of Listing struct fields in its stack item representation.
const (
	listingFieldTitle       = 2
	listingFieldDetails     = 3
	listingFieldProofs      = 4
	listingFieldState       = 8
	listingFieldLinkedTo    = 9
	listingFieldArchiveNote = 10
	listingFieldAttestCount = 11
	listingFieldRefuteCount = 12
)

// Indexes of Comment struct fields in its stack item representation.
const (
	commentFieldContent       = 3
	commentFieldParentID      = 5
	commentFieldUpvotes       = 6
	commentFieldDownvotes     = 7
	commentFieldIsVoteComment = 8
	commentFieldDeleted       = 9
	commentFieldReplies       = 11
)

// Indexes of Vote struct fields in its stack item representation.
const (
	voteFieldIsAttest  = 2
	voteFieldCommentID = 3
	voteFieldUpvotes   = 5
	voteFieldDownvotes = 6
)

// protocolInvokers bundles committee invokers of the deployed contract
// suite sharing a single test chain.
type protocolInvokers struct {
	executor   *neotest.Executor
	reputation *neotest.ContractInvoker
	listing    *neotest.ContractInvoker
	voting     *neotest.ContractInvoker
	comment    *neotest.ContractInvoker
	credential *neotest.ContractInvoker
}

func compileSuiteContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

// newProtocolInvokers deploys the whole contract suite on a fresh single
// node chain. Contract hashes are known before deployment, so mutually
// referencing contracts are wired through deployment arguments, and the
// Voting and Comment contracts are registered as reputation updaters.
func newProtocolInvokers(t *testing.T) *protocolInvokers {
	bc, acc := chain.NewSingle(t)
	e := neotest.NewExecutor(t, bc, acc, acc)

	ctrReputation := compileSuiteContract(t, e, reputationPath)
	ctrListing := compileSuiteContract(t, e, listingPath)
	ctrVoting := compileSuiteContract(t, e, votingPath)
	ctrComment := compileSuiteContract(t, e, commentPath)
	ctrCredential := compileSuiteContract(t, e, credentialPath)

	e.DeployContract(t, ctrReputation, nil)
	e.DeployContract(t, ctrListing, []any{ctrVoting.Hash, ctrCredential.Hash})
	e.DeployContract(t, ctrComment, []any{ctrListing.Hash, ctrReputation.Hash, ctrVoting.Hash})
	e.DeployContract(t, ctrVoting, []any{ctrListing.Hash, ctrReputation.Hash, ctrComment.Hash})
	e.DeployContract(t, ctrCredential, []any{ctrListing.Hash})

	reputationInv := e.CommitteeInvoker(ctrReputation.Hash)
	reputationInv.Invoke(t, stackitem.Null{}, "addAuthorizedUpdater", ctrVoting.Hash)
	reputationInv.Invoke(t, stackitem.Null{}, "addAuthorizedUpdater", ctrComment.Hash)

	return &protocolInvokers{
		executor:   e,
		reputation: reputationInv,
		listing:    e.CommitteeInvoker(ctrListing.Hash),
		voting:     e.CommitteeInvoker(ctrVoting.Hash),
		comment:    e.CommitteeInvoker(ctrComment.Hash),
		credential: e.CommitteeInvoker(ctrCredential.Hash),
	}
}

// createListing submits a listing signed by the given account and returns
// the assigned id.
func createListing(t *testing.T, inv *protocolInvokers, creator neotest.Signer, title, details, category string) int64 {
	stack, err := inv.listing.TestInvoke(t, "count")
	require.NoError(t, err)
	id := stack.Pop().BigInt().Int64() + 1

	inv.listing.WithSigners(creator).Invoke(t, id, "create", creator.ScriptHash(),
		title, details, []any{"https://proof.example/1"}, category)
	return id
}

// castVote votes on a listing with a canned explanation comment.
func castVote(t *testing.T, inv *protocolInvokers, voter neotest.Signer, listingID int64, isAttest bool) {
	inv.voting.WithSigners(voter).Invoke(t, stackitem.Null{}, "cast",
		listingID, voter.ScriptHash(), isAttest, "checked the proofs")
}

// structField fetches a struct-returning method result and picks one field.
func structField(t *testing.T, c *neotest.ContractInvoker, method string, idx int, args ...any) stackitem.Item {
	stack, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)

	arr, ok := stack.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.True(t, idx < len(arr))

	return arr[idx]
}

func requireIntField(t *testing.T, c *neotest.ContractInvoker, method string, idx int, expected int64, args ...any) {
	v, err := structField(t, c, method, idx, args...).TryInteger()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(expected), v)
}

func requireReputation(t *testing.T, inv *protocolInvokers, acc neotest.Signer, expected int64) {
	inv.reputation.Invoke(t, expected, "reputationOf", acc.ScriptHash())
}
