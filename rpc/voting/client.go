// Package voting contains RPC wrappers for the Voting contract.
package voting

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Vote mirrors the on-chain vote record.
type Vote struct {
	ListingID *big.Int
	Voter     util.Uint160
	IsAttest  bool
	CommentID *big.Int
	Timestamp *big.Int
	Upvotes   *big.Int
	Downvotes *big.Int
}

// Invoker is used by ContractReader to call safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
}

// NewReader creates an instance of ContractReader using provided contract hash
// and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the
// given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor}
}

// Get invokes `get` method of the contract.
func (c *ContractReader) Get(listingID *big.Int, voter util.Uint160) (*Vote, error) {
	return itemToVote(unwrap.Item(c.invoker.Call(c.hash, "get", listingID, voter)))
}

// HasVoted invokes `hasVoted` method of the contract.
func (c *ContractReader) HasVoted(listingID *big.Int, voter util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasVoted", listingID, voter))
}

// VotersOf invokes `votersOf` method of the contract.
func (c *ContractReader) VotersOf(listingID *big.Int) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "votersOf", listingID))
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Cast creates a transaction invoking `cast` method of the contract, signs it
// and sends it to the network. The values returned are its hash,
// ValidUntilBlock value and error if any.
func (c *Contract) Cast(listingID *big.Int, voter util.Uint160, isAttest bool, comment string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cast", listingID, voter, isAttest, comment)
}

// Unvote creates a transaction invoking `unvote` method of the contract,
// signs it and sends it to the network.
func (c *Contract) Unvote(listingID *big.Int, voter util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unvote", listingID, voter)
}

// GiveFeedback creates a transaction invoking `giveFeedback` method of the
// contract, signs it and sends it to the network.
func (c *Contract) GiveFeedback(listingID *big.Int, voter, giver util.Uint160, isUpvote bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "giveFeedback", listingID, voter, giver, isUpvote)
}

func itemToVote(item stackitem.Item, err error) (*Vote, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Vote)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Vote from the given [stackitem.Item] or
// returns an error if it's not possible to do so.
func (res *Vote) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	if res.ListingID, err = arr[0].TryInteger(); err != nil {
		return fmt.Errorf("field ListingID: %w", err)
	}
	b, err := arr[1].TryBytes()
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}
	if res.Voter, err = util.Uint160DecodeBytesBE(b); err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}
	if res.IsAttest, err = arr[2].TryBool(); err != nil {
		return fmt.Errorf("field IsAttest: %w", err)
	}
	if res.CommentID, err = arr[3].TryInteger(); err != nil {
		return fmt.Errorf("field CommentID: %w", err)
	}
	if res.Timestamp, err = arr[4].TryInteger(); err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}
	if res.Upvotes, err = arr[5].TryInteger(); err != nil {
		return fmt.Errorf("field Upvotes: %w", err)
	}
	if res.Downvotes, err = arr[6].TryInteger(); err != nil {
		return fmt.Errorf("field Downvotes: %w", err)
	}
	return nil
}
