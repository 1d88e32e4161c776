// Package comment contains RPC wrappers for the Comment contract.
package comment

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

// Comment mirrors the on-chain comment record.
type Comment struct {
	ID            *big.Int
	ListingID     *big.Int
	Author        util.Uint160
	Content       string
	Timestamp     *big.Int
	ParentID      *big.Int
	Upvotes       *big.Int
	Downvotes     *big.Int
	IsVoteComment bool
	Deleted       bool
	DeletedAt     *big.Int
	Replies       []*big.Int
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
func (c *ContractReader) Get(id *big.Int) (*Comment, error) {
	return itemToComment(unwrap.Item(c.invoker.Call(c.hash, "get", id)))
}

// RepliesOf invokes `repliesOf` method of the contract.
func (c *ContractReader) RepliesOf(id *big.Int) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "repliesOf", id))
}

// VoteCommentID invokes `voteCommentID` method of the contract.
func (c *ContractReader) VoteCommentID(listingID *big.Int, voter util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "voteCommentID", listingID, voter))
}

// Count invokes `count` method of the contract.
func (c *ContractReader) Count() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "count"))
}

// ListingComments invokes `listingComments` method of the contract, returning
// an iterator session.
func (c *ContractReader) ListingComments(listingID *big.Int) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listingComments", listingID))
}

// ListingCommentsExpanded is similar to ListingComments, but expands the
// iterator inside the invocation script limiting the result to the given
// number of items. It's limited, but works with servers where sessions are
// disabled.
func (c *ContractReader) ListingCommentsExpanded(listingID *big.Int, maxItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listingComments", maxItems, listingID))
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Add creates a transaction invoking `add` method of the contract, signs it
// and sends it to the network. The values returned are its hash,
// ValidUntilBlock value and error if any.
func (c *Contract) Add(listingID *big.Int, author util.Uint160, content string, parentID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "add", listingID, author, content, parentID)
}

// Edit creates a transaction invoking `edit` method of the contract, signs it
// and sends it to the network.
func (c *Contract) Edit(id *big.Int, content string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "edit", id, content)
}

// Remove creates a transaction invoking `remove` method of the contract,
// signs it and sends it to the network.
func (c *Contract) Remove(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "remove", id)
}

// Upvote creates a transaction invoking `upvote` method of the contract,
// signs it and sends it to the network.
func (c *Contract) Upvote(id *big.Int, voter util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "upvote", id, voter)
}

// Downvote creates a transaction invoking `downvote` method of the contract,
// signs it and sends it to the network.
func (c *Contract) Downvote(id *big.Int, voter util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "downvote", id, voter)
}

// Unvote creates a transaction invoking `unvote` method of the contract,
// signs it and sends it to the network.
func (c *Contract) Unvote(id *big.Int, voter util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unvote", id, voter)
}

func itemToComment(item stackitem.Item, err error) (*Comment, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Comment)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Comment from the given [stackitem.Item]
// or returns an error if it's not possible to do so.
func (res *Comment) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 12 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	if res.ID, err = arr[0].TryInteger(); err != nil {
		return fmt.Errorf("field ID: %w", err)
	}
	if res.ListingID, err = arr[1].TryInteger(); err != nil {
		return fmt.Errorf("field ListingID: %w", err)
	}
	b, err := arr[2].TryBytes()
	if err != nil {
		return fmt.Errorf("field Author: %w", err)
	}
	if res.Author, err = util.Uint160DecodeBytesBE(b); err != nil {
		return fmt.Errorf("field Author: %w", err)
	}
	content, err := arr[3].TryBytes()
	if err != nil {
		return fmt.Errorf("field Content: %w", err)
	}
	res.Content = string(content)
	if res.Timestamp, err = arr[4].TryInteger(); err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}
	if res.ParentID, err = arr[5].TryInteger(); err != nil {
		return fmt.Errorf("field ParentID: %w", err)
	}
	if res.Upvotes, err = arr[6].TryInteger(); err != nil {
		return fmt.Errorf("field Upvotes: %w", err)
	}
	if res.Downvotes, err = arr[7].TryInteger(); err != nil {
		return fmt.Errorf("field Downvotes: %w", err)
	}
	if res.IsVoteComment, err = arr[8].TryBool(); err != nil {
		return fmt.Errorf("field IsVoteComment: %w", err)
	}
	if res.Deleted, err = arr[9].TryBool(); err != nil {
		return fmt.Errorf("field Deleted: %w", err)
	}
	if res.DeletedAt, err = arr[10].TryInteger(); err != nil {
		return fmt.Errorf("field DeletedAt: %w", err)
	}
	replies, ok := arr[11].Value().([]stackitem.Item)
	if !ok {
		return errors.New("field Replies: not an array")
	}
	res.Replies = make([]*big.Int, 0, len(replies))
	for i := range replies {
		id, err := replies[i].TryInteger()
		if err != nil {
			return fmt.Errorf("field Replies, element %d: %w", i, err)
		}
		res.Replies = append(res.Replies, id)
	}
	return nil
}
