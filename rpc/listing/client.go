// Package listing contains RPC wrappers for the Listing contract.
package listing

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

// State of a listing, see the Listing contract for transitions.
const (
	StateActive   = 1
	StateArchived = 2
	StateMinted   = 3
)

// Listing mirrors the on-chain listing record.
type Listing struct {
	ID          *big.Int
	Creator     util.Uint160
	Title       string
	Details     string
	Proofs      []string
	Category    string
	CreatedAt   *big.Int
	EditedAt    *big.Int
	State       *big.Int
	LinkedTo    *big.Int
	ArchiveNote string
	AttestCount *big.Int
	RefuteCount *big.Int
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
func (c *ContractReader) Get(id *big.Int) (*Listing, error) {
	return itemToListing(unwrap.Item(c.invoker.Call(c.hash, "get", id)))
}

// CreatorOf invokes `creatorOf` method of the contract.
func (c *ContractReader) CreatorOf(id *big.Int) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "creatorOf", id))
}

// Exists invokes `exists` method of the contract.
func (c *ContractReader) Exists(id *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "exists", id))
}

// IsActive invokes `isActive` method of the contract.
func (c *ContractReader) IsActive(id *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isActive", id))
}

// CanEdit invokes `canEdit` method of the contract.
func (c *ContractReader) CanEdit(id *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "canEdit", id))
}

// CanMint invokes `canMint` method of the contract.
func (c *ContractReader) CanMint(id *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "canMint", id))
}

// Count invokes `count` method of the contract.
func (c *ContractReader) Count() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "count"))
}

// VersionChain invokes `versionChain` method of the contract.
func (c *ContractReader) VersionChain(id *big.Int) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "versionChain", id))
}

// ListByCreator invokes `listByCreator` method of the contract, returning an
// iterator session.
func (c *ContractReader) ListByCreator(creator util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listByCreator", creator))
}

// ListByCreatorExpanded is similar to ListByCreator, but expands the iterator
// inside the invocation script limiting the result to the given number of
// items. It's limited, but works with servers where sessions are disabled.
func (c *ContractReader) ListByCreatorExpanded(creator util.Uint160, maxItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listByCreator", maxItems, creator))
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Create creates a transaction invoking `create` method of the contract,
// signs it and sends it to the network. The values returned are its hash,
// ValidUntilBlock value and error if any.
func (c *Contract) Create(creator util.Uint160, title, details string, proofs []string, category string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "create", creator, title, details, proofs, category)
}

// Edit creates a transaction invoking `edit` method of the contract, signs it
// and sends it to the network.
func (c *Contract) Edit(id *big.Int, title, details string, proofs []string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "edit", id, title, details, proofs)
}

// Archive creates a transaction invoking `archive` method of the contract,
// signs it and sends it to the network.
func (c *Contract) Archive(id *big.Int, linkedTo *big.Int, note string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "archive", id, linkedTo, note)
}

func itemToListing(item stackitem.Item, err error) (*Listing, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Listing)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Listing from the given [stackitem.Item]
// or returns an error if it's not possible to do so.
func (res *Listing) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 13 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	if res.ID, err = arr[0].TryInteger(); err != nil {
		return fmt.Errorf("field ID: %w", err)
	}
	if res.Creator, err = uint160FromItem(arr[1]); err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}
	if res.Title, err = stringFromItem(arr[2]); err != nil {
		return fmt.Errorf("field Title: %w", err)
	}
	if res.Details, err = stringFromItem(arr[3]); err != nil {
		return fmt.Errorf("field Details: %w", err)
	}
	if res.Proofs, err = stringsFromItem(arr[4]); err != nil {
		return fmt.Errorf("field Proofs: %w", err)
	}
	if res.Category, err = stringFromItem(arr[5]); err != nil {
		return fmt.Errorf("field Category: %w", err)
	}
	if res.CreatedAt, err = arr[6].TryInteger(); err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}
	if res.EditedAt, err = arr[7].TryInteger(); err != nil {
		return fmt.Errorf("field EditedAt: %w", err)
	}
	if res.State, err = arr[8].TryInteger(); err != nil {
		return fmt.Errorf("field State: %w", err)
	}
	if res.LinkedTo, err = arr[9].TryInteger(); err != nil {
		return fmt.Errorf("field LinkedTo: %w", err)
	}
	if res.ArchiveNote, err = stringFromItem(arr[10]); err != nil {
		return fmt.Errorf("field ArchiveNote: %w", err)
	}
	if res.AttestCount, err = arr[11].TryInteger(); err != nil {
		return fmt.Errorf("field AttestCount: %w", err)
	}
	if res.RefuteCount, err = arr[12].TryInteger(); err != nil {
		return fmt.Errorf("field RefuteCount: %w", err)
	}
	return nil
}

func uint160FromItem(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

func stringFromItem(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func stringsFromItem(item stackitem.Item) ([]string, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	res := make([]string, 0, len(arr))
	for i := range arr {
		s, err := stringFromItem(arr[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		res = append(res, s)
	}
	return res, nil
}
