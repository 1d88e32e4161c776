// Package credential contains RPC wrappers for the Credential NEP-11
// contract.
package credential

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep11"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// CredentialState mirrors the on-chain credential record.
type CredentialState struct {
	Owner     util.Uint160
	ListingID *big.Int
	Title     string
	Category  string
	IssuedAt  *big.Int
}

// Invoker is used by ContractReader to call safe methods.
type Invoker interface {
	nep11.Invoker
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	nep11.Actor

	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods. Transfer-related NEP-11
// methods are inherited for interface completeness, but every transfer
// attempt fails on-chain: credentials are soulbound.
type ContractReader struct {
	nep11.NonDivisibleReader
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
	return &ContractReader{*nep11.NewNonDivisibleReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the
// given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{*NewReader(actor, hash), actor}
}

// TokenOfListing invokes `tokenOfListing` method of the contract. It returns
// a nil token id if the listing has not been minted.
func (c *ContractReader) TokenOfListing(listingID *big.Int) ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "tokenOfListing", listingID))
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// MintFromListing creates a transaction invoking `mintFromListing` method of
// the contract, signs it and sends it to the network. The values returned are
// its hash, ValidUntilBlock value and error if any.
func (c *Contract) MintFromListing(listingID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "mintFromListing", listingID)
}

// FromStackItem retrieves fields of CredentialState from the given
// [stackitem.Item] or returns an error if it's not possible to do so.
func (res *CredentialState) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	b, err := arr[0].TryBytes()
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}
	if res.Owner, err = util.Uint160DecodeBytesBE(b); err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}
	if res.ListingID, err = arr[1].TryInteger(); err != nil {
		return fmt.Errorf("field ListingID: %w", err)
	}
	title, err := arr[2].TryBytes()
	if err != nil {
		return fmt.Errorf("field Title: %w", err)
	}
	res.Title = string(title)
	category, err := arr[3].TryBytes()
	if err != nil {
		return fmt.Errorf("field Category: %w", err)
	}
	res.Category = string(category)
	if res.IssuedAt, err = arr[4].TryInteger(); err != nil {
		return fmt.Errorf("field IssuedAt: %w", err)
	}
	return nil
}
