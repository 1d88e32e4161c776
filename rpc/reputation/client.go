// Package reputation contains RPC wrappers for the Reputation contract.
package reputation

import (
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Invoker is used by ContractReader to call safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
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

// ReputationOf invokes `reputationOf` method of the contract.
func (c *ContractReader) ReputationOf(user util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "reputationOf", user))
}

// MeetsThreshold invokes `meetsThreshold` method of the contract.
func (c *ContractReader) MeetsThreshold(user util.Uint160, threshold *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "meetsThreshold", user, threshold))
}

// IsAuthorizedUpdater invokes `isAuthorizedUpdater` method of the contract.
func (c *ContractReader) IsAuthorizedUpdater(updater util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isAuthorizedUpdater", updater))
}

// Version invokes `version` method of the contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// SetInitialReputation creates a transaction invoking `setInitialReputation`
// method of the contract, signs it and sends it to the network. The values
// returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetInitialReputation(user util.Uint160, value *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setInitialReputation", user, value)
}

// AddAuthorizedUpdater creates a transaction invoking `addAuthorizedUpdater`
// method of the contract, signs it and sends it to the network.
func (c *Contract) AddAuthorizedUpdater(updater util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addAuthorizedUpdater", updater)
}

// RemoveAuthorizedUpdater creates a transaction invoking
// `removeAuthorizedUpdater` method of the contract, signs it and sends it to
// the network.
func (c *Contract) RemoveAuthorizedUpdater(updater util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeAuthorizedUpdater", updater)
}
