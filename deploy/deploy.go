// Package deploy provides a procedure bootstrapping the whole contract suite
// on a Neo blockchain network.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services of a particular Neo blockchain network required
// for the deployment procedure.
type Blockchain interface {
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. It returns an error with 'Unknown contract' substring if
	// the requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of a smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the contract suite deployment procedure. The
// deploying account must be the committee account of the target network:
// contracts of the suite gate their administrative methods by committee
// witness.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local committee account used for transaction signing (must be unlocked).
	CommitteeAccount *wallet.Account

	ReputationContract CommonDeployPrm
	ListingContract    CommonDeployPrm
	VotingContract     CommonDeployPrm
	CommentContract    CommonDeployPrm
	CredentialContract CommonDeployPrm
}

// Deploy deploys the contract suite to the Neo network represented by
// prm.Blockchain and wires the contracts together. Contract hashes are
// deterministic functions of the deploying account and contract sources, so
// mutually referencing contracts receive each other's addresses through
// deployment arguments even before the referenced contract hits the chain.
//
// Deploy is idempotent: contracts already present on the chain are left
// untouched, including their wiring. It aborts on the first fatal error or by
// context.
func Deploy(ctx context.Context, prm Prm) error {
	localActor, err := actor.NewSimple(prm.Blockchain, prm.CommitteeAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from committee account: %w", err)
	}

	sender := prm.CommitteeAccount.ScriptHash()
	hashes := suiteHashes(sender, prm)

	deployOrder := []struct {
		name string
		prm  CommonDeployPrm
		args []any
	}{
		{nameReputation, prm.ReputationContract, nil},
		{nameListing, prm.ListingContract, []any{hashes.voting, hashes.credential}},
		{nameComment, prm.CommentContract, []any{hashes.listing, hashes.reputation, hashes.voting}},
		{nameVoting, prm.VotingContract, []any{hashes.listing, hashes.reputation, hashes.comment}},
		{nameCredential, prm.CredentialContract, []any{hashes.listing}},
	}

	mgmt := management.New(localActor)

	for _, c := range deployOrder {
		if err := ctx.Err(); err != nil {
			return err
		}

		l := prm.Logger.With(zap.String("contract", c.name))

		deployed, err := isDeployed(prm.Blockchain, contractHash(sender, c.prm))
		if err != nil {
			return fmt.Errorf("check %s contract state: %w", c.name, err)
		}
		if deployed {
			l.Info("contract is already deployed, skip")
			continue
		}

		l.Info("deploying contract...")

		localNEF := c.prm.NEF
		localManifest := c.prm.Manifest
		txHash, vub, err := mgmt.Deploy(&localNEF, &localManifest, c.args)
		if err != nil {
			return fmt.Errorf("deploy %s contract: %w", c.name, err)
		}

		if _, err := localActor.Wait(txHash, vub, nil); err != nil {
			return fmt.Errorf("wait for %s contract deployment: %w", c.name, err)
		}

		l.Info("contract deployed successfully", zap.Stringer("address", contractHash(sender, c.prm)))
	}

	return registerReputationUpdaters(ctx, prm.Logger, localActor, hashes)
}

// registerReputationUpdaters allowlists the Voting and Comment contracts in
// the Reputation contract. Both apply score deltas on user actions and are
// rejected until registered.
func registerReputationUpdaters(ctx context.Context, l *zap.Logger, a *actor.Actor, hashes contractHashes) error {
	for _, updater := range []struct {
		name string
		hash util.Uint160
	}{
		{nameVoting, hashes.voting},
		{nameComment, hashes.comment},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}

		registered, err := unwrap.Bool(a.Call(hashes.reputation, "isAuthorizedUpdater", updater.hash))
		if err != nil {
			return fmt.Errorf("check %s updater registration: %w", updater.name, err)
		}
		if registered {
			continue
		}

		l.Info("registering reputation updater...", zap.String("contract", updater.name))

		txHash, vub, err := a.SendCall(hashes.reputation, "addAuthorizedUpdater", updater.hash)
		if err != nil {
			return fmt.Errorf("register %s as reputation updater: %w", updater.name, err)
		}

		if _, err := a.Wait(txHash, vub, nil); err != nil {
			return fmt.Errorf("wait for %s updater registration: %w", updater.name, err)
		}
	}

	return nil
}

type contractHashes struct {
	reputation util.Uint160
	listing    util.Uint160
	voting     util.Uint160
	comment    util.Uint160
	credential util.Uint160
}

func suiteHashes(sender util.Uint160, prm Prm) contractHashes {
	return contractHashes{
		reputation: contractHash(sender, prm.ReputationContract),
		listing:    contractHash(sender, prm.ListingContract),
		voting:     contractHash(sender, prm.VotingContract),
		comment:    contractHash(sender, prm.CommentContract),
		credential: contractHash(sender, prm.CredentialContract),
	}
}

func contractHash(sender util.Uint160, prm CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, prm.NEF.Checksum, prm.Manifest.Name)
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}
	if isErrContractNotFound(err) {
		return false, nil
	}
	return false, err
}

// isErrContractNotFound checks if the error is related to missing contract
// state. The RPC server does not return a typed error, so the substring is
// the best available signal.
func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}

var errMissingNEF = errors.New("missing contract NEF")

// Validate checks the deployment parameter set for obvious misconfiguration.
func (x Prm) Validate() error {
	for _, c := range []struct {
		name string
		prm  CommonDeployPrm
	}{
		{nameReputation, x.ReputationContract},
		{nameListing, x.ListingContract},
		{nameVoting, x.VotingContract},
		{nameComment, x.CommentContract},
		{nameCredential, x.CredentialContract},
	} {
		if len(c.prm.NEF.Script) == 0 {
			return fmt.Errorf("%s contract: %w", c.name, errMissingNEF)
		}
		if c.prm.Manifest.Name == "" {
			return fmt.Errorf("%s contract: missing manifest name", c.name)
		}
	}
	if x.Logger == nil {
		return errors.New("missing logger")
	}
	if x.Blockchain == nil {
		return errors.New("missing blockchain client")
	}
	if x.CommitteeAccount == nil {
		return errors.New("missing committee account")
	}
	return nil
}
