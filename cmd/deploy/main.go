// Command deploy bootstraps the contract suite on a Neo network. It expects
// compiled contracts (NEF and manifest files produced by `neo-go contract
// compile`) in the directory passed via the -contracts flag and an unlocked
// committee account of the target network.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"

	"github.com/eduproof/eduproof-contract/deploy"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the committee wallet file")
	contractsDir := flag.String("contracts", "contracts", "Directory with compiled contracts")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing wallet path")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*neoRPCEndpoint, *walletPath, *contractsDir, logger); err != nil {
		logger.Fatal("deployment failed", zap.Error(err))
	}

	logger.Info("contract suite is successfully deployed")
}

func run(neoRPCEndpoint, walletPath, contractsDir string, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	acc, err := unlockCommitteeAccount(walletPath)
	if err != nil {
		return fmt.Errorf("unlock committee account: %w", err)
	}

	c, err := rpcclient.New(ctx, neoRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}
	defer c.Close()

	prm := deploy.Prm{
		Logger:           logger,
		Blockchain:       c,
		CommitteeAccount: acc,
	}

	for name, target := range map[string]*deploy.CommonDeployPrm{
		"reputation": &prm.ReputationContract,
		"listing":    &prm.ListingContract,
		"voting":     &prm.VotingContract,
		"comment":    &prm.CommentContract,
		"credential": &prm.CredentialContract,
	} {
		*target, err = readCompiledContract(contractsDir, name)
		if err != nil {
			return fmt.Errorf("read compiled %s contract: %w", name, err)
		}
	}

	if err := prm.Validate(); err != nil {
		return fmt.Errorf("invalid deployment parameters: %w", err)
	}

	return deploy.Deploy(ctx, prm)
}

// unlockCommitteeAccount opens the wallet and decrypts its first account with
// the password taken from the WALLET_PASSWORD environment variable.
func unlockCommitteeAccount(walletPath string) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	if len(w.Accounts) == 0 {
		return nil, fmt.Errorf("wallet '%s' has no accounts", walletPath)
	}

	acc := w.Accounts[0]
	password, ok := os.LookupEnv("WALLET_PASSWORD")
	if !ok {
		return nil, fmt.Errorf("missing WALLET_PASSWORD environment variable")
	}

	if err := acc.Decrypt(password, w.Scrypt); err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}

func readCompiledContract(dir, name string) (deploy.CommonDeployPrm, error) {
	var prm deploy.CommonDeployPrm

	rawNEF, err := os.ReadFile(filepath.Join(dir, name+".nef"))
	if err != nil {
		return prm, fmt.Errorf("read NEF: %w", err)
	}
	prm.NEF, err = nef.FileFromBytes(rawNEF)
	if err != nil {
		return prm, fmt.Errorf("decode NEF: %w", err)
	}

	rawManifest, err := os.ReadFile(filepath.Join(dir, name+".manifest.json"))
	if err != nil {
		return prm, fmt.Errorf("read manifest: %w", err)
	}
	if err := json.Unmarshal(rawManifest, &prm.Manifest); err != nil {
		return prm, fmt.Errorf("decode manifest: %w", err)
	}

	return prm, nil
}
