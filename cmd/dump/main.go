// Command dump fetches storages of the deployed contract suite from a Neo
// RPC node and writes them into per-contract JSON files. The resulting files
// capture a consistent state snapshot which is useful for debugging and for
// inspecting networks before contract updates.
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

type storageItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type contractDump struct {
	Name    string        `json:"name"`
	Address string        `json:"address"`
	Block   uint32        `json:"block"`
	Items   []storageItem `json:"items"`
}

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	outDir := flag.String("out", "testdata", "Directory for the dump files")

	contractFlags := map[string]*string{
		"reputation": flag.String("reputation", "", "Address of the Reputation contract (LE hex)"),
		"listing":    flag.String("listing", "", "Address of the Listing contract (LE hex)"),
		"voting":     flag.String("voting", "", "Address of the Voting contract (LE hex)"),
		"comment":    flag.String("comment", "", "Address of the Comment contract (LE hex)"),
		"credential": flag.String("credential", "", "Address of the Credential contract (LE hex)"),
	}

	flag.Parse()

	if *neoRPCEndpoint == "" {
		log.Fatal("missing Neo RPC endpoint")
	}

	contracts := make(map[string]util.Uint160, len(contractFlags))
	for name, addr := range contractFlags {
		if *addr == "" {
			log.Fatalf("missing %s contract address", name)
		}
		h, err := util.Uint160DecodeStringLE(*addr)
		if err != nil {
			log.Fatal(fmt.Errorf("decode %s contract address: %w", name, err))
		}
		contracts[name] = h
	}

	if err := os.MkdirAll(*outDir, 0700); err != nil {
		log.Fatal(fmt.Errorf("create output dir: %w", err))
	}

	if err := dumpContracts(*neoRPCEndpoint, *outDir, contracts); err != nil {
		log.Fatal(err)
	}

	log.Printf("contract storages are successfully dumped to '%s/'\n", *outDir)
}

func dumpContracts(neoRPCEndpoint, outDir string, contracts map[string]util.Uint160) error {
	b, err := newRemoteBlockchain(neoRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	for name, addr := range contracts {
		log.Printf("processing contract '%s'...\n", name)

		if _, err := b.rpc.GetContractStateByHash(addr); err != nil {
			return fmt.Errorf("get state of the %s contract: %w", name, err)
		}

		d := contractDump{
			Name:    name,
			Address: addr.StringLE(),
			Block:   b.currentBlock,
		}

		err = b.iterateContractStorage(addr, func(key, value []byte) error {
			d.Items = append(d.Items, storageItem{
				Key:   base64.StdEncoding.EncodeToString(key),
				Value: base64.StdEncoding.EncodeToString(value),
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("iterate %s contract storage: %w", name, err)
		}

		if err := writeDump(outDir, d); err != nil {
			return fmt.Errorf("write %s contract dump: %w", name, err)
		}
	}

	return nil
}

func writeDump(outDir string, d contractDump) error {
	data, err := json.MarshalIndent(d, "", " ")
	if err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}

	return os.WriteFile(filepath.Join(outDir, d.Name+".json"), data, 0600)
}
