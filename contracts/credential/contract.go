package credential

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/eduproof/eduproof-contract/common"
)

// Prefixes used for contract data storage.
const (
	// prefixTotalSupply contains total supply of minted credentials.
	prefixTotalSupply byte = 0x00
	// prefixBalance contains map from the owner to their balance.
	prefixBalance byte = 0x01
	// prefixAccountToken contains map from (owner + token key) to token ID,
	// where token key = hash160(token ID) and token ID = decimal listing id.
	prefixAccountToken byte = 0x02
	// prefixCredential contains map from token key to CredentialState.
	prefixCredential byte = 0x03
	// prefixListingContract contains the Listing contract reference.
	prefixListingContract byte = 0x10
)

// ErrNonTransferable is returned by every transfer attempt: credentials are
// bound to the account that earned them.
const ErrNonTransferable = "credential tokens are not transferable"

// CredentialState is a minted credential record, the NFT behind a
// sufficiently attested listing.
type CredentialState struct {
	Owner     interop.Hash160
	ListingID int
	Title     string
	Category  string
	IssuedAt  int
}

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
	if len(addrListing) != interop.Hash160Len {
		panic("incorrect contract script hash")
	}

	storage.Put(ctx, []byte{prefixTotalSupply}, 0)
	storage.Put(ctx, []byte{prefixListingContract}, addrListing)

	runtime.Log("credential contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("credential contract updated")
}

// Symbol returns the token symbol.
func Symbol() string {
	return "EDUP"
}

// Decimals returns the token decimals, credentials are non-divisible.
func Decimals() int {
	return 0
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// TotalSupply returns the overall number of minted credentials. Credentials
// are never burned, so the value only grows.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getTotalSupply(ctx)
}

// OwnerOf returns the owner of the specified credential.
func OwnerOf(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getCredentialState(ctx, tokenID).Owner
}

// Properties returns a map of presentation attributes of the specified
// credential. Rendering of the actual metadata document (JSON, image) is
// left to off-chain consumers of this map.
func Properties(tokenID []byte) map[string]any {
	ctx := storage.GetReadOnlyContext()
	cs := getCredentialState(ctx, tokenID)
	return map[string]any{
		"name":      cs.Title,
		"category":  cs.Category,
		"listingID": cs.ListingID,
		"issuedAt":  cs.IssuedAt,
	}
}

// BalanceOf returns the overall number of credentials owned by the
// specified account.
func BalanceOf(owner interop.Hash160) int {
	if !isValid(owner) {
		panic(`invalid owner`)
	}
	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

// Tokens returns iterator over a set of all minted credentials.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixCredential}, storage.ValuesOnly|storage.DeserializeValues|storage.PickField1)
}

// TokensOf returns iterator over credentials owned by the specified account.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if !isValid(owner) {
		panic(`invalid owner`)
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Transfer always fails: credentials are soulbound to the account that
// earned the underlying attestations. The method exists only to satisfy the
// NEP-11 interface; there is no approval surface at all.
func Transfer(to interop.Hash160, tokenID []byte, data any) bool {
	panic(ErrNonTransferable)
}

// MintFromListing converts a sufficiently attested active listing into a
// soulbound credential token owned by the listing creator. It can be
// invoked only by the creator. The token id is the decimal listing id. On
// success the Listing contract flips the listing into the terminal Minted
// state, which freezes its votes and comments-driven counters forever.
func MintFromListing(listingID int) []byte {
	ctx := storage.GetContext()

	listingContractAddr := storage.Get(ctx, []byte{prefixListingContract}).(interop.Hash160)
	creator := contract.Call(listingContractAddr, "creatorOf", contract.ReadOnly, listingID).(interop.Hash160)
	common.CheckOwnerWitness(creator)

	if !contract.Call(listingContractAddr, "canMint", contract.ReadOnly, listingID).(bool) {
		panic("listing is not mintable")
	}

	// Listing fields by position: ID, Creator, Title, Details, Proofs, Category, ...
	row := contract.Call(listingContractAddr, "get", contract.ReadOnly, listingID).([]any)
	cs := CredentialState{
		Owner:     creator,
		ListingID: listingID,
		Title:     row[2].(string),
		Category:  row[5].(string),
		IssuedAt:  runtime.GetTime(),
	}

	tokenID := []byte(std.Itoa(listingID, 10))
	putCredentialState(ctx, tokenID, cs)
	updateBalance(ctx, tokenID, creator, +1)
	updateTotalSupply(ctx, +1)

	contract.Call(listingContractAddr, "setMinted", contract.All, listingID)

	postTransfer(nil, creator, tokenID, nil)
	runtime.Notify("CredentialIssued", listingID, creator, tokenID)

	return tokenID
}

// TokenOfListing returns the credential token id minted from the given
// listing, or nil if the listing has not been minted.
func TokenOfListing(listingID int) []byte {
	ctx := storage.GetReadOnlyContext()
	tokenID := []byte(std.Itoa(listingID, 10))
	data := storage.Get(ctx, append([]byte{prefixCredential}, getTokenKey(tokenID)...))
	if data == nil {
		return nil
	}
	return tokenID
}

// updateBalance updates account's balance and account's tokens.
func updateBalance(ctx storage.Context, tokenID []byte, acc interop.Hash160, diff int) {
	balanceKey := append([]byte{prefixBalance}, acc...)
	var balance int
	if b := storage.Get(ctx, balanceKey); b != nil {
		balance = b.(int)
	}
	balance += diff
	if balance == 0 {
		storage.Delete(ctx, balanceKey)
	} else {
		storage.Put(ctx, balanceKey, balance)
	}

	tokenKey := getTokenKey(tokenID)
	accountTokenKey := append(append([]byte{prefixAccountToken}, acc...), tokenKey...)
	if diff < 0 {
		storage.Delete(ctx, accountTokenKey)
	} else {
		storage.Put(ctx, accountTokenKey, tokenID)
	}
}

// postTransfer sends Transfer notification to the network and calls
// onNEP11Payment method on the receiving contract.
func postTransfer(from, to interop.Hash160, tokenID []byte, data any) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, tokenID, data)
	}
}

func getTotalSupply(ctx storage.Context) int {
	val := storage.Get(ctx, []byte{prefixTotalSupply})
	return val.(int)
}

func updateTotalSupply(ctx storage.Context, diff int) {
	tsKey := []byte{prefixTotalSupply}
	ts := getTotalSupply(ctx)
	storage.Put(ctx, tsKey, ts+diff)
}

// getTokenKey computes hash160 from the given tokenID.
func getTokenKey(tokenID []byte) []byte {
	return crypto.Ripemd160(tokenID)
}

func getCredentialState(ctx storage.Context, tokenID []byte) CredentialState {
	data := storage.Get(ctx, append([]byte{prefixCredential}, getTokenKey(tokenID)...))
	if data == nil {
		panic("token not found")
	}
	return std.Deserialize(data.([]byte)).(CredentialState)
}

func putCredentialState(ctx storage.Context, tokenID []byte, cs CredentialState) {
	key := append([]byte{prefixCredential}, getTokenKey(tokenID)...)
	storage.Put(ctx, key, std.Serialize(cs))
}

// isValid returns true if the provided address is a valid Uint160.
func isValid(address interop.Hash160) bool {
	return address != nil && len(address) == interop.Hash160Len
}
