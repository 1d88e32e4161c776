package listing

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/eduproof/eduproof-contract/common"
	"github.com/eduproof/eduproof-contract/contracts/listing/listingconst"
	"github.com/eduproof/eduproof-contract/contracts/listing/listingstate"
)

type (
	// Listing is a claim of educational achievement submitted for community
	// attestation.
	Listing struct {
		ID          int
		Creator     interop.Hash160
		Title       string
		Details     string
		Proofs      []string
		Category    string
		CreatedAt   int
		EditedAt    int
		State       listingstate.Type
		LinkedTo    int
		ArchiveNote string
		AttestCount int
		RefuteCount int
	}
)

const (
	listingKeyPrefix = 'x'
	creatorKeyPrefix = 'o'
	contentKeyPrefix = 'h'

	votingContractKey     = 'v'
	credentialContractKey = 'm'

	listingCounterKey = "listingCounter"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)

	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	addrVoting := args[0].(interop.Hash160)
	addrCredential := args[1].(interop.Hash160)
	if len(addrVoting) != interop.Hash160Len || len(addrCredential) != interop.Hash160Len {
		panic("incorrect contract script hash")
	}

	storage.Put(ctx, votingContractKey, addrVoting)
	storage.Put(ctx, credentialContractKey, addrCredential)

	runtime.Log("listing contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("listing contract updated")
}

// Create method registers a new listing of the given creator and returns its
// id. Ids are assigned sequentially starting from one and are never reused.
// Title, details and category must be non-empty and at least one non-empty
// proof URI is required. A creator may not have two listings with the same
// title, details and category: such submissions are rejected as duplicates.
// Identical text posted by different creators is fine.
func Create(creator interop.Hash160, title, details string, proofs []string, category string) int {
	ctx := storage.GetContext()

	if len(creator) != interop.Hash160Len {
		panic("incorrect creator account")
	}
	common.CheckOwnerWitness(creator)

	if len(title) == 0 || len(details) == 0 || len(category) == 0 || len(proofs) == 0 {
		panic(listingconst.ErrEmptyField)
	}
	for i := range proofs {
		if len(proofs[i]) == 0 {
			panic(listingconst.ErrEmptyField)
		}
	}

	contentKey := contentHashKey(creator, title, details, category)
	if storage.Get(ctx, contentKey) != nil {
		panic(listingconst.ErrDuplicate)
	}

	// ids start at 1, 0 is reserved as the "no link" value of LinkedTo
	id := common.NextID(ctx, listingCounterKey) + 1
	l := Listing{
		ID:        id,
		Creator:   creator,
		Title:     title,
		Details:   details,
		Proofs:    proofs,
		Category:  category,
		CreatedAt: runtime.GetTime(),
		State:     listingstate.Active,
	}

	putListing(ctx, l)
	storage.Put(ctx, contentKey, 1)
	storage.Put(ctx, creatorIndexKey(creator, id), id)

	runtime.Notify("ListingCreated", id, creator)

	return id
}

// Archive method marks an active listing as superseded. It can be invoked
// only by the listing creator. A non-zero linkedTo must name an existing
// listing that supersedes this one; the link is also recorded on the
// successor (unless it already links elsewhere) so the version chain can be
// traversed in both directions. The content of an archived listing is
// released for reuse: the creator may post a new version with the same text.
func Archive(id int, linkedTo int, note string) {
	ctx := storage.GetContext()

	l := getListing(ctx, id)
	common.CheckOwnerWitness(l.Creator)

	if l.State != listingstate.Active {
		panic(listingconst.ErrInvalidState)
	}

	if linkedTo != 0 {
		if linkedTo == id || storage.Get(ctx, listingKey(linkedTo)) == nil {
			panic(listingconst.ErrLinkNotFound)
		}
		successor := getListing(ctx, linkedTo)
		if successor.LinkedTo == 0 {
			successor.LinkedTo = id
			putListing(ctx, successor)
		}
	}

	l.State = listingstate.Archived
	l.LinkedTo = linkedTo
	l.ArchiveNote = note
	putListing(ctx, l)

	storage.Delete(ctx, contentHashKey(l.Creator, l.Title, l.Details, l.Category))

	runtime.Notify("ListingArchived", id, linkedTo)
}

// Edit method replaces listing text and proofs. It can be invoked only by
// the listing creator and only while the listing is active and has not
// collected any votes yet. Empty arguments keep the previous values.
func Edit(id int, title, details string, proofs []string) {
	ctx := storage.GetContext()

	l := getListing(ctx, id)
	common.CheckOwnerWitness(l.Creator)

	if l.State != listingstate.Active || l.AttestCount != 0 || l.RefuteCount != 0 {
		panic(listingconst.ErrNotEditable)
	}

	if len(title) == 0 {
		title = l.Title
	}
	if len(details) == 0 {
		details = l.Details
	}
	if len(proofs) == 0 {
		proofs = l.Proofs
	}
	for i := range proofs {
		if len(proofs[i]) == 0 {
			panic(listingconst.ErrEmptyField)
		}
	}

	oldContentKey := contentHashKey(l.Creator, l.Title, l.Details, l.Category)
	newContentKey := contentHashKey(l.Creator, title, details, l.Category)
	if !common.BytesEqual(oldContentKey, newContentKey) {
		if storage.Get(ctx, newContentKey) != nil {
			panic(listingconst.ErrDuplicate)
		}
		storage.Delete(ctx, oldContentKey)
		storage.Put(ctx, newContentKey, 1)
	}

	l.Title = title
	l.Details = details
	l.Proofs = proofs
	l.EditedAt = runtime.GetTime()
	putListing(ctx, l)

	runtime.Notify("ListingEdited", id)
}

// SetMinted method flips an active listing into the terminal minted state.
// It can be invoked only by the Credential contract after the soulbound
// token has been issued.
func SetMinted(id int) {
	ctx := storage.GetContext()

	caller := runtime.GetCallingScriptHash()
	credentialContractAddr := storage.Get(ctx, credentialContractKey).(interop.Hash160)
	if !caller.Equals(credentialContractAddr) {
		panic("mint access denied")
	}

	l := getListing(ctx, id)
	if l.State != listingstate.Active {
		panic(listingconst.ErrAlreadyMinted)
	}

	l.State = listingstate.Minted
	putListing(ctx, l)

	runtime.Notify("ListingMinted", id)
}

// AddVote method increments the attestation or refutation counter of an
// active listing. It can be invoked only by the Voting contract.
func AddVote(id int, isAttest bool) {
	ctx := storage.GetContext()
	checkVotingWitness(ctx)

	l := getListing(ctx, id)
	if l.State != listingstate.Active {
		panic(listingconst.ErrInvalidState)
	}

	if isAttest {
		l.AttestCount = l.AttestCount + 1
	} else {
		l.RefuteCount = l.RefuteCount + 1
	}
	putListing(ctx, l)
}

// RemoveVote method decrements the attestation or refutation counter of an
// active listing after an unvote. It can be invoked only by the Voting
// contract. Counters never go below zero.
func RemoveVote(id int, isAttest bool) {
	ctx := storage.GetContext()
	checkVotingWitness(ctx)

	l := getListing(ctx, id)
	if l.State != listingstate.Active {
		panic(listingconst.ErrInvalidState)
	}

	if isAttest {
		if l.AttestCount == 0 {
			panic("negative vote count")
		}
		l.AttestCount = l.AttestCount - 1
	} else {
		if l.RefuteCount == 0 {
			panic("negative vote count")
		}
		l.RefuteCount = l.RefuteCount - 1
	}
	putListing(ctx, l)
}

// Get method returns the listing with the given id.
func Get(id int) Listing {
	ctx := storage.GetReadOnlyContext()
	return getListing(ctx, id)
}

// CreatorOf method returns the account that created the listing.
func CreatorOf(id int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getListing(ctx, id).Creator
}

// Exists method returns true if a listing with the given id was ever created.
func Exists(id int) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, listingKey(id)) != nil
}

// IsActive method returns true if the listing is open for voting and
// commenting.
func IsActive(id int) bool {
	ctx := storage.GetReadOnlyContext()
	return getListing(ctx, id).State == listingstate.Active
}

// CanEdit method returns true if the listing is active and vote-free.
func CanEdit(id int) bool {
	ctx := storage.GetReadOnlyContext()
	l := getListing(ctx, id)
	return l.State == listingstate.Active && l.AttestCount == 0 && l.RefuteCount == 0
}

// CanMint method returns true if the listing is active and has collected
// enough attestations for its creator to mint a credential.
func CanMint(id int) bool {
	ctx := storage.GetReadOnlyContext()
	l := getListing(ctx, id)
	return l.State == listingstate.Active && l.AttestCount >= listingconst.MinAttestations
}

// VersionChain method walks version links starting from the given listing
// and returns the visited ids in walk order, the given id first. The walk
// follows LinkedTo references and stops on the first listing without a
// further link or when the chain loops back.
func VersionChain(id int) []int {
	ctx := storage.GetReadOnlyContext()

	chain := []int{id}
	cur := getListing(ctx, id)

	for cur.LinkedTo != 0 {
		next := cur.LinkedTo
		visited := false
		for i := range chain {
			if chain[i] == next {
				visited = true
				break
			}
		}
		if visited {
			break
		}

		chain = append(chain, next)
		cur = getListing(ctx, next)
	}

	return chain
}

// ListByCreator method returns an iterator over ids of all listings of the
// given creator.
func ListByCreator(creator interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{creatorKeyPrefix}, creator...), storage.ValuesOnly)
}

// Count method returns the overall number of listings ever created.
func Count() int {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, listingCounterKey)
	if data == nil {
		return 0
	}
	return data.(int)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkVotingWitness(ctx storage.Context) {
	caller := runtime.GetCallingScriptHash()
	votingContractAddr := storage.Get(ctx, votingContractKey).(interop.Hash160)
	if !caller.Equals(votingContractAddr) {
		panic("vote access denied")
	}
}

func getListing(ctx storage.Context, id int) Listing {
	data := storage.Get(ctx, listingKey(id))
	if data == nil {
		panic(listingconst.ErrNotFound)
	}
	return std.Deserialize(data.([]byte)).(Listing)
}

func putListing(ctx storage.Context, l Listing) {
	common.SetSerialized(ctx, listingKey(l.ID), l)
}

func listingKey(id int) []byte {
	return append([]byte{listingKeyPrefix}, convert.ToBytes(id)...)
}

func creatorIndexKey(creator interop.Hash160, id int) []byte {
	return append(append([]byte{creatorKeyPrefix}, creator...), convert.ToBytes(id)...)
}

func contentHashKey(creator interop.Hash160, title, details, category string) []byte {
	// serialization keeps the field boundaries, plain concatenation would
	// hash ("ab", "c") and ("a", "bc") to the same key
	content := std.Serialize([]any{creator, title, details, category})
	hash := crypto.Sha256(content)
	return append([]byte{contentKeyPrefix}, hash...)
}
