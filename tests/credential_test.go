package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/eduproof/eduproof-contract/common"
	"github.com/eduproof/eduproof-contract/contracts/credential"
	"github.com/eduproof/eduproof-contract/contracts/listing/listingstate"
	"github.com/eduproof/eduproof-contract/contracts/voting/votingconst"
	"github.com/stretchr/testify/require"
)

func TestCredentialNEP11Surface(t *testing.T) {
	inv := newProtocolInvokers(t)

	inv.credential.Invoke(t, "EDUP", "symbol")
	inv.credential.Invoke(t, 0, "decimals")
	inv.credential.Invoke(t, 0, "totalSupply")

	acc := inv.credential.NewAccount(t)
	inv.credential.Invoke(t, 0, "balanceOf", acc.ScriptHash())
}

func TestCredentialMint(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Rust basics", "Completed the course", "programming")
	require.EqualValues(t, 1, id)

	cCreator := inv.credential.WithSigners(creator)

	t.Run("below attestation threshold", func(t *testing.T) {
		cCreator.InvokeFail(t, "listing is not mintable", "mintFromListing", id)

		castVote(t, inv, inv.voting.NewAccount(t), id, true)
		cCreator.InvokeFail(t, "listing is not mintable", "mintFromListing", id)
	})

	castVote(t, inv, inv.voting.NewAccount(t), id, true)
	requireIntField(t, inv.listing, "get", listingFieldAttestCount, 2, id)
	inv.listing.Invoke(t, true, "canMint", id)

	t.Run("creator only", func(t *testing.T) {
		stranger := inv.credential.NewAccount(t)
		inv.credential.WithSigners(stranger).InvokeFail(t,
			common.ErrOwnerWitnessFailed, "mintFromListing", id)
	})

	tokenID := []byte("1")
	cCreator.Invoke(t, stackitem.NewBuffer(tokenID), "mintFromListing", id)

	inv.credential.Invoke(t, 1, "totalSupply")
	inv.credential.Invoke(t, 1, "balanceOf", creator.ScriptHash())
	inv.credential.Invoke(t, stackitem.NewBuffer(creator.ScriptHash().BytesBE()), "ownerOf", tokenID)
	inv.credential.Invoke(t, stackitem.NewBuffer(tokenID), "tokenOfListing", id)
	requireIntField(t, inv.listing, "get", listingFieldState, int64(listingstate.Minted), id)

	t.Run("minting is terminal", func(t *testing.T) {
		cCreator.InvokeFail(t, "listing is not mintable", "mintFromListing", id)

		voter := inv.voting.NewAccount(t)
		inv.voting.WithSigners(voter).InvokeFail(t, votingconst.ErrNotActive,
			"cast", id, voter.ScriptHash(), true, "too late")
	})

	t.Run("properties", func(t *testing.T) {
		stack, err := inv.credential.TestInvoke(t, "properties", tokenID)
		require.NoError(t, err)

		m, ok := stack.Pop().Item().(*stackitem.Map)
		require.True(t, ok)
		i := m.Index(stackitem.Make("name"))
		require.True(t, i >= 0)
		name, err := m.Value().([]stackitem.MapElement)[i].Value.TryBytes()
		require.NoError(t, err)
		require.Equal(t, "Rust basics", string(name))
	})
}

func TestCredentialSoulbound(t *testing.T) {
	inv := newProtocolInvokers(t)

	creator := inv.listing.NewAccount(t)
	id := createListing(t, inv, creator, "Title", "Details", "C")
	castVote(t, inv, inv.voting.NewAccount(t), id, true)
	castVote(t, inv, inv.voting.NewAccount(t), id, true)

	tokenID := []byte("1")
	inv.credential.WithSigners(creator).Invoke(t, stackitem.NewBuffer(tokenID), "mintFromListing", id)

	recipient := inv.credential.NewAccount(t)
	inv.credential.WithSigners(creator).InvokeFail(t, credential.ErrNonTransferable,
		"transfer", recipient.ScriptHash(), tokenID, nil)
}

func TestCredentialUnknownToken(t *testing.T) {
	inv := newProtocolInvokers(t)

	inv.credential.InvokeFail(t, "token not found", "ownerOf", []byte("7"))
	inv.credential.Invoke(t, stackitem.Null{}, "tokenOfListing", 7)
}

func TestCredentialIndependentListings(t *testing.T) {
	inv := newProtocolInvokers(t)

	alice := inv.listing.NewAccount(t)
	bob := inv.listing.NewAccount(t)
	first := createListing(t, inv, alice, "Course A", "Details", "C")
	second := createListing(t, inv, bob, "Course B", "Details", "C")

	for _, id := range []int64{first, second} {
		castVote(t, inv, inv.voting.NewAccount(t), id, true)
		castVote(t, inv, inv.voting.NewAccount(t), id, true)
	}

	inv.credential.WithSigners(alice).Invoke(t, stackitem.NewBuffer([]byte("1")), "mintFromListing", first)
	inv.credential.WithSigners(bob).Invoke(t, stackitem.NewBuffer([]byte("2")), "mintFromListing", second)

	inv.credential.Invoke(t, 2, "totalSupply")
	inv.credential.Invoke(t, 1, "balanceOf", alice.ScriptHash())
	inv.credential.Invoke(t, 1, "balanceOf", bob.ScriptHash())
	inv.credential.Invoke(t, stackitem.NewBuffer(bob.ScriptHash().BytesBE()), "ownerOf", []byte("2"))
}
