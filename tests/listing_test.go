package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/eduproof/eduproof-contract/common"
	"github.com/eduproof/eduproof-contract/contracts/listing/listingconst"
	"github.com/stretchr/testify/require"
)

func TestListingCreate(t *testing.T) {
	inv := newProtocolInvokers(t)

	acc := inv.listing.NewAccount(t)
	c := inv.listing.WithSigners(acc)

	proofs := []any{"https://proof.example/1"}

	t.Run("empty fields", func(t *testing.T) {
		c.InvokeFail(t, listingconst.ErrEmptyField, "create", acc.ScriptHash(), "", "Details", proofs, "C")
		c.InvokeFail(t, listingconst.ErrEmptyField, "create", acc.ScriptHash(), "Title", "", proofs, "C")
		c.InvokeFail(t, listingconst.ErrEmptyField, "create", acc.ScriptHash(), "Title", "Details", proofs, "")
		c.InvokeFail(t, listingconst.ErrEmptyField, "create", acc.ScriptHash(), "Title", "Details", []any{}, "C")
		c.InvokeFail(t, listingconst.ErrEmptyField, "create", acc.ScriptHash(), "Title", "Details", []any{""}, "C")
	})

	t.Run("witness of another account", func(t *testing.T) {
		other := inv.listing.NewAccount(t)
		c.InvokeFail(t, common.ErrOwnerWitnessFailed, "create", other.ScriptHash(), "Title", "Details", proofs, "C")
	})

	// the first id is 1, 0 is the "no link" value of archive links
	c.Invoke(t, 1, "create", acc.ScriptHash(), "Title", "Details", proofs, "C")
	inv.listing.Invoke(t, true, "isActive", 1)
	inv.listing.Invoke(t, true, "canEdit", 1)
	inv.listing.Invoke(t, false, "canMint", 1)
	inv.listing.Invoke(t, 1, "count")

	t.Run("sequential ids", func(t *testing.T) {
		c.Invoke(t, 2, "create", acc.ScriptHash(), "Another", "Details", proofs, "C")
		inv.listing.Invoke(t, 2, "count")
	})

	t.Run("duplicate of the same creator", func(t *testing.T) {
		c.InvokeFail(t, listingconst.ErrDuplicate, "create", acc.ScriptHash(), "Title", "Details", proofs, "C")

		// same text in a different category is a different listing
		c.Invoke(t, 3, "create", acc.ScriptHash(), "Title", "Details", proofs, "Other")
	})

	t.Run("same text by another creator", func(t *testing.T) {
		other := inv.listing.NewAccount(t)
		inv.listing.WithSigners(other).Invoke(t, 4, "create",
			other.ScriptHash(), "Title", "Details", proofs, "C")
	})

	t.Run("shifted field boundaries", func(t *testing.T) {
		// distinct tuples with equal concatenations are not duplicates
		c.Invoke(t, 5, "create", acc.ScriptHash(), "ab", "c", proofs, "C")
		c.Invoke(t, 6, "create", acc.ScriptHash(), "a", "bc", proofs, "C")
	})

	t.Run("missing listing", func(t *testing.T) {
		_, err := inv.listing.TestInvoke(t, "get", 42)
		require.Error(t, err)
		require.Contains(t, err.Error(), listingconst.ErrNotFound)
	})
}

func TestListingEdit(t *testing.T) {
	inv := newProtocolInvokers(t)

	acc := inv.listing.NewAccount(t)
	c := inv.listing.WithSigners(acc)
	id := createListing(t, inv, acc, "Title", "Details", "C")

	t.Run("author only", func(t *testing.T) {
		other := inv.listing.NewAccount(t)
		inv.listing.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed,
			"edit", id, "New", "New", []any{})
	})

	c.Invoke(t, stackitem.Null{}, "edit", id, "New title", "", []any{})
	requireListingText(t, inv.listing, id, "New title", "Details")

	c.Invoke(t, stackitem.Null{}, "edit", id, "", "New details", []any{})
	requireListingText(t, inv.listing, id, "New title", "New details")

	t.Run("edit into duplicate", func(t *testing.T) {
		c.Invoke(t, 2, "create", acc.ScriptHash(), "Other", "Details", []any{"p"}, "C")
		c.InvokeFail(t, listingconst.ErrDuplicate, "edit", 2, "New title", "New details", []any{})
	})

	t.Run("voted listing is frozen", func(t *testing.T) {
		voter := inv.voting.NewAccount(t)
		castVote(t, inv, voter, id, true)

		inv.listing.Invoke(t, false, "canEdit", id)
		c.InvokeFail(t, listingconst.ErrNotEditable, "edit", id, "Again", "", []any{})
	})
}

func TestListingArchive(t *testing.T) {
	inv := newProtocolInvokers(t)

	acc := inv.listing.NewAccount(t)
	c := inv.listing.WithSigners(acc)
	old := createListing(t, inv, acc, "Diploma", "2019", "edu")

	t.Run("creator only", func(t *testing.T) {
		other := inv.listing.NewAccount(t)
		inv.listing.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed,
			"archive", old, 0, "stale")
	})

	t.Run("dangling link", func(t *testing.T) {
		c.InvokeFail(t, listingconst.ErrLinkNotFound, "archive", old, 100, "superseded")
	})

	successor := createListing(t, inv, acc, "Diploma", "2019, corrected", "edu")
	c.Invoke(t, stackitem.Null{}, "archive", old, successor, "superseded")

	inv.listing.Invoke(t, false, "isActive", old)
	requireIntField(t, inv.listing, "get", listingFieldState, 2, old)
	requireIntField(t, inv.listing, "get", listingFieldLinkedTo, successor, old)
	requireIntField(t, inv.listing, "get", listingFieldLinkedTo, old, successor)

	archiveNote, err := structField(t, inv.listing, "get", listingFieldArchiveNote, old).TryBytes()
	require.NoError(t, err)
	require.Equal(t, "superseded", string(archiveNote))

	t.Run("archived is terminal", func(t *testing.T) {
		c.InvokeFail(t, listingconst.ErrInvalidState, "archive", old, 0, "again")
		c.InvokeFail(t, listingconst.ErrNotEditable, "edit", old, "X", "", []any{})
	})

	t.Run("content released for a new version", func(t *testing.T) {
		c.Invoke(t, 3, "create", acc.ScriptHash(), "Diploma", "2019", []any{"p"}, "edu")
	})

	t.Run("version chain", func(t *testing.T) {
		inv.listing.Invoke(t, stackitem.NewArray([]stackitem.Item{
			stackitem.Make(old), stackitem.Make(successor),
		}), "versionChain", old)

		inv.listing.Invoke(t, stackitem.NewArray([]stackitem.Item{
			stackitem.Make(successor), stackitem.Make(old),
		}), "versionChain", successor)
	})
}

func requireListingText(t *testing.T, c *neotest.ContractInvoker, id int64, title, details string) {
	gotTitle, err := structField(t, c, "get", listingFieldTitle, id).TryBytes()
	require.NoError(t, err)
	require.Equal(t, title, string(gotTitle))

	gotDetails, err := structField(t, c, "get", listingFieldDetails, id).TryBytes()
	require.NoError(t, err)
	require.Equal(t, details, string(gotDetails))
}
