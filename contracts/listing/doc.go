/*
Package listing implements Listing contract of the EduProof protocol.

Listing contract stores claims of educational achievement and drives their
lifecycle. A listing is created Active, may be edited by its creator while
nobody has voted on it, and leaves the Active state exactly once: either the
creator archives it (optionally linking a successor listing that supersedes
it) or the Credential contract marks it Minted after issuing a soulbound
token. Archived and Minted are terminal.

Attestation and refutation counters of a listing are owned by this contract
but mutated only by the Voting contract. The Credential contract consumes the
CanMint predicate which requires at least listingconst.MinAttestations
attestations.

Duplicate protection is per creator: the contract refuses a listing whose
title, details and category hash to the same value as another listing of the
same creator. This is an anti-spam measure, not an anti-plagiarism one, so
different creators may post identical text.

# Contract notifications

ListingCreated notification. This notification is produced when a user
submits a new listing.

	ListingCreated:
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160

ListingArchived notification. This notification is produced when a creator
archives a listing.

	ListingArchived:
	  - name: id
	    type: Integer
	  - name: linkedTo
	    type: Integer

ListingEdited notification. This notification is produced when a creator
edits a vote-free listing.

	ListingEdited:
	  - name: id
	    type: Integer

ListingMinted notification. This notification is produced when the Credential
contract converts a listing into a token.

	ListingMinted:
	  - name: id
	    type: Integer
*/
package listing

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'x<id>' -> std.Serialize(Listing)
   listing record by integer id
 - 'o<creator><id>' -> int
   ids of listings grouped by creator account
 - 'h<sha256(serialized (creator, title, details, category))>' -> 1
   duplicate content marker, removed when the listing is archived or its
   text is edited
 - 'listingCounter' -> int
   number of listings ever created, ids start from 1
 - 'v' -> interop.Hash160
   Voting contract reference
 - 'm' -> interop.Hash160
   Credential contract reference

# Listings
Listings are never deleted. Ids grow monotonically and the record keeps its
id after any state transition, so external references stay valid forever.
*/
