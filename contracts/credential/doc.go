/*
Package credential contains non-divisible non-fungible NEP11-compatible
token implementation for EduProof credentials. A credential is minted from a
listing that collected enough community attestations; the token id is the
decimal listing id and the listing creator becomes the token owner.

The token is soulbound: Transfer unconditionally fails and no approval
mechanics exist, so once issued a credential stays with the account that
earned it. There is no burn either, which mirrors the listing state machine:
Minted is terminal.

MintFromListing is the single gate of the Active -> Minted transition. The
contract checks the mintability predicate of the Listing contract, issues
the token and only then asks the Listing contract to flip the state, all
within one transaction.

# Contract notifications

Transfer notification per NEP-11, produced once per mint with null sender.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

CredentialIssued notification. This notification is produced when a listing
is converted into a credential.

	CredentialIssued:
	  - name: listingID
	    type: Integer
	  - name: owner
	    type: Hash160
	  - name: tokenId
	    type: ByteArray
*/
package credential

/*
Contract storage model.

# Summary
Key-value storage format:
 - 0x00 -> int
   total supply of minted credentials
 - 0x01<owner> -> int
   credential balance of the owner
 - 0x02<owner><hash160(tokenId)> -> []byte
   token ids grouped by owner
 - 0x03<hash160(tokenId)> -> std.Serialize(CredentialState)
   credential record
 - 0x10 -> interop.Hash160
   Listing contract reference

# Credentials
Records are append-only: there is no transfer and no burn path.
*/
