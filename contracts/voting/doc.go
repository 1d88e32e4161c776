/*
Package voting implements Voting contract of the EduProof protocol.

Voting contract owns the at-most-one-vote-per-(listing, voter) invariant.
A vote is an attestation or refutation of an active listing, carries a
mandatory explanation (stored as a vote-comment by the Comment contract)
and immediately moves the listing creator's reputation by one point in the
matching direction. Other accounts may leave up/down feedback on a vote,
which scores the voter instead.

A vote can be revoked while the listing is still active. Revocation frees
the (listing, voter) slot, decrements the listing counter and reverses the
creator's reputation delta with a paired reason tag, so the reputation fold
stays exact. Once a listing leaves the Active state its votes are frozen.

Eligibility gate: accounts at or below votingconst.MinReputationToVote are
rejected. Since fresh accounts start at zero, only accounts dragged down by
negative feedback lose the vote.

# Contract notifications

VoteCast notification. This notification is produced when an account votes
on a listing.

	VoteCast:
	  - name: listingID
	    type: Integer
	  - name: voter
	    type: Hash160
	  - name: isAttest
	    type: Boolean

VoteFeedback notification. This notification is produced when an account
leaves feedback on a vote.

	VoteFeedback:
	  - name: listingID
	    type: Integer
	  - name: voter
	    type: Hash160
	  - name: giver
	    type: Hash160
	  - name: isUpvote
	    type: Boolean

VoteRevoked notification. This notification is produced when a voter
revokes a vote.

	VoteRevoked:
	  - name: listingID
	    type: Integer
	  - name: voter
	    type: Hash160
*/
package voting

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'v<listingID><voter>' -> std.Serialize(Vote)
   vote record, removed on revocation
 - 'p<listingID>' -> std.Serialize([][]byte)
   accounts currently holding a vote on the listing
 - 'a' -> interop.Hash160
   Listing contract reference
 - 'b' -> interop.Hash160
   Reputation contract reference
 - 'c' -> interop.Hash160
   Comment contract reference

# Votes
The voter list and the vote records always agree: both are written in Cast
and both are cleaned in Unvote within the same transaction.
*/
