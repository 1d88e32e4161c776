/*
Package comment implements Comment contract of the EduProof protocol.

Comment contract stores discussion threads attached to listings. Regular
comments form a tree through parent references; since ids grow monotonically
a parent always has a smaller id than its replies, so the tree is acyclic by
construction. Deleting a comment only clears its content and flags the
record, which keeps every reply chain intact.

Vote-comments are a second kind of record: the mandatory explanation text of
an attestation or refutation vote. They are written exclusively by the
Voting contract, indexed by (listing, voter) rather than by the reply tree,
and none of the regular mutation methods accept them.

Each account may hold one directional vote (up or down) per comment. A
directional vote moves the author's reputation by one point through the
Reputation contract; revoking or switching it reverses that delta before
anything new is applied.

# Contract notifications

CommentAdded notification. This notification is produced when a user adds a
discussion comment.

	CommentAdded:
	  - name: id
	    type: Integer
	  - name: listingID
	    type: Integer
	  - name: author
	    type: Hash160

VoteCommentAdded notification. This notification is produced when the Voting
contract stores a vote explanation.

	VoteCommentAdded:
	  - name: id
	    type: Integer
	  - name: listingID
	    type: Integer
	  - name: voter
	    type: Hash160

CommentEdited/CommentRemoved notifications. Produced when a comment author
edits or soft-deletes their comment.

	CommentEdited:
	  - name: id
	    type: Integer

	CommentRemoved:
	  - name: id
	    type: Integer

CommentVoted notification. This notification is produced when an account
casts or switches a directional vote on a comment.

	CommentVoted:
	  - name: id
	    type: Integer
	  - name: voter
	    type: Hash160
	  - name: isUpvote
	    type: Boolean

CommentVoteRevoked notification. This notification is produced when an
account revokes its directional vote.

	CommentVoteRevoked:
	  - name: id
	    type: Integer
	  - name: voter
	    type: Hash160
*/
package comment

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'c<id>' -> std.Serialize(Comment)
   comment record by integer id, ids start from 1
 - 't<listingID BE8><id BE8>' -> int
   ids of comments grouped by listing, both ids 8-byte big-endian
 - 'w<listingID><voter>' -> int
   vote-comment id per (listing, voter), removed on unvote
 - 'd<id><voter>' -> int
   directional ballot per (comment, voter): 1 is up, 2 is down
 - 'commentCounter' -> int
   number of comments ever created
 - 'l' -> interop.Hash160
   Listing contract reference
 - 'r' -> interop.Hash160
   Reputation contract reference
 - 'v' -> interop.Hash160
   Voting contract reference

# Comments
Comment records are never physically removed, soft-deletion clears content
only. Ballots are removed on unvote and rewritten on direction switch.
*/
