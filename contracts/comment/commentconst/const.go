// Package commentconst contains constants of the Comment contract shared
// between the contract itself and the off-chain tooling.
package commentconst

// Error messages of the Comment contract.
const (
	// ErrEmpty is returned if comment content is blank.
	ErrEmpty = "empty comment"
	// ErrNotFound is returned if the comment is missing.
	ErrNotFound = "comment does not exist"
	// ErrInvalidParent is returned if the parent reference names a missing
	// comment, a comment of another listing or a vote-comment.
	ErrInvalidParent = "invalid parent comment"
	// ErrVoteComment is returned on attempt to edit, delete or rate a
	// vote-comment directly.
	ErrVoteComment = "vote comment is read-only"
	// ErrDeleted is returned on attempt to modify or rate a deleted comment.
	ErrDeleted = "comment is deleted"
	// ErrAlreadyVoted is returned on re-casting an identical directional
	// vote on a comment.
	ErrAlreadyVoted = "already voted on this comment"
	// ErrNotVoted is returned on attempt to revoke a directional vote that
	// was never cast.
	ErrNotVoted = "no comment vote to revoke"
)
