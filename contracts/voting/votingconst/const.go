package votingconst

const (
	// MinReputationToVote is the reputation floor for voting eligibility.
	// Accounts whose score is at or below this value may not vote.
	MinReputationToVote = -10

	// CreatorPoints is the reputation weight a vote carries for the listing
	// creator: attestation adds it, refutation subtracts it, unvote
	// reverses it.
	CreatorPoints = 1

	// FeedbackPoints is the reputation weight of a single feedback mark on
	// a vote, applied to the voter.
	FeedbackPoints = 1

	// ErrNotActive is returned on attempt to vote on a listing that is
	// archived, minted or was never created.
	ErrNotActive = "listing is not active"

	// ErrEmptyComment is returned if the mandatory vote explanation is
	// blank.
	ErrEmptyComment = "empty vote comment"

	// ErrInsufficientReputation is returned if the voter's score is too low
	// to vote.
	ErrInsufficientReputation = "insufficient reputation to vote"

	// ErrOwnListing is returned on attempt to vote on one's own listing.
	ErrOwnListing = "cannot vote on own listing"

	// ErrAlreadyVoted is returned on repeated vote on the same listing.
	ErrAlreadyVoted = "already voted on this listing"

	// ErrNotFound is returned if the vote is missing.
	ErrNotFound = "vote does not exist"

	// ErrSelfFeedback is returned on attempt to leave feedback on one's own
	// vote.
	ErrSelfFeedback = "cannot give feedback on own vote"
)
