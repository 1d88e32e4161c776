package listingstate

// Type is an enumeration for listing lifecycle states.
type Type int

// Various listing states. Transitions are monotonic: an Active listing may
// become Archived or Minted, nothing ever leaves Archived or Minted.
const (
	_ Type = iota

	// Active stands for listings open for voting, commenting and editing.
	Active

	// Archived stands for listings withdrawn by their creator, optionally
	// superseded by a linked successor listing.
	Archived

	// Minted stands for listings converted into a soulbound credential
	// token. Terminal.
	Minted
)
