package listingconst

const (
	// MinAttestations is the number of attestation votes a listing must
	// collect before its creator may mint a credential from it.
	MinAttestations = 2

	// ErrEmptyField is returned if a required listing field is empty.
	ErrEmptyField = "empty listing field"

	// ErrDuplicate is returned on attempt to create a listing with the same
	// title, details and category as another listing of the same creator.
	ErrDuplicate = "duplicate listing"

	// ErrNotFound is returned if the listing is missing.
	ErrNotFound = "listing does not exist"

	// ErrInvalidState is returned on a lifecycle transition from a wrong
	// state, e.g. archiving a minted listing.
	ErrInvalidState = "invalid listing state"

	// ErrNotEditable is returned on attempt to edit a listing that is not
	// active or has already collected votes.
	ErrNotEditable = "listing is not editable"

	// ErrAlreadyMinted is returned on attempt to mint a listing that is not
	// active anymore.
	ErrAlreadyMinted = "listing is already minted or archived"

	// ErrLinkNotFound is returned if the listing referenced by an archive
	// link is missing.
	ErrLinkNotFound = "linked listing does not exist"
)
