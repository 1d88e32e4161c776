package deploy

// A set of contract names of the suite. The names match the `name` fields of
// the contract configuration files and therefore the manifest names.
const (
	nameReputation = "EduProof Reputation"
	nameListing    = "EduProof Listing"
	nameVoting     = "EduProof Voting"
	nameComment    = "EduProof Comment"
	nameCredential = "EduProof Credential"
)
