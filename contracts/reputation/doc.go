/*
Package reputation implements Reputation contract of the EduProof protocol.

Reputation contract keeps a signed integer score per account. Scores start
from zero (or from a value assigned once by committee) and change only
through deltas applied by the authorized protocol contracts: the Voting
contract scores listing creators and voters, the Comment contract scores
comment authors. Each delta carries a reason tag and is reported through a
notification with the score before and after the change, making the current
score an exact fold over the emitted history.

Voting eligibility checks of other contracts are served by MeetsThreshold.

# Contract notifications

ReputationUpdated notification. This notification is produced when an
account's score changes.

	ReputationUpdated:
	  - name: user
	    type: Hash160
	  - name: oldScore
	    type: Integer
	  - name: newScore
	    type: Integer
	  - name: reason
	    type: String

UpdaterAdded/UpdaterRemoved notifications. Produced when committee changes
the authorized updater list.

	UpdaterAdded:
	  - name: updater
	    type: Hash160

	UpdaterRemoved:
	  - name: updater
	    type: Hash160
*/
package reputation

/*
Contract storage model.

# Summary
Key-value storage format:
 - 's<account>' -> int
   current signed score of the account
 - 'i<account>' -> 1
   marker of one-time initial score assignment
 - 'u<hash160>' -> 1
   marker of a contract authorized to apply score deltas

# Scores
Missing 's' key is interpreted as zero score. Scores are mutated only by
UpdateReputation and SetInitialReputation, there is no overwrite path.
*/
