package reputation

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/eduproof/eduproof-contract/common"
)

const (
	scorePrefix   = 's'
	initPrefix    = 'i'
	updaterPrefix = 'u'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)

		common.CheckVersion(version)
		return
	}

	runtime.Log("reputation contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("reputation contract updated")
}

// UpdateReputation applies a signed delta to the score of the given account.
// It can be invoked only by contracts from the authorized updater list, see
// AddAuthorizedUpdater. Zero deltas are rejected. Every applied delta emits
// a ReputationUpdated notification carrying the score before and after the
// change together with the reason tag, so the full score history can be
// reconstructed from the event log.
func UpdateReputation(user interop.Hash160, points int, reason string) {
	ctx := storage.GetContext()

	if len(user) != interop.Hash160Len {
		panic("incorrect user account")
	}
	if points == 0 {
		panic("zero reputation delta")
	}

	caller := runtime.GetCallingScriptHash()
	if storage.Get(ctx, updaterKey(caller)) == nil {
		panic("reputation update access denied")
	}

	oldScore := getScore(ctx, user)
	newScore := oldScore + points
	storage.Put(ctx, scoreKey(user), newScore)

	runtime.Notify("ReputationUpdated", user, oldScore, newScore, reason)
}

// SetInitialReputation assigns a starting score to an account that has never
// been scored before. It can be invoked only by committee and only once per
// account: any following attempt fails, including accounts that have already
// accumulated deltas.
func SetInitialReputation(user interop.Hash160, value int) {
	ctx := storage.GetContext()

	if len(user) != interop.Hash160Len {
		panic("incorrect user account")
	}
	if !common.HasUpdateAccess() {
		panic("only committee can set initial reputation")
	}
	if storage.Get(ctx, initKey(user)) != nil || storage.Get(ctx, scoreKey(user)) != nil {
		panic("reputation already initialized")
	}

	storage.Put(ctx, initKey(user), 1)
	storage.Put(ctx, scoreKey(user), value)

	runtime.Notify("ReputationUpdated", user, 0, value, "initial")
}

// ReputationOf returns the current score of the given account. Accounts
// without any recorded activity have zero score.
func ReputationOf(user interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getScore(ctx, user)
}

// MeetsThreshold returns true if the account's score is greater than or equal
// to the given threshold.
func MeetsThreshold(user interop.Hash160, threshold int) bool {
	ctx := storage.GetReadOnlyContext()
	return getScore(ctx, user) >= threshold
}

// AddAuthorizedUpdater adds a contract to the list of contracts permitted to
// invoke UpdateReputation. It can be invoked only by committee.
func AddAuthorizedUpdater(updater interop.Hash160) {
	if !common.HasUpdateAccess() {
		panic("only committee can manage updaters")
	}
	if len(updater) != interop.Hash160Len {
		panic("incorrect updater account")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, updaterKey(updater), 1)

	runtime.Notify("UpdaterAdded", updater)
}

// RemoveAuthorizedUpdater removes a contract from the authorized updater
// list. It can be invoked only by committee.
func RemoveAuthorizedUpdater(updater interop.Hash160) {
	if !common.HasUpdateAccess() {
		panic("only committee can manage updaters")
	}

	ctx := storage.GetContext()
	storage.Delete(ctx, updaterKey(updater))

	runtime.Notify("UpdaterRemoved", updater)
}

// IsAuthorizedUpdater returns true if the given contract is permitted to
// invoke UpdateReputation.
func IsAuthorizedUpdater(updater interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, updaterKey(updater)) != nil
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getScore(ctx storage.Context, user interop.Hash160) int {
	data := storage.Get(ctx, scoreKey(user))
	if data == nil {
		return 0
	}
	return data.(int)
}

func scoreKey(user interop.Hash160) []byte {
	return append([]byte{scorePrefix}, user...)
}

func initKey(user interop.Hash160) []byte {
	return append([]byte{initPrefix}, user...)
}

func updaterKey(updater interop.Hash160) []byte {
	return append([]byte{updaterPrefix}, updater...)
}
