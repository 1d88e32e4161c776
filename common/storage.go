package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetList returns a deserialized list of byte slices stored by the given key.
// Missing key yields an empty list.
func GetList(ctx storage.Context, key any) [][]byte {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([][]byte)
	}

	return [][]byte{}
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// NextID increments the integer counter stored by the given key and returns
// its previous value. Counters start from zero, so the first call returns 0.
// Allocated IDs are never reused.
func NextID(ctx storage.Context, counterKey string) int {
	var id int

	data := storage.Get(ctx, counterKey)
	if data != nil {
		id = data.(int)
	}
	storage.Put(ctx, counterKey, id+1)

	return id
}
